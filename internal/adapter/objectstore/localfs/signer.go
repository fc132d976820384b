package localfs

import (
	"crypto/subtle"
	"encoding/hex"
	"strconv"
	"time"

	"golang.org/x/crypto/blake2b"

	"github.com/bnema/thumbd/internal/domain"
)

// Signer produces and checks expiring URL signatures with a keyed BLAKE2b MAC.
type Signer struct {
	key [32]byte
}

func NewSigner(secret string) *Signer {
	return &Signer{key: blake2b.Sum256([]byte(secret))}
}

func (s *Signer) mac(key string, expires int64) []byte {
	h, err := blake2b.New256(s.key[:])
	if err != nil {
		// 32-byte keys are always accepted.
		panic(err)
	}
	h.Write([]byte(key))
	h.Write([]byte{0})
	h.Write([]byte(strconv.FormatInt(expires, 10)))
	return h.Sum(nil)
}

// Sign returns the hex signature for key valid until expires.
func (s *Signer) Sign(key string, expires time.Time) string {
	return hex.EncodeToString(s.mac(key, expires.Unix()))
}

// Verify checks a signature produced by Sign against the current time.
func (s *Signer) Verify(key, expires, signature string, now time.Time) error {
	exp, err := strconv.ParseInt(expires, 10, 64)
	if err != nil {
		return domain.ErrInvalidSignedURL
	}
	if now.Unix() > exp {
		return domain.ErrInvalidSignedURL
	}
	got, err := hex.DecodeString(signature)
	if err != nil {
		return domain.ErrInvalidSignedURL
	}
	if subtle.ConstantTimeCompare(got, s.mac(key, exp)) != 1 {
		return domain.ErrInvalidSignedURL
	}
	return nil
}
