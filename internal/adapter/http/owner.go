package http

import (
	"context"
	"net/http"
	"strings"
	"unicode"
)

// OwnerHeader carries the caller identity set by the gateway in front of us.
const OwnerHeader = "X-User-Id"

const maxOwnerLength = 128

type ownerKey struct{}

// RequireOwner rejects requests without a usable owner identity and stores
// it in the request context.
func RequireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		owner, ok := parseOwner(r.Header.Get(OwnerHeader))
		if !ok {
			writeError(w, http.StatusUnauthorized, "unauthorized", "missing or invalid "+OwnerHeader+" header")
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ownerKey{}, owner)))
	})
}

// OwnerFrom returns the identity stored by RequireOwner, or "".
func OwnerFrom(ctx context.Context) string {
	owner, _ := ctx.Value(ownerKey{}).(string)
	return owner
}

// ownerRateKey keys the generation rate limit by owner, falling back to the
// client address.
func ownerRateKey(r *http.Request) string {
	if owner, ok := parseOwner(r.Header.Get(OwnerHeader)); ok {
		return "owner:" + owner
	}
	return "addr:" + r.RemoteAddr
}

func parseOwner(raw string) (string, bool) {
	owner := strings.TrimSpace(raw)
	if owner == "" || len(owner) > maxOwnerLength {
		return "", false
	}
	if strings.IndexFunc(owner, unicode.IsControl) >= 0 {
		return "", false
	}
	return owner, true
}
