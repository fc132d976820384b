package localfs

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bnema/thumbd/internal/domain"
)

// Handler serves objects reached through SignedURL. prefix is the request
// path under which it is mounted, e.g. "/objects/".
func (s *Store) Handler(prefix string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}

		key := strings.TrimPrefix(r.URL.Path, prefix)
		cleaned, p, err := s.resolve(key)
		if err != nil {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}

		q := r.URL.Query()
		if err := s.signer.Verify(cleaned, q.Get("expires"), q.Get("sig"), s.now()); err != nil {
			if errors.Is(err, domain.ErrInvalidSignedURL) {
				http.Error(w, "Forbidden", http.StatusForbidden)
				return
			}
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}

		f, err := os.Open(p)
		if errors.Is(err, fs.ErrNotExist) {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}
		if err != nil {
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil || info.IsDir() {
			http.Error(w, "Not found", http.StatusNotFound)
			return
		}

		if format, ok := domain.ParseFormat(filepath.Ext(p)); ok {
			w.Header().Set("Content-Type", format.ContentType())
		}
		w.Header().Set("Cache-Control", "private, max-age=300")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		http.ServeContent(w, r, info.Name(), info.ModTime().Truncate(time.Second), f)
	})
}
