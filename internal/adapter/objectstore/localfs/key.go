package localfs

import (
	"fmt"
	"path"
	"strings"
	"unicode/utf8"
)

// maxKeyLength bounds object keys; each path segment must also fit common
// filesystem limits.
const (
	maxKeyLength     = 1024
	maxSegmentLength = 255
)

// forbiddenChars may not appear anywhere in an object key.
var forbiddenChars = map[rune]bool{
	'\\': true, // Windows path separator
	':':  true, // Windows drive separator
	'"':  true, // breaks quoted headers
	'\n': true,
	'\r': true,
}

// CleanKey validates an object key and returns its canonical slash form.
// Keys are relative, use '/' as separator and never escape the root.
func CleanKey(key string) (string, error) {
	if key == "" {
		return "", fmt.Errorf("empty object key")
	}
	if len(key) > maxKeyLength {
		return "", fmt.Errorf("object key longer than %d bytes", maxKeyLength)
	}
	if !utf8.ValidString(key) {
		return "", fmt.Errorf("object key is not valid UTF-8")
	}
	for _, r := range key {
		if r < 32 || r == 127 || forbiddenChars[r] {
			return "", fmt.Errorf("object key contains forbidden character %q", r)
		}
	}
	if strings.HasPrefix(key, "/") {
		return "", fmt.Errorf("object key must be relative")
	}
	for _, seg := range strings.Split(key, "/") {
		if seg == ".." {
			return "", fmt.Errorf("object key escapes storage root")
		}
		if len(seg) > maxSegmentLength {
			return "", fmt.Errorf("object key segment longer than %d bytes", maxSegmentLength)
		}
	}

	cleaned := path.Clean(key)
	if cleaned == "." {
		return "", fmt.Errorf("object key has no name")
	}
	return cleaned, nil
}
