package render

import (
	"bytes"
	"net/http"
)

// sniffLen is the number of bytes inspected for content detection.
const sniffLen = 512

// sniff detects the real content type from magic bytes, covering the
// formats http.DetectContentType does not know.
func sniff(src []byte) string {
	buf := src
	if len(buf) > sniffLen {
		buf = buf[:sniffLen]
	}
	if mime := detectCustomMagicBytes(buf); mime != "" {
		return mime
	}
	return http.DetectContentType(buf)
}

func detectCustomMagicBytes(buf []byte) string {
	if len(buf) < 4 {
		return ""
	}

	// PDF may be preceded by junk; readers accept the header within 1KB.
	if bytes.Contains(buf, []byte("%PDF-")) {
		return contentTypePDF
	}

	// TIFF: little-endian "II*\0" or big-endian "MM\0*"
	if (buf[0] == 'I' && buf[1] == 'I' && buf[2] == 0x2A && buf[3] == 0x00) ||
		(buf[0] == 'M' && buf[1] == 'M' && buf[2] == 0x00 && buf[3] == 0x2A) {
		return "image/tiff"
	}

	// WebP: RIFF....WEBP (bytes 0-3: RIFF, bytes 8-11: WEBP)
	if len(buf) >= 12 {
		if buf[0] == 'R' && buf[1] == 'I' && buf[2] == 'F' && buf[3] == 'F' &&
			buf[8] == 'W' && buf[9] == 'E' && buf[10] == 'B' && buf[11] == 'P' {
			return "image/webp"
		}
	}

	return ""
}
