package domain

import "strings"

type Format string

const (
	FormatWebP Format = "webp"
	FormatJPEG Format = "jpg"
	FormatPNG  Format = "png"
)

// ParseFormat accepts common spellings ("jpeg", "JPG", ".webp").
func ParseFormat(s string) (Format, bool) {
	switch strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".") {
	case "webp":
		return FormatWebP, true
	case "jpg", "jpeg":
		return FormatJPEG, true
	case "png":
		return FormatPNG, true
	}
	return "", false
}

func (f Format) Extension() string {
	return string(f)
}

func (f Format) ContentType() string {
	switch f {
	case FormatWebP:
		return "image/webp"
	case FormatJPEG:
		return "image/jpeg"
	case FormatPNG:
		return "image/png"
	}
	return "application/octet-stream"
}

// Rendition is the output of one render call.
type Rendition struct {
	Data   []byte
	Format Format
	Width  int
	Height int
}
