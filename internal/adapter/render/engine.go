package render

import (
	"context"
	"math"
	"mime"
	"strings"

	"github.com/bnema/thumbd/internal/domain"
	"github.com/bnema/thumbd/internal/port"
)

const (
	// quality is used by every lossy encoder.
	quality = 95
	// minPDFDPI rasterizes a letter page to roughly 1700x2200.
	minPDFDPI = 200
	maxPDFDPI = 600
	// letterShortEdge is the narrow side of a letter page in inches.
	letterShortEdge = 8.5
	// maxPixels rejects decompression bombs before decoding.
	maxPixels = 80_000_000
)

const contentTypePDF = "application/pdf"

var rasterTypes = map[string]bool{
	"image/jpeg":     true,
	"image/jpg":      true,
	"image/pjpeg":    true,
	"image/png":      true,
	"image/gif":      true,
	"image/webp":     true,
	"image/bmp":      true,
	"image/x-ms-bmp": true,
	"image/tiff":     true,
}

// alphaTypes are source types that may carry transparency.
var alphaTypes = map[string]bool{
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

type Engine struct {
	preferred domain.Format
	fallback  domain.Format
	encoders  map[domain.Format]encoder
	pdf       *pdfRasterizer
}

type Option func(*Engine)

// WithPDFBox raises the rasterization DPI until the narrow side of a letter
// page covers the longest side of box.
func WithPDFBox(box domain.Size) Option {
	return func(e *Engine) {
		e.pdf.dpi = pdfDPIFor(box)
	}
}

func NewEngine(preferred, fallback domain.Format, opts ...Option) *Engine {
	e := &Engine{
		preferred: preferred,
		fallback:  fallback,
		encoders:  defaultEncoders(),
		pdf:       newPDFRasterizer("pdftoppm"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func pdfDPIFor(box domain.Size) int {
	dpi := int(math.Ceil(float64(max(box.Width, box.Height)) / letterShortEdge))
	return min(max(dpi, minPDFDPI), maxPDFDPI)
}

// normalize lower-cases a content type and strips its parameters.
func normalize(contentType string) string {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return strings.ToLower(strings.TrimSpace(contentType))
	}
	return mt
}

func (e *Engine) Supports(contentType string) bool {
	ct := normalize(contentType)
	return rasterTypes[ct] || ct == contentTypePDF
}

// RecommendedFormat picks the delivery format for a source type. Sources
// that may be transparent keep a lossless alpha-capable format unless the
// preferred format carries alpha too.
func (e *Engine) RecommendedFormat(contentType string) domain.Format {
	ct := normalize(contentType)
	if ct == "image/png" || ct == "image/gif" {
		return domain.FormatPNG
	}
	if alphaTypes[ct] && e.preferred != domain.FormatWebP {
		return domain.FormatPNG
	}
	if _, ok := e.encoders[e.preferred]; ok {
		return e.preferred
	}
	return e.fallback
}

func (e *Engine) Render(ctx context.Context, src []byte, contentType string, box domain.Size, format domain.Format) (*domain.Rendition, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.Transient("render", err)
	}
	if len(src) == 0 {
		return nil, domain.Corrupt("render", errEmptySource)
	}

	ct := normalize(contentType)
	detected := sniff(src)

	switch {
	case ct == contentTypePDF:
		if detected != contentTypePDF {
			return nil, domain.Corrupt("render pdf", mismatch(ct, detected))
		}
		img, err := e.pdf.firstPage(ctx, src)
		if err != nil {
			return nil, err
		}
		return e.encode(resample(img, box), format)

	case rasterTypes[ct]:
		if !rasterTypes[detected] {
			return nil, domain.Corrupt("render image", mismatch(ct, detected))
		}
		img, err := decodeRaster(src)
		if err != nil {
			return nil, err
		}
		return e.encode(resample(img, box), format)
	}

	return nil, &domain.RenderError{Kind: domain.ErrUnsupported, Op: "render " + ct}
}

var _ port.Renderer = (*Engine)(nil)
