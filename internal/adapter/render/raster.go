package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"

	// Decoders registered with image.Decode.
	_ "image/gif"

	"github.com/gen2brain/webp"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"

	"github.com/bnema/thumbd/internal/domain"
)

var errEmptySource = errors.New("source is empty")

func mismatch(declared, detected string) error {
	return fmt.Errorf("declared %s but content looks like %s", declared, detected)
}

func decodeRaster(src []byte) (image.Image, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(src))
	if err != nil {
		return nil, domain.Corrupt("decode config", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, domain.Corrupt("decode config", fmt.Errorf("invalid dimensions %dx%d", cfg.Width, cfg.Height))
	}
	if cfg.Width*cfg.Height > maxPixels {
		return nil, domain.Corrupt("decode config", fmt.Errorf("image of %dx%d exceeds pixel limit", cfg.Width, cfg.Height))
	}

	img, format, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, domain.Corrupt("decode "+format, err)
	}
	return img, nil
}

// resample fits img inside box with Catmull-Rom filtering. Images already
// inside the box are returned untouched.
func resample(img image.Image, box domain.Size) image.Image {
	b := img.Bounds()
	w, h := box.Fit(b.Dx(), b.Dy())
	if w == b.Dx() && h == b.Dy() {
		return img
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	return dst
}

// flatten composites img over white for formats without alpha.
func flatten(img image.Image) image.Image {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}

type encoder func(buf *bytes.Buffer, img image.Image) error

func defaultEncoders() map[domain.Format]encoder {
	return map[domain.Format]encoder{
		domain.FormatJPEG: func(buf *bytes.Buffer, img image.Image) error {
			return jpeg.Encode(buf, flatten(img), &jpeg.Options{Quality: quality})
		},
		domain.FormatPNG: func(buf *bytes.Buffer, img image.Image) error {
			enc := png.Encoder{CompressionLevel: png.BestCompression}
			return enc.Encode(buf, img)
		},
		domain.FormatWebP: func(buf *bytes.Buffer, img image.Image) error {
			return webp.Encode(buf, img, webp.Options{Quality: quality, Method: 4})
		},
	}
}

// encode writes img in format, retrying once with the fallback format when
// the requested encoder is missing or fails.
func (e *Engine) encode(img image.Image, format domain.Format) (*domain.Rendition, error) {
	b := img.Bounds()
	out := &domain.Rendition{Width: b.Dx(), Height: b.Dy()}

	var firstErr error
	for _, f := range []domain.Format{format, e.fallback} {
		enc, ok := e.encoders[f]
		if !ok {
			firstErr = errors.Join(firstErr, fmt.Errorf("no encoder for %s", f))
			continue
		}
		var buf bytes.Buffer
		if err := enc(&buf, img); err != nil {
			firstErr = errors.Join(firstErr, fmt.Errorf("encode %s: %w", f, err))
			continue
		}
		out.Data = buf.Bytes()
		out.Format = f
		return out, nil
	}
	return nil, domain.Transient("encode", firstErr)
}
