package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/thumbd/internal/domain"
)

var small = domain.Size{Name: "SMALL", Width: 150, Height: 150}

func solid(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, solid(w, h, color.RGBA{200, 30, 30, 255}), nil))
	return buf.Bytes()
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

// minimalPDF builds a single page document with a valid xref table.
func minimalPDF() []byte {
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] >>",
	}
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func TestEngine_Supports(t *testing.T) {
	e := NewEngine(domain.FormatWebP, domain.FormatJPEG)

	tests := []struct {
		contentType string
		want        bool
	}{
		{"image/jpeg", true},
		{"IMAGE/JPEG", true},
		{"image/png; charset=binary", true},
		{"image/gif", true},
		{"image/webp", true},
		{"image/bmp", true},
		{"image/tiff", true},
		{"application/pdf", true},
		{"image/svg+xml", false},
		{"video/mp4", false},
		{"application/zip", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			assert.Equal(t, tt.want, e.Supports(tt.contentType))
		})
	}
}

func TestEngine_RecommendedFormat(t *testing.T) {
	tests := []struct {
		name        string
		preferred   domain.Format
		contentType string
		want        domain.Format
	}{
		{"jpeg gets preferred", domain.FormatWebP, "image/jpeg", domain.FormatWebP},
		{"pdf gets preferred", domain.FormatWebP, "application/pdf", domain.FormatWebP},
		{"png keeps png", domain.FormatWebP, "image/png", domain.FormatPNG},
		{"gif keeps png", domain.FormatWebP, "image/gif", domain.FormatPNG},
		{"webp keeps webp", domain.FormatWebP, "image/webp", domain.FormatWebP},
		{"webp with jpeg preferred", domain.FormatJPEG, "image/webp", domain.FormatPNG},
		{"jpeg with jpeg preferred", domain.FormatJPEG, "image/jpeg", domain.FormatJPEG},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewEngine(tt.preferred, domain.FormatJPEG)
			assert.Equal(t, tt.want, e.RecommendedFormat(tt.contentType))
		})
	}
}

func TestEngine_RecommendedFormat_MissingEncoder(t *testing.T) {
	e := NewEngine(domain.FormatWebP, domain.FormatJPEG)
	delete(e.encoders, domain.FormatWebP)

	assert.Equal(t, domain.FormatJPEG, e.RecommendedFormat("image/jpeg"))
}

func TestEngine_RenderJPEG(t *testing.T) {
	e := NewEngine(domain.FormatWebP, domain.FormatJPEG)

	out, err := e.Render(context.Background(), encodeJPEG(t, 1600, 1200), "image/jpeg", small, domain.FormatJPEG)
	require.NoError(t, err)

	assert.Equal(t, domain.FormatJPEG, out.Format)
	assert.Equal(t, 150, out.Width)
	assert.Equal(t, 113, out.Height)

	cfg, format, err := image.DecodeConfig(bytes.NewReader(out.Data))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 150, cfg.Width)
	assert.Equal(t, 113, cfg.Height)
}

func TestEngine_RenderWebP(t *testing.T) {
	e := NewEngine(domain.FormatWebP, domain.FormatJPEG)

	out, err := e.Render(context.Background(), encodeJPEG(t, 800, 400), "image/jpeg", small, domain.FormatWebP)
	require.NoError(t, err)

	assert.Equal(t, domain.FormatWebP, out.Format)
	assert.Equal(t, "image/webp", sniff(out.Data))
	assert.Equal(t, 150, out.Width)
	assert.Equal(t, 75, out.Height)
}

func TestEngine_RenderRecommendedFormatForJPEG(t *testing.T) {
	e := NewEngine(domain.FormatWebP, domain.FormatJPEG)
	format := e.RecommendedFormat("image/jpeg")
	require.Equal(t, domain.FormatWebP, format)

	for range 3 {
		out, err := e.Render(context.Background(), encodeJPEG(t, 640, 480), "image/jpeg", small, format)
		require.NoError(t, err)
		assert.Equal(t, domain.FormatWebP, out.Format)
		assert.Equal(t, "image/webp", sniff(out.Data))
	}
}

func TestEngine_RenderNeverUpscales(t *testing.T) {
	e := NewEngine(domain.FormatWebP, domain.FormatJPEG)

	out, err := e.Render(context.Background(), encodeJPEG(t, 100, 60), "image/jpeg", small, domain.FormatJPEG)
	require.NoError(t, err)

	assert.Equal(t, 100, out.Width)
	assert.Equal(t, 60, out.Height)
}

func TestEngine_RenderPNGKeepsAlpha(t *testing.T) {
	e := NewEngine(domain.FormatWebP, domain.FormatJPEG)
	src := encodePNG(t, solid(300, 300, color.NRGBA{0, 0, 255, 0}))

	out, err := e.Render(context.Background(), src, "image/png", small, domain.FormatPNG)
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out.Data))
	require.NoError(t, err)
	_, _, _, a := img.At(10, 10).RGBA()
	assert.Zero(t, a)
}

func TestEngine_RenderJPEGFlattensAlpha(t *testing.T) {
	e := NewEngine(domain.FormatJPEG, domain.FormatJPEG)
	src := encodePNG(t, solid(40, 40, color.NRGBA{0, 0, 0, 0}))

	out, err := e.Render(context.Background(), src, "image/png", small, domain.FormatJPEG)
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(out.Data))
	require.NoError(t, err)
	r, g, b, _ := img.At(20, 20).RGBA()
	assert.Greater(t, r>>8, uint32(240))
	assert.Greater(t, g>>8, uint32(240))
	assert.Greater(t, b>>8, uint32(240))
}

func TestEngine_RenderGIF(t *testing.T) {
	e := NewEngine(domain.FormatWebP, domain.FormatJPEG)

	pal := image.NewPaletted(image.Rect(0, 0, 400, 200), color.Palette{color.Black, color.White})
	var buf bytes.Buffer
	require.NoError(t, gif.Encode(&buf, pal, nil))

	out, err := e.Render(context.Background(), buf.Bytes(), "image/gif", small, domain.FormatPNG)
	require.NoError(t, err)
	assert.Equal(t, 150, out.Width)
	assert.Equal(t, 75, out.Height)
}

func TestEngine_RenderFallsBackWhenEncoderFails(t *testing.T) {
	e := NewEngine(domain.FormatWebP, domain.FormatJPEG)
	e.encoders[domain.FormatWebP] = func(*bytes.Buffer, image.Image) error {
		return fmt.Errorf("encoder unavailable")
	}

	out, err := e.Render(context.Background(), encodeJPEG(t, 300, 300), "image/jpeg", small, domain.FormatWebP)
	require.NoError(t, err)
	assert.Equal(t, domain.FormatJPEG, out.Format)
}

func TestEngine_RenderErrors(t *testing.T) {
	e := NewEngine(domain.FormatWebP, domain.FormatJPEG)
	jpg := encodeJPEG(t, 10, 10)

	truncated := encodeJPEG(t, 400, 400)
	truncated = truncated[:len(truncated)/3]

	tests := []struct {
		name        string
		src         []byte
		contentType string
		wantErr     error
	}{
		{"empty source", nil, "image/jpeg", domain.ErrCorruptContent},
		{"text declared as jpeg", []byte("definitely not an image at all"), "image/jpeg", domain.ErrCorruptContent},
		{"jpeg declared as pdf", jpg, "application/pdf", domain.ErrCorruptContent},
		{"truncated jpeg", truncated, "image/jpeg", domain.ErrCorruptContent},
		{"broken pdf", []byte("%PDF-1.4\nthis is not a document"), "application/pdf", domain.ErrCorruptContent},
		{"svg unsupported", []byte("<svg xmlns='http://www.w3.org/2000/svg'/>"), "image/svg+xml", domain.ErrUnsupported},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Render(context.Background(), tt.src, tt.contentType, small, domain.FormatJPEG)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestEngine_RenderCancelledIsTransient(t *testing.T) {
	e := NewEngine(domain.FormatWebP, domain.FormatJPEG)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Render(ctx, encodeJPEG(t, 10, 10), "image/jpeg", small, domain.FormatJPEG)
	assert.ErrorIs(t, err, domain.ErrTransient)
}

func TestPageCount(t *testing.T) {
	n, err := pageCount(minimalPDF())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = pageCount([]byte("%PDF-1.4\ngarbage"))
	assert.Error(t, err)
}

func TestEngine_RenderPDFWithoutRasterizer(t *testing.T) {
	e := NewEngine(domain.FormatWebP, domain.FormatJPEG)
	e.pdf = newPDFRasterizer("thumbd-no-such-binary")

	_, err := e.Render(context.Background(), minimalPDF(), "application/pdf", small, domain.FormatJPEG)
	assert.ErrorIs(t, err, domain.ErrTransient)
}

func TestEngine_RenderPDF(t *testing.T) {
	if _, err := exec.LookPath("pdftoppm"); err != nil {
		t.Skip("pdftoppm not installed")
	}
	e := NewEngine(domain.FormatWebP, domain.FormatJPEG)

	out, err := e.Render(context.Background(), minimalPDF(), "application/pdf", domain.Size{Name: "PREVIEW", Width: 400, Height: 400}, domain.FormatJPEG)
	require.NoError(t, err)

	// US letter at 200 DPI is 1700x2200, fitted into 400x400.
	assert.Equal(t, 309, out.Width)
	assert.Equal(t, 400, out.Height)
}

func TestPDFDPIFor(t *testing.T) {
	tests := []struct {
		name string
		box  domain.Size
		want int
	}{
		{"default sizes keep the floor", domain.Size{Name: "PREVIEW", Width: 400, Height: 400}, 200},
		{"large square box", domain.Size{Name: "PREVIEW", Width: 2400, Height: 2400}, 283},
		{"tall box uses longest side", domain.Size{Name: "POSTER", Width: 300, Height: 3400}, 400},
		{"huge box is capped", domain.Size{Name: "HUGE", Width: 10000, Height: 10000}, 600},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pdfDPIFor(tt.box))
		})
	}
}

func TestWithPDFBox(t *testing.T) {
	assert.Equal(t, 200, NewEngine(domain.FormatWebP, domain.FormatJPEG).pdf.dpi)

	sizes, err := domain.ParseSizeSet("SMALL:150x150,PREVIEW:2400x2400")
	require.NoError(t, err)
	e := NewEngine(domain.FormatWebP, domain.FormatJPEG, WithPDFBox(sizes.Largest()))
	assert.Equal(t, 283, e.pdf.dpi)
}

func TestEngine_RenderPDFLargeBox(t *testing.T) {
	if _, err := exec.LookPath("pdftoppm"); err != nil {
		t.Skip("pdftoppm not installed")
	}
	box := domain.Size{Name: "PREVIEW", Width: 2400, Height: 2400}
	e := NewEngine(domain.FormatWebP, domain.FormatJPEG, WithPDFBox(box))

	out, err := e.Render(context.Background(), minimalPDF(), "application/pdf", box, domain.FormatJPEG)
	require.NoError(t, err)
	assert.Equal(t, 2400, out.Height)
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr error
	}{
		{name: "valid path", path: "/tmp/thumbd-pdf-1/source.pdf"},
		{name: "valid relative path", path: "source.pdf"},
		{name: "empty path", path: "", wantErr: ErrEmptyPath},
		{name: "null byte", path: "/tmp/\x00source.pdf", wantErr: ErrInvalidPath},
		{name: "flag-like name", path: "/tmp/-r", wantErr: ErrInvalidPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePath(tt.path)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestSniff(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"pdf", []byte("%PDF-1.7\n"), "application/pdf"},
		{"tiff little endian", []byte{'I', 'I', 0x2A, 0x00, 0, 0, 0, 0}, "image/tiff"},
		{"tiff big endian", []byte{'M', 'M', 0x00, 0x2A, 0, 0, 0, 0}, "image/tiff"},
		{"webp", []byte("RIFF\x00\x00\x00\x00WEBPVP8 "), "image/webp"},
		{"png", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\x00"), "image/png"},
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0, 0, 0}, "image/jpeg"},
		{"bmp", []byte("BM\x00\x00\x00\x00\x00\x00"), "image/bmp"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sniff(tt.data))
		})
	}
}
