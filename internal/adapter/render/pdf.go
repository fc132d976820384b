package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/bnema/thumbd/internal/domain"
)

// pdfRasterizer renders the first page of a document through poppler's
// pdftoppm after validating the document structure in-process.
type pdfRasterizer struct {
	binary string
	dpi    int
}

func newPDFRasterizer(binary string) *pdfRasterizer {
	return &pdfRasterizer{binary: binary, dpi: minPDFDPI}
}

// pageCount parses the document and reports its page count. The parser
// panics on some malformed inputs, which are corrupt content too.
func pageCount(src []byte) (n int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse pdf: %v", r)
		}
	}()
	r, err := pdf.NewReader(bytes.NewReader(src), int64(len(src)))
	if err != nil {
		return 0, fmt.Errorf("parse pdf: %w", err)
	}
	return r.NumPage(), nil
}

func (p *pdfRasterizer) firstPage(ctx context.Context, src []byte) (image.Image, error) {
	pages, err := pageCount(src)
	if err != nil {
		return nil, domain.Corrupt("validate pdf", err)
	}
	if pages < 1 {
		return nil, domain.Corrupt("validate pdf", errors.New("document has no pages"))
	}

	bin, err := exec.LookPath(p.binary)
	if err != nil {
		return nil, domain.Transient("rasterize pdf", err)
	}

	dir, err := os.MkdirTemp("", "thumbd-pdf-*")
	if err != nil {
		return nil, domain.Transient("rasterize pdf", err)
	}
	defer os.RemoveAll(dir)

	input := filepath.Join(dir, "source.pdf")
	if err := os.WriteFile(input, src, 0o600); err != nil {
		return nil, domain.Transient("rasterize pdf", err)
	}
	if err := validatePath(input); err != nil {
		return nil, domain.Transient("rasterize pdf", err)
	}

	outBase := filepath.Join(dir, "page")
	args := []string{
		"-f", "1",
		"-l", "1",
		"-r", strconv.Itoa(p.dpi),
		"-png",
		"-singlefile",
		input,
		outBase,
	}
	cmd := exec.CommandContext(ctx, bin, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return nil, classifyExit(err, output)
	}

	f, err := os.Open(outBase + ".png")
	if err != nil {
		return nil, domain.Transient("rasterize pdf", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		return nil, domain.Transient("decode rasterized page", err)
	}
	return img, nil
}

// classifyExit maps pdftoppm exit codes: 1 means the document could not be
// opened, 3 means it is encrypted. Anything else is an environment problem.
func classifyExit(err error, output []byte) error {
	msg := strings.TrimSpace(string(output))
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		switch exitErr.ExitCode() {
		case 1, 3:
			return domain.Corrupt("rasterize pdf", fmt.Errorf("%w: %s", err, msg))
		}
	}
	return domain.Transient("rasterize pdf", fmt.Errorf("%w: %s", err, msg))
}

var (
	ErrEmptyPath   = errors.New("path is empty")
	ErrInvalidPath = errors.New("path contains invalid characters")
)

// validatePath guards arguments handed to external processes.
func validatePath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}
	if strings.ContainsRune(path, 0) {
		return ErrInvalidPath
	}
	if strings.HasPrefix(filepath.Base(path), "-") {
		return ErrInvalidPath
	}
	return nil
}
