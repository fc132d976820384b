package port

import (
	"context"

	"github.com/bnema/thumbd/internal/domain"
)

type Renderer interface {
	Supports(contentType string) bool
	RecommendedFormat(contentType string) domain.Format
	Render(ctx context.Context, src []byte, contentType string, box domain.Size, format domain.Format) (*domain.Rendition, error)
}
