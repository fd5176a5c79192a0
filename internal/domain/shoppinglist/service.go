package shoppinglist

import (
	"bytes"
	"context"

	"foodgram/internal/logging"
	"foodgram/internal/metrics"
	"foodgram/internal/pkg/apperr"
)

var ErrUnknownFormat = apperr.Validation("format", "format must be txt or pdf")

// Document is a rendered shopping list ready to be sent.
type Document struct {
	Filename    string
	ContentType string
	Body        []byte
	Items       int
}

type Service struct {
	repo  Repository
	title string
}

// NewService builds the aggregator. title heads every rendered document.
func NewService(repo Repository, title string) *Service {
	return &Service{repo: repo, title: title}
}

// Items computes the user's shopping list from the current cart. Nothing
// is cached; every call reads the cart again.
func (s *Service) Items(ctx context.Context, userID int64) ([]Item, error) {
	lines, err := s.repo.CartLines(ctx, userID)
	if err != nil {
		return nil, err
	}
	return Aggregate(lines)
}

// Document renders the user's shopping list in format ("txt" or "pdf").
func (s *Service) Document(ctx context.Context, userID int64, format string) (*Document, error) {
	renderer, ok := RendererFor(format)
	if !ok {
		return nil, ErrUnknownFormat
	}

	items, err := s.Items(ctx, userID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := renderer.Render(&buf, s.title, items); err != nil {
		return nil, err
	}

	metrics.RecordShoppingList(renderer.Extension(), len(items))
	logging.Ctx(ctx).Debug().
		Int64("user_id", userID).
		Int("items", len(items)).
		Str("format", renderer.Extension()).
		Msg("shopping list rendered")

	return &Document{
		Filename:    "shopping_list." + renderer.Extension(),
		ContentType: renderer.ContentType(),
		Body:        buf.Bytes(),
		Items:       len(items),
	}, nil
}
