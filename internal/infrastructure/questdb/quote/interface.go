package quote

import (
	"context"
)

// QuoteRepository is the interface for the quote repository.
//
//go:generate mockgen -source=repository.go -destination=mock/repository_mock.go -package=mock
type QuoteRepository interface {
	GetBySymbolDate(ctx context.Context, symbol, date string) ([]*Quote, error)
	Store(ctx context.Context, quote *Quote) error
	StoreBatch(ctx context.Context, quotes []*Quote) error
}
