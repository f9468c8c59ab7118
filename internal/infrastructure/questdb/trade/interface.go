package trade

import (
	"context"
)

// TradeRepository is the interface for the trade repository.
//
//go:generate mockgen -source=repository.go -destination=mock/repository_mock.go -package=mock
type TradeRepository interface {
	GetBySymbolDate(ctx context.Context, symbol, date string) ([]*Trade, error)
	Store(ctx context.Context, trade *Trade) error
	StoreBatch(ctx context.Context, trades []*Trade) error
}
