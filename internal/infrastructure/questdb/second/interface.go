package second

import (
	"context"
)

// SecondRepository is the interface for the seconds repository.
//
//go:generate mockgen -source=repository.go -destination=mock/repository_mock.go -package=mock
type SecondRepository interface {
	GetBySymbolDate(ctx context.Context, symbol, date string) ([]*Second, error)
	StoreBatch(ctx context.Context, seconds []*Second) error
}
