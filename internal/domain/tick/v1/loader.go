package tick

import (
	"context"
)

// Loader supplies the two tick streams for one (date, symbol) unit. Both
// streams must be sorted ascending by SIP timestamp; that contract belongs to
// the loader, not to downstream consumers.
//
//go:generate mockgen -source=loader.go -destination=mock/loader_mock.go -package=mock
type Loader interface {
	Quotes(ctx context.Context, date, symbol string) ([]QuoteTick, error)
	Trades(ctx context.Context, date, symbol string) ([]TradeTick, error)
}
