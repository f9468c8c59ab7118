// Package tickdata provides tick stream loaders backed by the object store
// and by QuestDB. Both satisfy the tick domain Loader contract, including the
// requirement that streams come back sorted by SIP timestamp.
package tickdata

import (
	"context"
	"fmt"
	"os"

	"github.com/blankbits/reup/internal/csvcodec"
	"github.com/blankbits/reup/internal/infrastructure/objectstore"

	tickv1 "github.com/blankbits/reup/internal/domain/tick/v1"
)

const (
	quotesFile = "quotes.csv.gz"
	tradesFile = "trades.csv.gz"
)

// ObjectStoreLoader reads raw tick CSV artifacts laid out as
// <prefix>/<date>/<symbol>/<file>.
type ObjectStoreLoader struct {
	store  objectstore.ObjectStore
	prefix string
}

// NewObjectStoreLoader creates a loader over the given store and key prefix.
func NewObjectStoreLoader(store objectstore.ObjectStore, prefix string) *ObjectStoreLoader {
	return &ObjectStoreLoader{
		store:  store,
		prefix: prefix,
	}
}

// Quotes loads the quote stream for one date and symbol.
func (l *ObjectStoreLoader) Quotes(ctx context.Context, date, symbol string) ([]tickv1.QuoteTick, error) {
	data, err := l.fetch(ctx, l.key(date, symbol, quotesFile))
	if err != nil {
		return nil, err
	}
	return csvcodec.ReadQuotes(data)
}

// Trades loads the trade stream for one date and symbol.
func (l *ObjectStoreLoader) Trades(ctx context.Context, date, symbol string) ([]tickv1.TradeTick, error) {
	data, err := l.fetch(ctx, l.key(date, symbol, tradesFile))
	if err != nil {
		return nil, err
	}
	return csvcodec.ReadTrades(data)
}

// fetch materializes the artifact to a scratch file before reading it, so
// full-day tick objects are decompressed onto disk rather than doubled up in
// memory next to their parsed form.
func (l *ObjectStoreLoader) fetch(ctx context.Context, key string) ([]byte, error) {
	path, err := l.store.Download(ctx, key)
	if err != nil {
		return nil, err
	}
	defer os.Remove(path)

	return os.ReadFile(path)
}

func (l *ObjectStoreLoader) key(date, symbol, file string) string {
	return fmt.Sprintf("%s/%s/%s/%s", l.prefix, date, symbol, file)
}
