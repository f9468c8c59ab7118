// Package universe tracks a symbol universe that changes over time. Each
// change is an object whose key ends in YYYY-MM-DD.csv; the constituents on
// any date are those of the most recent file on or prior to it.
package universe

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"sort"

	"github.com/blankbits/reup/pkg/errors"
	"github.com/blankbits/reup/pkg/logger"
)

// Store is the subset of artifact storage the universe reads from.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	List(ctx context.Context, prefix string) ([]string, error)
}

// Universe holds all universe snapshots in memory, loaded once at startup.
type Universe struct {
	dates   []string
	symbols map[string][]string
	logger  logger.Interface
}

// New loads every universe file under prefix. The prefix must contain
// universe CSVs and nothing else.
func New(ctx context.Context, store Store, prefix string, log logger.Interface) (*Universe, error) {
	keys, err := store.List(ctx, prefix)
	if err != nil {
		return nil, err
	}

	u := &Universe{
		symbols: make(map[string][]string),
		logger:  log,
	}
	for _, key := range keys {
		if len(key) < 14 {
			return nil, errors.NewErrorDetails(
				fmt.Sprintf("universe key %v is not dated", key),
				errors.GeneralBadRequestError,
				"key",
			)
		}
		date := key[len(key)-14 : len(key)-4]

		data, err := store.Get(ctx, key)
		if err != nil {
			return nil, err
		}
		symbols, err := parseSymbols(data)
		if err != nil {
			return nil, err
		}

		u.dates = append(u.dates, date)
		u.symbols[date] = symbols
	}
	sort.Strings(u.dates)

	log.InfoContext(ctx, "loaded universe", logger.Field{Key: "snapshots", Value: len(u.dates)})
	return u, nil
}

// SymbolList returns the universe constituents on a given date.
func (u *Universe) SymbolList(date string) ([]string, error) {
	for i := len(u.dates) - 1; i >= 0; i-- {
		if u.dates[i] <= date {
			return u.symbols[u.dates[i]], nil
		}
	}

	return nil, errors.NewErrorDetails(
		fmt.Sprintf("no universe date exists on or prior to %v", date),
		errors.ErrUniverseDateNotFound,
		"date",
	)
}

// parseSymbols reads the symbol column of a universe CSV.
func parseSymbols(data []byte) ([]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	if len(records) == 0 {
		return nil, errors.NewErrorDetails("universe csv is missing a header row", errors.GeneralBadRequestError, "header")
	}

	col := -1
	for i, name := range records[0] {
		if name == "symbol" {
			col = i
			break
		}
	}
	if col < 0 {
		return nil, errors.NewErrorDetails("universe csv has no symbol column", errors.GeneralBadRequestError, "header")
	}

	symbols := make([]string, 0, len(records)-1)
	for _, rec := range records[1:] {
		symbols = append(symbols, rec[col])
	}
	return symbols, nil
}
