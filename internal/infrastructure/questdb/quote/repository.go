package quote

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/blankbits/reup/pkg/questdb"
)

// Repository persists raw quote ticks in QuestDB.
type Repository struct {
	client questdb.QuestDBClient
}

// NewRepository creates a new quote repository.
func NewRepository(client questdb.QuestDBClient) *Repository {
	return &Repository{
		client: client,
	}
}

// Store stores a single quote tick.
func (r *Repository) Store(ctx context.Context, quote *Quote) error {
	query := `INSERT INTO quotes (symbol, date, sequence_number, sip_timestamp, exchange_timestamp,
				bid_price, bid_size, bid_exchange, ask_price, ask_size, ask_exchange, conditions, indicators)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`

	err := r.client.Exec(ctx, query,
		quote.Symbol, quote.Date, quote.Sequence, quote.SIPTimestamp, quote.ExchangeTimestamp,
		quote.BidPrice, quote.BidSize, quote.BidExchange,
		quote.AskPrice, quote.AskSize, quote.AskExchange,
		quote.Conditions, quote.Indicators)

	if err != nil {
		return fmt.Errorf("failed to store quote: %w", err)
	}

	return nil
}

// StoreBatch stores a batch of quote ticks.
func (r *Repository) StoreBatch(ctx context.Context, quotes []*Quote) error {
	if len(quotes) == 0 {
		return nil
	}

	// CopyFrom keeps full-day inserts off the per-row insert path.
	_, err := r.client.CopyFrom(
		ctx,
		pgx.Identifier{"quotes"},
		[]string{"symbol", "date", "sequence_number", "sip_timestamp", "exchange_timestamp",
			"bid_price", "bid_size", "bid_exchange", "ask_price", "ask_size", "ask_exchange",
			"conditions", "indicators"},
		pgx.CopyFromSlice(len(quotes), func(i int) ([]any, error) {
			q := quotes[i]
			return []any{
				q.Symbol, q.Date, q.Sequence, q.SIPTimestamp, q.ExchangeTimestamp,
				q.BidPrice, q.BidSize, q.BidExchange,
				q.AskPrice, q.AskSize, q.AskExchange,
				q.Conditions, q.Indicators,
			}, nil
		}),
	)

	if err != nil {
		return fmt.Errorf("failed to copy quotes: %w", err)
	}

	return nil
}

// GetBySymbolDate retrieves all quote ticks for a symbol on a trading date,
// ordered by sequence number.
func (r *Repository) GetBySymbolDate(ctx context.Context, symbol, date string) ([]*Quote, error) {
	query := `SELECT symbol, date, sequence_number, sip_timestamp, exchange_timestamp,
				bid_price, bid_size, bid_exchange, ask_price, ask_size, ask_exchange, conditions, indicators
			  FROM quotes
			  WHERE symbol = $1 AND date = $2
			  ORDER BY sequence_number`

	rows, err := r.client.Query(ctx, query, symbol, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query quotes: %w", err)
	}
	defer rows.Close()

	var quotes []*Quote
	for rows.Next() {
		q := &Quote{}
		err := rows.Scan(&q.Symbol, &q.Date, &q.Sequence, &q.SIPTimestamp, &q.ExchangeTimestamp,
			&q.BidPrice, &q.BidSize, &q.BidExchange,
			&q.AskPrice, &q.AskSize, &q.AskExchange,
			&q.Conditions, &q.Indicators)
		if err != nil {
			return nil, fmt.Errorf("failed to scan quote: %w", err)
		}
		quotes = append(quotes, q)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return quotes, nil
}
