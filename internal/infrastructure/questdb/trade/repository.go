package trade

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/blankbits/reup/pkg/questdb"
)

// Repository persists raw trade ticks in QuestDB.
type Repository struct {
	client questdb.QuestDBClient
}

// NewRepository creates a new trade repository.
func NewRepository(client questdb.QuestDBClient) *Repository {
	return &Repository{
		client: client,
	}
}

// Store stores a single trade tick.
func (r *Repository) Store(ctx context.Context, trade *Trade) error {
	query := `INSERT INTO trades (symbol, date, sequence_number, sip_timestamp, exchange_timestamp,
				price, size, exchange, conditions)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	err := r.client.Exec(ctx, query,
		trade.Symbol, trade.Date, trade.Sequence, trade.SIPTimestamp, trade.ExchangeTimestamp,
		trade.Price, trade.Size, trade.Exchange, trade.Conditions)

	if err != nil {
		return fmt.Errorf("failed to store trade: %w", err)
	}

	return nil
}

// StoreBatch stores a batch of trade ticks.
func (r *Repository) StoreBatch(ctx context.Context, trades []*Trade) error {
	if len(trades) == 0 {
		return nil
	}

	_, err := r.client.CopyFrom(
		ctx,
		pgx.Identifier{"trades"},
		[]string{"symbol", "date", "sequence_number", "sip_timestamp", "exchange_timestamp",
			"price", "size", "exchange", "conditions"},
		pgx.CopyFromSlice(len(trades), func(i int) ([]any, error) {
			t := trades[i]
			return []any{
				t.Symbol, t.Date, t.Sequence, t.SIPTimestamp, t.ExchangeTimestamp,
				t.Price, t.Size, t.Exchange, t.Conditions,
			}, nil
		}),
	)

	if err != nil {
		return fmt.Errorf("failed to copy trades: %w", err)
	}

	return nil
}

// GetBySymbolDate retrieves all trade ticks for a symbol on a trading date,
// ordered by sequence number.
func (r *Repository) GetBySymbolDate(ctx context.Context, symbol, date string) ([]*Trade, error) {
	query := `SELECT symbol, date, sequence_number, sip_timestamp, exchange_timestamp,
				price, size, exchange, conditions
			  FROM trades
			  WHERE symbol = $1 AND date = $2
			  ORDER BY sequence_number`

	rows, err := r.client.Query(ctx, query, symbol, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	var trades []*Trade
	for rows.Next() {
		t := &Trade{}
		err := rows.Scan(&t.Symbol, &t.Date, &t.Sequence, &t.SIPTimestamp, &t.ExchangeTimestamp,
			&t.Price, &t.Size, &t.Exchange, &t.Conditions)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade: %w", err)
		}
		trades = append(trades, t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return trades, nil
}
