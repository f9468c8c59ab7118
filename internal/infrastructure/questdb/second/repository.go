package second

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/blankbits/reup/pkg/questdb"

	timeseriesv1 "github.com/blankbits/reup/internal/domain/timeseries/v1"
)

// Repository persists resampled per-second series rows in QuestDB.
type Repository struct {
	client questdb.QuestDBClient
}

// NewRepository creates a new seconds repository.
func NewRepository(client questdb.QuestDBClient) *Repository {
	return &Repository{
		client: client,
	}
}

var secondColumns = []string{
	"symbol", "date", "timestamp",
	"bid_price", "bid_size", "ask_price", "ask_size",
	"last_trade_price", "vwap", "volume_price_dict",
	"volume_total", "volume_aggressive_buy", "volume_aggressive_sell",
	"message_count_quote", "message_count_trade",
}

// StoreBatch stores a full per-second series for one symbol and date.
func (r *Repository) StoreBatch(ctx context.Context, seconds []*Second) error {
	if len(seconds) == 0 {
		return nil
	}

	_, err := r.client.CopyFrom(
		ctx,
		pgx.Identifier{"seconds"},
		secondColumns,
		pgx.CopyFromSlice(len(seconds), func(i int) ([]any, error) {
			s := seconds[i]
			row := &s.Row
			return []any{
				s.Symbol, s.Date, row.Timestamp,
				nullFloatArg(row.BidPrice), nullIntArg(row.BidSize),
				nullFloatArg(row.AskPrice), nullIntArg(row.AskSize),
				nullFloatArg(row.LastTradePrice), nullFloatArg(row.VWAP),
				row.VolumePriceJSON(),
				row.VolumeTotal, row.VolumeAggressiveBuy, row.VolumeAggressiveSell,
				row.MessageCountQuote, row.MessageCountTrade,
			}, nil
		}),
	)

	if err != nil {
		return fmt.Errorf("failed to copy seconds: %w", err)
	}

	return nil
}

// GetBySymbolDate retrieves the per-second series for a symbol on a trading
// date, ordered by timestamp.
func (r *Repository) GetBySymbolDate(ctx context.Context, symbol, date string) ([]*Second, error) {
	query := `SELECT symbol, date, timestamp,
				bid_price, bid_size, ask_price, ask_size,
				last_trade_price, vwap, volume_price_dict,
				volume_total, volume_aggressive_buy, volume_aggressive_sell,
				message_count_quote, message_count_trade
			  FROM seconds
			  WHERE symbol = $1 AND date = $2
			  ORDER BY timestamp`

	rows, err := r.client.Query(ctx, query, symbol, date)
	if err != nil {
		return nil, fmt.Errorf("failed to query seconds: %w", err)
	}
	defer rows.Close()

	var seconds []*Second
	for rows.Next() {
		s := &Second{}
		var (
			bidPrice, askPrice, lastTradePrice, vwap *float64
			bidSize, askSize                         *int64
			volumePrices                             string
		)
		err := rows.Scan(&s.Symbol, &s.Date, &s.Row.Timestamp,
			&bidPrice, &bidSize, &askPrice, &askSize,
			&lastTradePrice, &vwap, &volumePrices,
			&s.Row.VolumeTotal, &s.Row.VolumeAggressiveBuy, &s.Row.VolumeAggressiveSell,
			&s.Row.MessageCountQuote, &s.Row.MessageCountTrade)
		if err != nil {
			return nil, fmt.Errorf("failed to scan second: %w", err)
		}

		s.Row.BidPrice = nullFloatFrom(bidPrice)
		s.Row.BidSize = nullIntFrom(bidSize)
		s.Row.AskPrice = nullFloatFrom(askPrice)
		s.Row.AskSize = nullIntFrom(askSize)
		s.Row.LastTradePrice = nullFloatFrom(lastTradePrice)
		s.Row.VWAP = nullFloatFrom(vwap)
		if s.Row.VolumePrices, err = timeseriesv1.ParseVolumePriceJSON(volumePrices); err != nil {
			return nil, fmt.Errorf("failed to parse volume price dict: %w", err)
		}

		seconds = append(seconds, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return seconds, nil
}

func nullFloatArg(v timeseriesv1.NullFloat) any {
	if !v.Valid {
		return nil
	}
	return v.Float64
}

func nullIntArg(v timeseriesv1.NullInt) any {
	if !v.Valid {
		return nil
	}
	return v.Int64
}

func nullFloatFrom(p *float64) timeseriesv1.NullFloat {
	if p == nil {
		return timeseriesv1.NullFloat{}
	}
	return timeseriesv1.Float(*p)
}

func nullIntFrom(p *int64) timeseriesv1.NullInt {
	if p == nil {
		return timeseriesv1.NullInt{}
	}
	return timeseriesv1.Int(*p)
}
