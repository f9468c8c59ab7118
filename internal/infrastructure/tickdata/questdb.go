package tickdata

import (
	"context"

	"github.com/blankbits/reup/internal/infrastructure/questdb/quote"
	"github.com/blankbits/reup/internal/infrastructure/questdb/trade"

	tickv1 "github.com/blankbits/reup/internal/domain/tick/v1"
)

// QuestDBLoader reads tick streams from the quotes and trades tables. Rows
// come back ordered by sequence number, which the feed assigns in SIP
// timestamp order.
type QuestDBLoader struct {
	quotes quote.QuoteRepository
	trades trade.TradeRepository
}

// NewQuestDBLoader creates a loader over the two tick repositories.
func NewQuestDBLoader(quotes quote.QuoteRepository, trades trade.TradeRepository) *QuestDBLoader {
	return &QuestDBLoader{
		quotes: quotes,
		trades: trades,
	}
}

// Quotes loads the quote stream for one date and symbol.
func (l *QuestDBLoader) Quotes(ctx context.Context, date, symbol string) ([]tickv1.QuoteTick, error) {
	rows, err := l.quotes.GetBySymbolDate(ctx, symbol, date)
	if err != nil {
		return nil, err
	}

	quotes := make([]tickv1.QuoteTick, 0, len(rows))
	for _, q := range rows {
		quotes = append(quotes, tickv1.QuoteTick{
			Sequence:          q.Sequence,
			SIPTimestamp:      q.SIPTimestamp,
			ExchangeTimestamp: q.ExchangeTimestamp,
			BidPrice:          q.BidPrice,
			BidSize:           q.BidSize,
			BidExchange:       q.BidExchange,
			AskPrice:          q.AskPrice,
			AskSize:           q.AskSize,
			AskExchange:       q.AskExchange,
			Conditions:        q.Conditions,
			Indicators:        q.Indicators,
		})
	}
	return quotes, nil
}

// Trades loads the trade stream for one date and symbol.
func (l *QuestDBLoader) Trades(ctx context.Context, date, symbol string) ([]tickv1.TradeTick, error) {
	rows, err := l.trades.GetBySymbolDate(ctx, symbol, date)
	if err != nil {
		return nil, err
	}

	trades := make([]tickv1.TradeTick, 0, len(rows))
	for _, t := range rows {
		trades = append(trades, tickv1.TradeTick{
			Sequence:          t.Sequence,
			SIPTimestamp:      t.SIPTimestamp,
			ExchangeTimestamp: t.ExchangeTimestamp,
			Price:             t.Price,
			Size:              t.Size,
			Exchange:          t.Exchange,
			Conditions:        t.Conditions,
		})
	}
	return trades, nil
}
