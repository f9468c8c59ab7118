package resample

import (
	"math"

	tickv1 "github.com/blankbits/reup/internal/domain/tick/v1"
	v1 "github.com/blankbits/reup/internal/domain/timeseries/v1"
	"github.com/blankbits/reup/pkg/errors"
	"github.com/blankbits/reup/pkg/logger"
)

// float64Eps is the machine epsilon for float64, used as the tolerance for
// aggressive buy/sell classification so that trades at exactly the quoted
// price are boundary inclusive.
var float64Eps = math.Nextafter(1, 2) - 1

const nanosPerSecond = 1e9

// Resampler merges a quote stream and a trade stream into a dense per-second
// series. A single Resampler may be reused across units; all pass state is
// reset at the start of each SecondsSeries call.
type Resampler struct {
	logger logger.Interface

	// Forward-fill state spanning seconds within one pass.
	lastBidPrice   v1.NullFloat
	lastBidSize    v1.NullInt
	lastAskPrice   v1.NullFloat
	lastAskSize    v1.NullInt
	lastTradePrice v1.NullFloat
	lastTradeSize  v1.NullInt
}

// NewResampler creates a new Resampler.
func NewResampler(logger logger.Interface) *Resampler {
	return &Resampler{logger: logger}
}

// SecondsSeries builds one row per integer second from the first to the last
// quote timestamp inclusive, forward-filling quote and last-trade state and
// aggregating trade activity per second.
//
// Both inputs must be sorted ascending by SIP timestamp; that is the loader's
// contract and is not re-validated here. Behavior on unsorted input is
// undefined. Trades must already be filtered for discarded conditions.
func (r *Resampler) SecondsSeries(quotes []tickv1.QuoteTick, trades []tickv1.TradeTick) ([]v1.SecondRow, error) {
	if len(quotes) == 0 {
		return nil, errors.NewErrorDetails("quote stream contains no messages", errors.ErrEmptyQuoteStream, "quotes")
	}

	r.reset()

	startTime := math.Ceil(float64(quotes[0].SIPTimestamp) / nanosPerSecond)
	endTime := math.Ceil(float64(quotes[len(quotes)-1].SIPTimestamp) / nanosPerSecond)
	rowCount := int(math.Round(endTime-startTime)) + 1

	rows := make([]v1.SecondRow, rowCount)
	quotesRow := 0
	tradesRow := 0

	for i := 0; i < rowCount; i++ {
		currentTimestamp := startTime + float64(i)
		row := &rows[i]
		row.Timestamp = currentTimestamp

		// Consume quote messages in this period and carry the last one
		// forward. Sizes are converted from lots to shares.
		for quotesRow < len(quotes) &&
			float64(quotes[quotesRow].SIPTimestamp)/nanosPerSecond <= currentTimestamp {
			quote := &quotes[quotesRow]
			r.lastBidPrice = v1.Float(quote.BidPrice)
			r.lastBidSize = v1.Int(quote.BidSize * 100)
			r.lastAskPrice = v1.Float(quote.AskPrice)
			r.lastAskSize = v1.Int(quote.AskSize * 100)
			row.MessageCountQuote++
			quotesRow++
		}

		// Consume trade messages in this period, accumulating per-second
		// totals and classifying aggressive volume against the prevailing
		// quote.
		var weightedPriceSum float64
		priceIndex := map[float64]int{}
		for tradesRow < len(trades) &&
			float64(trades[tradesRow].SIPTimestamp)/nanosPerSecond <= currentTimestamp {
			trade := &trades[tradesRow]
			r.lastTradePrice = v1.Float(trade.Price)
			r.lastTradeSize = v1.Int(trade.Size)

			row.VolumeTotal += trade.Size
			weightedPriceSum += float64(trade.Size) * trade.Price

			if idx, ok := priceIndex[trade.Price]; ok {
				row.VolumePrices[idx].Volume += trade.Size
			} else {
				priceIndex[trade.Price] = len(row.VolumePrices)
				row.VolumePrices = append(row.VolumePrices, v1.PriceVolume{Price: trade.Price, Volume: trade.Size})
			}

			if r.lastAskPrice.Valid && trade.Price >= r.lastAskPrice.Float64-float64Eps {
				row.VolumeAggressiveBuy += trade.Size
			}
			if r.lastBidPrice.Valid && trade.Price <= r.lastBidPrice.Float64+float64Eps {
				row.VolumeAggressiveSell += trade.Size
			}

			row.MessageCountTrade++
			tradesRow++
		}

		row.BidPrice = r.lastBidPrice
		row.BidSize = r.lastBidSize
		row.AskPrice = r.lastAskPrice
		row.AskSize = r.lastAskSize
		row.LastTradePrice = r.lastTradePrice
		if row.VolumeTotal > 0 {
			row.VWAP = v1.Float(weightedPriceSum / float64(row.VolumeTotal))
		}
	}

	r.logger.Debug("resampled tick streams",
		logger.Field{Key: "rows", Value: rowCount},
		logger.Field{Key: "quotes", Value: len(quotes)},
		logger.Field{Key: "trades", Value: len(trades)},
	)

	return rows, nil
}

// reset clears the forward-fill state ahead of a pass.
func (r *Resampler) reset() {
	r.lastBidPrice = v1.NullFloat{}
	r.lastBidSize = v1.NullInt{}
	r.lastAskPrice = v1.NullFloat{}
	r.lastAskSize = v1.NullInt{}
	r.lastTradePrice = v1.NullFloat{}
	r.lastTradeSize = v1.NullInt{}
}
