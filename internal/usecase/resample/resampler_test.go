package resample

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blankbits/reup/pkg/errors"
	"github.com/blankbits/reup/pkg/logger"

	tickv1 "github.com/blankbits/reup/internal/domain/tick/v1"
	v1 "github.com/blankbits/reup/internal/domain/timeseries/v1"
)

func newTestResampler(t *testing.T) *Resampler {
	t.Helper()
	log, err := logger.NewLogger()
	require.NoError(t, err)
	return NewResampler(log)
}

func TestResampler_SecondsSeries_SingleSecond(t *testing.T) {
	quotes := []tickv1.QuoteTick{
		{Sequence: 1, SIPTimestamp: 1577977229_400000000, BidPrice: 323.76, BidSize: 7, AskPrice: 323.79, AskSize: 9},
		{Sequence: 2, SIPTimestamp: 1577977229_900000000, BidPrice: 323.77, BidSize: 5, AskPrice: 323.78, AskSize: 3},
	}
	trades := []tickv1.TradeTick{
		{Sequence: 3, SIPTimestamp: 1577977229_950000000, Price: 323.78, Size: 2482},
		{Sequence: 4, SIPTimestamp: 1577977229_960000000, Price: 323.785, Size: 249},
		{Sequence: 5, SIPTimestamp: 1577977229_970000000, Price: 323.775, Size: 15},
	}

	series, err := newTestResampler(t).SecondsSeries(quotes, trades)
	require.NoError(t, err)
	require.Len(t, series, 1)

	row := series[0]
	assert.Equal(t, 1577977230.0, row.Timestamp)
	assert.Equal(t, v1.Float(323.77), row.BidPrice)
	assert.Equal(t, v1.Int(500), row.BidSize)
	assert.Equal(t, v1.Float(323.78), row.AskPrice)
	assert.Equal(t, v1.Int(300), row.AskSize)
	assert.Equal(t, v1.Float(323.775), row.LastTradePrice)
	assert.Equal(t, int64(2746), row.VolumeTotal)
	require.True(t, row.VWAP.Valid)
	assert.InDelta(t, 889101.05/2746.0, row.VWAP.Float64, 1e-9)
	assert.Equal(t, []v1.PriceVolume{
		{Price: 323.78, Volume: 2482},
		{Price: 323.785, Volume: 249},
		{Price: 323.775, Volume: 15},
	}, row.VolumePrices)
	assert.Equal(t, `{"323.78":2482,"323.785":249,"323.775":15}`, row.VolumePriceJSON())
	assert.Equal(t, int64(2731), row.VolumeAggressiveBuy)
	assert.Equal(t, int64(0), row.VolumeAggressiveSell)
	assert.Equal(t, int64(2), row.MessageCountQuote)
	assert.Equal(t, int64(3), row.MessageCountTrade)
}

func TestResampler_SecondsSeries_SpanAndContiguity(t *testing.T) {
	quotes := []tickv1.QuoteTick{
		{SIPTimestamp: 1577977229_100000000, BidPrice: 323.70, BidSize: 1, AskPrice: 323.71, AskSize: 1},
		{SIPTimestamp: 1577977233_500000000, BidPrice: 323.72, BidSize: 1, AskPrice: 323.73, AskSize: 1},
	}

	series, err := newTestResampler(t).SecondsSeries(quotes, nil)
	require.NoError(t, err)
	require.Len(t, series, 5)

	assert.Equal(t, 1577977230.0, series[0].Timestamp)
	for i := 1; i < len(series); i++ {
		assert.Equal(t, 1.0, series[i].Timestamp-series[i-1].Timestamp)
	}
	assert.Equal(t, 1577977234.0, series[len(series)-1].Timestamp)
}

func TestResampler_SecondsSeries_ForwardFillQuietSeconds(t *testing.T) {
	quotes := []tickv1.QuoteTick{
		{SIPTimestamp: 1577977229_500000000, BidPrice: 323.77, BidSize: 5, AskPrice: 323.78, AskSize: 3},
		{SIPTimestamp: 1577977232_500000000, BidPrice: 323.79, BidSize: 2, AskPrice: 323.80, AskSize: 4},
	}
	trades := []tickv1.TradeTick{
		{SIPTimestamp: 1577977229_900000000, Price: 323.78, Size: 100},
	}

	series, err := newTestResampler(t).SecondsSeries(quotes, trades)
	require.NoError(t, err)
	require.Len(t, series, 4)

	quiet := series[1]
	assert.Equal(t, v1.Float(323.77), quiet.BidPrice)
	assert.Equal(t, v1.Float(323.78), quiet.AskPrice)
	assert.Equal(t, v1.Float(323.78), quiet.LastTradePrice)
	assert.False(t, quiet.VWAP.Valid)
	assert.Empty(t, quiet.VolumePrices)
	assert.Equal(t, int64(0), quiet.VolumeTotal)
	assert.Equal(t, int64(0), quiet.MessageCountQuote)
	assert.Equal(t, int64(0), quiet.MessageCountTrade)
}

func TestResampler_SecondsSeries_AggressiveClassification(t *testing.T) {
	testCases := []struct {
		name     string
		price    float64
		wantBuy  int64
		wantSell int64
	}{
		{name: "at the ask counts as a buy", price: 323.78, wantBuy: 10, wantSell: 0},
		{name: "above the ask counts as a buy", price: 323.79, wantBuy: 10, wantSell: 0},
		{name: "at the bid counts as a sell", price: 323.77, wantBuy: 0, wantSell: 10},
		{name: "below the bid counts as a sell", price: 323.76, wantBuy: 0, wantSell: 10},
		{name: "inside the spread counts as neither", price: 323.775, wantBuy: 0, wantSell: 0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			quotes := []tickv1.QuoteTick{
				{SIPTimestamp: 1577977229_500000000, BidPrice: 323.77, BidSize: 5, AskPrice: 323.78, AskSize: 3},
			}
			trades := []tickv1.TradeTick{
				{SIPTimestamp: 1577977229_900000000, Price: tc.price, Size: 10},
			}

			series, err := newTestResampler(t).SecondsSeries(quotes, trades)
			require.NoError(t, err)
			require.Len(t, series, 1)
			assert.Equal(t, tc.wantBuy, series[0].VolumeAggressiveBuy)
			assert.Equal(t, tc.wantSell, series[0].VolumeAggressiveSell)
		})
	}
}

func TestResampler_SecondsSeries_LockedMarketCountsBothSides(t *testing.T) {
	quotes := []tickv1.QuoteTick{
		{SIPTimestamp: 1577977229_500000000, BidPrice: 323.78, BidSize: 5, AskPrice: 323.78, AskSize: 3},
	}
	trades := []tickv1.TradeTick{
		{SIPTimestamp: 1577977229_900000000, Price: 323.78, Size: 10},
	}

	series, err := newTestResampler(t).SecondsSeries(quotes, trades)
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Equal(t, int64(10), series[0].VolumeAggressiveBuy)
	assert.Equal(t, int64(10), series[0].VolumeAggressiveSell)
}

func TestResampler_SecondsSeries_BoundaryQuoteLandsInThatSecond(t *testing.T) {
	// A message stamped exactly on a second boundary belongs to that second,
	// not the next one.
	quotes := []tickv1.QuoteTick{
		{SIPTimestamp: 1577977230_000000000, BidPrice: 323.77, BidSize: 5, AskPrice: 323.78, AskSize: 3},
	}

	series, err := newTestResampler(t).SecondsSeries(quotes, nil)
	require.NoError(t, err)
	require.Len(t, series, 1)
	assert.Equal(t, 1577977230.0, series[0].Timestamp)
	assert.Equal(t, int64(1), series[0].MessageCountQuote)
}

func TestResampler_SecondsSeries_ReuseIsIdempotent(t *testing.T) {
	quotes := []tickv1.QuoteTick{
		{SIPTimestamp: 1577977229_500000000, BidPrice: 323.77, BidSize: 5, AskPrice: 323.78, AskSize: 3},
		{SIPTimestamp: 1577977231_500000000, BidPrice: 323.79, BidSize: 2, AskPrice: 323.80, AskSize: 4},
	}
	trades := []tickv1.TradeTick{
		{SIPTimestamp: 1577977229_900000000, Price: 323.78, Size: 100},
	}

	r := newTestResampler(t)
	first, err := r.SecondsSeries(quotes, trades)
	require.NoError(t, err)
	second, err := r.SecondsSeries(quotes, trades)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestResampler_SecondsSeries_EmptyQuotes(t *testing.T) {
	trades := []tickv1.TradeTick{
		{SIPTimestamp: 1577977229_900000000, Price: 323.78, Size: 100},
	}

	series, err := newTestResampler(t).SecondsSeries(nil, trades)
	assert.Nil(t, series)
	require.Error(t, err)
	assert.True(t, errors.ErrorCodeEquals(err, errors.ErrEmptyQuoteStream))
}
