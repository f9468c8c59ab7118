package features

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/blankbits/reup/internal/domain/timeseries/v1"
)

// tradedRow builds a second with one traded price, forward-filled quote state
// included.
func tradedRow(ts, bid, ask, price float64, volume int64) v1.SecondRow {
	row := v1.SecondRow{
		Timestamp:         ts,
		BidPrice:          v1.Float(bid),
		BidSize:           v1.Int(500),
		AskPrice:          v1.Float(ask),
		AskSize:           v1.Int(300),
		MessageCountQuote: 1,
	}
	if volume > 0 {
		row.LastTradePrice = v1.Float(price)
		row.VWAP = v1.Float(price)
		row.VolumePrices = []v1.PriceVolume{{Price: price, Volume: volume}}
		row.VolumeTotal = volume
		row.VolumeAggressiveBuy = volume
		row.MessageCountTrade = 1
	}
	return row
}

func TestDayFeatures(t *testing.T) {
	series := []v1.SecondRow{
		tradedRow(1000, 99.99, 100.01, 100, 10),
		tradedRow(1001, 100.99, 101.01, 101, 5),
		tradedRow(1002, 98.99, 99.01, 99, 2),
	}

	rows := DayFeatures(series)
	require.Len(t, rows, 3)

	assert.Equal(t, v1.Float(100.0), rows[0].HighPriceDay)
	assert.Equal(t, v1.Float(100.0), rows[0].LowPriceDay)
	assert.Equal(t, v1.Float(101.0), rows[1].HighPriceDay)
	assert.Equal(t, v1.Float(100.0), rows[1].LowPriceDay)
	assert.Equal(t, v1.Float(101.0), rows[2].HighPriceDay)
	assert.Equal(t, v1.Float(99.0), rows[2].LowPriceDay)

	// Sample stddev needs two observations.
	assert.False(t, rows[0].VolatilityDay.Valid)
	require.True(t, rows[1].VolatilityDay.Valid)
	assert.InDelta(t, math.Sqrt(0.5), rows[1].VolatilityDay.Float64, 1e-12)
	require.True(t, rows[2].VolatilityDay.Valid)
	assert.InDelta(t, 1.0, rows[2].VolatilityDay.Float64, 1e-12)

	require.True(t, rows[2].VWAPDay.Valid)
	assert.InDelta(t, (100.0*10+101.0*5+99.0*2)/17.0, rows[2].VWAPDay.Float64, 1e-12)

	assert.Equal(t, int64(10), rows[0].VolumeTotalDay)
	assert.Equal(t, int64(15), rows[1].VolumeTotalDay)
	assert.Equal(t, int64(17), rows[2].VolumeTotalDay)
	assert.Equal(t, int64(3), rows[2].MessageCountQuoteDay)
	assert.Equal(t, int64(3), rows[2].MessageCountTradeDay)
}

func TestDayFeatures_QuietStart(t *testing.T) {
	series := []v1.SecondRow{
		tradedRow(1000, 99.99, 100.01, 0, 0),
		tradedRow(1001, 99.99, 100.01, 100, 10),
	}

	rows := DayFeatures(series)
	require.Len(t, rows, 2)

	assert.False(t, rows[0].HighPriceDay.Valid)
	assert.False(t, rows[0].LowPriceDay.Valid)
	assert.False(t, rows[0].VWAPDay.Valid)
	assert.Equal(t, int64(0), rows[0].VolumeTotalDay)

	assert.Equal(t, v1.Float(100.0), rows[1].HighPriceDay)
	assert.Equal(t, v1.Float(100.0), rows[1].VWAPDay)
}

func TestDaySummary(t *testing.T) {
	series := []v1.SecondRow{
		tradedRow(1000, 99.99, 100.01, 100, 10),
		tradedRow(1001, 100.99, 101.01, 101, 5),
		tradedRow(1002, 98.99, 99.01, 99, 2),
	}

	// 2020-01-02 is a Thursday.
	summary, err := DaySummary(series, "2020-01-02")
	require.NoError(t, err)

	assert.Equal(t, 101.0, summary.HighPrice)
	assert.Equal(t, 99.0, summary.LowPrice)
	assert.InDelta(t, (100.0*10+101.0*5+99.0*2)/17.0, summary.VWAP, 1e-12)
	assert.Equal(t, int64(17), summary.VolumeTotal)
	assert.Equal(t, 3, summary.Weekday)
}

func TestDaySummary_BadDate(t *testing.T) {
	_, err := DaySummary(nil, "01/02/2020")
	assert.Error(t, err)
}
