package csvcodec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	timeseriesv1 "github.com/blankbits/reup/internal/domain/timeseries/v1"
)

func TestWriteSeconds_ReadSeconds_RoundTrip(t *testing.T) {
	series := []timeseriesv1.SecondRow{
		{
			Timestamp:      1577977230.0,
			BidPrice:       timeseriesv1.Float(323.77),
			BidSize:        timeseriesv1.Int(500),
			AskPrice:       timeseriesv1.Float(323.78),
			AskSize:        timeseriesv1.Int(300),
			LastTradePrice: timeseriesv1.Float(323.775),
			VWAP:           timeseriesv1.Float(889101.05 / 2746.0),
			VolumePrices: []timeseriesv1.PriceVolume{
				{Price: 323.78, Volume: 2482},
				{Price: 323.785, Volume: 249},
				{Price: 323.775, Volume: 15},
			},
			VolumeTotal:         2746,
			VolumeAggressiveBuy: 2731,
			MessageCountQuote:   2,
			MessageCountTrade:   3,
		},
		{
			// A pre-trade second: everything trade-related is null or zero.
			Timestamp: 1577977231.0,
			BidPrice:  timeseriesv1.Float(323.77),
			BidSize:   timeseriesv1.Int(500),
			AskPrice:  timeseriesv1.Float(323.78),
			AskSize:   timeseriesv1.Int(300),
		},
	}

	data, err := WriteSeconds(series)
	require.NoError(t, err)

	parsed, err := ReadSeconds(data)
	require.NoError(t, err)
	assert.Equal(t, series, parsed)

	// Writing the parsed series again reproduces the bytes exactly.
	again, err := WriteSeconds(parsed)
	require.NoError(t, err)
	assert.Equal(t, data, again)
}

func TestWriteSeconds_NullCellsAreEmpty(t *testing.T) {
	series := []timeseriesv1.SecondRow{
		{Timestamp: 1577977230.0},
	}

	data, err := WriteSeconds(series)
	require.NoError(t, err)
	assert.Equal(t,
		"timestamp,bid_price,bid_size,ask_price,ask_size,last_trade_price,vwap,volume_price_dict,"+
			"volume_total,volume_aggressive_buy,volume_aggressive_sell,message_count_quote,message_count_trade\n"+
			"1577977230.0,,,,,,,,0,0,0,0,0\n",
		string(data))
}

func TestWriteSeconds_VolumePriceDictKeepsInsertionOrder(t *testing.T) {
	series := []timeseriesv1.SecondRow{
		{
			Timestamp: 1577977230.0,
			VolumePrices: []timeseriesv1.PriceVolume{
				{Price: 323.78, Volume: 2482},
				{Price: 323.785, Volume: 249},
				{Price: 323.775, Volume: 15},
			},
			VolumeTotal: 2746,
		},
	}

	data, err := WriteSeconds(series)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"{""323.78"":2482,""323.785"":249,""323.775"":15}"`)
}

func TestReadSeconds_RejectsWrongHeader(t *testing.T) {
	_, err := ReadSeconds([]byte("timestamp,oops\n1.0,2\n"))
	assert.Error(t, err)
}
