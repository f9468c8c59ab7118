package csvcodec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blankbits/reup/pkg/errors"

	tickv1 "github.com/blankbits/reup/internal/domain/tick/v1"
)

func TestReadQuotes(t *testing.T) {
	data := []byte(
		"sequence_number,sip_timestamp,exchange_timestamp,bid_price,bid_size,bid_exchange," +
			"ask_price,ask_size,ask_exchange,conditions,indicators\n" +
			"1,1577977229900000000,1577977229899000000,323.77,5,11,323.78,3,12,1,\n")

	quotes, err := ReadQuotes(data)
	require.NoError(t, err)
	assert.Equal(t, []tickv1.QuoteTick{
		{
			Sequence:          1,
			SIPTimestamp:      1577977229_900000000,
			ExchangeTimestamp: 1577977229_899000000,
			BidPrice:          323.77,
			BidSize:           5,
			BidExchange:       11,
			AskPrice:          323.78,
			AskSize:           3,
			AskExchange:       12,
			Conditions:        "1",
		},
	}, quotes)
}

func TestReadQuotes_Errors(t *testing.T) {
	testCases := []struct {
		name string
		data string
		code errors.ErrorCode
	}{
		{
			name: "wrong header",
			data: "sequence_number,oops,exchange_timestamp,bid_price,bid_size,bid_exchange," +
				"ask_price,ask_size,ask_exchange,conditions,indicators\n",
			code: errors.GeneralBadRequestError,
		},
		{
			name: "unparseable field",
			data: "sequence_number,sip_timestamp,exchange_timestamp,bid_price,bid_size,bid_exchange," +
				"ask_price,ask_size,ask_exchange,conditions,indicators\n" +
				"1,abc,2,323.77,5,11,323.78,3,12,,\n",
			code: errors.GeneralBadRequestError,
		},
		{
			name: "out of order timestamps",
			data: "sequence_number,sip_timestamp,exchange_timestamp,bid_price,bid_size,bid_exchange," +
				"ask_price,ask_size,ask_exchange,conditions,indicators\n" +
				"1,200,200,323.77,5,11,323.78,3,12,,\n" +
				"2,100,100,323.77,5,11,323.78,3,12,,\n",
			code: errors.ErrUnsortedTickStream,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadQuotes([]byte(tc.data))
			require.Error(t, err)
			assert.True(t, errors.ErrorCodeEquals(err, tc.code))
		})
	}
}

func TestWriteTrades_ReadTrades_RoundTrip(t *testing.T) {
	trades := []tickv1.TradeTick{
		{
			Sequence:          7,
			SIPTimestamp:      1577977229_950000000,
			ExchangeTimestamp: 1577977229_949000000,
			Price:             323.78,
			Size:              2482,
			Exchange:          4,
			Conditions:        "14 41",
		},
		{
			Sequence:     8,
			SIPTimestamp: 1577977229_960000000,
			Price:        323.785,
			Size:         249,
		},
	}

	data, err := WriteTrades(trades)
	require.NoError(t, err)

	parsed, err := ReadTrades(data)
	require.NoError(t, err)
	assert.Equal(t, trades, parsed)
}

func TestReadTrades_OutOfOrder(t *testing.T) {
	data := []byte(
		"sequence_number,sip_timestamp,exchange_timestamp,price,size,exchange,conditions\n" +
			"1,200,200,323.78,100,4,\n" +
			"2,100,100,323.78,100,4,\n")

	_, err := ReadTrades(data)
	require.Error(t, err)
	assert.True(t, errors.ErrorCodeEquals(err, errors.ErrUnsortedTickStream))
}
