package quote

// Quote is one raw quote tick as stored in the quotes table. Sizes are in
// lots, exactly as received from the feed.
type Quote struct {
	Symbol            string
	Date              string
	Sequence          int64
	SIPTimestamp      int64
	ExchangeTimestamp int64
	BidPrice          float64
	BidSize           int64
	BidExchange       int32
	AskPrice          float64
	AskSize           int64
	AskExchange       int32
	Conditions        string
	Indicators        string
}
