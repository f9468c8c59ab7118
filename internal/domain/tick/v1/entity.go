package tick

// QuoteTick is a single NBBO quote message as delivered by the tick feed.
// Sizes are in lots; multiply by 100 for shares.
type QuoteTick struct {
	Sequence          int64
	SIPTimestamp      int64 // nanoseconds since epoch
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

// TradeTick is a single trade message. Size is in shares. Conditions is a
// space-separated list of condition codes.
type TradeTick struct {
	Sequence          int64
	SIPTimestamp      int64 // nanoseconds since epoch
	ExchangeTimestamp int64
	Price             float64
	Size              int64
	Exchange          int32
	Conditions        string
}
