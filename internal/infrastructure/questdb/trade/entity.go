package trade

// Trade is one raw trade tick as stored in the trades table.
type Trade struct {
	Symbol            string
	Date              string
	Sequence          int64
	SIPTimestamp      int64
	ExchangeTimestamp int64
	Price             float64
	Size              int64
	Exchange          int32
	Conditions        string
}
