package timeseries

import (
	"strconv"
	"strings"
)

// NullFloat is a float64 that can be missing. The zero value is null.
type NullFloat struct {
	Float64 float64
	Valid   bool
}

// NullInt is an int64 that can be missing. The zero value is null.
type NullInt struct {
	Int64 int64
	Valid bool
}

// Float returns a valid NullFloat holding v.
func Float(v float64) NullFloat {
	return NullFloat{Float64: v, Valid: true}
}

// Int returns a valid NullInt holding v.
func Int(v int64) NullInt {
	return NullInt{Int64: v, Valid: true}
}

// PriceVolume is the share volume traded at one price within a single second.
// Price is the canonical numeric value; the string key used in the serialized
// form is derived from it, never the other way around.
type PriceVolume struct {
	Price  float64
	Volume int64
}

// SecondRow is one row of the resampled per-second series. Bid/ask/last-trade
// state is forward-filled from the most recent message; volume and count
// fields cover this second only and reset every row.
type SecondRow struct {
	Timestamp            float64 // integer-valued epoch seconds
	BidPrice             NullFloat
	BidSize              NullInt // shares
	AskPrice             NullFloat
	AskSize              NullInt // shares
	LastTradePrice       NullFloat
	VWAP                 NullFloat // null when no trade occurred this second
	VolumePrices         []PriceVolume
	VolumeTotal          int64
	VolumeAggressiveBuy  int64
	VolumeAggressiveSell int64
	MessageCountQuote    int64
	MessageCountTrade    int64
}

// HighPrice returns the highest traded price this second, null when no trades.
func (r *SecondRow) HighPrice() NullFloat {
	var high NullFloat
	for _, pv := range r.VolumePrices {
		if !high.Valid || pv.Price > high.Float64 {
			high = Float(pv.Price)
		}
	}
	return high
}

// LowPrice returns the lowest traded price this second, null when no trades.
func (r *SecondRow) LowPrice() NullFloat {
	var low NullFloat
	for _, pv := range r.VolumePrices {
		if !low.Valid || pv.Price < low.Float64 {
			low = Float(pv.Price)
		}
	}
	return low
}

// VolumePriceJSON serializes the per-price volumes as a compact JSON object in
// insertion order, or "" when no trades occurred. Keys are minimal
// round-trip representations of the numeric prices.
func (r *SecondRow) VolumePriceJSON() string {
	if len(r.VolumePrices) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteByte('{')
	for i, pv := range r.VolumePrices {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(FormatPrice(pv.Price))
		b.WriteString(`":`)
		b.WriteString(strconv.FormatInt(pv.Volume, 10))
	}
	b.WriteByte('}')
	return b.String()
}

// FormatPrice renders a price as the shortest string that parses back to the
// same float64.
func FormatPrice(p float64) string {
	return strconv.FormatFloat(p, 'g', -1, 64)
}

// ParseVolumePriceJSON parses a serialized volume-price object back into
// ordered pairs. An empty string yields nil.
func ParseVolumePriceJSON(s string) ([]PriceVolume, error) {
	if s == "" {
		return nil, nil
	}

	trimmed := strings.TrimSuffix(strings.TrimPrefix(s, "{"), "}")
	if trimmed == "" {
		return nil, nil
	}

	var pairs []PriceVolume
	for _, part := range strings.Split(trimmed, ",") {
		kv := strings.SplitN(part, ":", 2)
		if len(kv) != 2 {
			return nil, strconv.ErrSyntax
		}
		price, err := strconv.ParseFloat(strings.Trim(kv[0], `"`), 64)
		if err != nil {
			return nil, err
		}
		volume, err := strconv.ParseInt(kv[1], 10, 64)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, PriceVolume{Price: price, Volume: volume})
	}
	return pairs, nil
}
