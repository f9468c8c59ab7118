package csvcodec

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/blankbits/reup/pkg/errors"

	timeseriesv1 "github.com/blankbits/reup/internal/domain/timeseries/v1"
)

var secondsHeader = []string{
	"timestamp",
	"bid_price", "bid_size",
	"ask_price", "ask_size",
	"last_trade_price", "vwap",
	"volume_price_dict",
	"volume_total", "volume_aggressive_buy", "volume_aggressive_sell",
	"message_count_quote", "message_count_trade",
}

// WriteSeconds serializes a per-second series. Null cells are written empty,
// timestamps keep one decimal place, and the volume price dictionary keeps
// insertion order, so writing a parsed series reproduces the input bytes.
func WriteSeconds(series []timeseriesv1.SecondRow) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(secondsHeader); err != nil {
		return nil, errors.TracerFromError(err)
	}
	for i := range series {
		row := &series[i]
		rec := []string{
			formatTimestamp(row.Timestamp),
			formatNullFloat(row.BidPrice),
			formatNullInt(row.BidSize),
			formatNullFloat(row.AskPrice),
			formatNullInt(row.AskSize),
			formatNullFloat(row.LastTradePrice),
			formatNullFloat(row.VWAP),
			row.VolumePriceJSON(),
			formatInt(row.VolumeTotal),
			formatInt(row.VolumeAggressiveBuy),
			formatInt(row.VolumeAggressiveSell),
			formatInt(row.MessageCountQuote),
			formatInt(row.MessageCountTrade),
		}
		if err := w.Write(rec); err != nil {
			return nil, errors.TracerFromError(err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, errors.TracerFromError(err)
	}
	return buf.Bytes(), nil
}

// ReadSeconds parses a per-second series CSV produced by WriteSeconds.
func ReadSeconds(data []byte) ([]timeseriesv1.SecondRow, error) {
	records, err := readRecords(data, secondsHeader)
	if err != nil {
		return nil, err
	}

	series := make([]timeseriesv1.SecondRow, 0, len(records))
	for i, rec := range records {
		var row timeseriesv1.SecondRow
		if row.Timestamp, err = parseFloat(rec[0]); err != nil {
			return nil, rowError("seconds", i, "timestamp", err)
		}
		if row.BidPrice, err = parseNullFloat(rec[1]); err != nil {
			return nil, rowError("seconds", i, "bid_price", err)
		}
		if row.BidSize, err = parseNullInt(rec[2]); err != nil {
			return nil, rowError("seconds", i, "bid_size", err)
		}
		if row.AskPrice, err = parseNullFloat(rec[3]); err != nil {
			return nil, rowError("seconds", i, "ask_price", err)
		}
		if row.AskSize, err = parseNullInt(rec[4]); err != nil {
			return nil, rowError("seconds", i, "ask_size", err)
		}
		if row.LastTradePrice, err = parseNullFloat(rec[5]); err != nil {
			return nil, rowError("seconds", i, "last_trade_price", err)
		}
		if row.VWAP, err = parseNullFloat(rec[6]); err != nil {
			return nil, rowError("seconds", i, "vwap", err)
		}
		if row.VolumePrices, err = timeseriesv1.ParseVolumePriceJSON(rec[7]); err != nil {
			return nil, rowError("seconds", i, "volume_price_dict", err)
		}
		if row.VolumeTotal, err = parseInt(rec[8]); err != nil {
			return nil, rowError("seconds", i, "volume_total", err)
		}
		if row.VolumeAggressiveBuy, err = parseInt(rec[9]); err != nil {
			return nil, rowError("seconds", i, "volume_aggressive_buy", err)
		}
		if row.VolumeAggressiveSell, err = parseInt(rec[10]); err != nil {
			return nil, rowError("seconds", i, "volume_aggressive_sell", err)
		}
		if row.MessageCountQuote, err = parseInt(rec[11]); err != nil {
			return nil, rowError("seconds", i, "message_count_quote", err)
		}
		if row.MessageCountTrade, err = parseInt(rec[12]); err != nil {
			return nil, rowError("seconds", i, "message_count_trade", err)
		}
		series = append(series, row)
	}
	return series, nil
}

// formatTimestamp keeps the trailing ".0" on integer-valued epoch seconds so
// round trips are byte identical.
func formatTimestamp(ts float64) string {
	if ts == float64(int64(ts)) {
		return fmt.Sprintf("%.1f", ts)
	}
	return strconv.FormatFloat(ts, 'g', -1, 64)
}

func formatNullFloat(v timeseriesv1.NullFloat) string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatFloat(v.Float64, 'g', -1, 64)
}

func formatNullInt(v timeseriesv1.NullInt) string {
	if !v.Valid {
		return ""
	}
	return strconv.FormatInt(v.Int64, 10)
}

func parseNullFloat(s string) (timeseriesv1.NullFloat, error) {
	if s == "" {
		return timeseriesv1.NullFloat{}, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return timeseriesv1.NullFloat{}, err
	}
	return timeseriesv1.Float(v), nil
}

func parseNullInt(s string) (timeseriesv1.NullInt, error) {
	if s == "" {
		return timeseriesv1.NullInt{}, nil
	}
	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return timeseriesv1.NullInt{}, err
	}
	return timeseriesv1.Int(v), nil
}
