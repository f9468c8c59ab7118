// Package csvcodec reads and writes the CSV artifacts exchanged between
// pipeline stages: raw quote and trade ticks, per-second series rows, and
// derived feature tables.
package csvcodec

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/blankbits/reup/pkg/errors"

	tickv1 "github.com/blankbits/reup/internal/domain/tick/v1"
)

var quoteHeader = []string{
	"sequence_number", "sip_timestamp", "exchange_timestamp",
	"bid_price", "bid_size", "bid_exchange",
	"ask_price", "ask_size", "ask_exchange",
	"conditions", "indicators",
}

var tradeHeader = []string{
	"sequence_number", "sip_timestamp", "exchange_timestamp",
	"price", "size", "exchange", "conditions",
}

// ReadQuotes parses a raw quote tick CSV. Rows must be sorted by
// sip_timestamp ascending.
func ReadQuotes(data []byte) ([]tickv1.QuoteTick, error) {
	records, err := readRecords(data, quoteHeader)
	if err != nil {
		return nil, err
	}

	quotes := make([]tickv1.QuoteTick, 0, len(records))
	var lastTS int64
	for i, rec := range records {
		q := tickv1.QuoteTick{
			Conditions: rec[9],
			Indicators: rec[10],
		}
		if q.Sequence, err = parseInt(rec[0]); err != nil {
			return nil, rowError("quotes", i, "sequence_number", err)
		}
		if q.SIPTimestamp, err = parseInt(rec[1]); err != nil {
			return nil, rowError("quotes", i, "sip_timestamp", err)
		}
		if q.ExchangeTimestamp, err = parseInt(rec[2]); err != nil {
			return nil, rowError("quotes", i, "exchange_timestamp", err)
		}
		if q.BidPrice, err = parseFloat(rec[3]); err != nil {
			return nil, rowError("quotes", i, "bid_price", err)
		}
		if q.BidSize, err = parseInt(rec[4]); err != nil {
			return nil, rowError("quotes", i, "bid_size", err)
		}
		if q.BidExchange, err = parseInt32(rec[5]); err != nil {
			return nil, rowError("quotes", i, "bid_exchange", err)
		}
		if q.AskPrice, err = parseFloat(rec[6]); err != nil {
			return nil, rowError("quotes", i, "ask_price", err)
		}
		if q.AskSize, err = parseInt(rec[7]); err != nil {
			return nil, rowError("quotes", i, "ask_size", err)
		}
		if q.AskExchange, err = parseInt32(rec[8]); err != nil {
			return nil, rowError("quotes", i, "ask_exchange", err)
		}
		if q.SIPTimestamp < lastTS {
			return nil, errors.NewErrorDetails(
				fmt.Sprintf("quotes row %v: sip_timestamp out of order", i),
				errors.ErrUnsortedTickStream,
				"sip_timestamp",
			)
		}
		lastTS = q.SIPTimestamp
		quotes = append(quotes, q)
	}
	return quotes, nil
}

// ReadTrades parses a raw trade tick CSV. Rows must be sorted by
// sip_timestamp ascending.
func ReadTrades(data []byte) ([]tickv1.TradeTick, error) {
	records, err := readRecords(data, tradeHeader)
	if err != nil {
		return nil, err
	}

	trades := make([]tickv1.TradeTick, 0, len(records))
	var lastTS int64
	for i, rec := range records {
		t := tickv1.TradeTick{Conditions: rec[6]}
		if t.Sequence, err = parseInt(rec[0]); err != nil {
			return nil, rowError("trades", i, "sequence_number", err)
		}
		if t.SIPTimestamp, err = parseInt(rec[1]); err != nil {
			return nil, rowError("trades", i, "sip_timestamp", err)
		}
		if t.ExchangeTimestamp, err = parseInt(rec[2]); err != nil {
			return nil, rowError("trades", i, "exchange_timestamp", err)
		}
		if t.Price, err = parseFloat(rec[3]); err != nil {
			return nil, rowError("trades", i, "price", err)
		}
		if t.Size, err = parseInt(rec[4]); err != nil {
			return nil, rowError("trades", i, "size", err)
		}
		if t.Exchange, err = parseInt32(rec[5]); err != nil {
			return nil, rowError("trades", i, "exchange", err)
		}
		if t.SIPTimestamp < lastTS {
			return nil, errors.NewErrorDetails(
				fmt.Sprintf("trades row %v: sip_timestamp out of order", i),
				errors.ErrUnsortedTickStream,
				"sip_timestamp",
			)
		}
		lastTS = t.SIPTimestamp
		trades = append(trades, t)
	}
	return trades, nil
}

// WriteQuotes serializes quote ticks back into the raw CSV layout.
func WriteQuotes(quotes []tickv1.QuoteTick) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(quoteHeader); err != nil {
		return nil, errors.TracerFromError(err)
	}
	for _, q := range quotes {
		rec := []string{
			formatInt(q.Sequence),
			formatInt(q.SIPTimestamp),
			formatInt(q.ExchangeTimestamp),
			formatFloat(q.BidPrice),
			formatInt(q.BidSize),
			strconv.FormatInt(int64(q.BidExchange), 10),
			formatFloat(q.AskPrice),
			formatInt(q.AskSize),
			strconv.FormatInt(int64(q.AskExchange), 10),
			q.Conditions,
			q.Indicators,
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

// WriteTrades serializes trade ticks back into the raw CSV layout.
func WriteTrades(trades []tickv1.TradeTick) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(tradeHeader); err != nil {
		return nil, errors.TracerFromError(err)
	}
	for _, t := range trades {
		rec := []string{
			formatInt(t.Sequence),
			formatInt(t.SIPTimestamp),
			formatInt(t.ExchangeTimestamp),
			formatFloat(t.Price),
			formatInt(t.Size),
			strconv.FormatInt(int64(t.Exchange), 10),
			t.Conditions,
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

func readRecords(data []byte, header []string) ([][]string, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = len(header)
	records, err := r.ReadAll()
	if err != nil {
		return nil, errors.TracerFromError(err)
	}
	if len(records) == 0 {
		return nil, errors.NewErrorDetails("csv is missing a header row", errors.GeneralBadRequestError, "header")
	}
	for i, name := range header {
		if records[0][i] != name {
			return nil, errors.NewErrorDetails(
				fmt.Sprintf("unexpected csv column %v, want %v", records[0][i], name),
				errors.GeneralBadRequestError,
				"header",
			)
		}
	}
	return records[1:], nil
}

func rowError(kind string, row int, column string, err error) error {
	return errors.NewErrorDetails(
		fmt.Sprintf("%v row %v: bad %v: %v", kind, row, column, err),
		errors.GeneralBadRequestError,
		column,
	)
}

func parseInt(s string) (int64, error) {
	return strconv.ParseInt(s, 10, 64)
}

func parseInt32(s string) (int32, error) {
	v, err := strconv.ParseInt(s, 10, 32)
	return int32(v), err
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
