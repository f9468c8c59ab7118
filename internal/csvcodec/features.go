package csvcodec

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/blankbits/reup/pkg/errors"

	featuresv1 "github.com/blankbits/reup/internal/domain/features/v1"
)

var dayColumns = []string{
	"timestamp",
	"high_price_day", "low_price_day", "volatility_day", "vwap_day",
	"volume_total_day", "volume_aggressive_buy_day", "volume_aggressive_sell_day",
	"message_count_quote_day", "message_count_trade_day",
}

var windowColumns = []string{
	"high_price", "low_price", "volatility",
	"moving_average", "moving_average_weighted",
	"bid_size_median", "ask_size_median", "bid_ask_spread_median",
	"vwap",
	"volume_total", "volume_aggressive_buy", "volume_aggressive_sell",
	"message_count_quote", "message_count_trade",
}

// WriteFeatures serializes the per-second feature table: expanding day columns
// followed by one trailing-window column group per configured window length,
// suffixed with the window in seconds.
func WriteFeatures(dayRows []featuresv1.DayRow, windows []featuresv1.WindowSeries) ([]byte, error) {
	header := append([]string{}, dayColumns...)
	for _, ws := range windows {
		suffix := "_" + strconv.Itoa(ws.Window)
		for _, col := range windowColumns {
			header = append(header, col+suffix)
		}
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, errors.TracerFromError(err)
	}

	for i := range dayRows {
		day := &dayRows[i]
		rec := make([]string, 0, len(header))
		rec = append(rec,
			formatTimestamp(day.Timestamp),
			formatNullFloat(day.HighPriceDay),
			formatNullFloat(day.LowPriceDay),
			formatNullFloat(day.VolatilityDay),
			formatNullFloat(day.VWAPDay),
			formatInt(day.VolumeTotalDay),
			formatInt(day.VolumeAggressiveBuyDay),
			formatInt(day.VolumeAggressiveSellDay),
			formatInt(day.MessageCountQuoteDay),
			formatInt(day.MessageCountTradeDay),
		)
		for _, ws := range windows {
			row := &ws.Rows[i]
			rec = append(rec,
				formatNullFloat(row.HighPrice),
				formatNullFloat(row.LowPrice),
				formatNullFloat(row.Volatility),
				formatNullFloat(row.MovingAverage),
				formatNullFloat(row.MovingAverageWeighted),
				formatNullFloat(row.BidSizeMedian),
				formatNullFloat(row.AskSizeMedian),
				formatNullFloat(row.BidAskSpreadMedian),
				formatNullFloat(row.VWAP),
				formatInt(row.VolumeTotal),
				formatInt(row.VolumeAggressiveBuy),
				formatInt(row.VolumeAggressiveSell),
				formatInt(row.MessageCountQuote),
				formatInt(row.MessageCountTrade),
			)
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

// WriteDaySummary serializes the single-row day-level feature set.
func WriteDaySummary(summary featuresv1.DaySummary) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	header := []string{"high_price", "low_price", "vwap", "volume_total", "weekday"}
	rec := []string{
		formatFloat(summary.HighPrice),
		formatFloat(summary.LowPrice),
		formatFloat(summary.VWAP),
		formatInt(summary.VolumeTotal),
		strconv.Itoa(summary.Weekday),
	}
	if err := w.Write(header); err != nil {
		return nil, errors.TracerFromError(err)
	}
	if err := w.Write(rec); err != nil {
		return nil, errors.TracerFromError(err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, errors.TracerFromError(err)
	}
	return buf.Bytes(), nil
}

// WriteBoundary serializes the day-boundary feature row. Snapshot columns are
// anchored W seconds after the open and W seconds before the close; span
// columns aggregate the W seconds adjacent to each boundary.
func WriteBoundary(row featuresv1.BoundaryRow) ([]byte, error) {
	header := []string{
		"open_timestamp", "close_timestamp",
		"high_price", "low_price", "vwap", "volume_total", "weekday",
	}
	rec := []string{
		formatTimestamp(row.OpenTimestamp),
		formatTimestamp(row.CloseTimestamp),
		formatFloat(row.HighPrice),
		formatFloat(row.LowPrice),
		formatFloat(row.VWAP),
		formatInt(row.VolumeTotal),
		strconv.Itoa(row.Weekday),
	}
	for _, bw := range row.Windows {
		suffix := "_" + strconv.Itoa(bw.Window)
		header = append(header,
			"open_bid_price"+suffix, "open_ask_price"+suffix,
			"open_last_trade_price"+suffix,
			"close_bid_price"+suffix, "close_ask_price"+suffix,
			"close_last_trade_price"+suffix,
			"open_vwap"+suffix, "open_volume_total"+suffix,
			"close_vwap"+suffix, "close_volume_total"+suffix,
		)
		rec = append(rec,
			formatNullFloat(bw.OpenSnapshot.BidPrice),
			formatNullFloat(bw.OpenSnapshot.AskPrice),
			formatNullFloat(bw.OpenSnapshot.LastTradePrice),
			formatNullFloat(bw.CloseSnapshot.BidPrice),
			formatNullFloat(bw.CloseSnapshot.AskPrice),
			formatNullFloat(bw.CloseSnapshot.LastTradePrice),
			formatNullFloat(bw.OpenVWAP),
			formatInt(bw.OpenVolume),
			formatNullFloat(bw.CloseVWAP),
			formatInt(bw.CloseVolume),
		)
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, errors.TracerFromError(err)
	}
	if err := w.Write(rec); err != nil {
		return nil, errors.TracerFromError(err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, errors.TracerFromError(err)
	}
	return buf.Bytes(), nil
}
