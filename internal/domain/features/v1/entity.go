package features

import (
	v1 "github.com/blankbits/reup/internal/domain/timeseries/v1"
)

// DayRow holds expanding (start-of-day to current second) statistics for one
// second of the series. High only increases, low only decreases, and all sums
// and counts are non-decreasing across the day.
type DayRow struct {
	Timestamp               float64
	HighPriceDay            v1.NullFloat
	LowPriceDay             v1.NullFloat
	VolatilityDay           v1.NullFloat // sample stddev, null until 2 observations
	VWAPDay                 v1.NullFloat
	VolumeTotalDay          int64
	VolumeAggressiveBuyDay  int64
	VolumeAggressiveSellDay int64
	MessageCountQuoteDay    int64
	MessageCountTradeDay    int64
}

// WindowRow holds trailing fixed-window statistics for one second and one
// window length. Sums, medians, VWAP, and high/low use whatever history is
// available (min periods 1); volatility and the moving averages require a
// full window and are null before one exists.
type WindowRow struct {
	Timestamp             float64
	HighPrice             v1.NullFloat
	LowPrice              v1.NullFloat
	Volatility            v1.NullFloat
	MovingAverage         v1.NullFloat
	MovingAverageWeighted v1.NullFloat
	BidSizeMedian         v1.NullFloat
	AskSizeMedian         v1.NullFloat
	BidAskSpreadMedian    v1.NullFloat
	VWAP                  v1.NullFloat
	VolumeTotal           int64
	VolumeAggressiveBuy   int64
	VolumeAggressiveSell  int64
	MessageCountQuote     int64
	MessageCountTrade     int64
}

// WindowSeries is the full per-second output of the rolling engine for one
// window length.
type WindowSeries struct {
	Window int
	Rows   []WindowRow
}

// DaySummary is the single-row day-level feature set.
type DaySummary struct {
	HighPrice   float64
	LowPrice    float64
	VWAP        float64
	VolumeTotal int64
	Weekday     int // Monday=0
}

// BoundaryWindow holds the open/close anchored features for one window
// length: point-in-time snapshots W seconds after open and W seconds before
// close, plus VWAP and volume aggregated over the W-second spans adjacent to
// the session boundaries.
type BoundaryWindow struct {
	Window        int
	OpenSnapshot  v1.SecondRow
	CloseSnapshot v1.SecondRow
	OpenVWAP      v1.NullFloat
	OpenVolume    int64
	CloseVWAP     v1.NullFloat
	CloseVolume   int64
}

// BoundaryRow is the day-boundary feature output: a day summary plus one
// BoundaryWindow per configured window length.
type BoundaryRow struct {
	OpenTimestamp  float64
	CloseTimestamp float64
	HighPrice      float64
	LowPrice       float64
	VWAP           float64
	VolumeTotal    int64
	Weekday        int
	Windows        []BoundaryWindow
}
