package features

import (
	"math"
	"sort"

	featuresv1 "github.com/blankbits/reup/internal/domain/features/v1"
	v1 "github.com/blankbits/reup/internal/domain/timeseries/v1"
)

// RollingFeatures computes trailing fixed-window statistics for each
// configured window length. Sums, medians, VWAP, and high/low are computed
// over partial windows at the start of the series; volatility and the moving
// averages require a full window of observations and are null until one
// exists. Window lengths must be positive.
func RollingFeatures(series []v1.SecondRow, windows []int) []featuresv1.WindowSeries {
	n := len(series)

	// Per-row extremes and prefix sums shared across window lengths. The
	// prefix arrays have n+1 entries so that a window [lo, i] is always
	// prefix[i+1]-prefix[lo].
	rowHigh := make([]v1.NullFloat, n)
	rowLow := make([]v1.NullFloat, n)
	volumePrefix := make([]int64, n+1)
	buyPrefix := make([]int64, n+1)
	sellPrefix := make([]int64, n+1)
	quotePrefix := make([]int64, n+1)
	tradePrefix := make([]int64, n+1)
	weightedPrefix := make([]float64, n+1)
	vwapVolumePrefix := make([]float64, n+1)

	for i := range series {
		row := &series[i]
		rowHigh[i] = row.HighPrice()
		rowLow[i] = row.LowPrice()
		volumePrefix[i+1] = volumePrefix[i] + row.VolumeTotal
		buyPrefix[i+1] = buyPrefix[i] + row.VolumeAggressiveBuy
		sellPrefix[i+1] = sellPrefix[i] + row.VolumeAggressiveSell
		quotePrefix[i+1] = quotePrefix[i] + row.MessageCountQuote
		tradePrefix[i+1] = tradePrefix[i] + row.MessageCountTrade
		weightedPrefix[i+1] = weightedPrefix[i]
		vwapVolumePrefix[i+1] = vwapVolumePrefix[i]
		if row.VWAP.Valid {
			weightedPrefix[i+1] += float64(row.VolumeTotal) * row.VWAP.Float64
			vwapVolumePrefix[i+1] += float64(row.VolumeTotal)
		}
	}

	out := make([]featuresv1.WindowSeries, 0, len(windows))
	for _, window := range windows {
		rows := make([]featuresv1.WindowRow, n)
		scratch := make([]float64, 0, window)

		for i := 0; i < n; i++ {
			lo := i - window + 1
			if lo < 0 {
				lo = 0
			}
			full := i-lo+1 == window

			row := featuresv1.WindowRow{
				Timestamp:            series[i].Timestamp,
				VolumeTotal:          volumePrefix[i+1] - volumePrefix[lo],
				VolumeAggressiveBuy:  buyPrefix[i+1] - buyPrefix[lo],
				VolumeAggressiveSell: sellPrefix[i+1] - sellPrefix[lo],
				MessageCountQuote:    quotePrefix[i+1] - quotePrefix[lo],
				MessageCountTrade:    tradePrefix[i+1] - tradePrefix[lo],
			}

			for j := lo; j <= i; j++ {
				if h := rowHigh[j]; h.Valid && (!row.HighPrice.Valid || h.Float64 > row.HighPrice.Float64) {
					row.HighPrice = h
				}
				if l := rowLow[j]; l.Valid && (!row.LowPrice.Valid || l.Float64 < row.LowPrice.Float64) {
					row.LowPrice = l
				}
			}

			if volume := vwapVolumePrefix[i+1] - vwapVolumePrefix[lo]; volume > 0 {
				row.VWAP = v1.Float((weightedPrefix[i+1] - weightedPrefix[lo]) / volume)
			}

			if full {
				row.Volatility, row.MovingAverage, row.MovingAverageWeighted =
					fullWindowTradeStats(series[lo:i+1], scratch)
			}

			row.BidSizeMedian = windowMedian(series[lo:i+1], scratch, func(r *v1.SecondRow) (float64, bool) {
				return float64(r.BidSize.Int64), r.BidSize.Valid
			})
			row.AskSizeMedian = windowMedian(series[lo:i+1], scratch, func(r *v1.SecondRow) (float64, bool) {
				return float64(r.AskSize.Int64), r.AskSize.Valid
			})
			row.BidAskSpreadMedian = windowMedian(series[lo:i+1], scratch, func(r *v1.SecondRow) (float64, bool) {
				if !r.BidPrice.Valid || !r.AskPrice.Valid {
					return 0, false
				}
				return r.AskPrice.Float64 - r.BidPrice.Float64, true
			})

			rows[i] = row
		}

		out = append(out, featuresv1.WindowSeries{Window: window, Rows: rows})
	}

	return out
}

// fullWindowTradeStats computes the sample standard deviation, mean, and
// linearly weighted mean of the last trade price over a full window. All
// three are null if any price in the window is missing, which only happens
// before the first trade of the day.
func fullWindowTradeStats(window []v1.SecondRow, scratch []float64) (volatility, mean, weightedMean v1.NullFloat) {
	values := scratch[:0]
	for i := range window {
		if !window[i].LastTradePrice.Valid {
			return v1.NullFloat{}, v1.NullFloat{}, v1.NullFloat{}
		}
		values = append(values, window[i].LastTradePrice.Float64)
	}

	var sum, weightedSum, weightSum float64
	for i, value := range values {
		sum += value
		weight := float64(i + 1) // oldest weight 1, newest weight len
		weightedSum += weight * value
		weightSum += weight
	}
	avg := sum / float64(len(values))
	mean = v1.Float(avg)
	weightedMean = v1.Float(weightedSum / weightSum)

	if len(values) >= 2 {
		var squaredSum float64
		for _, value := range values {
			squaredSum += (value - avg) * (value - avg)
		}
		volatility = v1.Float(math.Sqrt(squaredSum / float64(len(values)-1)))
	}
	return volatility, mean, weightedMean
}

// windowMedian computes the median of the values extracted from the window,
// skipping missing entries. Null when no entry has a value.
func windowMedian(window []v1.SecondRow, scratch []float64, extract func(*v1.SecondRow) (float64, bool)) v1.NullFloat {
	values := scratch[:0]
	for i := range window {
		if value, ok := extract(&window[i]); ok {
			values = append(values, value)
		}
	}
	if len(values) == 0 {
		return v1.NullFloat{}
	}

	sort.Float64s(values)
	mid := len(values) / 2
	if len(values)%2 == 1 {
		return v1.Float(values[mid])
	}
	return v1.Float((values[mid-1] + values[mid]) / 2)
}
