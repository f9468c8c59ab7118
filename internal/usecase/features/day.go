package features

import (
	"math"
	"time"

	featuresv1 "github.com/blankbits/reup/internal/domain/features/v1"
	v1 "github.com/blankbits/reup/internal/domain/timeseries/v1"
	"github.com/blankbits/reup/pkg/errors"
)

// DayFeatures computes expanding statistics over the series: running
// high/low, running sample volatility of the last trade price, running VWAP,
// and running sums of volume and message counts. One output row per input
// row, O(n) total.
func DayFeatures(series []v1.SecondRow) []featuresv1.DayRow {
	rows := make([]featuresv1.DayRow, len(series))

	var high, low v1.NullFloat
	var weightedSum, volumeSum float64
	var volumeTotal, aggressiveBuy, aggressiveSell, quoteCount, tradeCount int64

	// Welford accumulators for the running sample standard deviation.
	var obsCount int64
	var mean, m2 float64

	for i := range series {
		row := &series[i]

		if h := row.HighPrice(); h.Valid && (!high.Valid || h.Float64 > high.Float64) {
			high = h
		}
		if l := row.LowPrice(); l.Valid && (!low.Valid || l.Float64 < low.Float64) {
			low = l
		}

		if row.LastTradePrice.Valid {
			obsCount++
			delta := row.LastTradePrice.Float64 - mean
			mean += delta / float64(obsCount)
			m2 += delta * (row.LastTradePrice.Float64 - mean)
		}

		if row.VWAP.Valid {
			weightedSum += float64(row.VolumeTotal) * row.VWAP.Float64
			volumeSum += float64(row.VolumeTotal)
		}

		volumeTotal += row.VolumeTotal
		aggressiveBuy += row.VolumeAggressiveBuy
		aggressiveSell += row.VolumeAggressiveSell
		quoteCount += row.MessageCountQuote
		tradeCount += row.MessageCountTrade

		out := featuresv1.DayRow{
			Timestamp:               row.Timestamp,
			HighPriceDay:            high,
			LowPriceDay:             low,
			VolumeTotalDay:          volumeTotal,
			VolumeAggressiveBuyDay:  aggressiveBuy,
			VolumeAggressiveSellDay: aggressiveSell,
			MessageCountQuoteDay:    quoteCount,
			MessageCountTradeDay:    tradeCount,
		}
		if obsCount >= 2 {
			out.VolatilityDay = v1.Float(math.Sqrt(m2 / float64(obsCount-1)))
		}
		if volumeSum > 0 {
			out.VWAPDay = v1.Float(weightedSum / volumeSum)
		}
		rows[i] = out
	}

	return rows
}

// DaySummary computes the single-row day-level feature set: high and low over
// all traded prices, day VWAP, total volume, and the weekday (Monday=0) of
// the given YYYY-MM-DD date.
func DaySummary(series []v1.SecondRow, date string) (featuresv1.DaySummary, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return featuresv1.DaySummary{}, errors.TracerFromError(err)
	}

	high := -math.MaxFloat64
	low := math.MaxFloat64
	var weightedSum, volumeSum float64
	var volumeTotal int64

	for i := range series {
		row := &series[i]
		for _, pv := range row.VolumePrices {
			if pv.Price > high {
				high = pv.Price
			}
			if pv.Price < low {
				low = pv.Price
			}
		}
		if row.VWAP.Valid {
			weightedSum += float64(row.VolumeTotal) * row.VWAP.Float64
			volumeSum += float64(row.VolumeTotal)
		}
		volumeTotal += row.VolumeTotal
	}

	summary := featuresv1.DaySummary{
		HighPrice:   high,
		LowPrice:    low,
		VolumeTotal: volumeTotal,
		Weekday:     (int(day.Weekday()) + 6) % 7,
	}
	if volumeSum > 0 {
		summary.VWAP = weightedSum / volumeSum
	}
	return summary, nil
}
