package features

import (
	featuresv1 "github.com/blankbits/reup/internal/domain/features/v1"
	v1 "github.com/blankbits/reup/internal/domain/timeseries/v1"
	"github.com/blankbits/reup/pkg/errors"
)

// BoundaryFeatures extracts point-in-time and window-aggregated features
// anchored at the market open and close instants. Open and close are clamped
// to the series' actual first and last timestamps when the configured session
// falls outside available data. Anchor lookups require an exact-match row;
// a missing row is a precondition failure.
func BoundaryFeatures(series []v1.SecondRow, open, close float64, weekday int, windows []int) (featuresv1.BoundaryRow, error) {
	if len(series) == 0 {
		return featuresv1.BoundaryRow{}, errors.NewErrorDetails(
			"cannot slice an empty series", errors.ErrBoundaryRowNotFound, "series")
	}

	first := series[0].Timestamp
	last := series[len(series)-1].Timestamp
	open = clamp(open, first, last)
	close = clamp(close, first, last)

	row := featuresv1.BoundaryRow{
		OpenTimestamp:  open,
		CloseTimestamp: close,
		Weekday:        weekday,
	}

	// Day summary over the full series.
	var weightedSum, volumeSum float64
	var high, low v1.NullFloat
	for i := range series {
		r := &series[i]
		if h := r.HighPrice(); h.Valid && (!high.Valid || h.Float64 > high.Float64) {
			high = h
		}
		if l := r.LowPrice(); l.Valid && (!low.Valid || l.Float64 < low.Float64) {
			low = l
		}
		if r.VWAP.Valid {
			weightedSum += float64(r.VolumeTotal) * r.VWAP.Float64
			volumeSum += float64(r.VolumeTotal)
		}
		row.VolumeTotal += r.VolumeTotal
	}
	row.HighPrice = high.Float64
	row.LowPrice = low.Float64
	if volumeSum > 0 {
		row.VWAP = weightedSum / volumeSum
	}

	for _, window := range windows {
		w := float64(window)

		openSnapshot, err := rowAt(series, clamp(open+w, first, last))
		if err != nil {
			return featuresv1.BoundaryRow{}, err
		}
		closeSnapshot, err := rowAt(series, clamp(close-w, first, last))
		if err != nil {
			return featuresv1.BoundaryRow{}, err
		}

		boundary := featuresv1.BoundaryWindow{
			Window:        window,
			OpenSnapshot:  *openSnapshot,
			CloseSnapshot: *closeSnapshot,
		}

		boundary.OpenVWAP, boundary.OpenVolume, err = spanVWAP(series, open, clamp(open+w-1, first, last))
		if err != nil {
			return featuresv1.BoundaryRow{}, err
		}
		boundary.CloseVWAP, boundary.CloseVolume, err = spanVWAP(series, clamp(close-w+1, first, last), close)
		if err != nil {
			return featuresv1.BoundaryRow{}, err
		}

		row.Windows = append(row.Windows, boundary)
	}

	return row, nil
}

// rowAt finds the series row whose timestamp equals ts exactly. The series is
// contiguous, so the row index follows from the offset to the first
// timestamp; the equality check guards against a malformed series.
func rowAt(series []v1.SecondRow, ts float64) (*v1.SecondRow, error) {
	idx := int(ts - series[0].Timestamp)
	if idx < 0 || idx >= len(series) || series[idx].Timestamp != ts {
		return nil, errors.NewErrorDetailsWithObject(
			"no series row matches anchor timestamp", errors.ErrBoundaryRowNotFound, "timestamp", ts)
	}
	return &series[idx], nil
}

// spanVWAP aggregates VWAP and volume over the inclusive timestamp span
// [from, to].
func spanVWAP(series []v1.SecondRow, from, to float64) (v1.NullFloat, int64, error) {
	fromRow, err := rowAt(series, from)
	if err != nil {
		return v1.NullFloat{}, 0, err
	}
	toRow, err := rowAt(series, to)
	if err != nil {
		return v1.NullFloat{}, 0, err
	}

	loIdx := int(fromRow.Timestamp - series[0].Timestamp)
	hiIdx := int(toRow.Timestamp - series[0].Timestamp)

	var weightedSum, volumeSum float64
	var volume int64
	for i := loIdx; i <= hiIdx; i++ {
		r := &series[i]
		if r.VWAP.Valid {
			weightedSum += float64(r.VolumeTotal) * r.VWAP.Float64
			volumeSum += float64(r.VolumeTotal)
		}
		volume += r.VolumeTotal
	}

	if volumeSum > 0 {
		return v1.Float(weightedSum / volumeSum), volume, nil
	}
	return v1.NullFloat{}, volume, nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
