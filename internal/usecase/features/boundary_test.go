package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blankbits/reup/pkg/errors"

	v1 "github.com/blankbits/reup/internal/domain/timeseries/v1"
)

func boundarySeries() []v1.SecondRow {
	series := make([]v1.SecondRow, 10)
	for i := range series {
		series[i] = tradedRow(1000+float64(i), 99.99, 100.01, 100+float64(i), 10)
	}
	return series
}

func TestBoundaryFeatures(t *testing.T) {
	row, err := BoundaryFeatures(boundarySeries(), 1002, 1007, 3, []int{2})
	require.NoError(t, err)

	assert.Equal(t, 1002.0, row.OpenTimestamp)
	assert.Equal(t, 1007.0, row.CloseTimestamp)
	assert.Equal(t, 109.0, row.HighPrice)
	assert.Equal(t, 100.0, row.LowPrice)
	assert.InDelta(t, 104.5, row.VWAP, 1e-12)
	assert.Equal(t, int64(100), row.VolumeTotal)
	assert.Equal(t, 3, row.Weekday)

	require.Len(t, row.Windows, 1)
	bw := row.Windows[0]
	assert.Equal(t, 2, bw.Window)

	// Snapshots sit W seconds inside each boundary.
	assert.Equal(t, 1004.0, bw.OpenSnapshot.Timestamp)
	assert.Equal(t, v1.Float(104.0), bw.OpenSnapshot.LastTradePrice)
	assert.Equal(t, 1005.0, bw.CloseSnapshot.Timestamp)
	assert.Equal(t, v1.Float(105.0), bw.CloseSnapshot.LastTradePrice)

	// Spans cover the W seconds adjacent to each boundary.
	require.True(t, bw.OpenVWAP.Valid)
	assert.InDelta(t, 102.5, bw.OpenVWAP.Float64, 1e-12)
	assert.Equal(t, int64(20), bw.OpenVolume)
	require.True(t, bw.CloseVWAP.Valid)
	assert.InDelta(t, 106.5, bw.CloseVWAP.Float64, 1e-12)
	assert.Equal(t, int64(20), bw.CloseVolume)
}

func TestBoundaryFeatures_ClampsSessionToSeries(t *testing.T) {
	// Session bounds outside the available data snap to the series edges.
	row, err := BoundaryFeatures(boundarySeries(), 900, 2000, 0, []int{2})
	require.NoError(t, err)

	assert.Equal(t, 1000.0, row.OpenTimestamp)
	assert.Equal(t, 1009.0, row.CloseTimestamp)

	bw := row.Windows[0]
	assert.Equal(t, 1002.0, bw.OpenSnapshot.Timestamp)
	assert.Equal(t, 1007.0, bw.CloseSnapshot.Timestamp)
	require.True(t, bw.OpenVWAP.Valid)
	assert.InDelta(t, 100.5, bw.OpenVWAP.Float64, 1e-12)
	require.True(t, bw.CloseVWAP.Valid)
	assert.InDelta(t, 108.5, bw.CloseVWAP.Float64, 1e-12)
}

func TestBoundaryFeatures_WindowLongerThanSeries(t *testing.T) {
	// A window wider than the series clamps every anchor to the edges rather
	// than failing.
	series := boundarySeries()[:3]
	row, err := BoundaryFeatures(series, 1000, 1002, 0, []int{30})
	require.NoError(t, err)

	bw := row.Windows[0]
	assert.Equal(t, 1002.0, bw.OpenSnapshot.Timestamp)
	assert.Equal(t, 1000.0, bw.CloseSnapshot.Timestamp)
}

func TestBoundaryFeatures_EmptySeries(t *testing.T) {
	_, err := BoundaryFeatures(nil, 1000, 2000, 0, []int{30})
	require.Error(t, err)
	assert.True(t, errors.ErrorCodeEquals(err, errors.ErrBoundaryRowNotFound))
}
