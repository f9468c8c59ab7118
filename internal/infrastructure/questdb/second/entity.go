package second

import (
	timeseriesv1 "github.com/blankbits/reup/internal/domain/timeseries/v1"
)

// Second is one resampled per-second row as stored in the seconds table. The
// volume price dictionary is stored in its serialized JSON form.
type Second struct {
	Symbol string
	Date   string
	Row    timeseriesv1.SecondRow
}
