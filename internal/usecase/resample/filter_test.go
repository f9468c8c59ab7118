package resample

import (
	"testing"

	"github.com/stretchr/testify/assert"

	tickv1 "github.com/blankbits/reup/internal/domain/tick/v1"
)

func TestDiscardTradeConditions(t *testing.T) {
	discard := map[string]string{"37": "", "53": ""}

	testCases := []struct {
		name   string
		trades []tickv1.TradeTick
		want   []int64
	}{
		{
			name: "trades without conditions are kept",
			trades: []tickv1.TradeTick{
				{Sequence: 1},
				{Sequence: 2, Conditions: ""},
			},
			want: []int64{1, 2},
		},
		{
			name: "single discard code drops the trade",
			trades: []tickv1.TradeTick{
				{Sequence: 1, Conditions: "37"},
				{Sequence: 2, Conditions: "53"},
				{Sequence: 3, Conditions: "12"},
			},
			want: []int64{3},
		},
		{
			name: "any code in a multi-code list triggers the drop",
			trades: []tickv1.TradeTick{
				{Sequence: 1, Conditions: "12 37"},
				{Sequence: 2, Conditions: "14 41"},
			},
			want: []int64{2},
		},
		{
			name: "codes are matched whole, not by substring",
			trades: []tickv1.TradeTick{
				{Sequence: 1, Conditions: "370"},
				{Sequence: 2, Conditions: "3"},
			},
			want: []int64{1, 2},
		},
		{
			name: "order is preserved",
			trades: []tickv1.TradeTick{
				{Sequence: 3, Conditions: "12"},
				{Sequence: 1, Conditions: "37"},
				{Sequence: 2},
			},
			want: []int64{3, 2},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			kept := DiscardTradeConditions(tc.trades, discard)
			got := make([]int64, 0, len(kept))
			for _, trade := range kept {
				got = append(got, trade.Sequence)
			}
			assert.Equal(t, tc.want, got)
		})
	}
}
