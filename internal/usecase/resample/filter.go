package resample

import (
	"strings"

	tickv1 "github.com/blankbits/reup/internal/domain/tick/v1"
)

// DiscardTradeConditions removes trades whose condition code list intersects
// the discard set. Trades with no conditions are always retained. Order and
// timestamps are preserved. The discard map's values are descriptions kept
// for debugging; only the keys matter.
func DiscardTradeConditions(trades []tickv1.TradeTick, discard map[string]string) []tickv1.TradeTick {
	kept := make([]tickv1.TradeTick, 0, len(trades))
	for _, trade := range trades {
		if !hasDiscardCondition(trade.Conditions, discard) {
			kept = append(kept, trade)
		}
	}
	return kept
}

func hasDiscardCondition(conditions string, discard map[string]string) bool {
	if conditions == "" {
		return false
	}
	for _, code := range strings.Fields(conditions) {
		if _, ok := discard[code]; ok {
			return true
		}
	}
	return false
}
