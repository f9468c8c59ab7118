package util

import (
	"github.com/oklog/ulid/v2"
)

// NewRunID returns a lexicographically sortable ULID string that identifies
// one (date, symbol) unit of work across log lines.
func NewRunID() string {
	return ulid.Make().String()
}
