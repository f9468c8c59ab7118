package util

import (
	"context"
)

type key string

const runIDKey = key("run-id")

// WithRunID returns a context carrying the given run ID. A new run ID is
// generated when the provided one is empty.
func WithRunID(ctx context.Context, id string) context.Context {
	if id == "" {
		return context.WithValue(ctx, runIDKey, NewRunID())
	}

	return context.WithValue(ctx, runIDKey, id)
}

// GetRunID returns the run ID from ctx if available.
func GetRunID(ctx context.Context) string {
	id, _ := ctx.Value(runIDKey).(string)

	return id
}
