// Package errutil logs command failures with their structured context.
package errutil

import (
	"context"
	"log/slog"
	"maps"
	"slices"

	"github.com/samber/oops"
)

// LogError writes err at error level under msg
func LogError(logger *slog.Logger, msg string, err error) {
	logger.LogAttrs(context.Background(), slog.LevelError, msg, Attrs(err)...)
}

// Attrs turns err into log attributes. Errors built with oops add their
// code and domain, and the values attached with With as a "context" group.
func Attrs(err error) []slog.Attr {
	attrs := []slog.Attr{slog.String("error", err.Error())}

	oopsErr, ok := oops.AsOops(err)
	if !ok {
		return attrs
	}
	if code := oopsErr.Code(); code != nil {
		attrs = append(attrs, slog.Any("code", code))
	}
	if domain := oopsErr.Domain(); domain != "" {
		attrs = append(attrs, slog.String("domain", domain))
	}

	values := oopsErr.Context()
	if len(values) == 0 {
		return attrs
	}
	group := make([]any, 0, len(values))
	for _, k := range slices.Sorted(maps.Keys(values)) {
		group = append(group, slog.Any(k, values[k]))
	}
	return append(attrs, slog.Group("context", group...))
}
