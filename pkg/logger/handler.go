package logger

import (
	"context"
	"fmt"
	"log/slog"
)

type (
	handleFunc func(context.Context, slog.Record) error
	middleware func(handleFunc) handleFunc
)

// chainHandler runs records through middlewares before the wrapped handler.
type chainHandler struct {
	handler     slog.Handler
	middlewares []middleware
	handle      handleFunc
}

func newChainHandler(handler slog.Handler, middlewares ...middleware) *chainHandler {
	handle := handler.Handle
	for i := len(middlewares) - 1; i >= 0; i-- {
		handle = middlewares[i](handle)
	}
	return &chainHandler{
		handler:     handler,
		middlewares: middlewares,
		handle:      handle,
	}
}

func (c *chainHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return c.handler.Enabled(ctx, level)
}

func (c *chainHandler) Handle(ctx context.Context, rec slog.Record) error {
	return c.handle(ctx, rec)
}

func (c *chainHandler) WithGroup(group string) slog.Handler {
	return newChainHandler(c.handler.WithGroup(group), c.middlewares...)
}

func (c *chainHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newChainHandler(c.handler.WithAttrs(attrs), c.middlewares...)
}

type attrReplacer func(groups []string, attr slog.Attr) slog.Attr

func replaceAttrs(replacers ...attrReplacer) attrReplacer {
	return func(groups []string, attr slog.Attr) slog.Attr {
		for _, replace := range replacers {
			attr = replace(groups, attr)
		}
		return attr
	}
}

var levelNames = []struct {
	level slog.Level
	name  string
}{
	{LevelFatal, "FATAL"},
	{LevelPanic, "PANIC"},
	{LevelCritical, "CRITICAL"},
}

// levelAttrReplacer names the levels above error, e.g. PANIC or CRITICAL+1.
func levelAttrReplacer(groups []string, attr slog.Attr) slog.Attr {
	if len(groups) > 0 || attr.Key != slog.LevelKey {
		return attr
	}
	level, ok := attr.Value.Any().(slog.Level)
	if !ok {
		return attr
	}
	for _, l := range levelNames {
		if level < l.level {
			continue
		}
		name := l.name
		if level > l.level {
			name = fmt.Sprintf("%s%+d", l.name, level-l.level)
		}
		return slog.String(attr.Key, name)
	}
	return attr
}

// durationAttrReplacer logs durations in milliseconds.
func durationAttrReplacer(_ []string, attr slog.Attr) slog.Attr {
	if attr.Value.Kind() == slog.KindDuration {
		return slog.Int64(attr.Key, attr.Value.Duration().Milliseconds())
	}
	return attr
}
