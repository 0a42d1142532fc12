package logger

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"

	"github.com/cockroachdb/errors/errbase"
)

// errorAttrReplacer renders error attributes as their message.
func errorAttrReplacer(groups []string, attr slog.Attr) slog.Attr {
	if len(groups) == 0 && attr.Key == ErrorKey {
		if err, ok := attr.Value.Any().(error); ok && err != nil {
			return slog.String(ErrorKey, err.Error())
		}
	}
	return attr
}

// errorOf returns the first error attribute of rec.
func errorOf(rec slog.Record) error {
	var found error
	rec.Attrs(func(attr slog.Attr) bool {
		if attr.Key != ErrorKey {
			return true
		}
		if err, ok := attr.Value.Any().(error); ok && err != nil {
			found = err
			return false
		}
		return true
	})
	return found
}

// middlewareErrorVerbose adds the wrapped error chain of error-level records.
func middlewareErrorVerbose(next handleFunc) handleFunc {
	return func(ctx context.Context, rec slog.Record) error {
		if rec.Level >= slog.LevelError {
			if err := errorOf(rec); err != nil {
				rec.AddAttrs(slog.String(ErrorVerboseKey, fmt.Sprintf("%+v", err)))
			}
		}
		return next(ctx, rec)
	}
}

// middlewareErrorStackTrace adds the stack trace captured by cockroachdb/errors.
func middlewareErrorStackTrace(next handleFunc) handleFunc {
	return func(ctx context.Context, rec slog.Record) error {
		if err := errorOf(rec); err != nil {
			if frames := stackFrames(deepestStackTrace(err)); len(frames) > 0 {
				rec.AddAttrs(slog.Any(ErrorStackTraceKey, frames))
			}
		}
		return next(ctx, rec)
	}
}

// deepestStackTrace returns the stack trace closest to where err was created.
func deepestStackTrace(err error) errbase.StackTrace {
	var st errbase.StackTrace
	for ; err != nil; err = errbase.UnwrapOnce(err) {
		if provider, ok := err.(errbase.StackTraceProvider); ok {
			st = provider.StackTrace()
		}
	}
	return st
}

// stackFrames formats st as "function file:line", dropping runtime frames.
func stackFrames(st errbase.StackTrace) []string {
	if len(st) == 0 {
		return nil
	}
	pcs := make([]uintptr, len(st))
	for i, frame := range st {
		pcs[i] = uintptr(frame)
	}

	lines := make([]string, 0, len(pcs))
	frames := runtime.CallersFrames(pcs)
	for {
		frame, more := frames.Next()
		if frame.Function != "" && !strings.HasPrefix(frame.Function, "runtime.") {
			lines = append(lines, fmt.Sprintf("%s %s:%d", frame.Function, frame.File, frame.Line))
		}
		if !more {
			break
		}
	}
	return lines
}
