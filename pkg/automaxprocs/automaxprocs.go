// Package automaxprocs sets GOMAXPROCS to the container CPU quota and logs the change.
package automaxprocs

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/launchpad/pkg/logger"
	"github.com/gaze-network/launchpad/pkg/logger/slogx"
	"go.uber.org/automaxprocs/maxprocs"
)

// initialMaxProcs is GOMAXPROCS at process start.
var initialMaxProcs = Current()

func Init() error {
	log := logger.With(
		slogx.String("package", "automaxprocs"),
		slogx.Int("prev_maxprocs", initialMaxProcs),
	)

	_, err := maxprocs.Set(
		maxprocs.Min(1),
		maxprocs.Logger(func(format string, v ...any) {
			attrs := make([]slog.Attr, 0, 1)
			// the undo call logs without arguments
			if len(v) > 0 {
				setMaxProcs := Current()
				if _, exists := os.LookupEnv("GOMAXPROCS"); !exists {
					if n, ok := v[0].(int); ok {
						setMaxProcs = n
					}
				}
				attrs = append(attrs, slogx.Int("set_maxprocs", setMaxProcs))
			}
			log.LogAttrs(context.Background(), slog.LevelInfo, fmt.Sprintf(format, v...), attrs...)
		}),
	)
	return errors.WithStack(err)
}

func Current() int {
	return runtime.GOMAXPROCS(0)
}
