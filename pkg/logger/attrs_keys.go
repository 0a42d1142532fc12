package logger

import (
	"github.com/gaze-network/launchpad/pkg/logger/slogx"
)

// Keys of the attributes added by the error middlewares.
const (
	ErrorKey           = slogx.ErrorKey
	ErrorVerboseKey    = "error_verbose"
	ErrorStackTraceKey = "error_stacktrace"
)
