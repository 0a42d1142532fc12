package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/launchpad/internal/config"
	"github.com/gaze-network/launchpad/modules/launchpad"
	"github.com/gaze-network/launchpad/pkg/automaxprocs"
	"github.com/gaze-network/launchpad/pkg/errorhandler"
	"github.com/gaze-network/launchpad/pkg/logger"
	"github.com/gaze-network/launchpad/pkg/logger/slogx"
	"github.com/gaze-network/launchpad/pkg/middleware/requestcontext"
	"github.com/gaze-network/launchpad/pkg/middleware/requestlogger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/favicon"
	fiberrecover "github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/samber/do/v2"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// Modules are resolved lazily by the injector, on first invoke.
var Modules = do.Package(
	do.Lazy(launchpad.New),
)

const (
	shutdownTimeout      = 60 * time.Second
	forceShutdownTimeout = shutdownTimeout + 15*time.Second
)

func NewRunCommand() *cobra.Command {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Restore the ledger from its journal and serve the launchpad API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := automaxprocs.Init(); err != nil {
				logger.Error("Failed to set GOMAXPROCS", slogx.Error(err))
			}
			return runLaunchpad(cmd.Context(), config.Load())
		},
	}

	flags := runCmd.Flags()
	flags.Int("port", 8080, "HTTP server port")
	flags.String("database", "postgres", "Journal storage of launchpad commands. E.g. `postgres` or `memory`")

	config.BindPFlag("http_server.port", flags.Lookup("port"))
	config.BindPFlag("modules.launchpad.database", flags.Lookup("database"))

	return runCmd
}

func runLaunchpad(ctx context.Context, conf config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	injector := do.New(Modules)
	do.ProvideValue(injector, conf)
	do.ProvideValue(injector, ctx)
	do.Provide(injector, func(do.Injector) (*fiber.App, error) {
		return newHTTPServer(conf.HTTPServer)
	})

	// module init replays the journal before the API accepts any command
	if _, err := do.Invoke[*launchpad.Module](injector); err != nil {
		return errors.Wrap(err, "can't init launchpad module")
	}

	app := do.MustInvoke[*fiber.App](injector)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		defer stop()

		logger.InfoContext(ctx, "Started HTTP server", slogx.Int("port", conf.HTTPServer.Port))
		return errors.Wrap(app.Listen(fmt.Sprintf(":%d", conf.HTTPServer.Port)), "error during running HTTP server")
	})
	group.Go(func() error {
		<-groupCtx.Done()

		logger.InfoContext(ctx, "Stopping HTTP server...")
		return errors.Wrap(app.ShutdownWithTimeout(shutdownTimeout), "failed to shutdown HTTP server")
	})

	logger.InfoContext(ctx, "Launchpad started")
	<-ctx.Done()
	go forceShutdown()

	if err := group.Wait(); err != nil {
		logger.ErrorContext(ctx, "HTTP server stopped with error", err)
	}
	if err := injector.Shutdown(); err != nil {
		logger.PanicContext(ctx, "Failed while gracefully shutting down", slogx.Error(err))
	}
	return nil
}

// forceShutdown exits the process on a second signal or once graceful shutdown overruns.
func forceShutdown() {
	defer os.Exit(1)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case <-ctx.Done():
		logger.FatalContext(ctx, "Received exit signal again. Force shutdown...")
	case <-time.After(forceShutdownTimeout):
		logger.FatalContext(ctx, "Shutdown timeout exceeded. Force shutdown...")
	}
}

func newHTTPServer(conf config.HTTPServerConfig) (*fiber.App, error) {
	clientIP, err := requestcontext.WithClientIP(conf.RequestIP)
	if err != nil {
		return nil, errors.Wrap(err, "invalid request ip configuration")
	}

	app := fiber.New(fiber.Config{
		AppName:      "Launchpad",
		ErrorHandler: errorhandler.NewHTTPErrorHandler(),
	})
	app.Use(
		favicon.New(),
		cors.New(),
		requestid.New(),
		requestcontext.New(requestcontext.WithRequestID(), clientIP),
		requestlogger.New(conf.Logger),
		fiberrecover.New(fiberrecover.Config{
			EnableStackTrace:  true,
			StackTraceHandler: logPanic,
		}),
		compress.New(),
	)
	app.Get("/", func(c *fiber.Ctx) error {
		return errors.WithStack(c.SendStatus(http.StatusOK))
	})
	return app, nil
}

func logPanic(c *fiber.Ctx, e interface{}) {
	stack := make([]byte, 4096)
	stack = stack[:runtime.Stack(stack, false)]
	logger.ErrorContext(c.UserContext(), "Panic in http handler", errors.Newf("panic: %v", e), slogx.String("stacktrace", string(stack)))
}
