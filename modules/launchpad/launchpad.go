package launchpad

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gaze-network/launchpad/common/errs"
	"github.com/gaze-network/launchpad/internal/config"
	"github.com/gaze-network/launchpad/internal/postgres"
	"github.com/gaze-network/launchpad/modules/launchpad/api/httphandler"
	"github.com/gaze-network/launchpad/modules/launchpad/datagateway"
	"github.com/gaze-network/launchpad/modules/launchpad/repository/memory"
	launchpadpostgres "github.com/gaze-network/launchpad/modules/launchpad/repository/postgres"
	"github.com/gaze-network/launchpad/modules/launchpad/usecase"
	"github.com/gaze-network/launchpad/pkg/logger"
	"github.com/gaze-network/launchpad/pkg/logger/slogx"
	"github.com/gofiber/fiber/v2"
	"github.com/samber/do/v2"
	"github.com/samber/lo"
)

// Module is the running launchpad service. Shutdown is called by the injector.
type Module struct {
	Usecase      *usecase.Usecase
	cleanupFuncs []func(context.Context) error
}

func New(injector do.Injector) (*Module, error) {
	ctx := do.MustInvoke[context.Context](injector)
	conf := do.MustInvoke[config.Config](injector)
	ctx = logger.WithContext(ctx, slogx.String("module", "launchpad"))

	var launchpadDg datagateway.LaunchpadDataGateway
	var cleanupFuncs []func(context.Context) error
	switch strings.ToLower(conf.Modules.Launchpad.Database) {
	case "postgresql", "postgres", "pg":
		pg, err := postgres.NewPool(ctx, conf.Modules.Launchpad.Postgres)
		if err != nil {
			return nil, errors.Wrap(err, "can't create Postgres connection pool")
		}
		cleanupFuncs = append(cleanupFuncs, func(ctx context.Context) error {
			pg.Close()
			return nil
		})
		launchpadDg = launchpadpostgres.NewRepository(pg)
	case "memory":
		logger.WarnContext(ctx, "Using in-memory journal, state will be lost on shutdown")
		launchpadDg = memory.NewRepository()
	default:
		return nil, errors.Wrapf(errs.Unsupported, "%q database for launchpad is not supported", conf.Modules.Launchpad.Database)
	}

	launchpadUsecase := usecase.New(launchpadDg, conf.Modules.Launchpad.ReplayPageSize)
	if err := launchpadUsecase.Restore(ctx); err != nil {
		return nil, errors.Wrap(err, "can't restore launchpad state from journal")
	}

	// Mount API
	apiHandlers := lo.Uniq(conf.Modules.Launchpad.APIHandlers)
	for _, handler := range apiHandlers {
		switch handler {
		case "http":
			httpServer := do.MustInvoke[*fiber.App](injector)
			launchpadHTTPHandler := httphandler.New(launchpadUsecase)
			if err := launchpadHTTPHandler.Mount(httpServer); err != nil {
				return nil, errors.Wrap(err, "can't mount launchpad API")
			}
			logger.InfoContext(ctx, "Mounted HTTP handler")
		default:
			return nil, errors.Wrapf(errs.Unsupported, "%q API handler is not supported", handler)
		}
	}

	return &Module{
		Usecase:      launchpadUsecase,
		cleanupFuncs: cleanupFuncs,
	}, nil
}

// Shutdown implements do.ShutdownerWithContextAndError.
func (m *Module) Shutdown(ctx context.Context) error {
	var errList []error
	for _, cleanup := range m.cleanupFuncs {
		if err := cleanup(ctx); err != nil {
			errList = append(errList, err)
		}
	}
	return errors.WithStack(errors.Join(errList...))
}
