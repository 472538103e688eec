package srv

import (
	"context"
	"errors"
	"fmt"

	"github.com/sandevgo/simplechat/pkg/log"
	"golang.org/x/sync/errgroup"
)

type Service interface {
	Start(ctx context.Context) error
	Shutdown(ctx context.Context) error
}

// Run starts every service and blocks until the first one returns or ctx
// is done. The services are then shut down in reverse order. The first
// start error, if any, is returned.
func Run(ctx context.Context, services []Service) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, gctx := errgroup.WithContext(runCtx)
	for _, service := range services {
		service := service
		g.Go(func() error {
			// A service that finishes, cleanly or not, stops the others.
			defer cancel()
			if err := service.Start(gctx); err != nil {
				return fmt.Errorf("%T: %w", service, err)
			}
			return nil
		})
	}

	<-gctx.Done()
	ShutdownServices(context.WithoutCancel(ctx), services)

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func ShutdownServices(ctx context.Context, services []Service) {
	logger := log.FromCtx(ctx)
	for i := len(services) - 1; i >= 0; i-- {
		if err := services[i].Shutdown(ctx); err != nil {
			logger.Error().Err(err).Msgf("%T failed to shutdown", services[i])
		}
	}
}
