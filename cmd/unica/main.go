package main

import (
	"context"
	"log/slog"
	"os"

	"unica/config"
	"unica/internal/delivery"
	"unica/internal/delivery/http"
	"unica/internal/delivery/http/middleware"
	"unica/internal/delivery/http/router/handler"
	"unica/internal/domain/service"
	"unica/internal/infra/auth"
	logs "unica/internal/infra/log"
	"unica/internal/infra/mail"
	"unica/internal/infra/metrics"
	"unica/internal/infra/persistence/postgres"
	"unica/internal/usecase/impl"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		postgres.New,
		prometheus.NewRegistry,
	)
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			postgres.NewAccountRepository,
			postgres.NewRefreshTokenRepository,
			postgres.NewResetTokenRepository,
			postgres.NewTwoFactorRepository,
			postgres.NewTransactionManager,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			mail.NewResendMailer,
			newAuthMetrics,
		),
	)
}

// newAuthMetrics registers the auth counters on the process registry.
func newAuthMetrics(registry *prometheus.Registry) service.AuthMetrics {
	return metrics.NewCollector(registry)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewProfileService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			middleware.NewRequestContextMiddleware,
			fx.Annotate(
				middleware.NewCredentialRateLimiter,
				fx.ResultTags(`name:"credentialRateLimiter"`),
			),
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
