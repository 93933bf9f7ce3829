package main

import (
	"context"
	"log/slog"
	"os"

	"htga/config"
	"htga/internal/delivery"
	"htga/internal/delivery/http"
	"htga/internal/delivery/http/middleware"
	"htga/internal/delivery/http/router/handler"
	"htga/internal/infra/auth"
	"htga/internal/infra/identity"
	logs "htga/internal/infra/log"
	"htga/internal/infra/mail"
	"htga/internal/infra/notification"
	"htga/internal/infra/persistence/realtimedb"
	"htga/internal/infra/signature"
	"htga/internal/infra/storage"
	"htga/internal/usecase/impl"

	firebase "firebase.google.com/go/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
	"google.golang.org/api/option"
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
		newFirebaseApp,
		realtimedb.NewClient,
	)
}

// newFirebaseApp creates the shared Firebase app backing the record store,
// the identity provider, and push messaging.
func newFirebaseApp(ctx context.Context, cfg *config.Config) (*firebase.App, error) {
	if cfg.Firebase == nil {
		return nil, errors.New("firebase configuration is required")
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID:   cfg.Firebase.ProjectID,
		DatabaseURL: cfg.Firebase.DatabaseURL,
	}, option.WithCredentialsFile(cfg.Firebase.CredentialsPath))
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize firebase app")
	}

	return app, nil
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			realtimedb.NewEvaluatorRepository,
			realtimedb.NewEstablishmentRepository,
			realtimedb.NewAssignmentRepository,
			realtimedb.NewCounterRepository,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			identity.New,
			notification.NewFirebaseService,
			mail.New,
			signature.New,
			storage.New,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewEvaluatorService,
			impl.NewEstablishmentService,
			impl.NewAssignmentService,
			impl.NewBudgetService,
			impl.NewNotificationService,
			impl.NewNDAService,
			impl.NewAdminService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewEvaluatorHandler,
			handler.NewEstablishmentHandler,
			handler.NewAssignmentHandler,
			handler.NewBudgetHandler,
			handler.NewNotificationHandler,
			handler.NewNDAHandler,
			handler.NewReceiptHandler,
			handler.NewAdminHandler,
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
