// Command seed loads evaluators and establishments from a JSON fixture into
// the record store. Evaluator IDs are allocated with the scan-based
// generator, so the fixture never needs to carry them.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"time"

	"htga/config"
	"htga/internal/domain/entity"
	"htga/internal/domain/identifier"
	"htga/internal/domain/repository"
	"htga/internal/infra/persistence/realtimedb"

	firebase "firebase.google.com/go/v4"
	"github.com/pkg/errors"
	"google.golang.org/api/option"
)

type fixture struct {
	Evaluators     []*entity.Evaluator     `json:"evaluators"`
	Establishments []*entity.Establishment `json:"establishments"`
}

func main() {
	fixturePath := flag.String("fixture", "seed.json", "path to the JSON fixture")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	if err := run(context.Background(), *fixturePath, logger); err != nil {
		logger.Error("Seeding failed", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, fixturePath string, logger *slog.Logger) error {
	cfg, err := config.New()
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}
	if cfg.Firebase == nil {
		return errors.New("firebase configuration is required")
	}

	raw, err := os.ReadFile(fixturePath)
	if err != nil {
		return errors.Wrap(err, "failed to read fixture")
	}
	var data fixture
	if err := json.Unmarshal(raw, &data); err != nil {
		return errors.Wrap(err, "failed to parse fixture")
	}

	app, err := firebase.NewApp(ctx, &firebase.Config{
		ProjectID:   cfg.Firebase.ProjectID,
		DatabaseURL: cfg.Firebase.DatabaseURL,
	}, option.WithCredentialsFile(cfg.Firebase.CredentialsPath))
	if err != nil {
		return errors.Wrap(err, "failed to initialize firebase app")
	}
	client, err := realtimedb.NewClient(ctx, app)
	if err != nil {
		return errors.Wrap(err, "failed to connect to record store")
	}

	evaluatorRepo := realtimedb.NewEvaluatorRepository(client)
	establishmentRepo := realtimedb.NewEstablishmentRepository(client)
	counterRepo := realtimedb.NewCounterRepository(client)

	existing, err := evaluatorRepo.FindAll(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to load existing evaluators")
	}
	existingIDs := make([]string, 0, len(existing))
	for _, evaluator := range existing {
		existingIDs = append(existingIDs, evaluator.ID)
	}

	now := time.Now().UTC()
	for _, evaluator := range data.Evaluators {
		if evaluator.ID == "" {
			evaluator.ID = identifier.NextEvaluatorID(existingIDs)
		}
		existingIDs = append(existingIDs, evaluator.ID)
		evaluator.NormalizeSpecialties()
		evaluator.CreatedAt = now
		evaluator.UpdatedAt = now

		if err := evaluatorRepo.Create(ctx, evaluator); err != nil {
			return errors.Wrapf(err, "failed to seed evaluator %s", evaluator.ID)
		}
		logger.Info("Seeded evaluator", slog.String("evaluatorID", evaluator.ID))
	}

	// Registration allocates IDs from the evaluators counter, so it has to
	// be moved past every scan-allocated suffix before it is used again.
	floor := int64(identifier.MaxEvaluatorSuffix(existingIDs))
	if floor > 0 {
		if err := counterRepo.EnsureAtLeast(ctx, repository.CounterEvaluators, floor); err != nil {
			return errors.Wrap(err, "failed to advance evaluator counter")
		}
		logger.Info("Advanced evaluator counter", slog.Int64("floor", floor))
	}

	for _, establishment := range data.Establishments {
		establishment.CreatedAt = now
		establishment.UpdatedAt = now

		key, err := establishmentRepo.Create(ctx, establishment)
		if err != nil {
			return errors.Wrapf(err, "failed to seed establishment %s", establishment.Name)
		}
		logger.Info("Seeded establishment",
			slog.String("establishmentID", key), slog.String("name", establishment.Name))
	}

	logger.Info("Seeding finished",
		slog.Int("evaluators", len(data.Evaluators)),
		slog.Int("establishments", len(data.Establishments)),
	)

	return nil
}
