package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/adaezeudoka/hopewell-foundation-backend/api/routes"
	"github.com/adaezeudoka/hopewell-foundation-backend/internal/admins"
	"github.com/adaezeudoka/hopewell-foundation-backend/internal/audit"
	"github.com/adaezeudoka/hopewell-foundation-backend/internal/auth"
	"github.com/adaezeudoka/hopewell-foundation-backend/internal/content"
	"github.com/adaezeudoka/hopewell-foundation-backend/internal/donations"
	"github.com/adaezeudoka/hopewell-foundation-backend/internal/events"
	"github.com/adaezeudoka/hopewell-foundation-backend/internal/rbac"
	paystackwebhook "github.com/adaezeudoka/hopewell-foundation-backend/internal/webhooks/paystack"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/auth/session"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/bigquery"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/config"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/db"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/logger"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/metrics"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/migrate"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/paystack"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/pubsub"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/redis"
	"github.com/adaezeudoka/hopewell-foundation-backend/pkg/storage/gcs"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

const webhookIdempotencyTTL = 24 * time.Hour

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	paystackClient, err := paystack.NewClient(
		cfg.Paystack.SecretKey,
		cfg.Paystack.WebhookSecret,
		paystack.WithBaseURL(cfg.Paystack.BaseURL),
		paystack.WithTimeout(cfg.Paystack.VerifyTimeout),
	)
	if err != nil {
		logg.Error(context.Background(), "failed to create paystack client", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	paymentMetrics := metrics.NewPaymentMetrics(registry)

	donationsRepo := donations.NewRepository(dbClient.DB())
	adminsRepo := admins.NewRepository(dbClient.DB())
	auditRepo := audit.NewRepository(dbClient.DB())
	contentRepo := content.NewRepository(dbClient.DB())
	teamRepo := content.NewTeamRepository(dbClient.DB())

	emitter := buildEmitter(context.Background(), cfg, logg)

	donationsService, err := donations.NewService(donations.ServiceParams{
		Repo:     donationsRepo,
		Verifier: paystackClient,
		Events:   emitter,
		Metrics:  paymentMetrics,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create donations service", err)
		os.Exit(1)
	}

	webhookService, err := paystackwebhook.NewService(paystackwebhook.ServiceParams{
		Donations: donationsService,
		Metrics:   paymentMetrics,
		Logger:    logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create webhook service", err)
		os.Exit(1)
	}

	webhookGuard, err := paystackwebhook.NewIdempotencyGuard(redisClient, webhookIdempotencyTTL, "paystack-webhook")
	if err != nil {
		logg.Error(context.Background(), "failed to create webhook idempotency guard", err)
		os.Exit(1)
	}

	auditService, err := audit.NewService(audit.ServiceParams{Repo: auditRepo})
	if err != nil {
		logg.Error(context.Background(), "failed to create audit service", err)
		os.Exit(1)
	}

	adminsService, err := admins.NewService(admins.ServiceParams{
		Repo:      adminsRepo,
		Audit:     auditService,
		TxRunner:  dbClient,
		RootAdmin: cfg.RootAdmin,
		Logger:    logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create admins service", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		Admins:   adminsRepo,
		Sessions: sessionManager,
		JWT:      cfg.JWT,
		Logger:   logg,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	contentParams := content.ServiceParams{
		Repo:     contentRepo,
		TeamRepo: teamRepo,
		Admins:   adminsRepo,
		Audit:    auditService,
		TxRunner: dbClient,
		Logger:   logg,
	}
	if signer := buildSigner(context.Background(), cfg, logg); signer != nil {
		contentParams.Signer = signer
	}
	contentService, err := content.NewService(contentParams)
	if err != nil {
		logg.Error(context.Background(), "failed to create content service", err)
		os.Exit(1)
	}

	guard, err := rbac.NewGuard(adminsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create rbac guard", err)
		os.Exit(1)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(routes.Deps{
			Config:  cfg,
			Logger:  logg,
			DB:      dbClient,
			Redis:   redisClient,
			Metrics: paymentMetrics,
			Prom:    registry,

			Sessions:       sessionManager,
			Guard:          guard,
			AuthService:    authService,
			Donations:      donationsService,
			Admins:         adminsService,
			Audit:          auditService,
			Content:        contentService,
			Paystack:       paystackClient,
			WebhookService: webhookService,
			WebhookGuard:   webhookGuard,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

// buildEmitter wires the optional Pub/Sub and BigQuery fan-out. Either leg
// may be absent; a nil emitter target is skipped at publish time.
func buildEmitter(ctx context.Context, cfg *config.Config, logg *logger.Logger) *events.Emitter {
	params := events.EmitterParams{Logger: logg}

	if cfg.GCP.ProjectID != "" && cfg.PubSub.DonationsTopic != "" {
		pubsubClient, err := pubsub.NewClient(ctx, cfg.GCP, cfg.PubSub, logg)
		if err != nil {
			logg.Warn(ctx, "pubsub unavailable, donation events will not be published")
		} else {
			params.Publisher = pubsubClient.DonationsPublisher()
		}
	}

	if cfg.GCP.ProjectID != "" && cfg.BigQuery.Dataset != "" {
		bqClient, err := bigquery.NewClient(ctx, cfg.GCP, cfg.BigQuery, logg)
		if err != nil {
			logg.Warn(ctx, "bigquery unavailable, donation analytics rows will not be written")
		} else {
			params.Sink = bqClient
			params.BigQueryTable = bqClient.DonationEventsTable()
		}
	}

	return events.NewEmitter(params)
}

// buildSigner returns the GCS upload signer, or nil when object storage is
// not configured. Presigned media uploads are disabled without it.
func buildSigner(ctx context.Context, cfg *config.Config, logg *logger.Logger) *gcs.Client {
	if cfg.GCS.BucketName == "" {
		return nil
	}
	client, err := gcs.NewClient(ctx, cfg.GCS, cfg.GCP, logg)
	if err != nil {
		logg.Warn(ctx, "gcs unavailable, media upload signing is disabled")
		return nil
	}
	return client
}
