package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/inspectai/inspectai-backend/api/controllers"
	"github.com/inspectai/inspectai-backend/api/routes"
	"github.com/inspectai/inspectai-backend/internal/access"
	"github.com/inspectai/inspectai-backend/internal/analysis"
	"github.com/inspectai/inspectai-backend/internal/auth"
	"github.com/inspectai/inspectai-backend/internal/findings"
	"github.com/inspectai/inspectai-backend/internal/inspections"
	"github.com/inspectai/inspectai-backend/internal/photos"
	"github.com/inspectai/inspectai-backend/internal/profiles"
	"github.com/inspectai/inspectai-backend/internal/reports"
	"github.com/inspectai/inspectai-backend/internal/voicenotes"
	"github.com/inspectai/inspectai-backend/pkg/auth/session"
	"github.com/inspectai/inspectai-backend/pkg/config"
	"github.com/inspectai/inspectai-backend/pkg/db"
	"github.com/inspectai/inspectai-backend/pkg/logger"
	"github.com/inspectai/inspectai-backend/pkg/metrics"
	"github.com/inspectai/inspectai-backend/pkg/migrate"
	"github.com/inspectai/inspectai-backend/pkg/pubsub"
	"github.com/inspectai/inspectai-backend/pkg/redis"
	"github.com/inspectai/inspectai-backend/pkg/storage/gcs"
)

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

	gcsClient, err := gcs.NewClient(context.Background(), cfg.GCS, cfg.GCP, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap cloud storage", err)
		os.Exit(1)
	}

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	// Pub/Sub is optional: analysis requests still ack without a broker.
	var analysisPublisher analysis.Publisher
	pingers := map[string]controllers.Pinger{
		"database": dbClient,
		"redis":    redisClient,
		"storage":  gcsClient,
	}
	if cfg.PubSub.AnalysisTopic != "" {
		pubsubClient, err := pubsub.NewClient(context.Background(), cfg.GCP, cfg.PubSub, logg)
		if err != nil {
			logg.Error(context.Background(), "failed to bootstrap pubsub", err)
			os.Exit(1)
		}
		defer pubsubClient.Close()
		analysisPublisher = analysis.NewPubSubPublisher(pubsubClient.AnalysisPublisher())
		pingers["pubsub"] = pubsubClient
	}

	gormDB := dbClient.DB()
	zl := logg.Base()

	profilesRepo := profiles.NewRepository(gormDB)
	inspectionsRepo := inspections.NewRepository(gormDB)
	photosRepo := photos.NewRepository(gormDB)
	voiceNotesRepo := voicenotes.NewRepository(gormDB)
	findingsRepo := findings.NewRepository(gormDB)
	reportsRepo := reports.NewRepository(gormDB)

	guard, err := access.NewGuard(inspectionsRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create ownership guard", err)
		os.Exit(1)
	}

	authService, err := auth.NewService(auth.ServiceParams{
		ProfilesRepo:   profilesRepo,
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create auth service", err)
		os.Exit(1)
	}

	profilesService, err := profiles.NewService(profilesRepo)
	if err != nil {
		logg.Error(context.Background(), "failed to create profiles service", err)
		os.Exit(1)
	}

	inspectionsService, err := inspections.NewService(inspections.ServiceParams{
		Repo:    inspectionsRepo,
		Guard:   guard,
		Storage: gcsClient,
		Buckets: cfg.GCS,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create inspections service", err)
		os.Exit(1)
	}

	photosService, err := photos.NewService(photos.ServiceParams{
		Repo:    photosRepo,
		Guard:   guard,
		Storage: gcsClient,
		Buckets: cfg.GCS,
		Logger:  zl,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create photos service", err)
		os.Exit(1)
	}

	voiceNotesService, err := voicenotes.NewService(voicenotes.ServiceParams{
		Repo:    voiceNotesRepo,
		Guard:   guard,
		Storage: gcsClient,
		Buckets: cfg.GCS,
		Uploads: cfg.Uploads,
		Logger:  zl,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create voice notes service", err)
		os.Exit(1)
	}

	findingsService, err := findings.NewService(findings.ServiceParams{
		Repo:    findingsRepo,
		Photos:  photosRepo,
		Guard:   guard,
		Storage: gcsClient,
		Buckets: cfg.GCS,
		Logger:  zl,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create findings service", err)
		os.Exit(1)
	}

	reportsService, err := reports.NewService(reports.ServiceParams{
		Repo:     reportsRepo,
		Findings: findingsRepo,
		Guard:    guard,
		Storage:  gcsClient,
		Buckets:  cfg.GCS,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create reports service", err)
		os.Exit(1)
	}

	analysisService, err := analysis.NewService(analysis.ServiceParams{
		Photos:     photosRepo,
		VoiceNotes: voiceNotesRepo,
		Guard:      guard,
		Publisher:  analysisPublisher,
		Logger:     zl,
	})
	if err != nil {
		logg.Error(context.Background(), "failed to create analysis service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	httpMetrics := metrics.NewHTTPMetrics(registry)

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
			Config:         cfg,
			Logger:         logg,
			SessionChecker: sessionManager,
			HTTPMetrics:    httpMetrics,
			MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
			HealthPingers:  pingers,
			Auth:           authService,
			Profiles:       profilesService,
			Inspections:    inspectionsService,
			Photos:         photosService,
			VoiceNotes:     voiceNotesService,
			Findings:       findingsService,
			Reports:        reportsService,
			Analysis:       analysisService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}
