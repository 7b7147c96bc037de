package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/inspectai/inspectai-backend/api/controllers"
	"github.com/inspectai/inspectai-backend/api/middleware"
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
	"github.com/inspectai/inspectai-backend/pkg/logger"
	"github.com/inspectai/inspectai-backend/pkg/metrics"
)

// Deps carries everything the HTTP surface needs. MetricsHandler serves
// /metrics; HealthPingers feed /health/ready.
type Deps struct {
	Config         *config.Config
	Logger         *logger.Logger
	SessionChecker session.AccessSessionChecker
	HTTPMetrics    *metrics.HTTPMetrics
	MetricsHandler http.Handler
	HealthPingers  map[string]controllers.Pinger

	Auth        auth.Service
	Profiles    profiles.Service
	Inspections inspections.Service
	Photos      photos.Service
	VoiceNotes  voicenotes.Service
	Findings    findings.Service
	Reports     reports.Service
	Analysis    analysis.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.CORS(),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.HealthPingers))
	})

	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", controllers.AuthRegister(deps.Auth, logg))
		r.Post("/login", controllers.AuthLogin(deps.Auth, logg))
		r.Post("/logout", controllers.AuthLogout(deps.Auth, cfg.JWT, logg))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, deps.SessionChecker, logg))

		r.Get("/profile", controllers.ProfileGet(deps.Profiles, logg))
		r.Patch("/profile", controllers.ProfileUpdate(deps.Profiles, logg))

		r.Route("/inspections", func(r chi.Router) {
			r.Get("/", controllers.InspectionsList(deps.Inspections, logg))
			r.Post("/", controllers.InspectionsCreate(deps.Inspections, logg))
			r.Route("/{inspectionId}", func(r chi.Router) {
				r.Get("/", controllers.InspectionGet(deps.Inspections, logg))
				r.Patch("/", controllers.InspectionUpdate(deps.Inspections, logg))
				r.Delete("/", controllers.InspectionDelete(deps.Inspections, logg))
				r.Get("/photos", controllers.InspectionPhotos(deps.Photos, logg))
				r.Get("/voice-notes", controllers.InspectionVoiceNotes(deps.VoiceNotes, logg))
				r.Get("/reports", controllers.InspectionReports(deps.Reports, logg))
			})
		})

		r.Route("/photos", func(r chi.Router) {
			r.Post("/", controllers.PhotosUpload(deps.Photos, cfg.Uploads, logg))
			r.Route("/{photoId}", func(r chi.Router) {
				r.Get("/", controllers.PhotoGet(deps.Photos, logg))
				r.Delete("/", controllers.PhotoDelete(deps.Photos, logg))
				r.Post("/analyze", controllers.PhotoAnalyze(deps.Analysis, logg))
			})
		})

		r.Route("/voice-notes", func(r chi.Router) {
			r.Post("/", controllers.VoiceNoteUpload(deps.VoiceNotes, cfg.Uploads, logg))
			r.Route("/{voiceNoteId}", func(r chi.Router) {
				r.Get("/", controllers.VoiceNoteGet(deps.VoiceNotes, logg))
				r.Delete("/", controllers.VoiceNoteDelete(deps.VoiceNotes, logg))
				r.Post("/transcribe", controllers.VoiceNoteTranscribe(deps.Analysis, logg))
			})
		})

		r.Route("/findings", func(r chi.Router) {
			r.Get("/", controllers.FindingsList(deps.Findings, logg))
			r.Post("/", controllers.FindingCreate(deps.Findings, logg))
			r.Route("/{findingId}", func(r chi.Router) {
				r.Get("/", controllers.FindingGet(deps.Findings, logg))
				r.Patch("/", controllers.FindingUpdate(deps.Findings, logg))
				r.Delete("/", controllers.FindingDelete(deps.Findings, logg))
				r.Get("/similar", controllers.FindingSimilar(deps.Findings, logg))
			})
		})

		r.Route("/reports", func(r chi.Router) {
			r.Post("/", controllers.ReportGenerate(deps.Reports, logg))
			r.Route("/{reportId}", func(r chi.Router) {
				r.Get("/", controllers.ReportGet(deps.Reports, logg))
				r.Get("/download", controllers.ReportDownload(deps.Reports, logg))
			})
		})
	})

	return r
}
