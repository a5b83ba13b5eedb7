// Package mockapi implements a self-contained WellPath API server backed
// by an in-memory demo dataset. It exists for local development and demos:
// the CLI's serve command runs it, and the client package's integration
// tests run against it.
package mockapi

import (
	_ "embed"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-openapi/runtime/middleware"
	"github.com/google/uuid"
)

//go:embed openapi.yaml
var openapiSpec []byte

const defaultSessionTTL = 24 * time.Hour

// Server holds the mock API state: registered users, live sessions and
// the demo dataset.
type Server struct {
	mu       sync.RWMutex
	users    map[string]userRecord
	sessions map[string]sessionRecord
	data     *dataset

	sessionTTL time.Duration
	now        func() time.Time
	logger     *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the structured logger for request and auth events.
// Without one, a text logger writing to stderr is used.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithSessionTTL overrides how long issued sessions stay valid.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Server) { s.sessionTTL = ttl }
}

// WithClock overrides the time source. Tests use it to expire sessions
// without sleeping.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// New creates a Server seeded with the demo dataset and the demo login
// (username "admin", password "password").
func New(opts ...Option) (*Server, error) {
	s := &Server{
		sessions:   make(map[string]sessionRecord),
		data:       demoDataset(),
		sessionTTL: defaultSessionTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}

	users, err := demoUsers()
	if err != nil {
		return nil, err
	}
	s.users = users
	return s, nil
}

// Router returns a chi.Router with all API routes mounted.
func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(s.requestID)

	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(openapiSpec)
	})

	r.Handle("/docs*", middleware.SwaggerUI(middleware.SwaggerUIOpts{
		SpecURL: "/api/openapi.yaml",
		Path:    "api/docs",
	}, nil))

	r.Handle("/redoc*", middleware.Redoc(middleware.RedocOpts{
		SpecURL: "/api/openapi.yaml",
		Path:    "api/redoc",
	}, nil))

	r.Get("/info", s.Info)
	r.Post("/auth/login/password", s.LoginPassword)

	r.Group(func(r chi.Router) {
		r.Use(s.RequireSession)

		r.Get("/auth/logout", s.Logout)

		r.Route("/participant", func(r chi.Router) {
			r.Post("/lookup", s.LookupParticipants)
			r.Get("/get/{participantID}", s.GetParticipant)
			r.Get("/get/{participantID}/demographics", s.GetDemographics)
			r.Get("/get/{participantID}/health_overview", s.GetHealthOverview)
			r.Get("/case_notes/{participantID}/list/all", s.ListRecentVisits)
			r.Get("/stats/bp/history/{participantID}", s.BPHistory)
			r.Get("/stats/weight/history/{participantID}", s.WeightHistory)
			r.Get("/stats/glucose/history/{participantID}", s.GlucoseHistory)
			r.Get("/medications/{participantID}/search", s.Medications)
			// chi forbids mixed wildcard names at one position, so both
			// goal routes share {id}: the participant id for /all, the
			// goal id for /steps.
			r.Get("/goals/{id}/all", s.ListGoals)
			r.Get("/goals/{id}/steps", s.ListGoalSteps)
		})

		r.Get("/location/all", s.ListLocations)
		r.Get("/location/{locationID}", s.GetLocation)

		r.Post("/researcher/query", s.ResearcherQuery)
	})

	return r
}

// requestID stamps every response with an X-Request-Id so client-side
// logs can be correlated with server output.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.NewString()
		w.Header().Set("X-Request-Id", id)
		s.logger.Debug("request", "method", r.Method, "path", r.URL.Path, "request_id", id)
		next.ServeHTTP(w, r)
	})
}
