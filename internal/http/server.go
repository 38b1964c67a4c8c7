package http

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"bankfolio/internal/cache"
	"bankfolio/internal/config"
	"bankfolio/internal/core"
	"bankfolio/internal/i18n"
	applog "bankfolio/internal/log"
	"bankfolio/internal/middleware/ratelimit"
	"bankfolio/internal/middleware/security"
	"bankfolio/internal/middleware/trace"

	"github.com/shopspring/decimal"
)

// Ledger is the subset of the ledger service the API exposes.
type Ledger interface {
	CreateAccount(ctx context.Context, in core.AccountInput) (core.Account, error)
	GetAccount(ctx context.Context, id int64) (core.Account, error)
	ListAccounts(ctx context.Context) ([]core.Account, error)
	UpdateAccount(ctx context.Context, id int64, in core.AccountInput) error
	AdjustBalance(ctx context.Context, id int64, delta decimal.Decimal) (core.Account, error)
	DeleteAccount(ctx context.Context, id int64) error

	CreateOutcome(ctx context.Context, in core.OutcomeInput) (core.Outcome, error)
	GetOutcome(ctx context.Context, id int64) (core.Outcome, error)
	ListOutcomes(ctx context.Context) ([]core.Outcome, error)
	UpdateOutcome(ctx context.Context, id int64, in core.OutcomeInput) error
	DeleteOutcome(ctx context.Context, id int64) error

	CreateAsset(ctx context.Context, in core.AssetInput) (core.Asset, error)
	GetAsset(ctx context.Context, id int64) (core.Asset, error)
	ListAssets(ctx context.Context) ([]core.Asset, error)
	UpdateAsset(ctx context.Context, id int64, in core.AssetInput) error
	DeleteAsset(ctx context.Context, id int64) error

	Summary(ctx context.Context) (core.Summary, error)
	MoneyOverTime(ctx context.Context) ([]core.BalancePoint, error)
	Distribution(ctx context.Context) ([]core.Holding, error)

	Ping(ctx context.Context) error
}

// Options tune the middleware stack.
type Options struct {
	// Write requests per client per minute, 0 disables limiting
	RateLimitPerMinute int
	// How long report reads are served from memory, 0 disables caching
	ReportCacheTTL time.Duration
	Logger         *applog.Logger
}

type Server struct {
	http.Server
	ledger   Ledger
	settings *config.Settings

	limiter   *ratelimit.Limiter
	tracer    *trace.Middleware
	startedAt time.Time

	reports      cache.Cache[any]
	cacheManager *cache.Manager

	shutdownOnce sync.Once
}

// NewServer configures routes and middleware, returning a ready-to-run http.Server.
func NewServer(addr string, ledger Ledger, settings *config.Settings, opts Options) *Server {
	mux := http.NewServeMux()

	logger := opts.Logger
	if logger == nil {
		logger = applog.New(applog.Config{Level: slog.LevelInfo, Component: applog.ComponentHTTP, Handler: slog.Default().Handler()})
	}

	resolver := security.NewClientIPResolver()
	s := &Server{
		Server: http.Server{
			Addr:              addr,
			ReadHeaderTimeout: 10 * time.Second,
		},
		ledger:    ledger,
		settings:  settings,
		tracer:    trace.NewMiddleware(resolver.ExtractClientIP).WithLogger(logger),
		startedAt: time.Now(),
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("GET /api/accounts", s.handleListAccounts)
	mux.HandleFunc("POST /api/accounts", s.handleCreateAccount)
	mux.HandleFunc("GET /api/accounts/{id}", s.handleGetAccount)
	mux.HandleFunc("PUT /api/accounts/{id}", s.handleUpdateAccount)
	mux.HandleFunc("POST /api/accounts/{id}/adjust", s.handleAdjustBalance)
	mux.HandleFunc("DELETE /api/accounts/{id}", s.handleDeleteAccount)

	mux.HandleFunc("GET /api/outcomes", s.handleListOutcomes)
	mux.HandleFunc("POST /api/outcomes", s.handleCreateOutcome)
	mux.HandleFunc("GET /api/outcomes/{id}", s.handleGetOutcome)
	mux.HandleFunc("PUT /api/outcomes/{id}", s.handleUpdateOutcome)
	mux.HandleFunc("DELETE /api/outcomes/{id}", s.handleDeleteOutcome)

	mux.HandleFunc("GET /api/assets", s.handleListAssets)
	mux.HandleFunc("POST /api/assets", s.handleCreateAsset)
	mux.HandleFunc("GET /api/assets/{id}", s.handleGetAsset)
	mux.HandleFunc("PUT /api/assets/{id}", s.handleUpdateAsset)
	mux.HandleFunc("DELETE /api/assets/{id}", s.handleDeleteAsset)

	mux.HandleFunc("GET /api/summary", s.handleSummary)
	mux.HandleFunc("GET /api/charts/money-over-time", s.handleMoneyOverTime)
	mux.HandleFunc("GET /api/distribution", s.handleDistribution)

	mux.HandleFunc("GET /api/settings/language", s.handleGetLanguage)
	mux.HandleFunc("PUT /api/settings/language", s.handleSetLanguage)
	mux.HandleFunc("POST /api/settings/language/switch", s.handleSwitchLanguage)

	var handler http.Handler = mux
	if opts.ReportCacheTTL > 0 {
		reports := cache.NewLRUCache[any](8, opts.ReportCacheTTL)
		s.reports = reports
		s.cacheManager = cache.NewManager()
		s.cacheManager.Register(reports)
		s.cacheManager.StartCleanup(opts.ReportCacheTTL)
		handler = s.invalidateReports(handler)
	}
	if opts.RateLimitPerMinute > 0 {
		s.limiter = ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.RateLimitPerMinute})
		handler = s.limiter.Middleware(resolver.ExtractClientIP, s.handleRateLimited)(handler)
	}
	handler = applog.RequestIDMiddleware(trace.RequestIDFromRequest)(handler)
	handler = applog.ComponentMiddleware(applog.ComponentHTTP)(handler)
	handler = applog.Middleware(logger)(handler)
	handler = security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(handler)
	handler = s.tracer.Middleware(handler)

	s.Handler = handler
	return s
}

// Metrics exposes request counters collected by the trace middleware.
func (s *Server) Metrics() trace.Metrics {
	return s.tracer.GetMetrics()
}

// Shutdown gracefully shuts down the server and its background routines
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.limiter != nil {
			s.limiter.Stop()
		}
		if s.cacheManager != nil {
			s.cacheManager.Stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// language picks the response language: a supported ?lang= wins over the
// settings file.
func (s *Server) language(r *http.Request) string {
	if lang := r.URL.Query().Get("lang"); i18n.IsSupported(lang) {
		return i18n.Normalize(lang)
	}
	if s.settings == nil {
		return i18n.English
	}
	return i18n.Normalize(s.settings.Language())
}

func (s *Server) handleRateLimited(w http.ResponseWriter, r *http.Request) {
	applog.FromContext(r.Context()).WarnContext(r.Context(), "Rate limit exceeded",
		applog.FieldMethod, r.Method,
		applog.FieldPath, r.URL.Path)
	ErrorResponse(http.StatusTooManyRequests, "rate_limited", i18n.T(s.language(r), i18n.RateLimited)).Write(w)
}
