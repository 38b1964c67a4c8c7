package http

import (
	"context"
	"net/http"

	applog "bankfolio/internal/log"
)

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	s.serveReport(w, r, "summary", func(ctx context.Context) (any, error) {
		summary, err := s.ledger.Summary(ctx)
		if err != nil {
			return nil, err
		}
		return summaryJSON{
			TotalMoney:    summary.TotalMoney,
			TotalOutcome:  summary.TotalOutcome,
			TotalAssets:   summary.TotalAssets,
			MoneyOverTime: toBalancePointsJSON(summary.MoneyOverTime),
		}, nil
	})
}

// handleMoneyOverTime serves the line chart series, oldest date first.
func (s *Server) handleMoneyOverTime(w http.ResponseWriter, r *http.Request) {
	s.serveReport(w, r, "money-over-time", func(ctx context.Context) (any, error) {
		points, err := s.ledger.MoneyOverTime(ctx)
		if err != nil {
			return nil, err
		}
		return toBalancePointsJSON(points), nil
	})
}

func (s *Server) handleDistribution(w http.ResponseWriter, r *http.Request) {
	s.serveReport(w, r, "distribution", func(ctx context.Context) (any, error) {
		holdings, err := s.ledger.Distribution(ctx)
		if err != nil {
			return nil, err
		}
		return holdingsJSON(holdings), nil
	})
}

// serveReport answers from the report cache when enabled.
func (s *Server) serveReport(w http.ResponseWriter, r *http.Request, key string, load func(context.Context) (any, error)) {
	if s.reports != nil {
		if data, ok := s.reports.Get(key); ok {
			OK("", data).Header("X-Cache", "HIT").Write(w)
			return
		}
	}

	data, err := load(r.Context())
	if err != nil {
		s.writeError(w, r, applog.OpSummary, err)
		return
	}
	if s.reports != nil {
		s.reports.Set(key, data)
	}
	OK("", data).Write(w)
}

// invalidateReports drops cached reports after every write request.
func (s *Server) invalidateReports(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r)
		switch r.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
		default:
			s.reports.Clear()
		}
	})
}
