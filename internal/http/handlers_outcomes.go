package http

import (
	"net/http"

	"bankfolio/internal/i18n"
	applog "bankfolio/internal/log"
)

func (s *Server) handleListOutcomes(w http.ResponseWriter, r *http.Request) {
	outcomes, err := s.ledger.ListOutcomes(r.Context())
	if err != nil {
		s.writeError(w, r, applog.OpList, err)
		return
	}
	OK("", mapSlice(outcomes, toOutcomeJSON)).Write(w)
}

func (s *Server) handleGetOutcome(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, applog.OpRead, err)
		return
	}
	outcome, err := s.ledger.GetOutcome(r.Context(), id)
	if err != nil {
		s.writeError(w, r, applog.OpRead, err)
		return
	}
	OK("", toOutcomeJSON(outcome)).Write(w)
}

func (s *Server) handleCreateOutcome(w http.ResponseWriter, r *http.Request) {
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		BadRequestError(i18n.T(s.language(r), i18n.InvalidInput)).Write(w)
		return
	}
	in, err := parseOutcomeInput(p)
	if err != nil {
		s.writeError(w, r, applog.OpCreate, err)
		return
	}

	outcome, err := s.ledger.CreateOutcome(r.Context(), in)
	if err != nil {
		s.writeError(w, r, applog.OpCreate, err)
		return
	}
	Created(i18n.T(s.language(r), i18n.OutcomeAdded), toOutcomeJSON(outcome)).Write(w)
}

func (s *Server) handleUpdateOutcome(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, applog.OpUpdate, err)
		return
	}
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		BadRequestError(i18n.T(s.language(r), i18n.InvalidInput)).Write(w)
		return
	}
	in, err := parseOutcomeInput(p)
	if err != nil {
		s.writeError(w, r, applog.OpUpdate, err)
		return
	}

	if err := s.ledger.UpdateOutcome(r.Context(), id, in); err != nil {
		s.writeError(w, r, applog.OpUpdate, err)
		return
	}
	outcome, err := s.ledger.GetOutcome(r.Context(), id)
	if err != nil {
		s.writeError(w, r, applog.OpRead, err)
		return
	}
	OK(i18n.T(s.language(r), i18n.OutcomeUpdated), toOutcomeJSON(outcome)).Write(w)
}

func (s *Server) handleDeleteOutcome(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, applog.OpDelete, err)
		return
	}
	if err := s.ledger.DeleteOutcome(r.Context(), id); err != nil {
		s.writeError(w, r, applog.OpDelete, err)
		return
	}
	OK(i18n.T(s.language(r), i18n.OutcomeDeleted), nil).Write(w)
}
