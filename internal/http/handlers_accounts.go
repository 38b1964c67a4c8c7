package http

import (
	"net/http"

	"bankfolio/internal/i18n"
	applog "bankfolio/internal/log"
)

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := s.ledger.ListAccounts(r.Context())
	if err != nil {
		s.writeError(w, r, applog.OpList, err)
		return
	}
	OK("", mapSlice(accounts, toAccountJSON)).Write(w)
}

func (s *Server) handleGetAccount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, applog.OpRead, err)
		return
	}
	account, err := s.ledger.GetAccount(r.Context(), id)
	if err != nil {
		s.writeError(w, r, applog.OpRead, err)
		return
	}
	OK("", toAccountJSON(account)).Write(w)
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		BadRequestError(i18n.T(s.language(r), i18n.InvalidInput)).Write(w)
		return
	}
	in, err := parseAccountInput(p)
	if err != nil {
		s.writeError(w, r, applog.OpCreate, err)
		return
	}

	account, err := s.ledger.CreateAccount(r.Context(), in)
	if err != nil {
		s.writeError(w, r, applog.OpCreate, err)
		return
	}
	Created(i18n.T(s.language(r), i18n.AccountAdded), toAccountJSON(account)).Write(w)
}

func (s *Server) handleUpdateAccount(w http.ResponseWriter, r *http.Request) {
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
	in, err := parseAccountInput(p)
	if err != nil {
		s.writeError(w, r, applog.OpUpdate, err)
		return
	}

	if err := s.ledger.UpdateAccount(r.Context(), id, in); err != nil {
		s.writeError(w, r, applog.OpUpdate, err)
		return
	}
	account, err := s.ledger.GetAccount(r.Context(), id)
	if err != nil {
		s.writeError(w, r, applog.OpRead, err)
		return
	}
	OK(i18n.T(s.language(r), i18n.AccountUpdated), toAccountJSON(account)).Write(w)
}

func (s *Server) handleAdjustBalance(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, applog.OpAdjust, err)
		return
	}
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		BadRequestError(i18n.T(s.language(r), i18n.InvalidInput)).Write(w)
		return
	}
	delta, err := parseField("amount", p.Get("amount"))
	if err != nil {
		s.writeError(w, r, applog.OpAdjust, err)
		return
	}

	account, err := s.ledger.AdjustBalance(r.Context(), id, delta)
	if err != nil {
		s.writeError(w, r, applog.OpAdjust, err)
		return
	}
	OK(i18n.T(s.language(r), i18n.BalanceAdjusted), toAccountJSON(account)).Write(w)
}

func (s *Server) handleDeleteAccount(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, applog.OpDelete, err)
		return
	}
	if err := s.ledger.DeleteAccount(r.Context(), id); err != nil {
		s.writeError(w, r, applog.OpDelete, err)
		return
	}
	OK(i18n.T(s.language(r), i18n.AccountDeleted), nil).Write(w)
}
