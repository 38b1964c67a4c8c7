package http

import (
	"net/http"

	"bankfolio/internal/i18n"
	applog "bankfolio/internal/log"
)

func (s *Server) handleListAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := s.ledger.ListAssets(r.Context())
	if err != nil {
		s.writeError(w, r, applog.OpList, err)
		return
	}
	OK("", mapSlice(assets, toAssetJSON)).Write(w)
}

func (s *Server) handleGetAsset(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, applog.OpRead, err)
		return
	}
	asset, err := s.ledger.GetAsset(r.Context(), id)
	if err != nil {
		s.writeError(w, r, applog.OpRead, err)
		return
	}
	OK("", toAssetJSON(asset)).Write(w)
}

func (s *Server) handleCreateAsset(w http.ResponseWriter, r *http.Request) {
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		BadRequestError(i18n.T(s.language(r), i18n.InvalidInput)).Write(w)
		return
	}
	in, err := parseAssetInput(p)
	if err != nil {
		s.writeError(w, r, applog.OpCreate, err)
		return
	}

	asset, err := s.ledger.CreateAsset(r.Context(), in)
	if err != nil {
		s.writeError(w, r, applog.OpCreate, err)
		return
	}
	Created(i18n.T(s.language(r), i18n.AssetAdded), toAssetJSON(asset)).Write(w)
}

func (s *Server) handleUpdateAsset(w http.ResponseWriter, r *http.Request) {
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
	in, err := parseAssetInput(p)
	if err != nil {
		s.writeError(w, r, applog.OpUpdate, err)
		return
	}

	if err := s.ledger.UpdateAsset(r.Context(), id, in); err != nil {
		s.writeError(w, r, applog.OpUpdate, err)
		return
	}
	asset, err := s.ledger.GetAsset(r.Context(), id)
	if err != nil {
		s.writeError(w, r, applog.OpRead, err)
		return
	}
	OK(i18n.T(s.language(r), i18n.AssetUpdated), toAssetJSON(asset)).Write(w)
}

func (s *Server) handleDeleteAsset(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, applog.OpDelete, err)
		return
	}
	if err := s.ledger.DeleteAsset(r.Context(), id); err != nil {
		s.writeError(w, r, applog.OpDelete, err)
		return
	}
	OK(i18n.T(s.language(r), i18n.AssetDeleted), nil).Write(w)
}
