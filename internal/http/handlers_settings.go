package http

import (
	"fmt"
	"net/http"

	"bankfolio/internal/core"
	"bankfolio/internal/i18n"
	applog "bankfolio/internal/log"
)

func (s *Server) currentLanguage() string {
	if s.settings == nil {
		return i18n.English
	}
	return i18n.Normalize(s.settings.Language())
}

func (s *Server) handleGetLanguage(w http.ResponseWriter, r *http.Request) {
	OK("", languageJSON{Language: s.currentLanguage(), Supported: i18n.Supported()}).Write(w)
}

func (s *Server) handleSetLanguage(w http.ResponseWriter, r *http.Request) {
	p := NewRequestBodyParser(r)
	if err := p.Parse(); err != nil {
		BadRequestError(i18n.T(s.language(r), i18n.InvalidInput)).Write(w)
		return
	}
	lang := p.Get("language")
	if !i18n.IsSupported(lang) {
		s.writeError(w, r, applog.OpUpdate, &core.ValidationError{
			Field:  "language",
			Reason: fmt.Sprintf("%q is not one of %v", lang, i18n.Supported()),
		})
		return
	}
	s.storeLanguage(w, r, i18n.Normalize(lang))
}

// handleSwitchLanguage toggles to the next supported language.
func (s *Server) handleSwitchLanguage(w http.ResponseWriter, r *http.Request) {
	s.storeLanguage(w, r, i18n.Next(s.currentLanguage()))
}

func (s *Server) storeLanguage(w http.ResponseWriter, r *http.Request, lang string) {
	if s.settings == nil {
		s.writeError(w, r, applog.OpUpdate, fmt.Errorf("settings are not configured"))
		return
	}
	if err := s.settings.SetLanguage(lang); err != nil {
		s.writeError(w, r, applog.OpUpdate, fmt.Errorf("save language: %w", err))
		return
	}
	applog.FromContext(r.Context()).InfoContext(r.Context(), "Language changed", applog.FieldLanguage, lang)
	OK(i18n.T(lang, i18n.LanguageChanged), languageJSON{Language: lang, Supported: i18n.Supported()}).Write(w)
}
