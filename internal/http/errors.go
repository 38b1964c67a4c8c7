package http

import (
	"errors"
	"net/http"

	"bankfolio/internal/core"
	"bankfolio/internal/i18n"
	applog "bankfolio/internal/log"
)

// writeError maps a ledger error to a status code and a localized message.
func (s *Server) writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	ctx := r.Context()
	lang := s.language(r)
	logger := applog.FromContext(ctx)

	var (
		validationErr *core.ValidationError
		notFoundErr   *core.NotFoundError
		inUseErr      *core.AccountInUseError
	)

	switch {
	case errors.As(err, &inUseErr):
		logger.WarnContext(ctx, "Account still referenced", applog.FieldOperation, op, applog.FieldAccountID, inUseErr.AccountID)
		NewJSONResponse().
			Status(http.StatusConflict).
			Error(APIError{
				Code:    applog.ErrorTypeConflict,
				Message: i18n.T(lang, i18n.AccountInUse),
				Detail:  inUseErr.Error(),
			}).
			Write(w)
	case errors.As(err, &validationErr):
		logger.InfoContext(ctx, "Rejected invalid input", applog.FieldOperation, op, applog.FieldError, err)
		NewJSONResponse().
			Status(http.StatusUnprocessableEntity).
			Error(APIError{
				Code:    applog.ErrorTypeValidation,
				Message: i18n.T(lang, i18n.InvalidInput),
				Field:   validationErr.Field,
				Detail:  validationErr.Reason,
			}).
			Write(w)
	case errors.As(err, &notFoundErr), errors.Is(err, core.ErrNotFound):
		NewJSONResponse().
			Status(http.StatusNotFound).
			Error(APIError{
				Code:    applog.ErrorTypeNotFound,
				Message: i18n.T(lang, i18n.NotFound),
				Detail:  err.Error(),
			}).
			Write(w)
	default:
		applog.NewStructuredLogger(logger).LogError(ctx, "Request failed", err, applog.ComponentHTTP, op, nil)
		ErrorResponse(http.StatusInternalServerError, applog.ErrorTypeInternal, i18n.T(lang, i18n.InternalError)).Write(w)
	}
}
