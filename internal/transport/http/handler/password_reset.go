package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/incial/crm-api/internal/application/auth"
	"github.com/incial/crm-api/internal/domain"
	"github.com/incial/crm-api/internal/pkg/validate"
)

// PasswordResetHandler handles the reset flow: request a code, verify it,
// confirm with a new password.
type PasswordResetHandler struct {
	svc auth.Service
}

func NewPasswordResetHandler(svc auth.Service) *PasswordResetHandler {
	return &PasswordResetHandler{svc: svc}
}

func (h *PasswordResetHandler) Action(w http.ResponseWriter, r *http.Request) {
	switch chi.URLParam(r, "action") {
	case "request":
		var req domain.ResetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := validate.Struct(&req); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		if err := h.svc.RequestReset(r.Context(), req.Email); err != nil {
			// The code is committed even when delivery fails; keep the
			// response generic either way.
			if errors.Is(err, domain.ErrDelivery) {
				writeError(w, http.StatusServiceUnavailable, "could not deliver code, please try again")
				return
			}
			httpError(w, err)
			return
		}
		// Same answer whether or not the account exists.
		writeJSON(w, http.StatusOK, MessageEnvelope{Message: "if the account exists, a code has been sent"})

	case "verify":
		var req domain.VerifyResetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := validate.Struct(&req); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		ok, err := h.svc.VerifyReset(r.Context(), req.Email, req.Otp)
		if err != nil {
			httpError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, VerifyEnvelope{Verified: ok})

	case "confirm":
		var req domain.ConfirmResetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := validate.Struct(&req); err != nil {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		if err := h.svc.ConfirmReset(r.Context(), req); err != nil {
			httpError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, MessageEnvelope{Message: "password updated"})

	default:
		writeError(w, http.StatusBadRequest, "unknown action")
	}
}
