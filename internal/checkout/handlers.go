package checkout

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/noah-isme/toko-till/internal/common"
)

// DefaultMaxBodyBytes caps request bodies when Handler.MaxBodyBytes is unset.
const DefaultMaxBodyBytes = 1 << 20

type Handler struct {
	Svc          *Service
	MaxBodyBytes int64
}

// Quote responds with the JSON quote.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "checkout service not configured", nil)
		return
	}
	payload, ok := h.decode(w, r)
	if !ok {
		return
	}
	out, err := h.Svc.Quote(r.Context(), payload)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": out})
}

// Invoice responds with the plain text invoice.
func (h *Handler) Invoice(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "checkout service not configured", nil)
		return
	}
	payload, ok := h.decode(w, r)
	if !ok {
		return
	}
	out, err := h.Svc.Invoice(r.Context(), payload)
	if err != nil {
		h.writeError(w, err)
		return
	}
	common.Text(w, http.StatusOK, out)
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (Request, bool) {
	limit := h.MaxBodyBytes
	if limit <= 0 {
		limit = DefaultMaxBodyBytes
	}
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	var payload Request
	if err := dec.Decode(&payload); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			common.JSONError(w, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "request body too large", nil)
			return Request{}, false
		}
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return Request{}, false
	}
	return payload, true
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	if err == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "unknown error", nil)
		return
	}
	var appErr *common.AppError
	if errors.As(err, &appErr) {
		status := appErr.HTTPStatus
		if status == 0 {
			status = http.StatusBadRequest
		}
		code := appErr.Code
		if code == "" {
			code = "BAD_REQUEST"
		}
		common.JSONError(w, status, code, err.Error(), appErr.Details)
		return
	}
	common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", err.Error(), nil)
}
