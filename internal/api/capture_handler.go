package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/myvocabin/myvocabin/server/internal/api/respond"
	"github.com/myvocabin/myvocabin/server/internal/api/validate"
	"github.com/myvocabin/myvocabin/server/internal/auth"
	"github.com/myvocabin/myvocabin/server/internal/model"
	"github.com/myvocabin/myvocabin/server/internal/services"
)

// CaptureHandler owns the single capture endpoint every client posts to.
type CaptureHandler struct {
	svc        *services.CaptureService
	authorizer auth.Authorizer
	log        zerolog.Logger
}

func NewCaptureHandler(svc *services.CaptureService, authorizer auth.Authorizer, log zerolog.Logger) *CaptureHandler {
	return &CaptureHandler{svc: svc, authorizer: authorizer, log: log}
}

// capturePayload decodes term loosely so a non-string term is reported as a
// 400 instead of a decode failure blaming the whole body.
type capturePayload struct {
	Term    json.RawMessage `json:"term"`
	Lang    string          `json:"lang"`
	Context string          `json:"context"`
}

// captureResponse is the wire shape of a successful capture. Dedup and
// Updated are only present when the capture hit an existing entry.
type captureResponse struct {
	OK      bool         `json:"ok"`
	Entry   *model.Entry `json:"entry"`
	Dedup   bool         `json:"dedup,omitempty"`
	Updated bool         `json:"updated,omitempty"`
}

// Capture handles POST /api/vocab/entries.
func (h *CaptureHandler) Capture(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	var in capturePayload
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid JSON body")
		return
	}

	var term string
	if len(in.Term) == 0 {
		respond.WriteBadRequest(w, "missing 'term' (string)")
		return
	}
	if err := json.Unmarshal(in.Term, &term); err != nil {
		respond.WriteBadRequest(w, "'term' must be a string")
		return
	}
	if err := validate.Term(term); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	if err := validate.Lang(in.Lang); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	if err := validate.Context(in.Context); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	res, err := h.svc.Capture(r.Context(), userID, model.CaptureRequest{
		Term:    term,
		Lang:    in.Lang,
		Context: in.Context,
	})
	if err != nil {
		h.writeCaptureError(w, r, err)
		return
	}

	respond.WriteJSON(w, http.StatusOK, captureResponse{
		OK:      true,
		Entry:   res.Entry,
		Dedup:   res.Dedup,
		Updated: res.Updated,
	})
}

func (h *CaptureHandler) authorize(w http.ResponseWriter, r *http.Request) (string, bool) {
	token, err := auth.ExtractBearerToken(r)
	if err != nil {
		respond.WriteUnauthorized(w, err.Error())
		return "", false
	}
	user, err := h.authorizer.Authorize(r.Context(), token)
	if err != nil {
		respond.WriteUnauthorized(w, "unauthorized")
		return "", false
	}
	return user.UserID, true
}

func (h *CaptureHandler) writeCaptureError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, model.ErrValidation):
		respond.WriteBadRequest(w, err.Error())
	case errors.Is(err, model.ErrUnauthorized):
		respond.WriteUnauthorized(w, "unauthorized")
	default:
		// Storage-level failures surface as 400 to the caller; the dedup
		// path has already absorbed expected conflicts.
		h.log.Error().Stack().Err(err).
			Str("method", r.Method).
			Str("url", r.URL.String()).
			Msg("capture failed")
		respond.WriteBadRequest(w, err.Error())
	}
}
