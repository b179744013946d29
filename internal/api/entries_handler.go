package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/myvocabin/myvocabin/server/internal/api/respond"
	"github.com/myvocabin/myvocabin/server/internal/auth"
	"github.com/myvocabin/myvocabin/server/internal/model"
	"github.com/myvocabin/myvocabin/server/internal/services"
	"github.com/myvocabin/myvocabin/server/internal/store"
)

// EntriesHandler serves the read/delete surface the app screens use.
type EntriesHandler struct {
	svc        *services.CaptureService
	authorizer auth.Authorizer
	log        zerolog.Logger
}

func NewEntriesHandler(svc *services.CaptureService, authorizer auth.Authorizer, log zerolog.Logger) *EntriesHandler {
	return &EntriesHandler{svc: svc, authorizer: authorizer, log: log}
}

// List handles GET /api/vocab/entries. A q parameter switches to full-text
// search over term, context and translation.
func (h *EntriesHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	limit := 0
	if s := q.Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 {
			respond.WriteBadRequest(w, "limit must be a positive integer")
			return
		}
		limit = n
	}

	var (
		out []*model.Entry
		err error
	)
	if query := q.Get("q"); query != "" {
		out, err = h.svc.SearchEntries(r.Context(), userID, query, limit)
	} else {
		out, err = h.svc.ListEntries(r.Context(), userID, limit)
	}
	if err != nil {
		h.log.Error().Stack().Err(err).Msg("list entries failed")
		respond.WriteInternalError(w, "could not list entries")
		return
	}
	if out == nil {
		out = []*model.Entry{}
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"entries": out, "count": len(out)})
}

// Delete handles DELETE /api/vocab/entries/{entryId}.
func (h *EntriesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := h.authorize(w, r)
	if !ok {
		return
	}

	entryID := mux.Vars(r)["entryId"]
	if err := h.svc.DeleteEntry(r.Context(), userID, entryID); err != nil {
		if store.IsNotFound(err) {
			respond.WriteNotFound(w, "entry not found")
			return
		}
		h.log.Error().Stack().Err(err).Str("entry_id", entryID).Msg("delete entry failed")
		respond.WriteInternalError(w, "could not delete entry")
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}

func (h *EntriesHandler) authorize(w http.ResponseWriter, r *http.Request) (string, bool) {
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
