package api

import (
	"net/http"

	"github.com/okian/mergington/pkg/logger"
)

// ActivitiesHandler serves the activity listing and participant mutations.
type ActivitiesHandler struct {
	deps   Dependencies
	logger logger.Logger
}

// NewActivitiesHandler creates a new activities handler.
func NewActivitiesHandler(deps Dependencies, log logger.Logger) *ActivitiesHandler {
	return &ActivitiesHandler{deps: deps, logger: log}
}

// HandleList handles GET /activities.
func (h *ActivitiesHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	all, err := h.deps.Activities(r.Context())
	if err != nil {
		h.fail(w, r, "list", err)
		return
	}
	writeJSON(w, http.StatusOK, all)
}

// HandleSignup handles POST /activities/{name}/signup?email=.
func (h *ActivitiesHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	name, email, ok := h.params(w, r)
	if !ok {
		return
	}
	msg, err := h.deps.Signup(r.Context(), name, email)
	if err != nil {
		h.fail(w, r, "signup", err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: msg})
}

// HandleUnregister handles POST /activities/{name}/unregister?email=.
func (h *ActivitiesHandler) HandleUnregister(w http.ResponseWriter, r *http.Request) {
	name, email, ok := h.params(w, r)
	if !ok {
		return
	}
	msg, err := h.deps.Unregister(r.Context(), name, email)
	if err != nil {
		h.fail(w, r, "unregister", err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: msg})
}

// params extracts the activity name and the email query parameter. Only the
// presence of email is checked; its format is not.
func (h *ActivitiesHandler) params(w http.ResponseWriter, r *http.Request) (string, string, bool) {
	q := r.URL.Query()
	if !q.Has("email") {
		status, detail := statusFor(ErrMissingEmail)
		writeDetail(w, status, detail)
		return "", "", false
	}
	return r.PathValue("name"), q.Get("email"), true
}

func (h *ActivitiesHandler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	status, detail := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(r.Context(), "request failed",
			logger.String("op", op),
			logger.String("request_id", RequestIDFrom(r.Context())),
			logger.Error(err),
		)
	}
	writeDetail(w, status, detail)
}
