package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/davidbz/promptgate/internal/domain"
	"github.com/davidbz/promptgate/internal/observability"
)

const maxRequestBodyBytes = 1 << 20

// Fixed response bodies for request and backend failures.
const (
	msgInvalidInput   = "Invalid input"
	msgMissingInput   = "Please provide input text"
	msgBackendFailure = "Backend request failed"
	msgInternalError  = "Internal server error"
)

// Handler handles HTTP requests.
type Handler struct {
	gateway *domain.GatewayService
}

// NewHandler creates a new HTTP handler (DI constructor).
func NewHandler(gateway *domain.GatewayService) *Handler {
	return &Handler{
		gateway: gateway,
	}
}

// HandleCompletion renders the posted input through the prompt template and
// returns the backend text as plain text.
func (h *Handler) HandleCompletion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.FromContext(ctx)

	// Early validation.
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeText(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	input, err := domain.DecodeInput(http.MaxBytesReader(w, r.Body, maxRequestBodyBytes))
	if err != nil {
		logger.Info("rejected completion request", observability.Error(err))
		writeError(w, err)
		return
	}

	logger.Info("completion request received",
		observability.Int("input_length", len(input)))

	text, err := h.gateway.Complete(ctx, input)
	if err != nil {
		writeError(w, err)
		return
	}

	writeText(w, http.StatusOK, text)
}

// promptInfo describes the loaded template and the parameters sent with it.
type promptInfo struct {
	Name            string                 `json:"name"`
	Description     string                 `json:"description,omitempty"`
	Placeholder     string                 `json:"placeholder"`
	Backend         string                 `json:"backend"`
	Model           string                 `json:"model"`
	Sampling        domain.SamplingConfig  `json:"sampling"`
	SidecarDefaults *domain.SamplingConfig `json:"sidecar_defaults,omitempty"`
}

// HandlePrompt reports the template and sampling configuration in use.
func (h *Handler) HandlePrompt(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeText(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	tmpl := h.gateway.Template()
	info := promptInfo{
		Name:            tmpl.Name(),
		Description:     tmpl.Description(),
		Placeholder:     domain.InputPlaceholder,
		Backend:         h.gateway.Backend(),
		Model:           h.gateway.Model(),
		Sampling:        domain.FixedSampling(),
		SidecarDefaults: nil,
	}
	if defaults, ok := tmpl.Defaults(); ok {
		info.SidecarDefaults = &defaults
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(info); err != nil {
		observability.FromContext(r.Context()).Error("failed to encode prompt info", observability.Error(err))
	}
}

// HandleHealth handles health check requests.
func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status": "healthy",
	}); err != nil {
		// Already written status, can't change it, just log.
		return
	}
}

// writeError maps gateway errors to status codes with fixed bodies.
func writeError(w http.ResponseWriter, err error) {
	var backendErr *domain.BackendError

	switch {
	case errors.Is(err, domain.ErrInvalidRequest):
		writeText(w, http.StatusBadRequest, msgInvalidInput)
	case errors.Is(err, domain.ErrMissingInput):
		writeText(w, http.StatusBadRequest, msgMissingInput)
	case errors.As(err, &backendErr):
		writeText(w, http.StatusBadGateway, msgBackendFailure)
	default:
		writeText(w, http.StatusInternalServerError, msgInternalError)
	}
}

// writeText writes body unchanged as plain text.
func writeText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}
