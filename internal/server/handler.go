package server

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/spiffcs/refbot/internal/model"
	"github.com/spiffcs/refbot/internal/service"
)

type (
	MessageRequest struct {
		ChannelID string `json:"channel_id"`
		Content   string `json:"content"`
	}

	MessageResponse struct {
		Links []string `json:"links"`
	}

	TextResponse struct {
		Message string `json:"message"`
	}

	ChoicesResponse struct {
		Choices []ChoiceData `json:"choices"`
	}

	ChoiceData struct {
		Name  string `json:"name"`
		Value string `json:"value"`
	}

	ErrorResponse struct {
		Error ErrorDetail `json:"error"`
	}

	ErrorDetail struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}
)

type handler struct {
	svc *service.Service
	log *slog.Logger
}

func newHandler(svc *service.Service, log *slog.Logger) *handler {
	return &handler{
		svc: svc,
		log: log,
	}
}

func (h *handler) Health(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *handler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	const op = "handler.HandleMessage"

	log := h.log.With(slog.String("op", op))

	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warn("invalid request body", slog.Any("error", err))
		h.writeErrorResponse(w, http.StatusBadRequest, "INVALID_BODY", "invalid request body")
		return
	}

	links := h.svc.HandleMessage(r.Context(), req.ChannelID, req.Content)
	h.writeJSON(w, http.StatusOK, MessageResponse{Links: links})
}

func (h *handler) Metric(w http.ResponseWriter, r *http.Request) {
	kind, err := model.ParseMetricKind(chi.URLParam(r, "metric"))
	if err != nil {
		h.writeErrorResponse(w, http.StatusNotFound, "UNKNOWN_METRIC", err.Error())
		return
	}

	channel := chi.URLParam(r, "channel")
	h.writeJSON(w, http.StatusOK, TextResponse{Message: h.svc.Metric(r.Context(), kind, channel)})
}

func (h *handler) ForgetMetric(w http.ResponseWriter, r *http.Request) {
	kind, err := model.ParseMetricKind(chi.URLParam(r, "metric"))
	if err != nil {
		h.writeErrorResponse(w, http.StatusNotFound, "UNKNOWN_METRIC", err.Error())
		return
	}

	h.svc.ForgetMetric(kind, chi.URLParam(r, "channel"))
	w.WriteHeader(http.StatusNoContent)
}

func (h *handler) Autocomplete(w http.ResponseWriter, r *http.Request) {
	choices := h.svc.Autocomplete(r.Context(), r.URL.Query().Get("q"))

	data := make([]ChoiceData, 0, len(choices))
	for _, c := range choices {
		data = append(data, ChoiceData{Name: c.Name, Value: c.Value})
	}
	h.writeJSON(w, http.StatusOK, ChoicesResponse{Choices: data})
}

func (h *handler) Select(w http.ResponseWriter, r *http.Request) {
	value := chi.URLParam(r, "value")
	h.writeJSON(w, http.StatusOK, TextResponse{Message: h.svc.Select(r.Context(), value)})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

func (h *handler) writeErrorResponse(w http.ResponseWriter, status int, code, message string) {
	h.writeJSON(w, status, ErrorResponse{
		Error: ErrorDetail{
			Code:    code,
			Message: message,
		},
	})
}
