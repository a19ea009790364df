package ingestion

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/carelens-ai/platform/pkg/common/logger"
	"github.com/carelens-ai/platform/pkg/common/models"
	"github.com/carelens-ai/platform/pkg/mentions"
	"github.com/gorilla/mux"
)

type HTTPHandler struct {
	service *Service
	maxBody int64
}

func NewHTTPHandler(service *Service, maxBody int64) *HTTPHandler {
	return &HTTPHandler{service: service, maxBody: maxBody}
}

func (h *HTTPHandler) Register(router *mux.Router) {
	router.HandleFunc("/mentions", h.handleBatch).Methods(http.MethodPost)
	router.HandleFunc("/notes/classify", h.handleClassify).Methods(http.MethodPost)
	router.HandleFunc("/batches/{id}", h.handleBatchStatus).Methods(http.MethodGet)
}

func (h *HTTPHandler) handleBatch(w http.ResponseWriter, r *http.Request) {
	if h.maxBody > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	}

	var req models.MentionBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Log.WithError(err).Warn("invalid mention batch payload")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	resp, err := h.service.Process(r.Context(), req)
	if err != nil {
		if IsValidationError(err) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		logger.Log.WithError(err).Error("failed to process mention batch")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(resp)
}

func (h *HTTPHandler) handleClassify(w http.ResponseWriter, r *http.Request) {
	if h.maxBody > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxBody)
	}

	var req models.ClassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Log.WithError(err).Warn("invalid classify payload")
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	resp := h.service.ClassifyNote(req.Text)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

func (h *HTTPHandler) handleBatchStatus(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]

	batch, err := h.service.Status(r.Context(), id)
	if err != nil {
		if errors.Is(err, mentions.ErrNotFound) {
			http.Error(w, "batch not found", http.StatusNotFound)
			return
		}
		logger.Log.WithError(err).Error("failed to fetch batch status")
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(batch)
}
