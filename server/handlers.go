package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"cancionero/config"
	"cancionero/logger"
	"cancionero/repository"
)

// APIHandler handles all API requests.
type APIHandler struct {
	songRepo repository.SongRepository
	cfg      *config.Config
}

// NewAPIHandler creates a new API handler.
func NewAPIHandler(songRepo repository.SongRepository, cfg *config.Config) *APIHandler {
	return &APIHandler{
		songRepo: songRepo,
		cfg:      cfg,
	}
}

func (h *APIHandler) cacheTTL() time.Duration {
	return time.Duration(h.cfg.CacheTTLSeconds) * time.Second
}

// respondJSON writes a JSON body with the given status code.
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Error("Failed to encode response", logger.ErrorField(err))
		}
	}
}

// respondMessage writes the {"mensaje": ...} body every error and
// confirmation response uses.
func respondMessage(w http.ResponseWriter, status int, mensaje string) {
	respondJSON(w, status, map[string]string{"mensaje": mensaje})
}

// respondStoreError translates a repository error to the response taxonomy:
// not found 404, integrity conflict 409, anything else 500 with the cause in
// the message body.
func (h *APIHandler) respondStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		respondMessage(w, http.StatusNotFound, "Canción no encontrada.")
	case errors.Is(err, repository.ErrConflict):
		respondMessage(w, http.StatusConflict, "Error de integridad de datos. Posiblemente un campo UNIQUE duplicado.")
	default:
		logger.Error("Store operation failed", logger.ErrorField(err))
		respondMessage(w, http.StatusInternalServerError, "Error interno del servidor: "+err.Error())
	}
}
