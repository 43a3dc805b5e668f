package server

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"cancionero/cache"
	"cancionero/logger"
	"cancionero/model"
	"cancionero/repository"

	"github.com/gorilla/mux"
)

const (
	msgNotFound      = "Canción no encontrada."
	msgInvalidJSON   = "Datos JSON inválidos."
	msgInvalidFilter = "Filtro de duración no válido. Use 'corta', 'media' o 'larga'."
	msgMissingFields = "Faltan campos obligatorios (titulo, artista, duracion válido)."
	msgInvalidDur    = "La duración debe ser un entero mayor que cero."
	msgInvalidFecha  = "Formato de fecha_lanzamiento inválido. Use AAAA-MM-DD."
	msgInvalidHora   = "Formato de hora_estreno inválido. Use HH:MM:SS."
)

// parseDurationFilter normalizes the duracion query value. Both the Spanish
// bucket names and the English category labels are accepted.
func parseDurationFilter(raw string) (repository.DurationFilter, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return repository.FilterNone, true
	case "corta", "short":
		return repository.FilterShort, true
	case "media", "medium":
		return repository.FilterMedium, true
	case "larga", "long":
		return repository.FilterLong, true
	default:
		return repository.FilterNone, false
	}
}

func parseFecha(value string) (time.Time, error) {
	return time.Parse("2006-01-02", value)
}

func validateHora(value string) error {
	_, err := time.Parse("15:04:05", value)
	return err
}

func songIDFromRequest(r *http.Request) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
}

// ListSongsHandler returns active songs, optionally restricted to one
// duration bucket. Responses are cached per filter until the next mutation.
func (h *APIHandler) ListSongsHandler(w http.ResponseWriter, r *http.Request) {
	rawFilter := r.URL.Query().Get("duracion")
	filter, ok := parseDurationFilter(rawFilter)
	if !ok {
		respondMessage(w, http.StatusBadRequest, msgInvalidFilter)
		return
	}

	if payload, hit := cache.GetSongList(r.Context(), string(filter)); hit {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(payload)
		return
	}

	songs, err := h.songRepo.ListActiveSongs(r.Context(), filter)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}

	responses := make([]*model.SongResponse, 0, len(songs))
	for _, song := range songs {
		responses = append(responses, song.ToResponse())
	}

	payload, err := json.Marshal(responses)
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "Error interno del servidor: "+err.Error())
		return
	}

	cache.SetSongList(r.Context(), string(filter), payload, h.cacheTTL())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}

// GetSongHandler returns one active song by id. Inactive songs respond 404,
// indistinguishable from absent ones.
func (h *APIHandler) GetSongHandler(w http.ResponseWriter, r *http.Request) {
	id, err := songIDFromRequest(r)
	if err != nil {
		respondMessage(w, http.StatusNotFound, msgNotFound)
		return
	}

	song, err := h.songRepo.GetSongByID(r.Context(), id, true)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	if song == nil {
		respondMessage(w, http.StatusNotFound, msgNotFound)
		return
	}

	respondJSON(w, http.StatusOK, song.ToResponse())
}

// CreateSongHandler validates the payload and persists a new song with
// activo defaulted to true.
func (h *APIHandler) CreateSongHandler(w http.ResponseWriter, r *http.Request) {
	var req model.CreateSongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	if strings.TrimSpace(req.Titulo) == "" || strings.TrimSpace(req.Artista) == "" || req.Duracion <= 0 {
		respondMessage(w, http.StatusBadRequest, msgMissingFields)
		return
	}

	song := &model.Song{
		Titulo:   req.Titulo,
		Artista:  req.Artista,
		Duracion: req.Duracion,
		Activo:   true,
	}
	if req.Album.Valid {
		song.Album = sql.NullString{String: req.Album.Value, Valid: true}
	}
	if req.Anio.Valid {
		song.Anio = sql.NullInt64{Int64: int64(req.Anio.Value), Valid: true}
	}
	if req.FechaLanzamiento.Valid {
		fecha, err := parseFecha(req.FechaLanzamiento.Value)
		if err != nil {
			respondMessage(w, http.StatusBadRequest, msgInvalidFecha)
			return
		}
		song.FechaLanzamiento = sql.NullTime{Time: fecha, Valid: true}
	}
	if req.HoraEstreno.Valid {
		if err := validateHora(req.HoraEstreno.Value); err != nil {
			respondMessage(w, http.StatusBadRequest, msgInvalidHora)
			return
		}
		song.HoraEstreno = sql.NullString{String: req.HoraEstreno.Value, Valid: true}
	}
	if req.Descripcion.Valid {
		song.Descripcion = sql.NullString{String: req.Descripcion.Value, Valid: true}
	}
	if req.EmailContacto.Valid {
		song.EmailContacto = sql.NullString{String: req.EmailContacto.Value, Valid: true}
	}

	tx, err := h.songRepo.BeginTx(r.Context())
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	id, err := h.songRepo.CreateSongWithTx(r.Context(), tx, song)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	if err := tx.Commit(); err != nil {
		h.respondStoreError(w, err)
		return
	}
	committed = true
	song.ID = id

	cache.InvalidateSongLists(r.Context())
	respondJSON(w, http.StatusCreated, song.ToResponse())
}

// UpdateSongHandler applies a partial update to an active song: only keys
// present in the payload change, and an explicit null clears a nullable
// field. An invalid duracion rejects the request before any field applies.
func (h *APIHandler) UpdateSongHandler(w http.ResponseWriter, r *http.Request) {
	id, err := songIDFromRequest(r)
	if err != nil {
		respondMessage(w, http.StatusNotFound, msgNotFound)
		return
	}

	var req model.UpdateSongRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondMessage(w, http.StatusBadRequest, msgInvalidJSON)
		return
	}

	// duracion gates the whole request: present but null, zero or negative
	// fails before anything else is considered.
	if req.Duracion.Set && (!req.Duracion.Valid || req.Duracion.Value <= 0) {
		respondMessage(w, http.StatusBadRequest, msgInvalidDur)
		return
	}
	if req.Titulo.Set && (!req.Titulo.Valid || strings.TrimSpace(req.Titulo.Value) == "") {
		respondMessage(w, http.StatusBadRequest, "El título no puede estar vacío.")
		return
	}
	if req.Artista.Set && (!req.Artista.Valid || strings.TrimSpace(req.Artista.Value) == "") {
		respondMessage(w, http.StatusBadRequest, "El artista no puede estar vacío.")
		return
	}
	if req.Activo.Set && !req.Activo.Valid {
		respondMessage(w, http.StatusBadRequest, "El campo activo debe ser booleano.")
		return
	}

	var fechaLanzamiento sql.NullTime
	if req.FechaLanzamiento.Valid {
		fecha, err := parseFecha(req.FechaLanzamiento.Value)
		if err != nil {
			respondMessage(w, http.StatusBadRequest, msgInvalidFecha)
			return
		}
		fechaLanzamiento = sql.NullTime{Time: fecha, Valid: true}
	}
	if req.HoraEstreno.Valid {
		if err := validateHora(req.HoraEstreno.Value); err != nil {
			respondMessage(w, http.StatusBadRequest, msgInvalidHora)
			return
		}
	}

	tx, err := h.songRepo.BeginTx(r.Context())
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	song, err := h.songRepo.GetSongByIDWithTx(r.Context(), tx, id, true)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	if song == nil {
		respondMessage(w, http.StatusNotFound, msgNotFound)
		return
	}

	if req.Titulo.Set {
		song.Titulo = req.Titulo.Value
	}
	if req.Artista.Set {
		song.Artista = req.Artista.Value
	}
	if req.Duracion.Set {
		song.Duracion = req.Duracion.Value
	}
	if req.Album.Set {
		song.Album = sql.NullString{String: req.Album.Value, Valid: req.Album.Valid}
	}
	if req.Anio.Set {
		song.Anio = sql.NullInt64{Int64: int64(req.Anio.Value), Valid: req.Anio.Valid}
	}
	if req.FechaLanzamiento.Set {
		song.FechaLanzamiento = fechaLanzamiento
	}
	if req.HoraEstreno.Set {
		song.HoraEstreno = sql.NullString{String: req.HoraEstreno.Value, Valid: req.HoraEstreno.Valid}
	}
	if req.Descripcion.Set {
		song.Descripcion = sql.NullString{String: req.Descripcion.Value, Valid: req.Descripcion.Valid}
	}
	if req.EmailContacto.Set {
		song.EmailContacto = sql.NullString{String: req.EmailContacto.Value, Valid: req.EmailContacto.Valid}
	}
	if req.Activo.Set {
		song.Activo = req.Activo.Value
	}

	if err := h.songRepo.UpdateSongWithTx(r.Context(), tx, song); err != nil {
		h.respondStoreError(w, err)
		return
	}
	if err := tx.Commit(); err != nil {
		h.respondStoreError(w, err)
		return
	}
	committed = true

	cache.InvalidateSongLists(r.Context())
	respondJSON(w, http.StatusOK, song.ToResponse())
}

// DeleteSongHandler soft-deletes an active song. An already-inactive song is
// reported exactly like an absent one.
func (h *APIHandler) DeleteSongHandler(w http.ResponseWriter, r *http.Request) {
	id, err := songIDFromRequest(r)
	if err != nil {
		respondMessage(w, http.StatusNotFound, msgNotFound)
		return
	}

	tx, err := h.songRepo.BeginTx(r.Context())
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	song, err := h.songRepo.GetSongByIDWithTx(r.Context(), tx, id, true)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	if song == nil {
		respondMessage(w, http.StatusNotFound, msgNotFound)
		return
	}

	if err := h.songRepo.SetSongActiveWithTx(r.Context(), tx, id, false); err != nil {
		h.respondStoreError(w, err)
		return
	}
	if err := tx.Commit(); err != nil {
		h.respondStoreError(w, err)
		return
	}
	committed = true

	cache.InvalidateSongLists(r.Context())
	logger.Info("Song soft-deleted", logger.Int64("songId", id))
	respondMessage(w, http.StatusOK, fmt.Sprintf("Canción '%s' dada de baja exitosamente.", song.Titulo))
}

// RestoreSongHandler reactivates a soft-deleted song. An already-active song
// is reported exactly like an absent one.
func (h *APIHandler) RestoreSongHandler(w http.ResponseWriter, r *http.Request) {
	id, err := songIDFromRequest(r)
	if err != nil {
		respondMessage(w, http.StatusNotFound, msgNotFound)
		return
	}

	tx, err := h.songRepo.BeginTx(r.Context())
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	committed := false
	defer func() {
		if !committed {
			tx.Rollback()
		}
	}()

	song, err := h.songRepo.GetSongByIDWithTx(r.Context(), tx, id, false)
	if err != nil {
		h.respondStoreError(w, err)
		return
	}
	if song == nil {
		respondMessage(w, http.StatusNotFound, msgNotFound)
		return
	}

	if err := h.songRepo.SetSongActiveWithTx(r.Context(), tx, id, true); err != nil {
		h.respondStoreError(w, err)
		return
	}
	if err := tx.Commit(); err != nil {
		h.respondStoreError(w, err)
		return
	}
	committed = true

	cache.InvalidateSongLists(r.Context())
	logger.Info("Song restored", logger.Int64("songId", id))
	respondMessage(w, http.StatusOK, fmt.Sprintf("Canción '%s' restaurada exitosamente.", song.Titulo))
}
