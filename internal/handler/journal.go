package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/collabtask-api/internal/service"
	"github.com/BuzzLyutic/collabtask-api/pkg/respond"
)

type JournalHandler struct {
	service *service.JournalService
	logger  *zap.Logger
}

func NewJournalHandler(srv *service.JournalService, logger *zap.Logger) *JournalHandler {
	return &JournalHandler{
		service: srv,
		logger:  logger,
	}
}

// Дата в URL в формате 2006-01-02
func journalDate(r *http.Request) (time.Time, bool) {
	d, err := time.Parse("2006-01-02", chi.URLParam(r, "date"))
	return d, err == nil
}

func (h *JournalHandler) Entry(w http.ResponseWriter, r *http.Request) {
	date, ok := journalDate(r)
	if !ok {
		respond.Error(w, r, http.StatusBadRequest, "invalid date")
		return
	}

	entry, err := h.service.Entry(r.Context(), CurrentUser(r), date)
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, entry)
}

func (h *JournalHandler) SetMood(w http.ResponseWriter, r *http.Request) {
	date, ok := journalDate(r)
	if !ok {
		respond.Error(w, r, http.StatusBadRequest, "invalid date")
		return
	}

	var req struct {
		Mood *string `json:"mood"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid json")
		return
	}

	journal, err := h.service.SetMood(r.Context(), CurrentUser(r), date, req.Mood)
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, journal)
}

func (h *JournalHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	date, ok := journalDate(r)
	if !ok {
		respond.Error(w, r, http.StatusBadRequest, "invalid date")
		return
	}

	var req service.NoteInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid json")
		return
	}

	note, err := h.service.AddNote(r.Context(), CurrentUser(r), date, req)
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusCreated, note)
}

func (h *JournalHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	var req service.NoteInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid json")
		return
	}

	note, err := h.service.UpdateNote(r.Context(), CurrentUser(r), id, req)
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, note)
}

func (h *JournalHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	if err := h.service.DeleteNote(r.Context(), CurrentUser(r), id); err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	respond.NoContent(w, r)
}
