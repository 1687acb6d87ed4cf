package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/collabtask-api/internal/service"
	"github.com/BuzzLyutic/collabtask-api/pkg/respond"
)

type AttachmentHandler struct {
	service *service.AttachmentService
	logger  *zap.Logger
}

func NewAttachmentHandler(srv *service.AttachmentService, logger *zap.Logger) *AttachmentHandler {
	return &AttachmentHandler{
		service: srv,
		logger:  logger,
	}
}

func (h *AttachmentHandler) Add(w http.ResponseWriter, r *http.Request) {
	taskID, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	var req service.AddAttachmentInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid json")
		return
	}

	attachment, err := h.service.Add(r.Context(), CurrentUser(r), taskID, req)
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusCreated, attachment)
}

func (h *AttachmentHandler) ListByTask(w http.ResponseWriter, r *http.Request) {
	taskID, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	attachments, err := h.service.ListByTask(r.Context(), CurrentUser(r), taskID)
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, attachments)
}

func (h *AttachmentHandler) Remove(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	if err := h.service.Remove(r.Context(), CurrentUser(r), id); err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	respond.NoContent(w, r)
}
