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

type CommentHandler struct {
	service *service.CommentService
	logger  *zap.Logger
}

func NewCommentHandler(srv *service.CommentService, logger *zap.Logger) *CommentHandler {
	return &CommentHandler{
		service: srv,
		logger:  logger,
	}
}

func (h *CommentHandler) Create(w http.ResponseWriter, r *http.Request) {
	taskID, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	var req service.CreateCommentInput
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid json")
		return
	}

	comment, err := h.service.Create(r.Context(), CurrentUser(r), taskID, req)
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusCreated, comment)
}

func (h *CommentHandler) ListByTask(w http.ResponseWriter, r *http.Request) {
	taskID, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	comments, err := h.service.ListByTask(r.Context(), CurrentUser(r), taskID)
	if err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, comments)
}

func (h *CommentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, _ := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)

	if err := h.service.Delete(r.Context(), CurrentUser(r), id); err != nil {
		handleErrors(w, r, h.logger, err)
		return
	}
	respond.NoContent(w, r)
}
