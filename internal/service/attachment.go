package service

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/BuzzLyutic/collabtask-api/internal/activity"
	"github.com/BuzzLyutic/collabtask-api/internal/model"
	"github.com/BuzzLyutic/collabtask-api/internal/perm"
	"github.com/BuzzLyutic/collabtask-api/internal/repo"
)

type AttachmentService struct {
	tasks         repo.TaskRepository
	collaborators repo.CollaboratorRepository
	attachments   repo.AttachmentRepository
}

func NewAttachmentService(
	tasks repo.TaskRepository,
	collaborators repo.CollaboratorRepository,
	attachments repo.AttachmentRepository,
) *AttachmentService {
	return &AttachmentService{
		tasks:         tasks,
		collaborators: collaborators,
		attachments:   attachments,
	}
}

type AddAttachmentInput struct {
	Kind string `json:"kind"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Add сохраняет метаданные вложения. Для file/image путь в хранилище
// генерируется здесь, для link хранится только внешний URL —
// поля взаимоисключающие
func (s *AttachmentService) Add(ctx context.Context, actor model.User, taskID int64, in AddAttachmentInput) (model.Attachment, error) {
	t, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		return model.Attachment{}, err
	}

	links, err := s.collaborators.ListByTask(ctx, taskID)
	if err != nil {
		return model.Attachment{}, err
	}
	if !perm.CanEdit(actor, t, links) {
		return model.Attachment{}, ErrForbidden
	}

	if strings.TrimSpace(in.Name) == "" {
		return model.Attachment{}, ErrValidation
	}

	a := model.Attachment{
		TaskID: taskID,
		UserID: &actor.ID,
		Kind:   in.Kind,
		Name:   in.Name,
	}
	switch in.Kind {
	case model.AttachmentFile, model.AttachmentImage:
		stored := fmt.Sprintf("attachments/%s%s", uuid.NewString(), filepath.Ext(in.Name))
		a.Path = &stored
	case model.AttachmentLink:
		if strings.TrimSpace(in.URL) == "" {
			return model.Attachment{}, ErrValidation
		}
		a.URL = &in.URL
	default:
		return model.Attachment{}, ErrValidation
	}

	return s.attachments.Create(ctx, a, &repo.ActivityEntry{
		UserID:      actor.ID,
		Description: activity.AttachmentAdded(a.Name),
	})
}

func (s *AttachmentService) ListByTask(ctx context.Context, actor model.User, taskID int64) ([]model.Attachment, error) {
	t, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}

	links, err := s.collaborators.ListByTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !perm.CanView(actor, t, links) {
		return nil, ErrForbidden
	}
	return s.attachments.ListByTask(ctx, taskID)
}

func (s *AttachmentService) Remove(ctx context.Context, actor model.User, id int64) error {
	a, err := s.attachments.Get(ctx, id)
	if err != nil {
		return err
	}

	t, err := s.tasks.Get(ctx, a.TaskID)
	if err != nil {
		return err
	}

	links, err := s.collaborators.ListByTask(ctx, a.TaskID)
	if err != nil {
		return err
	}
	if !perm.CanEdit(actor, t, links) {
		return ErrForbidden
	}

	return s.attachments.Delete(ctx, id, &repo.ActivityEntry{
		UserID:      actor.ID,
		Description: activity.AttachmentRemoved(a.Name),
	})
}
