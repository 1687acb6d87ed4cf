package service

import (
	"context"
	"strings"

	"github.com/BuzzLyutic/collabtask-api/internal/activity"
	"github.com/BuzzLyutic/collabtask-api/internal/model"
	"github.com/BuzzLyutic/collabtask-api/internal/perm"
	"github.com/BuzzLyutic/collabtask-api/internal/repo"
)

type CommentService struct {
	tasks         repo.TaskRepository
	collaborators repo.CollaboratorRepository
	comments      repo.CommentRepository
	events        repo.NotificationRepository
}

func NewCommentService(
	tasks repo.TaskRepository,
	collaborators repo.CollaboratorRepository,
	comments repo.CommentRepository,
	events repo.NotificationRepository,
) *CommentService {
	return &CommentService{
		tasks:         tasks,
		collaborators: collaborators,
		comments:      comments,
		events:        events,
	}
}

type CreateCommentInput struct {
	Body     string `json:"body"`
	ParentID *int64 `json:"parent_id"`
}

func (s *CommentService) Create(ctx context.Context, actor model.User, taskID int64, in CreateCommentInput) (model.Comment, error) {
	t, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		return model.Comment{}, err
	}

	links, err := s.collaborators.ListByTask(ctx, taskID)
	if err != nil {
		return model.Comment{}, err
	}
	if !perm.CanComment(actor, t, links) {
		return model.Comment{}, ErrForbidden
	}

	if strings.TrimSpace(in.Body) == "" {
		return model.Comment{}, ErrValidation
	}

	if in.ParentID != nil {
		parent, err := s.comments.Get(ctx, *in.ParentID)
		if err != nil {
			return model.Comment{}, err
		}
		// Родитель из той же задачи, и только один уровень вложенности:
		// отвечать на ответ нельзя
		if parent.TaskID != taskID || parent.ParentID != nil {
			return model.Comment{}, ErrValidation
		}
	}

	c := model.Comment{
		TaskID:   taskID,
		UserID:   &actor.ID,
		ParentID: in.ParentID,
		Body:     in.Body,
	}

	created, err := s.comments.Create(ctx, c, &repo.ActivityEntry{
		UserID:      actor.ID,
		Description: activity.CommentAdded(),
	})
	if err != nil {
		return created, err
	}

	s.events.Enqueue(ctx, model.NotificationEvent{
		Kind:    model.EventCommentAdded,
		TaskID:  taskID,
		ActorID: &actor.ID,
	})

	return created, nil
}

func (s *CommentService) ListByTask(ctx context.Context, actor model.User, taskID int64) ([]model.Comment, error) {
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
	return s.comments.ListByTask(ctx, taskID)
}

// Delete разрешен автору комментария, владельцу задачи и админу
func (s *CommentService) Delete(ctx context.Context, actor model.User, id int64) error {
	c, err := s.comments.Get(ctx, id)
	if err != nil {
		return err
	}

	t, err := s.tasks.Get(ctx, c.TaskID)
	if err != nil {
		return err
	}

	isAuthor := c.UserID != nil && *c.UserID == actor.ID
	if !actor.IsAdmin() && !isAuthor && t.OwnerID != actor.ID {
		return ErrForbidden
	}
	return s.comments.Delete(ctx, id)
}
