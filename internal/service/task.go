package service

import (
	"context"
	"strings"
	"time"

	"github.com/BuzzLyutic/collabtask-api/internal/activity"
	"github.com/BuzzLyutic/collabtask-api/internal/model"
	"github.com/BuzzLyutic/collabtask-api/internal/perm"
	"github.com/BuzzLyutic/collabtask-api/internal/repo"
)

type TaskService struct {
	tasks         repo.TaskRepository
	collaborators repo.CollaboratorRepository
	activities    repo.ActivityRepository
	events        repo.NotificationRepository
}

func NewTaskService(
	tasks repo.TaskRepository,
	collaborators repo.CollaboratorRepository,
	activities repo.ActivityRepository,
	events repo.NotificationRepository,
) *TaskService {
	return &TaskService{
		tasks:         tasks,
		collaborators: collaborators,
		activities:    activities,
		events:        events,
	}
}

type CollaboratorInput struct {
	UserID     int64  `json:"user_id"`
	Permission string `json:"permission"`
}

type CreateTaskInput struct {
	Title         string              `json:"title"`
	Description   string              `json:"description"`
	Priority      string              `json:"priority"`
	DueDate       *time.Time          `json:"due_date"`
	Collaborators []CollaboratorInput `json:"collaborators"`
}

// UpdateTaskInput — частичное обновление, nil означает "не трогать поле"
type UpdateTaskInput struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
}

func (s *TaskService) Create(ctx context.Context, actor model.User, in CreateTaskInput, idempKey string) (model.Task, error) {
	if !perm.CanCreate(actor) {
		return model.Task{}, ErrForbidden
	}

	t := model.Task{
		Title:       in.Title,
		Description: in.Description,
		Status:      model.StatusNotStarted,
		Priority:    in.Priority,
		DueDate:     in.DueDate,
		OwnerID:     actor.ID,
	}
	if t.Priority == "" {
		t.Priority = model.PriorityMedium
	}
	if err := s.validate(t); err != nil {
		return t, err
	}
	for _, c := range in.Collaborators {
		if !model.ValidPermission(c.Permission) {
			return t, ErrValidation
		}
	}

	if idempKey != "" { // Обеспечение идемпотентности - если ключ с ресурсом уже существует, мы не создаем его еще раз
		if existingID, err := s.tasks.GetIdempotencyKey(ctx, idempKey); err == nil {
			return s.tasks.Get(ctx, existingID)
		}
	}

	created, err := s.tasks.Create(ctx, t, &repo.ActivityEntry{
		UserID:      actor.ID,
		Description: activity.Created(),
	})
	if err != nil {
		return created, err
	}

	if idempKey != "" {
		s.tasks.SaveIdempotencyKey(ctx, idempKey, created.ID)
		// Гонка запросов с одним ключом: выигрывает тот, чья запись ключа
		// легла первой, остальные отдают его задачу и убирают свою
		if winnerID, err := s.tasks.GetIdempotencyKey(ctx, idempKey); err == nil && winnerID != created.ID {
			s.tasks.Delete(ctx, created.ID, nil)
			return s.tasks.Get(ctx, winnerID)
		}
	}

	// Уведомления уходят через очередь, запрос на них не ждет
	s.events.Enqueue(ctx, model.NotificationEvent{
		Kind:    model.EventTaskCreated,
		TaskID:  created.ID,
		ActorID: &actor.ID,
	})

	if len(in.Collaborators) > 0 {
		if _, err := s.syncCollaborators(ctx, actor, created, in.Collaborators); err != nil {
			return created, err
		}
	}

	return created, nil
}

func (s *TaskService) Get(ctx context.Context, actor model.User, id int64) (model.Task, error) {
	t, err := s.tasks.Get(ctx, id)
	if err != nil {
		return t, err
	}

	links, err := s.collaborators.ListByTask(ctx, id)
	if err != nil {
		return t, err
	}
	if !perm.CanView(actor, t, links) {
		return model.Task{}, ErrForbidden
	}
	return t, nil
}

func (s *TaskService) List(ctx context.Context, actor model.User, filter model.TaskFilter, limit int) ([]model.Task, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.tasks.ListVisible(ctx, actor, filter, limit)
}

func (s *TaskService) Update(ctx context.Context, actor model.User, id int64, in UpdateTaskInput) (model.Task, error) {
	before, err := s.tasks.Get(ctx, id)
	if err != nil {
		return before, err
	}

	links, err := s.collaborators.ListByTask(ctx, id)
	if err != nil {
		return before, err
	}
	if !perm.CanEdit(actor, before, links) {
		return model.Task{}, ErrForbidden
	}

	after := before
	if in.Title != nil {
		after.Title = *in.Title
	}
	if in.Description != nil {
		after.Description = *in.Description
	}
	if in.Status != nil {
		after.Status = *in.Status
	}
	if in.Priority != nil {
		after.Priority = *in.Priority
	}
	if in.DueDate != nil {
		after.DueDate = in.DueDate
	}
	if err := s.validate(after); err != nil {
		return after, err
	}

	// Явный дифф снимков до и после: по записи журнала на каждое
	// изменившееся поле
	var entries []repo.ActivityEntry
	if actor.ID != 0 {
		for _, desc := range activity.DiffTask(before, after) {
			entries = append(entries, repo.ActivityEntry{UserID: actor.ID, Description: desc})
		}
	}

	updated, err := s.tasks.Update(ctx, after, entries)
	if err != nil {
		return updated, err
	}

	if before.Status != updated.Status && updated.Status == model.StatusCompleted {
		s.events.Enqueue(ctx, model.NotificationEvent{
			Kind:    model.EventTaskCompleted,
			TaskID:  updated.ID,
			ActorID: &actor.ID,
		})
	}

	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, actor model.User, id int64) error {
	t, err := s.tasks.Get(ctx, id)
	if err != nil {
		return err
	}
	if !perm.CanDelete(actor, t) {
		return ErrForbidden
	}

	var entry *repo.ActivityEntry
	if actor.ID != 0 {
		entry = &repo.ActivityEntry{
			UserID:      actor.ID,
			Description: activity.Deleted(t.Title),
		}
	}
	return s.tasks.Delete(ctx, id, entry)
}

// SyncCollaborators заменяет набор соавторов. Уведомления получают только
// те, кого в наборе раньше не было
func (s *TaskService) SyncCollaborators(ctx context.Context, actor model.User, taskID int64, in []CollaboratorInput) ([]model.Collaborator, error) {
	t, err := s.tasks.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}

	links, err := s.collaborators.ListByTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !perm.CanEdit(actor, t, links) {
		return nil, ErrForbidden
	}

	if _, err := s.syncCollaborators(ctx, actor, t, in); err != nil {
		return nil, err
	}
	return s.collaborators.ListByTask(ctx, taskID)
}

func (s *TaskService) syncCollaborators(ctx context.Context, actor model.User, t model.Task, in []CollaboratorInput) ([]int64, error) {
	links := make([]model.Collaborator, 0, len(in))
	for _, c := range in {
		if !model.ValidPermission(c.Permission) {
			return nil, ErrValidation
		}
		if c.UserID == t.OwnerID {
			continue // владелец и так полноправен, строка связи ему не нужна
		}
		links = append(links, model.Collaborator{
			TaskID:     t.ID,
			UserID:     c.UserID,
			Permission: c.Permission,
		})
	}

	added, err := s.collaborators.Sync(ctx, t.ID, links)
	if err != nil {
		return nil, err
	}

	if len(added) > 0 {
		s.events.Enqueue(ctx, model.NotificationEvent{
			Kind:         model.EventCollaboratorsAdded,
			TaskID:       t.ID,
			ActorID:      &actor.ID,
			AddedUserIDs: added,
		})
	}
	return added, nil
}

func (s *TaskService) Collaborators(ctx context.Context, actor model.User, taskID int64) ([]model.Collaborator, error) {
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
	return links, nil
}

// Activities — журнал задачи, новые записи первыми
func (s *TaskService) Activities(ctx context.Context, actor model.User, taskID int64) ([]model.Activity, error) {
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
	return s.activities.ListByTask(ctx, taskID)
}

// GetStats — дашборд. Доступен admin и semi_admin
func (s *TaskService) GetStats(ctx context.Context, actor model.User) (repo.Stats, error) {
	if !actor.HasAdminPrivileges() {
		return repo.Stats{}, ErrForbidden
	}
	return s.tasks.GetStats(ctx)
}

func (s *TaskService) validate(t model.Task) error {
	if strings.TrimSpace(t.Title) == "" {
		return ErrValidation
	}
	if !model.ValidStatus(t.Status) {
		return ErrValidation
	}
	if !model.ValidPriority(t.Priority) {
		return ErrValidation
	}
	return nil
}
