package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/BuzzLyutic/collabtask-api/internal/model"
	"github.com/BuzzLyutic/collabtask-api/internal/repo"
)

// Моки репозиториев для юнит-тестов сервисного слоя

type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, t model.Task, entry *repo.ActivityEntry) (model.Task, error) {
	args := m.Called(ctx, t, entry)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *MockTaskRepository) Get(ctx context.Context, id int64) (model.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *MockTaskRepository) ListVisible(ctx context.Context, u model.User, filter model.TaskFilter, limit int) ([]model.Task, error) {
	args := m.Called(ctx, u, filter, limit)
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) Update(ctx context.Context, t model.Task, entries []repo.ActivityEntry) (model.Task, error) {
	args := m.Called(ctx, t, entries)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *MockTaskRepository) Delete(ctx context.Context, id int64, entry *repo.ActivityEntry) error {
	args := m.Called(ctx, id, entry)
	return args.Error(0)
}

func (m *MockTaskRepository) SaveIdempotencyKey(ctx context.Context, key string, resourceID int64) error {
	args := m.Called(ctx, key, resourceID)
	return args.Error(0)
}

func (m *MockTaskRepository) GetIdempotencyKey(ctx context.Context, key string) (int64, error) {
	args := m.Called(ctx, key)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTaskRepository) GetStats(ctx context.Context) (repo.Stats, error) {
	args := m.Called(ctx)
	return args.Get(0).(repo.Stats), args.Error(1)
}

type MockCollaboratorRepository struct {
	mock.Mock
}

func (m *MockCollaboratorRepository) ListByTask(ctx context.Context, taskID int64) ([]model.Collaborator, error) {
	args := m.Called(ctx, taskID)
	return args.Get(0).([]model.Collaborator), args.Error(1)
}

func (m *MockCollaboratorRepository) Sync(ctx context.Context, taskID int64, links []model.Collaborator) ([]int64, error) {
	args := m.Called(ctx, taskID, links)
	return args.Get(0).([]int64), args.Error(1)
}

type MockActivityRepository struct {
	mock.Mock
}

func (m *MockActivityRepository) Append(ctx context.Context, taskID, userID int64, description string) error {
	args := m.Called(ctx, taskID, userID, description)
	return args.Error(0)
}

func (m *MockActivityRepository) ListByTask(ctx context.Context, taskID int64) ([]model.Activity, error) {
	args := m.Called(ctx, taskID)
	return args.Get(0).([]model.Activity), args.Error(1)
}

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, c model.Comment, entry *repo.ActivityEntry) (model.Comment, error) {
	args := m.Called(ctx, c, entry)
	return args.Get(0).(model.Comment), args.Error(1)
}

func (m *MockCommentRepository) Get(ctx context.Context, id int64) (model.Comment, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListByTask(ctx context.Context, taskID int64) ([]model.Comment, error) {
	args := m.Called(ctx, taskID)
	return args.Get(0).([]model.Comment), args.Error(1)
}

func (m *MockCommentRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockAttachmentRepository struct {
	mock.Mock
}

func (m *MockAttachmentRepository) Create(ctx context.Context, a model.Attachment, entry *repo.ActivityEntry) (model.Attachment, error) {
	args := m.Called(ctx, a, entry)
	return args.Get(0).(model.Attachment), args.Error(1)
}

func (m *MockAttachmentRepository) Get(ctx context.Context, id int64) (model.Attachment, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Attachment), args.Error(1)
}

func (m *MockAttachmentRepository) ListByTask(ctx context.Context, taskID int64) ([]model.Attachment, error) {
	args := m.Called(ctx, taskID)
	return args.Get(0).([]model.Attachment), args.Error(1)
}

func (m *MockAttachmentRepository) Delete(ctx context.Context, id int64, entry *repo.ActivityEntry) error {
	args := m.Called(ctx, id, entry)
	return args.Error(0)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Enqueue(ctx context.Context, e model.NotificationEvent) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockNotificationRepository) ListForUser(ctx context.Context, userID int64, limit int) ([]model.Delivery, error) {
	args := m.Called(ctx, userID, limit)
	return args.Get(0).([]model.Delivery), args.Error(1)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, u model.User) (model.User, error) {
	args := m.Called(ctx, u)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserRepository) Get(ctx context.Context, id int64) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.User), args.Error(1)
}

type MockJournalRepository struct {
	mock.Mock
}

func (m *MockJournalRepository) GetOrCreate(ctx context.Context, userID int64, date time.Time) (model.Journal, error) {
	args := m.Called(ctx, userID, date)
	return args.Get(0).(model.Journal), args.Error(1)
}

func (m *MockJournalRepository) Get(ctx context.Context, id int64) (model.Journal, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Journal), args.Error(1)
}

func (m *MockJournalRepository) SetMood(ctx context.Context, journalID int64, mood *string) (model.Journal, error) {
	args := m.Called(ctx, journalID, mood)
	return args.Get(0).(model.Journal), args.Error(1)
}

func (m *MockJournalRepository) ListNotes(ctx context.Context, journalID int64) ([]model.JournalNote, error) {
	args := m.Called(ctx, journalID)
	return args.Get(0).([]model.JournalNote), args.Error(1)
}

func (m *MockJournalRepository) CreateNote(ctx context.Context, n model.JournalNote) (model.JournalNote, error) {
	args := m.Called(ctx, n)
	return args.Get(0).(model.JournalNote), args.Error(1)
}

func (m *MockJournalRepository) GetNote(ctx context.Context, id int64) (model.JournalNote, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.JournalNote), args.Error(1)
}

func (m *MockJournalRepository) UpdateNote(ctx context.Context, n model.JournalNote) (model.JournalNote, error) {
	args := m.Called(ctx, n)
	return args.Get(0).(model.JournalNote), args.Error(1)
}

func (m *MockJournalRepository) DeleteNote(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
