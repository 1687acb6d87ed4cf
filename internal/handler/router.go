package handler

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/collabtask-api/internal/repo"
)

type Handlers struct {
	Tasks       *TaskHandler
	Comments    *CommentHandler
	Attachments *AttachmentHandler
	Journals    *JournalHandler
	Users       *UserHandler
}

// Routes собирает маршруты API. Все, кроме /health, за аутентификацией
func Routes(r chi.Router, h Handlers, users repo.UserRepository, logger *zap.Logger) {
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status":"ok"}`)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(Authenticate(users, logger))

		r.Route("/tasks", func(r chi.Router) {
			r.Post("/", h.Tasks.Create)
			r.Get("/", h.Tasks.List)
			r.Get("/{id}", h.Tasks.Get)
			r.Patch("/{id}", h.Tasks.Update)
			r.Delete("/{id}", h.Tasks.Delete)
			r.Post("/{id}/complete", h.Tasks.Complete)

			r.Put("/{id}/collaborators", h.Tasks.SyncCollaborators)
			r.Get("/{id}/collaborators", h.Tasks.ListCollaborators)
			r.Get("/{id}/activities", h.Tasks.Activities)

			r.Post("/{id}/comments", h.Comments.Create)
			r.Get("/{id}/comments", h.Comments.ListByTask)
			r.Post("/{id}/attachments", h.Attachments.Add)
			r.Get("/{id}/attachments", h.Attachments.ListByTask)
		})

		r.Delete("/comments/{id}", h.Comments.Delete)
		r.Delete("/attachments/{id}", h.Attachments.Remove)

		r.Route("/journals/{date}", func(r chi.Router) {
			r.Get("/", h.Journals.Entry)
			r.Put("/mood", h.Journals.SetMood)
			r.Post("/notes", h.Journals.AddNote)
		})
		r.Patch("/notes/{id}", h.Journals.UpdateNote)
		r.Delete("/notes/{id}", h.Journals.DeleteNote)

		r.Get("/stats", h.Tasks.Stats)
		r.Post("/users", h.Users.Create)
		r.Get("/me", h.Users.Me)
		r.Get("/notifications", h.Users.Notifications)
	})
}
