package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/collabtask-api/internal/config"
	"github.com/BuzzLyutic/collabtask-api/internal/handler"
	"github.com/BuzzLyutic/collabtask-api/internal/notify"
	"github.com/BuzzLyutic/collabtask-api/internal/repo"
	"github.com/BuzzLyutic/collabtask-api/internal/service"
	"github.com/BuzzLyutic/collabtask-api/internal/worker"
)

func main() {
	// Подключаем логгер
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Загрузка конфигурации
	cfg := config.Load()

	// Подключаем БД
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to Database.") // Fatal потому что дальнейшая работа теряет смысл
	}
	defer pool.Close()

	if err := pool.Ping(context.Background()); err != nil {
		log.Fatal("Failed to ping the Database.")
	}
	logger.Info("Successfully connected to the Database!")

	taskRepo := repo.NewTaskRepo(pool)
	collabRepo := repo.NewCollaboratorRepo(pool)
	activityRepo := repo.NewActivityRepo(pool)
	commentRepo := repo.NewCommentRepo(pool)
	attachmentRepo := repo.NewAttachmentRepo(pool)
	userRepo := repo.NewUserRepo(pool)
	journalRepo := repo.NewJournalRepo(pool)
	notificationRepo := repo.NewNotificationRepo(pool)

	handlers := handler.Handlers{
		Tasks:       handler.NewTaskHandler(service.NewTaskService(taskRepo, collabRepo, activityRepo, notificationRepo), logger),
		Comments:    handler.NewCommentHandler(service.NewCommentService(taskRepo, collabRepo, commentRepo, notificationRepo), logger),
		Attachments: handler.NewAttachmentHandler(service.NewAttachmentService(taskRepo, collabRepo, attachmentRepo), logger),
		Journals:    handler.NewJournalHandler(service.NewJournalService(journalRepo), logger),
		Users:       handler.NewUserHandler(service.NewUserService(userRepo, notificationRepo), logger),
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	handler.Routes(r, handlers, userRepo, logger)

	// Очередь уведомлений обрабатывается в фоне, HTTP-запросы ее не ждут
	dispatcher := notify.NewDispatcher(pool, notify.NewLogSender(logger), logger)
	workerPool := worker.NewPool(dispatcher, logger, cfg.WorkerCount)
	workerPool.Start(context.Background())

	srv := http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	go func() { // Запуск сервера и обработка ошибок
		logger.Info("Server started at ", zap.String("port", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed: ", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)
	<-quit

	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Fatal("Shutdown error: ", zap.Error(err))
	}
	workerPool.Stop()
	logger.Info("Server stopped succsessfully!")
}
