package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/api"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/app/service"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/common/security"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/domain/repository"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/platform/config"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/platform/database"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/platform/redisstore"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Load()
	log.Info().Msg("Configuration loaded")

	tokenAuth := security.NewTokenAuth(cfg.JWTKey, cfg.JWTExp)

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()
	log.Info().Msg("Database connected")

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}
	log.Info().Msg("Migrations applied")

	rdb, err := redisstore.Connect(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to redis")
	}
	defer rdb.Close()
	denylist := redisstore.NewTokenDenylist(rdb)
	log.Info().Msg("Redis connected")

	userRepo := repository.NewPgUserRepository(db)
	courseRepo := repository.NewPgCourseRepository(db)
	topicRepo := repository.NewPgTopicRepository(db)
	noteRepo := repository.NewPgNoteRepository(db)
	assignmentRepo := repository.NewPgAssignmentRepository(db)
	questionRepo := repository.NewPgQuestionRepository(db)
	solutionRepo := repository.NewPgSolutionRepository(db)
	commentRepo := repository.NewPgCommentRepository(db)

	authService := service.NewAuthService(userRepo, tokenAuth, denylist)
	courseService := service.NewCourseService(courseRepo, db)
	topicService := service.NewTopicService(topicRepo, courseRepo)
	noteService := service.NewNoteService(noteRepo, topicRepo, commentRepo, db)
	assignmentService := service.NewAssignmentService(assignmentRepo, courseRepo)
	questionService := service.NewQuestionService(questionRepo, assignmentRepo, courseRepo)
	solutionService := service.NewSolutionService(solutionRepo, questionRepo, commentRepo, db)

	router := api.NewRouter(api.RouterDeps{
		TokenAuth:          tokenAuth,
		Denylist:           denylist,
		AuthService:        authService,
		CourseService:      courseService,
		TopicService:       topicService,
		NoteService:        noteService,
		AssignmentService:  assignmentService,
		QuestionService:    questionService,
		SolutionService:    solutionService,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.Info().Str("port", cfg.APIPort).Msg("Server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	<-stop

	log.Info().Msg("Shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server shutdown failed")
	}
	log.Info().Msg("Server stopped gracefully")
}
