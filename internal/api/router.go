package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/jwtauth/v5"

	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/api/handler"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/api/middleware"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/app/service"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/common/security"
	"github.com/xingyi1145/Waterloo-Assignment-Hub/internal/platform/redisstore"
)

type RouterDeps struct {
	TokenAuth          *security.TokenAuth
	Denylist           *redisstore.TokenDenylist
	AuthService        *service.AuthService
	CourseService      *service.CourseService
	TopicService       *service.TopicService
	NoteService        *service.NoteService
	AssignmentService  *service.AssignmentService
	QuestionService    *service.QuestionService
	SolutionService    *service.SolutionService
	CORSAllowedOrigins []string
}

func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   deps.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Parses "Authorization: Bearer T" and puts claims in the context.
	// Validation happens in middleware.Authenticator on protected groups.
	r.Use(jwtauth.Verifier(deps.TokenAuth.JWTAuth))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	authHandler := handler.NewAuthHandler(deps.AuthService)
	courseHandler := handler.NewCourseHandler(deps.CourseService)
	topicHandler := handler.NewTopicHandler(deps.TopicService)
	noteHandler := handler.NewNoteHandler(deps.NoteService)
	assignmentHandler := handler.NewAssignmentHandler(deps.AssignmentService)
	questionHandler := handler.NewQuestionHandler(deps.QuestionService)
	solutionHandler := handler.NewSolutionHandler(deps.SolutionService)

	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Route("/auth", func(auth chi.Router) {
			authHandler.RegisterPublicRoutes(auth)
			auth.Group(func(protected chi.Router) {
				protected.Use(middleware.Authenticator(deps.Denylist))
				authHandler.RegisterProtectedRoutes(protected)
			})
		})

		// Everything below requires a valid, non-revoked token.
		v1.Group(func(protected chi.Router) {
			protected.Use(middleware.Authenticator(deps.Denylist))

			protected.Route("/courses", courseHandler.RegisterRoutes)
			protected.Route("/topics", topicHandler.RegisterRoutes)
			protected.Route("/notes", noteHandler.RegisterRoutes)
			protected.Route("/assignments", assignmentHandler.RegisterRoutes)
			protected.Route("/questions", questionHandler.RegisterRoutes)
			protected.Route("/solutions", solutionHandler.RegisterRoutes)
		})
	})

	return r
}
