package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/isdelr/taskboard-be/internal/api/handlers"
	"github.com/isdelr/taskboard-be/internal/auth"
	"github.com/isdelr/taskboard-be/internal/config"
	"github.com/isdelr/taskboard-be/internal/services"
	"github.com/isdelr/taskboard-be/internal/websocket"
)

// NewRouter creates and configures a new Chi router. Everything under
// the protected group requires a valid token; board and task routes run
// the ownership check in their handlers before touching the resource.
func NewRouter(
	hub *websocket.Hub,
	tokens *auth.TokenService,
	userService services.UserServiceProvider,
	boardService services.BoardServiceProvider,
	taskService services.TaskServiceProvider,
	eventService services.EventServiceProvider,
	accessService services.AccessServiceProvider,
	cfg *config.Config,
) *chi.Mux {
	r := chi.NewRouter()

	// Basic middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.CORSOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, tokens, cfg)
	userHandler := handlers.NewUserHandler(userService)
	boardHandler := handlers.NewBoardHandler(boardService, taskService, eventService, accessService)
	taskHandler := handlers.NewTaskHandler(taskService, accessService)
	eventHandler := handlers.NewEventHandler(eventService, userService)
	wsHandler := handlers.NewWebSocketHandler(hub, accessService)

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Post("/auth/register", authHandler.Register)
		r.Post("/auth/login", authHandler.Login)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(tokens.Middleware())

			r.Post("/auth/logout", authHandler.Logout)
			r.Get("/auth/me", authHandler.GetMe)

			r.Route("/users/me", func(r chi.Router) {
				r.Put("/", userHandler.Update)
				r.Delete("/", userHandler.Delete)
			})

			r.Route("/boards", func(r chi.Router) {
				r.Get("/", boardHandler.GetAll)
				r.Post("/", boardHandler.Create)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", boardHandler.Get)
					r.Put("/", boardHandler.Update)
					r.Delete("/", boardHandler.Delete)
					r.Get("/tasks", boardHandler.GetTasks)
					r.Post("/tasks", boardHandler.CreateTask)
					r.Get("/events", boardHandler.GetEvents)
				})
			})

			r.Route("/tasks/{id}", func(r chi.Router) {
				r.Get("/", taskHandler.Get)
				r.Put("/", taskHandler.Update)
				r.Delete("/", taskHandler.Delete)
			})

			r.Get("/events", eventHandler.GetRecent)

			r.Get("/ws/boards/{id}", wsHandler.Serve)
		})
	})

	return r
}
