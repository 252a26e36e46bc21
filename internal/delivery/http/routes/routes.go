package routes

import (
	"mentor-match/internal/config"
	"mentor-match/internal/database"
	"mentor-match/internal/delivery/http/handler"
	"mentor-match/internal/delivery/http/middleware"
	"mentor-match/internal/pkg/jwt"
	"mentor-match/internal/repository"
	"mentor-match/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type Registry struct {
	cfg   config.Config
	db    database.DB
	cache usecase.MentorCache
}

func NewRegistry(cfg config.Config, db database.DB, cache usecase.MentorCache) *Registry {
	return &Registry{cfg: cfg, db: db, cache: cache}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	handler.NewHealthHandler().RegisterRoutes(app)

	jwtSvc := jwt.NewHMACService(
		r.cfg.JWT.Secret,
		r.cfg.JWT.Issuer,
		r.cfg.JWT.Audience,
		r.cfg.JWT.ExpiresIn,
	)
	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo := repository.NewPostgresUserRepository(r.db)
	mentorRepo := repository.NewPostgresMentorRepository(r.db)
	matchRepo := repository.NewPostgresMatchRequestRepository(r.db)

	authUC := usecase.NewAuthUsecase(userRepo, jwtSvc, r.cache)
	userUC := usecase.NewUserUsecase(userRepo, r.cache)
	mentorUC := usecase.NewMentorUsecase(mentorRepo, r.cache)
	matchUC := usecase.NewMatchUsecase(matchRepo)

	api := app.Group("/api")

	handler.NewAuthHandler(authUC).RegisterRoutes(api)

	protected := api.Group("", authMw.Middleware())
	handler.NewUserHandler(userUC).RegisterRoutes(protected)
	handler.NewMentorHandler(mentorUC).RegisterRoutes(protected)
	handler.NewMatchHandler(matchUC).RegisterRoutes(protected)
}
