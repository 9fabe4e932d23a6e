package bootstrap

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/desainin/desainin-backend/config"
	httpapi "github.com/desainin/desainin-backend/internal/api/http"
	apimw "github.com/desainin/desainin-backend/internal/api/http/middleware"
	authcache "github.com/desainin/desainin-backend/internal/auth/cache"
	authhttp "github.com/desainin/desainin-backend/internal/auth/http"
	authmw "github.com/desainin/desainin-backend/internal/auth/middleware"
	authrepo "github.com/desainin/desainin-backend/internal/auth/repository"
	authservice "github.com/desainin/desainin-backend/internal/auth/service"
	genhttp "github.com/desainin/desainin-backend/internal/generations/http"
	genrepo "github.com/desainin/desainin-backend/internal/generations/repository"
	genservice "github.com/desainin/desainin-backend/internal/generations/service"
	projcache "github.com/desainin/desainin-backend/internal/projects/cache"
	projhttp "github.com/desainin/desainin-backend/internal/projects/http"
	projrepo "github.com/desainin/desainin-backend/internal/projects/repository"
	projservice "github.com/desainin/desainin-backend/internal/projects/service"
)

const projectViewTTL = 10 * time.Minute

type RouterDeps struct {
	ServiceName string
	Version     string
	Cfg         *config.Config
	DB          *pgxpool.Pool
	Redis       *redis.Client
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(apimw.RequestIDMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     dep.Cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-Id"},
		AllowCredentials: true,
	}))

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, dep.Redis)
	healthHandler.RegisterRoutes(r)

	userRepo := authrepo.NewUserRepo(dep.DB)
	sessionRepo := authrepo.NewSessionRepo(dep.DB)
	var tokenCache authservice.TokenCache
	if dep.Redis != nil {
		tokenCache = authcache.NewSessionCache(dep.Redis)
	}
	authSvc := authservice.NewAuthService(userRepo, sessionRepo, tokenCache, dep.Cfg.Session.TTL)

	projectRepo := projrepo.NewRepo(dep.DB)
	var viewCache projservice.ViewCache
	if dep.Redis != nil {
		viewCache = projcache.NewProjectCache(dep.Redis, projectViewTTL)
	}
	projectSvc := projservice.NewService(projectRepo, viewCache)

	generationRepo := genrepo.NewRepo(dep.DB)
	generationSvc := genservice.NewService(generationRepo, projectRepo)

	secureCookies := dep.Cfg.App.Environment == "production"
	authHandler := authhttp.NewHandler(authSvc, dep.Cfg.Session.CookieName, dep.Cfg.Session.TTL, secureCookies)

	api := r.Group("/api/v1")

	authGroup := api.Group("/auth")
	authHandler.Register(authGroup)

	protected := api.Group("")
	protected.Use(authmw.SessionAuth(authSvc, dep.Cfg.Session.CookieName))

	authHandler.RegisterProtected(protected.Group("/auth"))

	projectsGroup := protected.Group("/projects")
	projhttp.NewHandler(projectSvc).Register(projectsGroup)
	genhttp.NewHandler(generationSvc).RegisterProjectSubroutes(projectsGroup)

	return r
}
