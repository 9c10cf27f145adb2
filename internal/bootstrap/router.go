package bootstrap

import (
	"context"
	"fmt"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/tunakleague/collabin-backend/config"
	httpapi "github.com/tunakleague/collabin-backend/internal/api/http"
	"github.com/tunakleague/collabin-backend/internal/api/http/middleware"
	"github.com/tunakleague/collabin-backend/internal/auth"
	authmw "github.com/tunakleague/collabin-backend/internal/auth/middleware"
	"github.com/tunakleague/collabin-backend/internal/matches"
	"github.com/tunakleague/collabin-backend/internal/media"
	"github.com/tunakleague/collabin-backend/internal/observability"
	"github.com/tunakleague/collabin-backend/internal/profiles"
	"github.com/tunakleague/collabin-backend/internal/projects"
	"github.com/tunakleague/collabin-backend/internal/ranking"
	"github.com/tunakleague/collabin-backend/internal/swipes"
	"github.com/tunakleague/collabin-backend/internal/tags"
)

type RouterDeps struct {
	ServiceName string
	Config      *config.Config
	Stores      Stores
	Redis       *redis.Client
	Catalog     *tags.Catalog
	Verifier    authmw.TokenVerifier
	Presigner   *media.Presigner
	Metrics     *observability.Metrics
}

func BuildRouter(dep RouterDeps) (*gin.Engine, error) {
	cfg := dep.Config
	if dep.Metrics == nil {
		dep.Metrics = observability.NewMetrics()
	}
	if dep.Catalog == nil {
		dep.Catalog = tags.NewCatalog(dep.Redis, dep.Stores.Tags, cfg.Catalog.TTL)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(cors.New(corsConfig(cfg.Server.CORSOrigins)))

	var redisPing httpapi.PingFunc
	if dep.Redis != nil {
		redisPing = func(ctx context.Context) error { return dep.Redis.Ping(ctx).Err() }
	}
	httpapi.NewHealthHandler(dep.ServiceName, cfg.App.Version, dep.Stores.Ping, redisPing).RegisterRoutes(r)
	r.GET("/metrics", gin.WrapH(dep.Metrics.Handler()))

	identity, err := identityMiddleware(cfg.Auth.Mode, dep.Verifier)
	if err != nil {
		return nil, err
	}
	limiter, err := middleware.NewCallerLimiter(cfg.RateLimit.SwipesPerSecond, cfg.RateLimit.Burst, cfg.RateLimit.MaxCallers)
	if err != nil {
		return nil, err
	}

	tagSet := tags.NewSet(dep.Stores.Tags, dep.Metrics)
	tagSet.SetInvalidator(dep.Catalog)

	projectSvc := projects.NewService(dep.Stores.Projects, tagSet)
	profileSvc := profiles.NewService(dep.Stores.Profiles, tagSet)
	rankingSvc := ranking.NewService(dep.Stores.Index, dep.Stores.Profiles, dep.Stores.Projects, dep.Metrics)
	ledger := swipes.NewLedger(dep.Stores.Swipes, dep.Stores.Projects, dep.Stores.Profiles, dep.Metrics)
	if dep.Redis != nil {
		ledger.SetPublisher(swipes.NewRedisPublisher(dep.Redis))
	}
	engine := matches.NewEngine(dep.Stores.Swipes, dep.Stores.Projects, dep.Stores.Profiles)

	api := r.Group("/api/v1")
	api.Use(identity, auth.WithProfile(dep.Stores.Profiles))

	tags.Register(api, dep.Catalog)

	projectsGroup := api.Group("/projects")
	me := api.Group("/me")

	projects.Register(projectsGroup, projectSvc)
	ranking.Register(projectsGroup, me, rankingSvc)
	media.Register(projectsGroup, me, dep.Presigner, projectSvc)
	profiles.Register(me, profileSvc)
	matches.Register(me, engine)
	swipes.Register(api.Group("/swipes"), ledger, limiter.Middleware())

	return r, nil
}

func identityMiddleware(mode string, verifier authmw.TokenVerifier) (gin.HandlerFunc, error) {
	switch mode {
	case config.AuthModeHeader:
		return auth.HeaderIdentity(), nil
	case config.AuthModeFirebase:
		if verifier == nil {
			return nil, fmt.Errorf("firebase auth requires a token verifier")
		}
		return authmw.FirebaseAuthMiddleware(verifier), nil
	default:
		return nil, fmt.Errorf("unknown auth mode %q", mode)
	}
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	c.AllowHeaders = append(c.AllowHeaders, "Authorization", "X-Request-Id", "X-User-Id", "X-User-Name")
	c.ExposeHeaders = []string{"X-Request-Id", "Retry-After"}
	return c
}
