package bootstrap

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/hedamo/hedamo-backend/config"
	httpapi "github.com/hedamo/hedamo-backend/internal/api/http"
	"github.com/hedamo/hedamo-backend/internal/api/http/middleware"
	pahttp "github.com/hedamo/hedamo-backend/internal/product_analysis/http"
	"github.com/hedamo/hedamo-backend/internal/product_analysis/report"
	"github.com/hedamo/hedamo-backend/internal/product_analysis/repository"
	"github.com/hedamo/hedamo-backend/internal/product_analysis/service"
	"github.com/hedamo/hedamo-backend/internal/product_analysis/upstream"
	"github.com/hedamo/hedamo-backend/internal/ratelimit"
	"github.com/redis/go-redis/v9"
)

type RouterDeps struct {
	ServiceName     string
	Version         string
	TrustedProxies  []string
	CORS            config.CORSConfig
	MaxBodyBytes    int64
	ReportListLimit int

	Logger  *slog.Logger
	Limiter ratelimit.Limiter
	AI      *upstream.Client
	Reports repository.Store
	// DB must be left nil, not a nil *sql.DB, when Postgres is disabled.
	DB      httpapi.Pinger
	Redis   *redis.Client
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	lg := dep.Logger
	if lg == nil {
		lg = slog.Default()
	}

	r := gin.New()
	if err := r.SetTrustedProxies(dep.TrustedProxies); err != nil {
		lg.Warn("invalid TRUSTED_PROXIES, trusting none", slog.String("error", err.Error()))
		_ = r.SetTrustedProxies(nil)
	}

	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware(lg))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS(dep.CORS))

	var redisPing httpapi.RedisPinger
	if dep.Redis != nil {
		redisPing = func(ctx context.Context) error { return dep.Redis.Ping(ctx).Err() }
	}
	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version, dep.DB, redisPing, dep.AI.Metrics())
	healthHandler.RegisterRoutes(r)

	throttle := middleware.RateLimit(dep.Limiter)
	r.GET("/", throttle, httpapi.RootHandler(dep.Version))

	api := r.Group("/api")
	api.Use(throttle)
	api.Use(middleware.BodyLimit(dep.MaxBodyBytes))

	analyzer := service.NewAnalysisService(dep.AI, dep.Reports)
	renderer := report.NewRenderer(report.Options{Compress: true, Creator: dep.ServiceName})

	paHandler := pahttp.New(dep.AI, analyzer, dep.Reports, renderer, dep.ReportListLimit)
	paHandler.Register(api)

	return r
}
