package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hedamo/hedamo-backend/internal/product_analysis/upstream"
)

// Pinger is satisfied by *sql.DB
type Pinger interface {
	PingContext(ctx context.Context) error
}

// RedisPinger wraps the redis client ping so tests can fake it
type RedisPinger func(ctx context.Context) error

// MetricsSource exposes upstream call counters
type MetricsSource interface {
	Snapshot() upstream.MetricsSnapshot
}

type HealthResponse struct {
	Status    string                    `json:"status"`
	Service   string                    `json:"service"`
	Timestamp time.Time                 `json:"timestamp"`
	Uptime    float64                   `json:"uptime"`
	Version   string                    `json:"version"`
	DB        string                    `json:"db"`
	Redis     string                    `json:"redis"`
	Upstream  *upstream.MetricsSnapshot `json:"upstream,omitempty"`
}

type HealthHandler struct {
	serviceName string
	version     string
	startedAt   time.Time
	db          Pinger
	redis       RedisPinger
	metrics     MetricsSource
}

func NewHealthHandler(serviceName, version string, db Pinger, redis RedisPinger, metrics MetricsSource) *HealthHandler {
	return &HealthHandler{
		serviceName: serviceName,
		version:     version,
		startedAt:   time.Now(),
		db:          db,
		redis:       redis,
		metrics:     metrics,
	}
}

// HealthCheck always answers 200 while the process runs; dependency state is informational.
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	ctx := c.Request.Context()

	resp := HealthResponse{
		Status:    "healthy",
		Service:   h.serviceName,
		Timestamp: time.Now().UTC(),
		Uptime:    time.Since(h.startedAt).Seconds(),
		Version:   h.version,
		DB:        "disabled",
		Redis:     "disabled",
	}

	if h.db != nil {
		resp.DB = probe(ctx, h.db.PingContext)
	}
	if h.redis != nil {
		resp.Redis = probe(ctx, h.redis)
	}
	if h.metrics != nil {
		snap := h.metrics.Snapshot()
		resp.Upstream = &snap
	}

	c.JSON(http.StatusOK, resp)
}

func probe(ctx context.Context, ping func(context.Context) error) string {
	pingCtx, cancel := context.WithTimeout(ctx, 1*time.Second)
	defer cancel()

	if err := ping(pingCtx); err != nil {
		return "down"
	}
	return "up"
}

func (h *HealthHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/health", h.HealthCheck)
	r.GET("/healthz", h.HealthCheck)
}

type rootEndpoints struct {
	Health string `json:"health"`
	API    string `json:"api"`
}

type RootResponse struct {
	Message   string        `json:"message"`
	Version   string        `json:"version"`
	Status    string        `json:"status"`
	Endpoints rootEndpoints `json:"endpoints"`
}

// RootHandler answers GET / with the service banner
func RootHandler(version string) gin.HandlerFunc {
	resp := RootResponse{
		Message:   "Hedamo Backend API",
		Version:   version,
		Status:    "running",
		Endpoints: rootEndpoints{Health: "/health", API: "/api/*"},
	}
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, resp)
	}
}
