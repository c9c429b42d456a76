package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	v1 "github.com/dhaniamnd/co2-reporter/internal/api/v1"
	"github.com/dhaniamnd/co2-reporter/internal/config"
	"github.com/dhaniamnd/co2-reporter/internal/importer"
	"github.com/dhaniamnd/co2-reporter/internal/logging"
	"github.com/dhaniamnd/co2-reporter/internal/metrics"
	"github.com/dhaniamnd/co2-reporter/internal/service/store"
)

// 开发模式下前端开发服务器地址
const devFrontendURL = "http://localhost:5173"

// Server HTTP服务器
type Server struct {
	router   *gin.Engine
	store    *store.MemoryStore
	registry *prometheus.Registry
	logger   *slog.Logger
	shutdown time.Duration
}

// NewServer 创建服务器
func NewServer(cfg *config.AppConfig, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	devMode := cfg.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	st := store.NewMemoryStore(cfg.Factors.EmissionFactors())
	coord := importer.NewCoordinator(nil, m, logger)
	v1Handler := v1.NewHandler(st, coord, m, logger, v1.Options{
		MaxUploadBytes: int64(cfg.Import.MaxUploadMB) << 20,
		SheetName:      cfg.Import.Sheet,
		Append:         cfg.Import.Append,
	})

	shutdown := time.Duration(cfg.Server.ShutdownSeconds) * time.Second
	if shutdown <= 0 {
		shutdown = 10 * time.Second
	}

	s := &Server{
		router:   gin.New(),
		store:    st,
		registry: registry,
		logger:   logger.With("component", "server"),
		shutdown: shutdown,
	}
	s.setupRoutes(v1Handler, devMode)
	return s
}

// setupRoutes 设置路由
func (s *Server) setupRoutes(api *v1.Handler, devMode bool) {
	s.router.Use(gin.Recovery(), s.requestLogger())

	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	api.RegisterRoutes(s.router.Group("/api"))

	s.router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "records": s.store.Count()})
	})
	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})))

	if devMode {
		// 开发模式：页面请求转到前端开发服务器
		s.router.NoRoute(func(c *gin.Context) {
			c.Redirect(http.StatusTemporaryRedirect, devFrontendURL+c.Request.URL.Path)
		})
		return
	}
	s.router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	})
}

// requestLogger 为每个请求分配 ID 并记录访问日志
func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		ctx := logging.WithRequestID(c.Request.Context(), id)
		c.Request = c.Request.WithContext(ctx)
		c.Header("X-Request-ID", id)

		c.Next()

		status := c.Writer.Status()
		level := slog.LevelInfo
		switch {
		case status >= 500:
			level = slog.LevelError
		case status >= 400:
			level = slog.LevelWarn
		}
		s.logger.LogAttrs(ctx, level, "http request",
			slog.String("method", c.Request.Method),
			slog.String("path", c.Request.URL.Path),
			slog.Int("status", status),
			slog.Duration("latency", time.Since(start)),
		)
	}
}

// Handler 返回 HTTP 处理器（用于测试）
func (s *Server) Handler() http.Handler {
	return s.router
}

// GetStore 获取存储（用于测试）
func (s *Server) GetStore() *store.MemoryStore {
	return s.store
}

// Run 监听地址并阻塞直到 ctx 取消
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve 在已有监听上提供服务，ctx 取消后优雅关闭
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("server listening", "addr", ln.Addr().String())
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdown)
		defer cancel()
		s.logger.Info("server shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return g.Wait()
}
