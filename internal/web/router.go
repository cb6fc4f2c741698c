// Package web assembles the gin engine: templates, middleware, page routes
// and the operational endpoints.
package web

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"xnews/internal/category"
	"xnews/internal/csrf"
	"xnews/internal/news"
	"xnews/internal/page"
	"xnews/internal/reviews"
	"xnews/internal/sync"
	"xnews/pkg/utils"
)

//go:embed templates/*.html
var templatesFS embed.FS

const csrfIssuer = "xnews"

type Deps struct {
	DB     *sql.DB
	Config utils.AppConfig
	Logger *slog.Logger
	Hub    *sync.Hub // optional; nil disables the live feed
}

func LoadTemplates() (*template.Template, error) {
	tmpl, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return tmpl, nil
}

// TokenService builds the CSRF token service from the startup configuration.
func TokenService(cfg utils.AppConfig) csrf.TokenService {
	return csrf.TokenService{
		Secret:   []byte(cfg.SecretKey),
		Issuer:   csrfIssuer,
		Duration: cfg.CSRFTTL,
	}
}

func NewRouter(d Deps) (*gin.Engine, error) {
	tmpl, err := LoadTemplates()
	if err != nil {
		return nil, err
	}
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}

	router := gin.New()
	router.SetHTMLTemplate(tmpl)
	_ = router.SetTrustedProxies([]string{"127.0.0.1"})

	router.Use(gin.Recovery(), RequestLogger(logger), Metrics())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := d.DB.PingContext(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":   "not_ready",
				"db_error": err.Error(),
			})
			return
		}

		resp := gin.H{"status": "ready", "db": "ok"}
		if d.Hub != nil {
			resp["ws_clients"] = d.Hub.Stats().WSClients
		}
		c.JSON(http.StatusOK, resp)
	})

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if d.Hub != nil {
		router.GET("/ws", sync.WSHandler(d.Hub))
	}

	tokens := TokenService(d.Config)
	limiter := NewSubmitLimiter(d.Config.SubmitRate, d.Config.SubmitBurst)

	categoryRepo := category.NewRepo(d.DB)
	newsRepo := news.NewRepo(d.DB)
	reviewRepo := reviews.NewRepo(d.DB)

	categoryHandler := category.NewHandler(categoryRepo, newsRepo)

	pages := router.Group("")
	pages.Use(limiter.Middleware(), categoryHandler.Nav())

	categoryHandler.RegisterRoutes(pages)
	news.NewHandler(newsRepo, categoryRepo, tokens, d.Hub).RegisterRoutes(pages)
	reviews.NewHandler(reviewRepo, tokens).RegisterRoutes(pages)

	router.NoRoute(func(c *gin.Context) {
		page.NotFound(c, "")
	})

	return router, nil
}
