// Package server exposes the game over a JSON HTTP API.
package server

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"scalar/internal/catalog"
	"scalar/internal/config"
	"scalar/internal/session"
)

type Server struct {
	router  *gin.Engine
	manager *session.Manager
	catalog *catalog.Catalog
	cfg     *config.ProjectConfig
	log     zerolog.Logger
}

func New(manager *session.Manager, c *catalog.Catalog, cfg *config.ProjectConfig, log zerolog.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	s := &Server{
		router:  router,
		manager: manager,
		catalog: c,
		cfg:     cfg,
		log:     log,
	}
	router.Use(s.requestLogger())
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/healthz", s.health)

	api := s.router.Group("/api")
	{
		api.GET("/categories", s.listCategories)
		api.GET("/categories/:category/schema", s.categorySchema)
		api.GET("/categories/:category/suggest", s.suggest)

		api.GET("/daily/:category", s.dailyPuzzle)
		api.GET("/streak/:category", s.streak)

		api.GET("/game/:mode/:category", s.gameState)
		api.POST("/game/:mode/:category/guess", s.submitGuess)
		api.POST("/game/:mode/:category/hint", s.revealHint)
		api.POST("/game/:mode/:category/reveal", s.revealAnswer)
		api.POST("/game/:mode/:category/reset", s.reset)
		api.GET("/game/:mode/:category/share", s.shareText)

		// Tokens are std base64 and may contain '/', so they travel as a
		// query parameter rather than a path segment.
		api.GET("/challenge", s.decodeChallenge)
		api.POST("/challenge/start", s.startChallenge)
	}
}

// Run blocks serving HTTP on the configured address.
func (s *Server) Run() error {
	s.log.Info().Str("addr", s.cfg.Server.Addr).Msg("listening")
	return s.router.Run(s.cfg.Server.Addr)
}

// Handler exposes the router for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
