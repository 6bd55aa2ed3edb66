package api

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/kurihiro0119/github-user-search/internal/config"
)

// SetupRoutes sets up the API routes
func SetupRoutes(handler *Handler, cfg *config.Config, log logrus.FieldLogger) (*gin.Engine, error) {
	router := gin.New()

	// Middleware
	router.Use(Recovery())
	router.Use(CORS())
	router.Use(RequestID())
	router.Use(RequestLogger(log))

	// Health check
	router.GET("/health", handler.HealthCheck)

	// API v1
	v1 := router.Group("/api/v1")
	{
		v1.GET("/search", handler.Search)
		v1.GET("/users/:login/repos", handler.UserRepos)
	}

	// Development proxy to the GitHub API, stripping the local prefix
	if cfg.Mode == config.ModeDevelopment {
		proxy, err := GitHubProxy(cfg.GitHubAPIURL)
		if err != nil {
			return nil, err
		}
		router.Any(config.GitHubProxyPrefix+"/*path", proxy)
	}

	return router, nil
}
