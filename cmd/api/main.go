package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/kurihiro0119/github-user-search/internal/api"
	"github.com/kurihiro0119/github-user-search/internal/config"
	"github.com/kurihiro0119/github-user-search/internal/gh"
	"github.com/kurihiro0119/github-user-search/internal/repocache"
	"github.com/kurihiro0119/github-user-search/internal/search"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// GitHub client against the mode-resolved base URL
	ghClient := gh.NewClient(cfg.GitHubBaseURL(), nil)

	// Search controller and repository loader sharing one cache
	cache := repocache.New()
	loader := search.NewLoader(ghClient, cache, log)
	controller := search.NewController(ghClient, cache, loader, log)

	// Initialize handler
	handler := api.NewHandler(controller, loader)

	// Setup routes
	router, err := api.SetupRoutes(handler, cfg, log)
	if err != nil {
		log.Fatalf("Failed to set up routes: %v", err)
	}

	// Start server
	addr := fmt.Sprintf("%s:%s", cfg.APIHost, cfg.APIPort)
	log.WithFields(logrus.Fields{
		"addr": addr,
		"mode": cfg.Mode,
	}).Info("starting API server")

	if err := router.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}
