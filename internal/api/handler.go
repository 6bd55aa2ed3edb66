package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/kurihiro0119/github-user-search/internal/domain"
	apperrors "github.com/kurihiro0119/github-user-search/internal/errors"
	"github.com/kurihiro0119/github-user-search/internal/search"
)

// Handler handles API requests
type Handler struct {
	controller *search.Controller
	loader     *search.Loader
}

// NewHandler creates a new API handler
func NewHandler(controller *search.Controller, loader *search.Loader) *Handler {
	return &Handler{
		controller: controller,
		loader:     loader,
	}
}

// Search runs a user search and returns the resulting state
// GET /api/v1/search?q=<term>
func (h *Handler) Search(c *gin.Context) {
	query := c.Query("q")
	if strings.TrimSpace(query) == "" {
		respondError(c, apperrors.NewBadRequestError("query parameter 'q' is required"))
		return
	}

	state := h.controller.SearchAndWait(c.Request.Context(), query)

	c.JSON(http.StatusOK, gin.H{
		"data": state,
	})
}

// userReposResponse is the payload for a user's repository list
type userReposResponse struct {
	Login   string        `json:"login"`
	Repos   []domain.Repo `json:"repos"`
	Message string        `json:"message,omitempty"`
}

// UserRepos returns a user's public repositories, served from cache after
// the first successful fetch
// GET /api/v1/users/:login/repos
func (h *Handler) UserRepos(c *gin.Context) {
	login := c.Param("login")

	repos, err := h.loader.Load(c.Request.Context(), login)
	if err != nil {
		respondError(c, err)
		return
	}

	resp := userReposResponse{
		Login: login,
		Repos: repos,
	}
	if len(repos) == 0 {
		resp.Message = domain.NoRepositories
	}

	c.JSON(http.StatusOK, gin.H{
		"data": resp,
	})
}

// HealthCheck returns the health status of the API
// GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// respondError sends an error response
func respondError(c *gin.Context, err error) {
	if appErr, ok := err.(*apperrors.AppError); ok {
		status := http.StatusInternalServerError
		switch appErr.Code {
		case apperrors.ErrCodeBadRequest:
			status = http.StatusBadRequest
		case apperrors.ErrCodeUserSearch, apperrors.ErrCodeRepoFetch:
			status = http.StatusBadGateway
		}
		c.JSON(status, gin.H{
			"error": gin.H{
				"code":    appErr.Code,
				"message": appErr.Message,
			},
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrCodeInternal,
			"message": err.Error(),
		},
	})
}
