package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"pairchat/internal/pkg/identity/middleware"
	"pairchat/internal/pkg/profile/application/usecase"
	"pairchat/internal/pkg/profile/persistence/repository/adapter"
)

// GetProfileController serves a profile by id, defaulting to the caller's own
// (one controller per endpoint)
type GetProfileController struct {
	UC *usecase.GetProfileUseCase
}

func NewGetProfileController(pool *pgxpool.Pool) *GetProfileController {
	repo := adapter.NewPgProfileRepository(pool)
	uc := usecase.NewGetProfileUseCase(repo)
	return &GetProfileController{UC: uc}
}

func (h *GetProfileController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.Param("id")
		if userID == "" {
			userID = middleware.UserID(c)
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		p, err := h.UC.Execute(ctx, usecase.GetProfileInput{UserID: userID})
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, usecase.ErrPersistence) {
				status = http.StatusInternalServerError
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		if p == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"profile": p})
	}
}
