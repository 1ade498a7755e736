package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cache "pairchat/internal/infrastructure/cache/port"
	"pairchat/internal/pkg/identity/middleware"
	"pairchat/internal/pkg/profile/application/usecase"
	"pairchat/internal/pkg/profile/persistence/repository/adapter"
)

// UpsertProfileController handles create-or-partial-update of the caller's
// own profile. Only the owning user can mutate it, so the target id always
// comes from the resolved identity, never from the request body.
type UpsertProfileController struct {
	UC *usecase.UpsertProfileUseCase
}

func NewUpsertProfileController(pool *pgxpool.Pool, c cache.Cache) *UpsertProfileController {
	repo := adapter.NewPgProfileRepository(pool)
	uc := usecase.NewUpsertProfileUseCase(repo, c)
	return &UpsertProfileController{UC: uc}
}

type upsertProfileRequest struct {
	Username  *string `json:"username"`
	AvatarURL *string `json:"avatar_url"`
}

func (h *UpsertProfileController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req upsertProfileRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		in := usecase.UpsertProfileInput{
			UserID:    middleware.UserID(c),
			Username:  req.Username,
			AvatarURL: req.AvatarURL,
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		p, err := h.UC.Execute(ctx, in)
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, usecase.ErrPersistence) {
				status = http.StatusInternalServerError
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"profile": p})
	}
}
