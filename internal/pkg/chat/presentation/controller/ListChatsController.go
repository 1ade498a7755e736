package controller

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cache "pairchat/internal/infrastructure/cache/port"
	"pairchat/internal/pkg/chat/application/usecase"
	"pairchat/internal/pkg/chat/persistence/repository/adapter"
	"pairchat/internal/pkg/identity/middleware"
)

// ListChatsController handles fetching the caller's sessions with previews
// (one controller per endpoint)
type ListChatsController struct {
	UC *usecase.ListChatsUseCase
}

func NewListChatsController(pool *pgxpool.Pool, c cache.Cache) *ListChatsController {
	repo := adapter.NewPgChatRepository(pool)
	uc := usecase.NewListChatsUseCase(repo, c)
	return &ListChatsController{UC: uc}
}

func (h *ListChatsController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		in := usecase.ListChatsInput{UserID: middleware.UserID(c)}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		previews, err := h.UC.Execute(ctx, in)
		if err != nil {
			status := http.StatusBadRequest
			if errors.Is(err, usecase.ErrPersistence) {
				status = http.StatusInternalServerError
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		out := make([]gin.H, 0, len(previews))
		for _, p := range previews {
			item := sessionJSON(p.Session)
			if p.Preview != nil {
				item["last_message"] = gin.H{
					"id":         p.Preview.ID,
					"content":    p.Preview.Content,
					"created_at": p.Preview.CreatedAt,
				}
			} else {
				item["last_message"] = nil
			}
			out = append(out, item)
		}

		c.JSON(http.StatusOK, gin.H{
			"chats": out,
			"count": len(out),
		})
	}
}
