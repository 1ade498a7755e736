package controller

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cache "pairchat/internal/infrastructure/cache/port"
	qport "pairchat/internal/infrastructure/queue/port"
	chat "pairchat/internal/pkg/chat/application/domain"
	"pairchat/internal/pkg/chat/application/task"
	"pairchat/internal/pkg/chat/application/usecase"
	"pairchat/internal/pkg/chat/persistence/repository/adapter"
	"pairchat/internal/pkg/identity/middleware"
)

// CreateChatController handles the create-or-get session endpoint
// One controller per endpoint

type CreateChatController struct {
	UC    *usecase.CreateOrGetSessionUseCase
	Queue qport.Client // optional; nil skips the session-created task
}

func NewCreateChatController(pool *pgxpool.Pool, c cache.Cache, q qport.Client) *CreateChatController {
	repo := adapter.NewPgChatRepository(pool)
	uc := usecase.NewCreateOrGetSessionUseCase(repo, c)
	return &CreateChatController{UC: uc, Queue: q}
}

type createChatRequest struct {
	Username string `json:"username" binding:"required"`
}

func (h *CreateChatController) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		var req createChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		in := usecase.CreateOrGetSessionInput{
			CallerID:       middleware.UserID(c),
			TargetUsername: req.Username,
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()
		out, err := h.UC.Execute(ctx, in)
		if err != nil {
			status := http.StatusInternalServerError
			switch {
			case errors.Is(err, usecase.ErrValidation):
				status = http.StatusBadRequest
			case errors.Is(err, usecase.ErrUserNotFound):
				status = http.StatusNotFound
			}
			c.JSON(status, gin.H{"error": err.Error()})
			return
		}

		if out.Created && h.Queue != nil {
			// Best effort: a missed task only delays cache invalidation.
			if t, err := task.NewSessionCreatedTask(out.Session); err == nil {
				if _, err := h.Queue.Enqueue(ctx, t, qport.EnqueueOption{Queue: "chat"}); err != nil {
					log.Printf("chat: enqueue session_created: %v", err)
				}
			}
		}

		status := http.StatusOK
		if out.Created {
			status = http.StatusCreated
		}
		c.JSON(status, gin.H{
			"created": out.Created,
			"session": sessionJSON(out.Session),
		})
	}
}

// sessionJSON serializes a session; field names kept explicit for clarity.
func sessionJSON(s chat.Session) gin.H {
	return gin.H{
		"id":           s.ID,
		"title":        s.Title,
		"participants": []string{s.ParticipantA, s.ParticipantB},
		"created_at":   s.CreatedAt,
		"updated_at":   s.UpdatedAt,
	}
}
