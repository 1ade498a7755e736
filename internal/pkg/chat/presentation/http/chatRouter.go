package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cache "pairchat/internal/infrastructure/cache/port"
	qport "pairchat/internal/infrastructure/queue/port"
	"pairchat/internal/pkg/chat/presentation/controller"
)

// RegisterRoutes registers chat-directory HTTP endpoints under the given
// router group. It constructs per-endpoint controllers and binds them
// directly to routes.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, c cache.Cache, q qport.Client) {
	createCtl := controller.NewCreateChatController(pool, c, q)
	listCtl := controller.NewListChatsController(pool, c)

	g.POST("/chats", createCtl.Handle())
	g.GET("/chats", listCtl.Handle())
}
