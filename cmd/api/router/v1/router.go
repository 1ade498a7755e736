package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cache "pairchat/internal/infrastructure/cache/port"
	qport "pairchat/internal/infrastructure/queue/port"
	chathttp "pairchat/internal/pkg/chat/presentation/http"
	"pairchat/internal/pkg/identity/middleware"
	idport "pairchat/internal/pkg/identity/port"
	profilehttp "pairchat/internal/pkg/profile/presentation/http"
)

// RegisterRoutes mounts all version 1 API routes under /api/v1.
// Every route requires a resolved caller identity.
func RegisterRoutes(r *gin.Engine, pool *pgxpool.Pool, kv cache.Cache, q qport.Client, resolver idport.Resolver) {
	v1 := r.Group("/api/v1")
	v1.Use(middleware.RequireUser(resolver))

	// The resolved caller id, for clients that need it up front.
	v1.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": middleware.UserID(c)})
	})

	chathttp.RegisterRoutes(v1, pool, kv, q)
	profilehttp.RegisterRoutes(v1, pool, kv)
}
