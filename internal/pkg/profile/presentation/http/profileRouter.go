package http

import (
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	cache "pairchat/internal/infrastructure/cache/port"
	"pairchat/internal/pkg/profile/presentation/controller"
)

// RegisterRoutes registers profile HTTP endpoints under the given router group.
func RegisterRoutes(g *gin.RouterGroup, pool *pgxpool.Pool, c cache.Cache) {
	getCtl := controller.NewGetProfileController(pool)
	upsertCtl := controller.NewUpsertProfileController(pool, c)

	g.GET("/profile", getCtl.Handle())
	g.GET("/profile/:id", getCtl.Handle())
	g.PUT("/profile", upsertCtl.Handle())
}
