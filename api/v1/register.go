package v1

import (
	"context"
	"net/http"
	"time"

	"github.com/Gorani9/matzip-sub000/api/v1/handlers"
	"github.com/Gorani9/matzip-sub000/container"
	"github.com/Gorani9/matzip-sub000/services"
	"github.com/labstack/echo/v4"
)

func registerUserRoutes(g *echo.Group, handler *handlers.SearchHandler) {
	users := g.Group("/users/:username")

	users.GET("/followers", handler.ListFollowers)
	users.GET("/followings", handler.ListFollowings)
	users.GET("/scraps", handler.ListScraps)
}

func registerReviewRoutes(g *echo.Group, handler *handlers.SearchHandler) {
	g.GET("/reviews", handler.ListReviews)
	g.GET("/comments", handler.ListComments)
}

func registerHealthRoutes(e *echo.Echo, c *container.Container) {
	e.GET("/healthz", func(ctx echo.Context) error {
		pingCtx, cancel := context.WithTimeout(ctx.Request().Context(), 2*time.Second)
		defer cancel()

		if err := c.Postgres.Ping(pingCtx); err != nil {
			return echo.NewHTTPError(http.StatusServiceUnavailable, "database unavailable")
		}
		return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
}

func RegisterRoutes(e *echo.Echo, c *container.Container, svc *services.SearchService) {
	handler := handlers.NewSearchHandler(c, svc)
	group := e.Group("/v1")

	registerUserRoutes(group, handler)
	registerReviewRoutes(group, handler)
	registerHealthRoutes(e, c)
}
