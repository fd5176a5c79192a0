package subscription

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	users := protected.Group("/users")
	{
		users.GET("/subscriptions", h.ListSubscriptions)
		users.POST("/:id/subscribe", h.Subscribe)
		users.DELETE("/:id/subscribe", h.Unsubscribe)
	}
}
