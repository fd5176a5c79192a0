package membership

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	recipes := protected.Group("/recipes/:id")
	{
		recipes.POST("/favorite", h.add(KindFavorite))
		recipes.DELETE("/favorite", h.remove(KindFavorite))
		recipes.POST("/shopping_cart", h.add(KindCart))
		recipes.DELETE("/shopping_cart", h.remove(KindCart))
	}
}
