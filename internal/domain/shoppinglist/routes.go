package shoppinglist

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/recipes/download_shopping_cart", h.Download)
	protected.GET("/recipes/shopping_cart", h.List)
}
