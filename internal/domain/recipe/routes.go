package recipe

import "github.com/gin-gonic/gin"

func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	recipes := r.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	recipes := protected.Group("/recipes")
	{
		recipes.POST("", h.CreateRecipe)
		recipes.PATCH("/:id", h.UpdateRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)
	}
}
