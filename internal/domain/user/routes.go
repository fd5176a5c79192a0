package user

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes mounts the token endpoints and public profiles.
// Extra handlers (rate limiting) run in front of login only.
func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup, loginGuards ...gin.HandlerFunc) {
	authGroup := r.Group("/auth/token")
	{
		authGroup.POST("/login", append(loginGuards, h.Login)...)
	}

	r.GET("/users/:id", h.GetUser)
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.POST("/auth/token/logout", h.Logout)
	protected.GET("/users/me", h.GetMe)
}
