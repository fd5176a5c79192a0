package membership

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"foodgram/internal/domain/recipe"
	"foodgram/internal/middleware"
	"foodgram/internal/pkg/response"
	"foodgram/internal/pkg/utils"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// add returns the POST handler for one set. The response is the short
// recipe form.
func (h *Handler) add(kind Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		recipeID, err := utils.ParamID(c, "id")
		if err != nil {
			response.FromError(c, err)
			return
		}

		m, err := h.service.Add(c.Request.Context(), middleware.CurrentUserID(c), recipeID, kind)
		if err != nil {
			response.FromError(c, err)
			return
		}
		response.Success(c, http.StatusCreated, recipe.ToShortResponse(m.Recipe))
	}
}

func (h *Handler) remove(kind Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		recipeID, err := utils.ParamID(c, "id")
		if err != nil {
			response.FromError(c, err)
			return
		}

		if err := h.service.Remove(c.Request.Context(), middleware.CurrentUserID(c), recipeID, kind); err != nil {
			response.FromError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	}
}
