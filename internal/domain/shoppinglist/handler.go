package shoppinglist

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"foodgram/internal/middleware"
	"foodgram/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Download sends the caller's aggregated shopping list as an attachment.
// @Summary		Download shopping list
// @Tags		Recipes
// @Produce		plain
// @Produce		application/pdf
// @Param		format	query	string	false	"txt (default) or pdf"
// @Success		200	{file}	file
// @Router		/recipes/download_shopping_cart [get]
func (h *Handler) Download(c *gin.Context) {
	doc, err := h.service.Document(c.Request.Context(), middleware.CurrentUserID(c), c.Query("format"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	c.Data(http.StatusOK, doc.ContentType, doc.Body)
}

// List returns the aggregated items as JSON.
func (h *Handler) List(c *gin.Context) {
	items, err := h.service.Items(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}
