package catalog

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"foodgram/internal/pkg/response"
	"foodgram/internal/pkg/utils"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// ListIngredients returns the catalog, optionally filtered by name prefix.
// @Summary		List ingredients
// @Tags		Catalog
// @Produce		json
// @Param		name	query	string	false	"name prefix"
// @Success		200	{array}	Ingredient
// @Router		/ingredients [get]
func (h *Handler) ListIngredients(c *gin.Context) {
	items, err := h.service.ListIngredients(c.Request.Context(), c.Query("name"))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) GetIngredient(c *gin.Context) {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	item, err := h.service.GetIngredient(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, item)
}

func (h *Handler) ListTags(c *gin.Context) {
	tags, err := h.service.ListTags(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, tags)
}

func (h *Handler) GetTag(c *gin.Context) {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	tag, err := h.service.GetTag(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, tag)
}
