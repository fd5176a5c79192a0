package recipe

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"foodgram/internal/middleware"
	"foodgram/internal/pkg/response"
	"foodgram/internal/pkg/utils"
	"foodgram/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// CreateRecipe publishes a recipe authored by the caller.
// @Summary		Create recipe
// @Tags		Recipes
// @Accept		json
// @Produce		json
// @Param		body	body	WriteRequest	true	"recipe"
// @Success		201	{object}	Response
// @Failure		400	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}
// @Router		/recipes [post]
func (h *Handler) CreateRecipe(c *gin.Context) {
	var req WriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, validator.BindingError(err))
		return
	}

	userID := middleware.CurrentUserID(c)
	rec, err := h.service.Create(c.Request.Context(), userID, req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	out, err := h.service.Get(c.Request.Context(), userID, rec.ID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, out)
}

// UpdateRecipe replaces a recipe. Tags and ingredients are not merged.
// @Summary		Update recipe
// @Tags		Recipes
// @Accept		json
// @Produce		json
// @Param		id		path	int				true	"recipe id"
// @Param		body	body	WriteRequest	true	"recipe"
// @Success		200	{object}	Response
// @Failure		403	{object}	map[string]interface{}
// @Router		/recipes/{id} [patch]
func (h *Handler) UpdateRecipe(c *gin.Context) {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	var req WriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, validator.BindingError(err))
		return
	}

	userID := middleware.CurrentUserID(c)
	if _, err := h.service.Update(c.Request.Context(), userID, id, req); err != nil {
		response.FromError(c, err)
		return
	}

	out, err := h.service.Get(c.Request.Context(), userID, id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

func (h *Handler) DeleteRecipe(c *gin.Context) {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	if err := h.service.Delete(c.Request.Context(), middleware.CurrentUserID(c), id); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) GetRecipe(c *gin.Context) {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	out, err := h.service.Get(c.Request.Context(), middleware.CurrentUserID(c), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}

// ListRecipes returns recipes newest first.
// @Summary		List recipes
// @Tags		Recipes
// @Produce		json
// @Param		author				query	int		false	"author id"
// @Param		tags				query	[]string	false	"tag slugs, any of"
// @Param		is_favorited		query	int		false	"1 to keep only the caller's favorites"
// @Param		is_in_shopping_cart	query	int		false	"1 to keep only the caller's cart"
// @Param		limit				query	int		false	"max results"
// @Success		200	{array}	Response
// @Router		/recipes [get]
func (h *Handler) ListRecipes(c *gin.Context) {
	q := ListQuery{
		Tags:      c.QueryArray("tags"),
		Favorited: utils.QueryFlag(c, "is_favorited"),
		InCart:    utils.QueryFlag(c, "is_in_shopping_cart"),
	}

	author, ok, err := utils.QueryInt(c, "author")
	if err != nil {
		response.FromError(c, err)
		return
	}
	if ok {
		q.AuthorID = int64(author)
	}

	if q.Limit, _, err = utils.QueryInt(c, "limit"); err != nil {
		response.FromError(c, err)
		return
	}

	out, err := h.service.List(c.Request.Context(), middleware.CurrentUserID(c), q)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, out)
}
