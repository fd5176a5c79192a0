package subscription

import (
	"net/http"

	"github.com/gin-gonic/gin"

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

func recipesLimit(c *gin.Context) (*int, error) {
	v, ok, err := utils.QueryInt(c, "recipes_limit")
	if err != nil || !ok {
		return nil, err
	}
	return &v, nil
}

// Subscribe follows the author in the path.
// @Summary		Subscribe to author
// @Tags		Users
// @Produce		json
// @Param		id				path	int	true	"author id"
// @Param		recipes_limit	query	int	false	"recipes in the preview"
// @Success		201	{object}	AuthorResponse
// @Failure		400	{object}	map[string]interface{}
// @Failure		404	{object}	map[string]interface{}
// @Router		/users/{id}/subscribe [post]
func (h *Handler) Subscribe(c *gin.Context) {
	authorID, err := utils.ParamID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}
	limit, err := recipesLimit(c)
	if err != nil {
		response.FromError(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.service.Subscribe(ctx, middleware.CurrentUserID(c), authorID); err != nil {
		response.FromError(c, err)
		return
	}

	out, err := h.service.Author(ctx, authorID, limit)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, out)
}

func (h *Handler) Unsubscribe(c *gin.Context) {
	authorID, err := utils.ParamID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	if err := h.service.Unsubscribe(c.Request.Context(), middleware.CurrentUserID(c), authorID); err != nil {
		response.FromError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListSubscriptions returns followed authors with recipe previews.
// @Summary		My subscriptions
// @Tags		Users
// @Produce		json
// @Param		recipes_limit	query	int	false	"recipes per author"
// @Param		page			query	int	false	"page number, from 1"
// @Param		limit			query	int	false	"authors per page"
// @Success		200	{object}	Page
// @Router		/users/subscriptions [get]
func (h *Handler) ListSubscriptions(c *gin.Context) {
	var p ListParams
	var err error

	if p.RecipesLimit, err = recipesLimit(c); err != nil {
		response.FromError(c, err)
		return
	}
	var hasPage bool
	if p.Page, hasPage, err = utils.QueryInt(c, "page"); err != nil {
		response.FromError(c, err)
		return
	}
	// pages start at 1; only an absent parameter means the first page
	if hasPage && p.Page < 1 {
		response.FromError(c, ErrInvalidPage)
		return
	}
	if p.Limit, _, err = utils.QueryInt(c, "limit"); err != nil {
		response.FromError(c, err)
		return
	}

	page, err := h.service.List(c.Request.Context(), middleware.CurrentUserID(c), p)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, page)
}
