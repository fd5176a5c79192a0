package user

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"foodgram/internal/middleware"
	"foodgram/internal/pkg/response"
	"foodgram/internal/pkg/utils"
	"foodgram/internal/pkg/validator"
)

// SubscriptionChecker answers whether subscriberID follows authorID.
type SubscriptionChecker interface {
	IsSubscribed(ctx context.Context, subscriberID, authorID int64) (bool, error)
}

// Handler serves token login and user lookups.
type Handler struct {
	service *Service
	subs    SubscriptionChecker
}

func NewHandler(service *Service, subs SubscriptionChecker) *Handler {
	return &Handler{service: service, subs: subs}
}

// Login issues an access token.
// @Summary		Obtain token
// @Tags		Auth
// @Accept		json
// @Produce		json
// @Param		body	body	LoginRequest	true	"credentials"
// @Success		201	{object}	TokenResponse
// @Router		/auth/token/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.FromError(c, validator.BindingError(err))
		return
	}

	token, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, TokenResponse{AuthToken: token})
}

// Logout is a no-op for stateless tokens; clients drop the token.
func (h *Handler) Logout(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

func (h *Handler) GetMe(c *gin.Context) {
	u, err := h.service.GetByID(c.Request.Context(), middleware.CurrentUserID(c))
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ToResponse(u, false))
}

// GetUser returns a user profile with is_subscribed for the caller.
// @Summary		Get user
// @Tags		Users
// @Produce		json
// @Param		id	path	int	true	"user id"
// @Success		200	{object}	Response
// @Router		/users/{id} [get]
func (h *Handler) GetUser(c *gin.Context) {
	id, err := utils.ParamID(c, "id")
	if err != nil {
		response.FromError(c, err)
		return
	}

	u, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	subscribed := false
	if viewer := middleware.CurrentUserID(c); viewer != 0 && h.subs != nil {
		subscribed, err = h.subs.IsSubscribed(c.Request.Context(), viewer, u.ID)
		if err != nil {
			response.FromError(c, err)
			return
		}
	}

	response.Success(c, http.StatusOK, ToResponse(u, subscribed))
}
