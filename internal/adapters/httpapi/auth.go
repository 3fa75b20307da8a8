package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hackx/internal/domain/entities"
)

type signUpRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type userResponse struct {
	ID                     string   `json:"id"`
	Name                   string   `json:"name"`
	Email                  string   `json:"email"`
	IsAdmin                bool     `json:"isAdmin"`
	RegisteredHackathonIDs []string `json:"registeredHackathonIds"`
}

func toUserResponse(u *entities.User) userResponse {
	ids := u.RegisteredHackathonIDs
	if ids == nil {
		ids = []string{}
	}
	return userResponse{
		ID:                     u.ID,
		Name:                   u.Name,
		Email:                  u.Email,
		IsAdmin:                u.IsAdmin,
		RegisteredHackathonIDs: ids,
	}
}

func (h *handler) SignUp(c *gin.Context) {
	var req signUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.sessions.SignUp(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toUserResponse(user))
}

func (h *handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	user, err := h.sessions.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, toUserResponse(user))
}

func (h *handler) Logout(c *gin.Context) {
	if err := h.sessions.Logout(c.Request.Context()); err != nil {
		h.renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
