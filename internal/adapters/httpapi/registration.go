package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hackx/internal/domain/entities"
	"hackx/internal/ports/input"
)

type registerRequest struct {
	UserID    string `json:"userId" binding:"required"`
	FullName  string `json:"fullName" binding:"required"`
	Mobile    string `json:"mobile"`
	College   string `json:"college"`
	Education string `json:"education"`
	Field     string `json:"field"`
	TeamName  string `json:"teamName"`
	TeamSize  int    `json:"teamSize"`
}

type withdrawRequest struct {
	UserID string `json:"userId" binding:"required"`
}

type registrationResponse struct {
	ID           string    `json:"id"`
	UserID       string    `json:"userId"`
	HackathonID  string    `json:"hackathonId"`
	FullName     string    `json:"fullName"`
	Mobile       string    `json:"mobile"`
	College      string    `json:"college"`
	Education    string    `json:"education"`
	Field        string    `json:"field"`
	TeamName     string    `json:"teamName"`
	TeamSize     int       `json:"teamSize"`
	Status       string    `json:"status"`
	RegisteredAt time.Time `json:"registeredAt"`
}

func toRegistrationResponse(reg *entities.Registration) registrationResponse {
	return registrationResponse{
		ID:           reg.ID,
		UserID:       reg.UserID,
		HackathonID:  reg.HackathonID,
		FullName:     reg.FullName,
		Mobile:       reg.Mobile,
		College:      reg.College,
		Education:    reg.Education,
		Field:        reg.Field,
		TeamName:     reg.TeamName,
		TeamSize:     reg.TeamSize,
		Status:       reg.Status,
		RegisteredAt: reg.RegisteredAt,
	}
}

func (h *handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	form := input.RegistrationForm{
		FullName:  req.FullName,
		Mobile:    req.Mobile,
		College:   req.College,
		Education: req.Education,
		Field:     req.Field,
		TeamName:  req.TeamName,
		TeamSize:  req.TeamSize,
	}
	registration, err := h.registrations.Register(c.Request.Context(), req.UserID, c.Param("id"), form)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toRegistrationResponse(registration))
}

func (h *handler) Withdraw(c *gin.Context) {
	var req withdrawRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.registrations.Withdraw(c.Request.Context(), req.UserID, c.Param("id")); err != nil {
		h.renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) ApproveRegistration(c *gin.Context) {
	if err := h.registrations.ApproveRegistration(c.Request.Context(), c.Param("id")); err != nil {
		h.renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) RejectRegistration(c *gin.Context) {
	if err := h.registrations.RejectRegistration(c.Request.Context(), c.Param("id")); err != nil {
		h.renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) PromoteNextWaitlisted(c *gin.Context) {
	registration, err := h.registrations.PromoteNextWaitlisted(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, toRegistrationResponse(registration))
}

func (h *handler) GetUserRegistrations(c *gin.Context) {
	registrations, err := h.registrations.GetUserRegistrations(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	out := make([]registrationResponse, 0, len(registrations))
	for i := range registrations {
		out = append(out, toRegistrationResponse(&registrations[i]))
	}
	c.JSON(http.StatusOK, out)
}
