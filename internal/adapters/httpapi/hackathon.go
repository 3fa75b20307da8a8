package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"hackx/internal/domain/entities"
)

type hackathonRequest struct {
	Title                string     `json:"title" binding:"required"`
	Description          string     `json:"description"`
	StartsAt             time.Time  `json:"startsAt" binding:"required"`
	EndsAt               time.Time  `json:"endsAt" binding:"required"`
	Location             string     `json:"location"`
	MaxParticipants      int        `json:"maxParticipants"`
	PrizePool            string     `json:"prizePool"`
	RegistrationDeadline *time.Time `json:"registrationDeadline"`
	Organizer            string     `json:"organizer"`
	Status               string     `json:"status"`
}

type hackathonResponse struct {
	ID                   string     `json:"id"`
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	StartsAt             time.Time  `json:"startsAt"`
	EndsAt               time.Time  `json:"endsAt"`
	Location             string     `json:"location"`
	MaxParticipants      int        `json:"maxParticipants"`
	ParticipantCount     int        `json:"participantCount"`
	PrizePool            string     `json:"prizePool"`
	RegistrationDeadline *time.Time `json:"registrationDeadline,omitempty"`
	Organizer            string     `json:"organizer"`
	Status               string     `json:"status"`
}

func (req *hackathonRequest) toEntity() *entities.Hackathon {
	h := &entities.Hackathon{
		Title:           req.Title,
		Description:     req.Description,
		StartsAt:        req.StartsAt,
		EndsAt:          req.EndsAt,
		Location:        req.Location,
		MaxParticipants: req.MaxParticipants,
		PrizePool:       req.PrizePool,
		Organizer:       req.Organizer,
		Status:          req.Status,
	}
	if req.RegistrationDeadline != nil {
		h.RegistrationDeadline = *req.RegistrationDeadline
	}
	return h
}

func toHackathonResponse(h *entities.Hackathon) hackathonResponse {
	resp := hackathonResponse{
		ID:               h.ID,
		Title:            h.Title,
		Description:      h.Description,
		StartsAt:         h.StartsAt,
		EndsAt:           h.EndsAt,
		Location:         h.Location,
		MaxParticipants:  h.MaxParticipants,
		ParticipantCount: h.ParticipantCount,
		PrizePool:        h.PrizePool,
		Organizer:        h.Organizer,
		Status:           h.Status,
	}
	if !h.RegistrationDeadline.IsZero() {
		deadline := h.RegistrationDeadline
		resp.RegistrationDeadline = &deadline
	}
	return resp
}

func (h *handler) ListHackathons(c *gin.Context) {
	var (
		hackathons []entities.Hackathon
		err        error
	)
	if status := c.Query("status"); status != "" {
		hackathons, err = h.hackathons.ListHackathonsByStatus(c.Request.Context(), status)
	} else {
		hackathons, err = h.hackathons.ListHackathons(c.Request.Context())
	}
	if err != nil {
		h.renderError(c, err)
		return
	}
	out := make([]hackathonResponse, 0, len(hackathons))
	for i := range hackathons {
		out = append(out, toHackathonResponse(&hackathons[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (h *handler) GetHackathon(c *gin.Context) {
	hackathon, err := h.hackathons.GetHackathon(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, toHackathonResponse(hackathon))
}

func (h *handler) CreateHackathon(c *gin.Context) {
	var req hackathonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	hackathon := req.toEntity()
	if err := h.hackathons.CreateHackathon(c.Request.Context(), hackathon); err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toHackathonResponse(hackathon))
}

func (h *handler) UpdateHackathon(c *gin.Context) {
	var req hackathonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	existing, err := h.hackathons.GetHackathon(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.renderError(c, err)
		return
	}
	hackathon := req.toEntity()
	hackathon.ID = existing.ID
	hackathon.ParticipantCount = existing.ParticipantCount
	hackathon.RegisteredUserIDs = existing.RegisteredUserIDs
	hackathon.CreatedAt = existing.CreatedAt
	if hackathon.Status == "" {
		hackathon.Status = existing.Status
	}
	if err := h.hackathons.UpdateHackathon(c.Request.Context(), hackathon); err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, toHackathonResponse(hackathon))
}

func (h *handler) CancelHackathon(c *gin.Context) {
	if err := h.hackathons.CancelHackathon(c.Request.Context(), c.Param("id")); err != nil {
		h.renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) DeleteHackathon(c *gin.Context) {
	if err := h.hackathons.DeleteHackathon(c.Request.Context(), c.Param("id")); err != nil {
		h.renderError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handler) GetParticipants(c *gin.Context) {
	registrations, err := h.hackathons.GetParticipants(c.Request.Context(), c.Param("id"))
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
