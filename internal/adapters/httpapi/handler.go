package httpapi

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"hackx/internal/domain"
	"hackx/internal/ports/input"
	"hackx/internal/ports/output"
)

type handler struct {
	sessions      input.SessionUseCase
	hackathons    input.HackathonUseCase
	registrations input.RegistrationUseCase
	translator    output.T
}

func newHandler(
	sessions input.SessionUseCase,
	hackathons input.HackathonUseCase,
	registrations input.RegistrationUseCase,
	translator output.T,
) *handler {
	return &handler{
		sessions:      sessions,
		hackathons:    hackathons,
		registrations: registrations,
		translator:    translator,
	}
}

// requireAdmin gates the admin endpoints on the caller identity header. The
// original app checked the current user against the admin allow-list before
// showing admin screens; the header carries that identity here.
func (h *handler) requireAdmin(c *gin.Context) {
	email := c.GetHeader("X-User-Email")
	if email == "" || !h.sessions.IsAdmin(c.Request.Context(), email) {
		h.renderError(c, domain.ErrNotAdmin)
		c.Abort()
		return
	}
	c.Next()
}

// renderError maps domain errors to HTTP statuses and localized messages.
// Anything unrecognized degrades to a generic 500 without leaking internals.
func (h *handler) renderError(c *gin.Context, err error) {
	var validationErr *domain.ValidationError
	if errors.As(err, &validationErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": validationErr.Reason,
			"field": validationErr.Field,
		})
		return
	}

	code := domain.Code(err)
	if code == "" {
		slog.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	status := http.StatusBadRequest
	switch {
	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrHackathonNotFound),
		errors.Is(err, domain.ErrRegistrationNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrDuplicateEmail),
		errors.Is(err, domain.ErrAlreadyRegistered),
		errors.Is(err, domain.ErrHackathonFull):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrNotLoggedIn):
		status = http.StatusUnauthorized
	case errors.Is(err, domain.ErrNotAdmin):
		status = http.StatusForbidden
	}
	c.JSON(status, gin.H{
		"error": h.translator.T(localeOf(c), "error."+code, nil),
		"code":  code,
	})
}

func localeOf(c *gin.Context) string {
	return c.GetHeader("Accept-Language")
}
