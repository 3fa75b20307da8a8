package application

import (
	"context"
	"log/slog"

	"hackx/internal/domain"
	"hackx/internal/domain/entities"
	"hackx/internal/ports/output"
)

// Notifier composes outbound mail from i18n templates and hands it to the
// Mailer. It is a pure side-effecting consumer: send failures are logged and
// never propagate to the mutation that triggered them.
type Notifier struct {
	mailer     output.Mailer
	userRepo   output.UserRepository
	translator output.T
}

func NewNotifier(mailer output.Mailer, userRepo output.UserRepository, translator output.T) *Notifier {
	return &Notifier{
		mailer:     mailer,
		userRepo:   userRepo,
		translator: translator,
	}
}

// RegistrationReceived mails the registrant a confirmation, or a waitlist
// notice when the registration was waitlisted.
func (n *Notifier) RegistrationReceived(ctx context.Context, user *entities.User, hackathon *entities.Hackathon, registration *entities.Registration) {
	data := map[string]any{
		"Name":      user.Name,
		"Hackathon": hackathon.Title,
	}
	subjectKey, bodyKey := "mail.registration_confirmed.subject", "mail.registration_confirmed.body"
	if registration.Status == domain.StatusWaitlisted {
		subjectKey, bodyKey = "mail.registration_waitlisted.subject", "mail.registration_waitlisted.body"
	}
	n.send(ctx, user.Email, subjectKey, bodyKey, data)
}

// HackathonCancelled mails every user registered for the hackathon.
func (n *Notifier) HackathonCancelled(ctx context.Context, hackathon *entities.Hackathon) {
	for _, userID := range hackathon.RegisteredUserIDs {
		user, err := n.userRepo.FindByID(ctx, userID)
		if err != nil {
			slog.Warn("cancellation mail skipped", "user", userID, "error", err)
			continue
		}
		data := map[string]any{
			"Name":      user.Name,
			"Hackathon": hackathon.Title,
		}
		n.send(ctx, user.Email, "mail.hackathon_cancelled.subject", "mail.hackathon_cancelled.body", data)
	}
}

func (n *Notifier) send(ctx context.Context, to, subjectKey, bodyKey string, data map[string]any) {
	subject := n.translator.T("", subjectKey, data)
	body := n.translator.T("", bodyKey, data)
	if err := n.mailer.SendMail(ctx, to, subject, body); err != nil {
		slog.Warn("mail send failed", "to", to, "error", err)
	}
}
