package output

import (
	"context"

	"hackx/internal/domain/entities"
)

// Mailer sends a plaintext mail to a single recipient.
type Mailer interface {
	SendMail(ctx context.Context, to, subject, body string) error
}

// Announcer publishes a newly created hackathon to an announcement channel.
type Announcer interface {
	AnnounceHackathon(ctx context.Context, hackathon *entities.Hackathon) error
}
