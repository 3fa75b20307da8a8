// Package announce posts new-hackathon announcements to a Discord channel.
// It is a pure side-effecting consumer of the notification dispatcher; the
// platform runs fine without it.
package announce

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"hackx/internal/domain/entities"
	"hackx/internal/ports/output"
)

const (
	embedColor = 0x5865F2
	embedTitle = "🚀 New hackathon"
)

var _ output.Announcer = (*DiscordAnnouncer)(nil)

type DiscordAnnouncer struct {
	session   *discordgo.Session
	channelID string
}

func NewDiscordAnnouncer(token, channelID string) (*DiscordAnnouncer, error) {
	s, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("create discord session: %w", err)
	}
	if err := s.Open(); err != nil {
		return nil, fmt.Errorf("open discord session: %w", err)
	}
	return &DiscordAnnouncer{session: s, channelID: channelID}, nil
}

func (a *DiscordAnnouncer) Close() error {
	return a.session.Close()
}

func (a *DiscordAnnouncer) AnnounceHackathon(ctx context.Context, hackathon *entities.Hackathon) error {
	embed := buildHackathonEmbed(hackathon)
	if _, err := a.session.ChannelMessageSendEmbed(a.channelID, embed); err != nil {
		return fmt.Errorf("announce hackathon %s: %w", hackathon.ID, err)
	}
	return nil
}

func formatSlots(maxParticipants, participantCount int) string {
	if maxParticipants == 0 {
		return fmt.Sprintf("%d (unlimited)", participantCount)
	}
	return fmt.Sprintf("%d/%d", participantCount, maxParticipants)
}

func buildHackathonEmbed(h *entities.Hackathon) *discordgo.MessageEmbed {
	var b strings.Builder
	b.WriteString(h.Description)
	if !h.StartsAt.IsZero() {
		fmt.Fprintf(&b, "\n\n**When:** %s", h.StartsAt.UTC().Format("Jan 2, 2006 15:04 MST"))
	}
	if h.Location != "" {
		fmt.Fprintf(&b, "\n**Where:** %s", h.Location)
	}
	if h.PrizePool != "" {
		fmt.Fprintf(&b, "\n**Prizes:** %s", h.PrizePool)
	}
	fmt.Fprintf(&b, "\n**Slots:** %s", formatSlots(h.MaxParticipants, h.ParticipantCount))

	embed := &discordgo.MessageEmbed{
		Title:       embedTitle + ": " + h.Title,
		Description: b.String(),
		Color:       embedColor,
	}
	if h.Organizer != "" {
		embed.Footer = &discordgo.MessageEmbedFooter{Text: "Organized by " + h.Organizer}
	}
	return embed
}
