package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"hackx/internal/adapters/announce"
	"hackx/internal/adapters/httpapi"
	"hackx/internal/application"
	"hackx/internal/config"
	"hackx/internal/infrastructure/database"
	"hackx/internal/infrastructure/i18n"
	"hackx/internal/infrastructure/localstore"
	"hackx/internal/infrastructure/mail"
	"hackx/internal/logger"
	"hackx/internal/ports/output"
	"hackx/internal/pubsub"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger.Setup(cfg.Env)
	slog.Info("starting hackx", "env", cfg.Env)

	ctx := context.Background()
	bus := pubsub.NewBus(prometheus.DefaultRegisterer)
	translator := i18n.NewTranslator(cfg.DefaultLocale)

	var (
		userRepo         output.UserRepository
		hackathonRepo    output.HackathonRepository
		registrationRepo output.RegistrationRepository
		sessionStore     output.SessionStore
	)

	if cfg.DatabaseURL != "" {
		if err := database.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			slog.Error("migrations failed", "error", err)
			os.Exit(1)
		}
		pool, err := database.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("database init failed", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		userRepo = database.NewUserRepository(pool)
		hackathonRepo = database.NewHackathonRepository(pool)
		registrationRepo = database.NewRegistrationRepository(pool)
	} else {
		store, err := localstore.Open(cfg.DataDir, bus)
		if err != nil {
			slog.Error("local store init failed", "dir", cfg.DataDir, "error", err)
			os.Exit(1)
		}
		defer store.Close()
		userRepo = store.Users()
		hackathonRepo = store.Hackathons()
		registrationRepo = store.Registrations()
		sessionStore = store
	}

	var notifier *application.Notifier
	if cfg.MailEnabled() {
		mailer := mail.NewSMTPMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)
		notifier = application.NewNotifier(mailer, userRepo, translator)
	}

	var announcer output.Announcer
	if cfg.AnnounceEnabled() {
		discordAnnouncer, err := announce.NewDiscordAnnouncer(cfg.DiscordToken, cfg.DiscordChannelID)
		if err != nil {
			slog.Error("discord announcer init failed", "error", err)
			os.Exit(1)
		}
		defer discordAnnouncer.Close()
		announcer = discordAnnouncer
	}

	capacityMode := application.CapacityLenient
	if cfg.StrictCapacity {
		capacityMode = application.CapacityStrict
	}

	sessions := application.NewSessionService(userRepo, sessionStore, bus, cfg.AdminEmails)
	hackathons := application.NewHackathonService(hackathonRepo, registrationRepo, translator, announcer, notifier)
	registrations := application.NewRegistrationService(registrationRepo, hackathonRepo, userRepo, notifier, capacityMode)

	server := httpapi.NewServer(cfg, sessions, hackathons, registrations, translator)
	if err := server.Run(); err != nil {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
}
