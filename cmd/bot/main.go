package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	discordrouter "github.com/jose-valero/voicegate-bot/internal/adapters/discord"
	"github.com/jose-valero/voicegate-bot/internal/app/service"
	"github.com/jose-valero/voicegate-bot/internal/infra/config"
	"github.com/jose-valero/voicegate-bot/internal/infra/logging"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	flagPath := pflag.StringP("config", "c", "", "path to the TOML config file")
	pflag.Parse()
	path := config.Resolve(*flagPath)

	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	if cfg.Token == "" {
		fmt.Fprintf(os.Stderr, "You must provide a Discord token in %s\n", path)
		return cfg.Save(path)
	}

	log, closer := logging.New(cfg.Log)
	defer closer.Close()
	logging.RouteDiscordgo(log)

	store := config.NewStore(cfg)
	if w, err := config.Watch(path, store, log); err != nil {
		log.Warn("config hot reload unavailable", "error", err)
	} else {
		defer w.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s, err := discordrouter.NewSession(cfg.Token, discordrouter.WithHTTPClient(discordrouter.NewHTTPClient(log)))
	if err != nil {
		return err
	}

	platform := discordrouter.NewPlatform(s)
	accessSvc := service.NewAccessService(platform, log)
	alertsSvc := service.NewAlertsService(platform, log)
	rotationSvc := service.NewRotationService(platform, store, log)

	r := discordrouter.NewRouter(ctx, s, store, accessSvc, alertsSvc, rotationSvc, log)
	r.Handlers()

	log.Info("starting", "config", path, "guild", cfg.Guild)
	if err := s.Open(); err != nil {
		return fmt.Errorf("open gateway: %w", err)
	}
	defer s.Close()

	<-ctx.Done()
	log.Info("shutting down")
	return nil
}
