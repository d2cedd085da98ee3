package discord

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/jose-valero/voicegate-bot/internal/app/service"
)

const callTimeout = 12 * time.Second

type Router struct {
	ctx context.Context
	s   *discordgo.Session
	cfg service.ConfigSource
	log *slog.Logger

	access   *service.AccessService
	alerts   *service.AlertsService
	rotation *service.RotationService

	clickLimiter *userLimiter
	startOnce    sync.Once
}

// NewRouter: ctx vive lo que vive el proceso; cancelarlo corta la rotación.
func NewRouter(
	ctx context.Context,
	s *discordgo.Session,
	cfg service.ConfigSource,
	access *service.AccessService,
	alerts *service.AlertsService,
	rotation *service.RotationService,
	log *slog.Logger,
) *Router {
	return &Router{
		ctx:          ctx,
		s:            s,
		cfg:          cfg,
		log:          log.With("component", "router"),
		access:       access,
		alerts:       alerts,
		rotation:     rotation,
		clickLimiter: newUserLimiter(3 * time.Second),
	}
}

// Register crea los slash commands globales.
func (r *Router) Register() error {
	appID := r.s.State.User.ID
	for _, cmd := range Commands {
		if _, err := r.s.ApplicationCommandCreate(appID, "", cmd); err != nil {
			return err
		}
	}
	return nil
}

func (r *Router) Handlers() {
	r.s.AddHandler(r.onReady)
	r.s.AddHandler(r.onVoiceStateUpdate)
	r.s.AddHandler(func(s *discordgo.Session, ic *discordgo.InteractionCreate) {
		if ic.Type != discordgo.InteractionApplicationCommand {
			return
		}
		r.handleSlashCommand(s, ic)
	})
}

// onReady corre en cada (re)conexión; la rotación arranca sólo la primera vez.
func (r *Router) onReady(s *discordgo.Session, ready *discordgo.Ready) {
	r.log.Info("ready", "user", ready.User.Username, "id", ready.User.ID)

	if err := s.UpdateGameStatus(0, "with commands"); err != nil {
		r.log.Warn("set presence failed", "error", err)
	}

	if err := r.Register(); err != nil {
		r.log.Error("registering commands failed", "error", err)
	} else {
		r.log.Info("registered /alerts command")
	}

	r.startOnce.Do(func() {
		go r.rotation.Run(r.ctx)
	})
}

func (r *Router) callCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.ctx, callTimeout)
}
