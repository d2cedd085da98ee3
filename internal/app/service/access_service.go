package service

import (
	"context"
	"log/slog"

	"github.com/jose-valero/voicegate-bot/internal/domain"
	"github.com/jose-valero/voicegate-bot/internal/infra/config"
)

// AccessService sincroniza el acceso al canal de video con la presencia en el
// canal de voz. No guarda estado por usuario: Discord es la fuente de verdad y
// recrear un override que ya existe es un no-op del lado de la API.
type AccessService struct {
	p   AccessPlatform
	log *slog.Logger
}

func NewAccessService(p AccessPlatform, log *slog.Logger) *AccessService {
	return &AccessService{p: p, log: log.With("component", "access")}
}

// HandleVoiceUpdate aplica una transición. Cada llamada a Discord es best-effort:
// si falla se loguea, no se reintenta y no se deshace lo anterior (un move fallido
// deja el grant puesto).
func (a *AccessService) HandleVoiceUpdate(ctx context.Context, cfg *config.Config, ev domain.VoiceUpdate) {
	if cfg == nil || !ev.HasMember || ev.GuildID == "" || ev.GuildID != cfg.Guild {
		return
	}

	before := domain.Locate(ev.BeforeChannelID, cfg.Voice, cfg.Video)
	after := domain.Locate(ev.ChannelID, cfg.Voice, cfg.Video)
	log := a.log.With("user", ev.UserID, "name", ev.DisplayName)

	if after == domain.LocationCompanion {
		log.Info("joined the voice channel, granting video access")
		if err := a.p.GrantChannelView(ctx, cfg.Video, ev.UserID); err != nil {
			a.report(log, "grant", ev.UserID, cfg.Video, err)
		}

		// stream desde el canal de voz → lo mandamos al de video
		if ev.SelfStream {
			if err := a.p.MoveMember(ctx, ev.GuildID, ev.UserID, cfg.Video); err != nil {
				a.report(log, "move", ev.UserID, cfg.Video, err)
			}
		}
	}

	// pasar de voz a video (o al revés) no es salir
	if !before.Tracked() || after.Tracked() {
		return
	}

	log.Info("left the voice/video channels, removing video access", "to", after.String())
	if err := a.p.RevokeChannelView(ctx, cfg.Video, ev.UserID); err != nil {
		a.report(log, "revoke", ev.UserID, cfg.Video, err)
	}
}

func (a *AccessService) report(log *slog.Logger, op, userID, target string, err error) {
	perr := &domain.PlatformError{Op: op, UserID: userID, Target: target, Err: err}
	log.Error("platform call failed", "op", op, "error", perr)
}
