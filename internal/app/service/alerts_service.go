package service

import (
	"context"
	"log/slog"
	"slices"

	"github.com/jose-valero/voicegate-bot/internal/infra/config"
)

type AlertsService struct {
	p   RolePlatform
	log *slog.Logger
}

func NewAlertsService(p RolePlatform, log *slog.Logger) *AlertsService {
	return &AlertsService{p: p, log: log.With("component", "alerts")}
}

// Toggle pone o saca el rol de alertas según si el usuario ya lo tiene. Devuelve
// el mensaje para el usuario: ningún fallo sale de acá como error. roles nil =
// no vino el member en la interacción, se consulta a Discord.
func (s *AlertsService) Toggle(ctx context.Context, cfg *config.Config, guildID, userID string, roles []string) string {
	switch {
	case guildID == "":
		return "This command can only be used in a guild"
	case cfg == nil:
		return "Configuration not found"
	case guildID != cfg.Guild:
		return "This command is not available in this guild"
	case !cfg.AlertsEnabled():
		return "Alerts role is not configured. Please contact an administrator."
	}

	if roles == nil {
		r, err := s.p.MemberRoles(ctx, guildID, userID)
		if err != nil {
			s.log.Error("member lookup failed", "user", userID, "error", err)
			return "⚠️ Could not read your roles. Please contact an administrator."
		}
		roles = r
	}

	if slices.Contains(roles, cfg.Alerts) {
		if err := s.p.RemoveMemberRole(ctx, guildID, userID, cfg.Alerts); err != nil {
			s.log.Error("remove role failed", "user", userID, "role", cfg.Alerts, "error", err)
			return "Failed to remove the alerts role. Please contact an administrator."
		}
		s.log.Info("removed the alerts role", "user", userID)
		return "Successfully removed the alerts role!"
	}

	if err := s.p.AddMemberRole(ctx, guildID, userID, cfg.Alerts); err != nil {
		s.log.Error("add role failed", "user", userID, "role", cfg.Alerts, "error", err)
		return "Failed to add the alerts role. Please contact an administrator."
	}
	s.log.Info("added the alerts role", "user", userID)
	return "Successfully added the alerts role!"
}
