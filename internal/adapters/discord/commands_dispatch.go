// lógica de InteractionApplicationCommand: acá sólo se resuelve la interacción
// y se despacha al service que corresponda
package discord

import (
	"github.com/bwmarrin/discordgo"
)

func (r *Router) handleSlashCommand(s *discordgo.Session, ic *discordgo.InteractionCreate) {
	cmd := ic.ApplicationCommandData()
	userID, roles := invoker(ic)
	log := r.log.With("cmd", cmd.Name, "user", userID, "guild", ic.GuildID)
	log.Info("slash command")

	defer func() {
		if rec := recover(); rec != nil {
			log.Error("panic in slash command", "panic", rec)
			ReplyEphemeral(s, ic, "⚠️ Something went wrong. Please contact an administrator.")
		}
	}()
	defer step(log, "cmd."+cmd.Name)()

	_ = DeferEphemeral(s, ic)
	ctx, cancel := r.callCtx()
	defer cancel()

	switch commandFor(cmd.Name) {
	case cmdAlerts:
		if !r.clickLimiter.Allow(userID) {
			ReplyEphemeral(s, ic, "⏳ Wait a moment before toggling again.")
			return
		}
		ReplyEphemeral(s, ic, r.alerts.Toggle(ctx, r.cfg.Snapshot(), ic.GuildID, userID, roles))

	default:
		ReplyEphemeral(s, ic, "Unknown command")
	}
}

// invoker devuelve quién disparó el comando. En DMs no hay Member y roles queda nil.
func invoker(ic *discordgo.InteractionCreate) (string, []string) {
	if ic.Member != nil && ic.Member.User != nil {
		roles := ic.Member.Roles
		if roles == nil {
			roles = []string{}
		}
		return ic.Member.User.ID, roles
	}
	if ic.User != nil {
		return ic.User.ID, nil
	}
	return "", nil
}
