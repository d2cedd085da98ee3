package discord

import (
	"github.com/bwmarrin/discordgo"

	"github.com/jose-valero/voicegate-bot/internal/domain"
)

// toVoiceUpdate traduce el evento del gateway. BeforeUpdate sale del cache de
// State; puede faltar (primer evento tras conectar), y eso cuenta como "sin canal".
func toVoiceUpdate(vs *discordgo.VoiceStateUpdate) domain.VoiceUpdate {
	var ev domain.VoiceUpdate
	if vs == nil || vs.VoiceState == nil {
		return ev
	}

	ev.GuildID = vs.GuildID
	ev.UserID = vs.UserID
	ev.ChannelID = vs.ChannelID
	ev.SelfStream = vs.SelfStream
	if vs.Member != nil {
		ev.HasMember = true
		ev.DisplayName = memberName(vs.Member)
	}
	if vs.BeforeUpdate != nil {
		ev.BeforeChannelID = vs.BeforeUpdate.ChannelID
	}
	return ev
}

func memberName(m *discordgo.Member) string {
	if m.Nick != "" {
		return m.Nick
	}
	if m.User != nil {
		if m.User.GlobalName != "" {
			return m.User.GlobalName
		}
		return m.User.Username
	}
	return ""
}

func (r *Router) onVoiceStateUpdate(_ *discordgo.Session, vs *discordgo.VoiceStateUpdate) {
	ev := toVoiceUpdate(vs)

	ctx, cancel := r.callCtx()
	defer cancel()
	r.access.HandleVoiceUpdate(ctx, r.cfg.Snapshot(), ev)
}
