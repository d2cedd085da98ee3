package discord

import (
	"context"
	"encoding/base64"
	"path/filepath"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/jose-valero/voicegate-bot/internal/domain"
)

// Platform es la cara REST de Discord que usan los services.
type Platform struct {
	s *discordgo.Session
}

func NewPlatform(s *discordgo.Session) *Platform { return &Platform{s: s} }

// GrantChannelView crea (o pisa) el override de miembro con VIEW_CHANNEL.
func (p *Platform) GrantChannelView(ctx context.Context, channelID, userID string) error {
	return p.s.ChannelPermissionSet(channelID, userID, discordgo.PermissionOverwriteTypeMember,
		discordgo.PermissionViewChannel, 0, discordgo.WithContext(ctx))
}

func (p *Platform) RevokeChannelView(ctx context.Context, channelID, userID string) error {
	return p.s.ChannelPermissionDelete(channelID, userID, discordgo.WithContext(ctx))
}

func (p *Platform) MoveMember(ctx context.Context, guildID, userID, channelID string) error {
	return p.s.GuildMemberMove(guildID, userID, &channelID, discordgo.WithContext(ctx))
}

func (p *Platform) SetGuildIcon(ctx context.Context, guildID string, img domain.IconImage) error {
	_, err := p.s.GuildEdit(guildID, &discordgo.GuildParams{Icon: iconDataURI(img)}, discordgo.WithContext(ctx))
	return err
}

func (p *Platform) MemberRoles(ctx context.Context, guildID, userID string) ([]string, error) {
	m, err := p.s.GuildMember(guildID, userID, discordgo.WithContext(ctx))
	if err != nil {
		return nil, err
	}
	if m.Roles == nil {
		return []string{}, nil
	}
	return m.Roles, nil
}

func (p *Platform) AddMemberRole(ctx context.Context, guildID, userID, roleID string) error {
	return p.s.GuildMemberRoleAdd(guildID, userID, roleID, discordgo.WithContext(ctx))
}

func (p *Platform) RemoveMemberRole(ctx context.Context, guildID, userID, roleID string) error {
	return p.s.GuildMemberRoleRemove(guildID, userID, roleID, discordgo.WithContext(ctx))
}

var iconMIME = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// iconDataURI: Discord espera el ícono como data URI en base64.
func iconDataURI(img domain.IconImage) string {
	mime, ok := iconMIME[strings.ToLower(filepath.Ext(img.Name))]
	if !ok {
		mime = "image/png"
	}
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(img.Data)
}
