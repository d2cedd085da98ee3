package service

import (
	"context"

	"github.com/jose-valero/voicegate-bot/internal/domain"
	"github.com/jose-valero/voicegate-bot/internal/infra/config"
)

// Lo implementa internal/adapters/discord.Platform
type AccessPlatform interface {
	GrantChannelView(ctx context.Context, channelID, userID string) error
	RevokeChannelView(ctx context.Context, channelID, userID string) error
	MoveMember(ctx context.Context, guildID, userID, channelID string) error
}

// Lo implementa internal/adapters/discord.Platform
type IconPlatform interface {
	SetGuildIcon(ctx context.Context, guildID string, img domain.IconImage) error
}

// Lo implementa internal/adapters/discord.Platform
type RolePlatform interface {
	MemberRoles(ctx context.Context, guildID, userID string) ([]string, error)
	AddMemberRole(ctx context.Context, guildID, userID, roleID string) error
	RemoveMemberRole(ctx context.Context, guildID, userID, roleID string) error
}

// Lo implementa internal/infra/config.Store
type ConfigSource interface {
	Snapshot() *config.Config
}
