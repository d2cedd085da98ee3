package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/jose-valero/voicegate-bot/internal/domain"
	"github.com/jose-valero/voicegate-bot/internal/infra/config"
)

var errBoom = errors.New("boom")

func quietLog() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) }

type call struct {
	Op, Guild, User, Target string
}

// fakePlatform implementa los tres puertos y registra cada llamada.
type fakePlatform struct {
	mu    sync.Mutex
	calls []call
	fail  map[string]error
	roles []string
	icons []domain.IconImage
}

func (f *fakePlatform) record(c call) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
	return f.fail[c.Op]
}

func (f *fakePlatform) count(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c.Op == op {
			n++
		}
	}
	return n
}

func (f *fakePlatform) GrantChannelView(_ context.Context, channelID, userID string) error {
	return f.record(call{Op: "grant", User: userID, Target: channelID})
}

func (f *fakePlatform) RevokeChannelView(_ context.Context, channelID, userID string) error {
	return f.record(call{Op: "revoke", User: userID, Target: channelID})
}

func (f *fakePlatform) MoveMember(_ context.Context, guildID, userID, channelID string) error {
	return f.record(call{Op: "move", Guild: guildID, User: userID, Target: channelID})
}

func (f *fakePlatform) SetGuildIcon(_ context.Context, guildID string, img domain.IconImage) error {
	if err := f.record(call{Op: "icon", Guild: guildID, Target: img.Name}); err != nil {
		return err
	}
	f.mu.Lock()
	f.icons = append(f.icons, img)
	f.mu.Unlock()
	return nil
}

func (f *fakePlatform) MemberRoles(_ context.Context, guildID, userID string) ([]string, error) {
	if err := f.record(call{Op: "roles", Guild: guildID, User: userID}); err != nil {
		return nil, err
	}
	return f.roles, nil
}

func (f *fakePlatform) AddMemberRole(_ context.Context, guildID, userID, roleID string) error {
	return f.record(call{Op: "add", Guild: guildID, User: userID, Target: roleID})
}

func (f *fakePlatform) RemoveMemberRole(_ context.Context, guildID, userID, roleID string) error {
	return f.record(call{Op: "remove", Guild: guildID, User: userID, Target: roleID})
}

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Token = "t"
	cfg.Guild = "g1"
	cfg.Voice = "voice"
	cfg.Video = "video"
	cfg.Alerts = "role"
	return cfg
}
