package discord

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/hashicorp/go-retryablehttp"
)

type Option func(*options)

type options struct {
	http    *http.Client
	intents discordgo.Intent
}

func WithHTTPClient(h *http.Client) Option {
	return func(o *options) { o.http = h }
}

func WithIntents(i discordgo.Intent) Option {
	return func(o *options) { o.intents = i }
}

// NewHTTPClient: cliente REST con reintentos cortos para 5xx y errores de red.
// Los 429 y la última respuesta fallida pasan tal cual: los buckets de discordgo
// necesitan verlos. El timeout es el único límite de tiempo de las llamadas a Discord.
func NewHTTPClient(log *slog.Logger) *http.Client {
	rc := retryablehttp.NewClient()
	rc.RetryMax = 2
	rc.RetryWaitMin = 500 * time.Millisecond
	rc.RetryWaitMax = 5 * time.Second
	rc.HTTPClient.Timeout = 20 * time.Second
	rc.Logger = log.With("component", "http")
	rc.CheckRetry = retryPolicy
	rc.ErrorHandler = retryablehttp.PassthroughErrorHandler
	return rc.StandardClient()
}

func retryPolicy(ctx context.Context, resp *http.Response, err error) (bool, error) {
	if resp != nil && resp.StatusCode == http.StatusTooManyRequests {
		return false, nil
	}
	return retryablehttp.DefaultRetryPolicy(ctx, resp, err)
}

// NewSession arma la sesión sin abrirla. Por defecto escucha guilds + voice states.
func NewSession(token string, opts ...Option) (*discordgo.Session, error) {
	o := options{intents: discordgo.IntentsGuilds | discordgo.IntentsGuildVoiceStates}
	for _, fn := range opts {
		fn(&o)
	}

	auth := strings.TrimSpace(token)
	if !strings.HasPrefix(strings.ToLower(auth), "bot ") {
		auth = "Bot " + auth
	}
	s, err := discordgo.New(auth)
	if err != nil {
		return nil, err
	}
	s.Identify.Intents = o.intents
	s.LogLevel = discordgo.LogWarning
	if o.http != nil {
		s.Client = o.http
	}
	return s, nil
}
