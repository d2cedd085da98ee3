package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// DefaultPath es el archivo que se busca si no pasan --config ni VOICEGATE_CONFIG.
const DefaultPath = "config.toml"

// NoRole: valor que deja /alerts deshabilitado.
const NoRole = "0"

type Config struct {
	// Discord token
	Token string `toml:"token"`
	// Guild que seguimos; eventos de otros guilds se ignoran
	Guild string `toml:"guild"`
	// Canal de voz público: entrar da acceso al canal de video
	Voice string `toml:"voice"`
	// Canal de video restringido
	Video string `toml:"video"`
	// Rol que cada usuario se pone/saca con /alerts ("" o "0" = deshabilitado)
	Alerts string `toml:"alerts"`

	Icons IconsConfig `toml:"icons"`
	Log   LogConfig   `toml:"log"`
}

// IconsConfig: rotación del ícono del guild.
type IconsConfig struct {
	// Pool de íconos disponibles
	Dir string `toml:"dir"`
	// Pool de íconos ya usados; vacío apaga la rotación
	UsedDir string `toml:"used_dir"`
	// Rango de espera entre rotaciones, en horas. max = 0 apaga la rotación.
	MinDelayHours int64 `toml:"min_delay_hours"`
	MaxDelayHours int64 `toml:"max_delay_hours"`
}

type LogConfig struct {
	// trace, debug, info, warn, error
	Level string `toml:"level"`
	// Archivo con rotación; vacío = sólo stderr
	File      string `toml:"file"`
	MaxSizeMB int    `toml:"max_size_mb"`
}

func Default() *Config {
	return &Config{
		Alerts: NoRole,
		Icons: IconsConfig{
			Dir:           "icons",
			MinDelayHours: 12,
			MaxDelayHours: 48,
		},
		Log: LogConfig{
			Level:     "info",
			MaxSizeMB: 10,
		},
	}
}

// RotationEnabled: hace falta el pool de usados y un máximo > 0.
func (c *Config) RotationEnabled() bool {
	return c.Icons.UsedDir != "" && c.Icons.MaxDelayHours > 0
}

// AlertsEnabled reporta si hay rol configurado para /alerts.
func (c *Config) AlertsEnabled() bool {
	r := strings.TrimSpace(c.Alerts)
	return r != "" && r != NoRole
}

// Resolve elige la ruta del config: flag, luego env VOICEGATE_CONFIG, luego DefaultPath.
func Resolve(flagPath string) string {
	if flagPath != "" {
		return flagPath
	}
	if v := os.Getenv("VOICEGATE_CONFIG"); v != "" {
		return v
	}
	return DefaultPath
}

// Load lee el TOML sobre los defaults. Un archivo inexistente no es error: se
// devuelven los defaults (y el token vacío hace que main escriba la plantilla).
// DISCORD_BOT_TOKEN, si está, pisa el token del archivo.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
	case err != nil:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	default:
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if tok := strings.TrimSpace(os.Getenv("DISCORD_BOT_TOKEN")); tok != "" {
		cfg.Token = tok
	}
	cfg.Token = strings.TrimSpace(cfg.Token)
	return cfg, nil
}

// Save escribe el config como TOML (temp + rename).
func (c *Config) Save(path string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return writeAtomic(path, buf.Bytes(), 0o600)
}

func writeAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	f, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmp := f.Name()
	ok := false
	defer func() {
		if !ok {
			os.Remove(tmp)
		}
	}()

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmp, perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	ok = true
	return nil
}
