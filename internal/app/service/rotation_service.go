package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"math/rand"
	"os"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/jose-valero/voicegate-bot/internal/domain"
	"github.com/jose-valero/voicegate-bot/internal/infra/iconpool"
)

// maxDelayHours es lo más grande que entra en un time.Duration.
const maxDelayHours = int64(math.MaxInt64 / int64(time.Hour))

type RotationState int32

const (
	RotationIdle RotationState = iota
	RotationWaiting
	RotationApplying
	RotationStopped
)

func (s RotationState) String() string {
	switch s {
	case RotationWaiting:
		return "waiting"
	case RotationApplying:
		return "applying"
	case RotationStopped:
		return "stopped"
	default:
		return "idle"
	}
}

// ComputeDelay sortea la espera hasta la próxima rotación, en horas enteras dentro
// de [minHours, maxHours]. ok=false significa rotación apagada: max = 0, o un
// sorteo de 0 horas (no giramos con esperas nulas).
func ComputeDelay(minHours, maxHours int64) (time.Duration, bool, error) {
	return computeDelay(minHours, maxHours, rand.Int63n)
}

func computeDelay(minHours, maxHours int64, int64n func(int64) int64) (time.Duration, bool, error) {
	if maxHours == 0 {
		return 0, false, nil
	}
	if minHours < 0 || maxHours < 0 {
		return 0, false, fmt.Errorf("%w: negative icon delay (%d..%d)", domain.ErrConfiguration, minHours, maxHours)
	}
	if minHours > maxHours {
		return 0, false, fmt.Errorf("%w: min_delay_hours %d > max_delay_hours %d", domain.ErrConfiguration, minHours, maxHours)
	}
	if maxHours > maxDelayHours {
		return 0, false, fmt.Errorf("%w: max_delay_hours %d overflows", domain.ErrConfiguration, maxHours)
	}

	hours := minHours
	if maxHours > minHours {
		hours = minHours + int64n(maxHours-minHours+1)
	}
	if hours == 0 {
		return 0, false, nil
	}
	return time.Duration(hours) * time.Hour, true, nil
}

type RotationOption func(*RotationService)

// WithRand reemplaza el sorteo (n > 0, devuelve [0, n)). Para tests.
func WithRand(intn func(int64) int64) RotationOption {
	return func(r *RotationService) { r.int64n = intn }
}

// WithTimer reemplaza la espera entre ciclos. Para tests.
func WithTimer(after func(time.Duration) <-chan time.Time) RotationOption {
	return func(r *RotationService) { r.after = after }
}

// RotationService rota el ícono del guild tomando imágenes del pool de disponibles
// y archivándolas en el de usados.
type RotationService struct {
	p     IconPlatform
	cfg   ConfigSource
	log   *slog.Logger
	state atomic.Int32

	int64n func(int64) int64
	after  func(time.Duration) <-chan time.Time
}

func NewRotationService(p IconPlatform, cfg ConfigSource, log *slog.Logger, opts ...RotationOption) *RotationService {
	r := &RotationService{
		p:      p,
		cfg:    cfg,
		log:    log.With("component", "icons"),
		int64n: rand.Int63n,
		after:  time.After,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

func (r *RotationService) State() RotationState { return RotationState(r.state.Load()) }

func (r *RotationService) setState(s RotationState) { r.state.Store(int32(s)) }

// Run aplica una rotación enseguida y después alterna espera/rotación hasta que
// el delay queda apagado o hay un error de configuración. Un upload o un move
// fallido no lo detiene. Se llama una sola vez; al terminar no se reinicia.
func (r *RotationService) Run(ctx context.Context) {
	defer r.setState(RotationStopped)

	if r.cfg.Snapshot().Icons.UsedDir == "" {
		r.log.Info("icon rotation disabled: no used_dir configured")
		return
	}

	r.setState(RotationApplying)
	if !r.applyAndReport(ctx) {
		return
	}

	for {
		// snapshot nuevo por ciclo: el rango puede cambiar con un reload
		icons := r.cfg.Snapshot().Icons
		if icons.UsedDir == "" {
			r.log.Info("icon rotation disabled: no used_dir configured")
			return
		}

		delay, ok, err := computeDelay(icons.MinDelayHours, icons.MaxDelayHours, r.int64n)
		if err != nil {
			r.log.Error("icon rotation stopped", "error", err)
			return
		}
		if !ok {
			r.log.Info("icon rotation disabled", "min_h", icons.MinDelayHours, "max_h", icons.MaxDelayHours)
			return
		}

		r.setState(RotationWaiting)
		r.log.Info("next icon rotation scheduled", "in", delay.String(), "at", humanize.Time(time.Now().Add(delay)))
		select {
		case <-ctx.Done():
			return
		case <-r.after(delay):
		}

		r.setState(RotationApplying)
		if !r.applyAndReport(ctx) {
			return
		}
	}
}

// applyAndReport loguea el resultado de Apply; false si hay que cortar el loop.
func (r *RotationService) applyAndReport(ctx context.Context) bool {
	err := r.Apply(ctx)
	switch {
	case err == nil:
		return true
	case errors.Is(err, domain.ErrConfiguration):
		r.log.Error("icon rotation stopped", "error", err)
		return false
	default:
		r.log.Error("icon rotation failed, retrying next cycle", "error", err)
		return true
	}
}

// Apply elige un ícono al azar del pool (reciclando el de usados si está vacío),
// lo sube y, sólo si Discord lo aceptó, lo mueve a usados. Un pool vacío no es
// error. Si el move falla después del upload, el ícono ya cambió y no se revierte.
func (r *RotationService) Apply(ctx context.Context) error {
	cfg := r.cfg.Snapshot()
	icons := cfg.Icons

	candidates, err := iconpool.List(icons.Dir)
	if err != nil {
		return r.downgrade(err)
	}
	if len(candidates) == 0 {
		candidates, err = iconpool.Recycle(icons.Dir, icons.UsedDir)
		if len(candidates) > 0 {
			r.log.Info("recycled used icons", "count", len(candidates))
		}
		if err != nil {
			if len(candidates) == 0 {
				return r.downgrade(err)
			}
			r.log.Warn("some used icons could not be recycled", "error", err)
		}
	}
	if len(candidates) == 0 {
		r.log.Info("no icons available, skipping rotation", "dir", icons.Dir)
		return nil
	}

	pick := candidates[r.int64n(int64(len(candidates)))]
	data, err := os.ReadFile(pick.Path)
	if err != nil {
		return r.downgrade(&domain.IOError{Op: "read icon", Path: pick.Path, Err: err})
	}

	if err := r.p.SetGuildIcon(ctx, cfg.Guild, domain.IconImage{Name: pick.Name, Data: data}); err != nil {
		return &domain.PlatformError{Op: "set icon", Target: pick.Name, Err: err}
	}
	r.log.Info("guild icon updated", "file", pick.Name, "size", humanize.Bytes(uint64(len(data))))

	if _, err := iconpool.Relocate(pick.Path, icons.UsedDir); err != nil {
		return fmt.Errorf("icon %s applied but not archived: %w", pick.Name, err)
	}
	return nil
}

// downgrade: un permiso denegado es un warning, no corta la rotación.
func (r *RotationService) downgrade(err error) error {
	if domain.IsPermissionDenied(err) {
		r.log.Warn("icon pool not accessible", "error", err)
		return nil
	}
	return err
}
