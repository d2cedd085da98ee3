package domain

import (
	"errors"
	"fmt"
	"io/fs"
)

// ErrConfiguration marca settings inválidos (límites, rutas). Se envuelve con %w.
var ErrConfiguration = errors.New("configuration error")

// IOError: fallo de acceso al pool de íconos o de relocación.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// PermissionDenied: el caller lo baja a warning en vez de abortar el ciclo.
func (e *IOError) PermissionDenied() bool {
	return errors.Is(e.Err, fs.ErrPermission)
}

// PlatformError: llamada fallida a Discord (grant, revoke, move, upload, roles).
type PlatformError struct {
	Op     string
	UserID string
	Target string
	Err    error
}

func (e *PlatformError) Error() string {
	if e.UserID == "" {
		return fmt.Sprintf("platform %s target=%s: %v", e.Op, e.Target, e.Err)
	}
	return fmt.Sprintf("platform %s user=%s target=%s: %v", e.Op, e.UserID, e.Target, e.Err)
}

func (e *PlatformError) Unwrap() error { return e.Err }

// IsPermissionDenied reporta si err contiene un IOError por permisos.
func IsPermissionDenied(err error) bool {
	var ioErr *IOError
	return errors.As(err, &ioErr) && ioErr.PermissionDenied()
}
