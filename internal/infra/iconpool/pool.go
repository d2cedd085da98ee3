// Package iconpool maneja los dos directorios de íconos: disponibles y usados.
package iconpool

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/jose-valero/voicegate-bot/internal/domain"
)

// imagePattern se compara contra el nombre en minúsculas.
const imagePattern = "*.{png,jpg,jpeg,gif,webp}"

// Candidate es un archivo de imagen dentro de un pool.
type Candidate struct {
	Path string
	Name string
}

func newCandidate(path string) Candidate {
	return Candidate{Path: path, Name: filepath.Base(path)}
}

// IsImage reporta si el nombre tiene una extensión soportada (sin importar mayúsculas).
func IsImage(name string) bool {
	ok, err := doublestar.Match(imagePattern, strings.ToLower(name))
	return err == nil && ok
}

// List devuelve los candidatos de dir (no recursivo). Si dir no existe lo crea y
// devuelve vacío; si existe pero no es un directorio es un error de configuración.
func List(dir string) ([]Candidate, error) {
	if dir == "" {
		return nil, nil
	}

	info, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, &domain.IOError{Op: "create pool", Path: dir, Err: err}
		}
		return nil, nil
	case err != nil:
		return nil, &domain.IOError{Op: "stat pool", Path: dir, Err: err}
	case !info.IsDir():
		return nil, fmt.Errorf("%w: icon pool %s is not a directory", domain.ErrConfiguration, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &domain.IOError{Op: "read pool", Path: dir, Err: err}
	}

	out := make([]Candidate, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !IsImage(e.Name()) {
			continue
		}
		out = append(out, newCandidate(filepath.Join(dir, e.Name())))
	}
	return out, nil
}
