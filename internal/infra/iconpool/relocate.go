package iconpool

import (
	"io"
	"os"
	"path/filepath"

	"go.uber.org/multierr"

	"github.com/jose-valero/voicegate-bot/internal/domain"
)

// hooks de filesystem; los tests los reemplazan para forzar el fallback.
var (
	rename = os.Rename
	unlink = os.Remove
)

// Relocate mueve src a targetDir conservando el nombre. Si ya hay un archivo con
// ese nombre en destino, se borra primero (gana el que llega). Intenta rename y,
// si falla (otro volumen), copia y borra el origen.
func Relocate(src, targetDir string) (string, error) {
	target := filepath.Join(targetDir, filepath.Base(src))
	if filepath.Clean(src) == target {
		return target, nil
	}

	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return "", &domain.IOError{Op: "create pool", Path: targetDir, Err: err}
	}

	if existing, err := os.Lstat(target); err == nil {
		// mismo archivo escrito de otra forma (relativo, symlink): nada que mover
		if self, err := os.Lstat(src); err == nil && os.SameFile(existing, self) {
			return target, nil
		}
		if err := os.Remove(target); err != nil {
			return "", &domain.IOError{Op: "replace", Path: target, Err: err}
		}
	}

	renameErr := rename(src, target)
	if renameErr == nil {
		return target, nil
	}

	if copyErr := copyFile(src, target); copyErr != nil {
		return "", &domain.IOError{Op: "relocate", Path: src, Err: multierr.Combine(renameErr, copyErr)}
	}
	if err := unlink(src); err != nil {
		return "", &domain.IOError{Op: "remove source", Path: src, Err: err}
	}
	return target, nil
}

// Recycle devuelve todo el pool de usados al de disponibles.
// Con el pool de usados vacío no hace nada.
func Recycle(availableDir, spentDir string) ([]Candidate, error) {
	spent, err := List(spentDir)
	if err != nil {
		return nil, err
	}
	if len(spent) == 0 {
		return nil, nil
	}

	var (
		moved []Candidate
		errs  error
	)
	for _, c := range spent {
		path, err := Relocate(c.Path, availableDir)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		moved = append(moved, newCandidate(path))
	}
	return moved, errs
}

func copyFile(src, dst string) (err error) {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(dst)
		}
	}()

	if _, err = io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err = out.Sync(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
