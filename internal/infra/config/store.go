package config

import "sync/atomic"

// Store publica snapshots inmutables del config. Nadie modifica un *Config ya
// publicado: un reload arma uno nuevo y cambia el puntero.
type Store struct {
	cur atomic.Pointer[Config]
}

func NewStore(cfg *Config) *Store {
	s := &Store{}
	s.cur.Store(cfg)
	return s
}

func (s *Store) Snapshot() *Config { return s.cur.Load() }

// Swap publica next y devuelve el snapshot anterior.
func (s *Store) Swap(next *Config) *Config { return s.cur.Swap(next) }
