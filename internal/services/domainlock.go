package services

import (
  "sync"

  "github.com/kirdar-ai/kirdar-backend/internal/domain"
)

// domainLocks hands out one mutex per (entity kind, domain) pair so
// destructive rebuilds of the same domain serialize while different domains
// proceed in parallel.
type domainLocks struct {
  mu    sync.Mutex
  locks map[string]*sync.Mutex
}

func newDomainLocks() *domainLocks {
  return &domainLocks{locks: map[string]*sync.Mutex{}}
}

func (d *domainLocks) get(kind, domain string) *sync.Mutex {
  d.mu.Lock()
  defer d.mu.Unlock()
  key := kind + "/" + domain
  if m, ok := d.locks[key]; ok {
    return m
  }
  m := &sync.Mutex{}
  d.locks[key] = m
  return m
}

// lock acquires the rebuild lock for one domain, or for every registered
// domain when domainID is empty, so a global rebuild excludes concurrent
// per-domain rebuilds. Acquisition follows registry order to keep two
// global callers from deadlocking; the returned func releases in reverse.
func (d *domainLocks) lock(kind, domainID string) func() {
  if domainID != "" {
    m := d.get(kind, domainID)
    m.Lock()
    return m.Unlock
  }
  cfgs := domain.List()
  held := make([]*sync.Mutex, 0, len(cfgs))
  for _, cfg := range cfgs {
    m := d.get(kind, cfg.ID)
    m.Lock()
    held = append(held, m)
  }
  return func() {
    for i := len(held) - 1; i >= 0; i-- {
      held[i].Unlock()
    }
  }
}
