//go:build pact
// +build pact

package provider_test

import (
	"net/http"
	"sync"
)

type swappableHandler struct {
	mu    sync.RWMutex
	inner http.Handler
}

func (s *swappableHandler) set(h http.Handler) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner = h
}

func (s *swappableHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	h := s.inner
	s.mu.RUnlock()
	h.ServeHTTP(w, r)
}
