package core

import (
	"github.com/aretw0/introspection"
)

// StoreState exposes internal state for observability.
type StoreState struct {
	Key         string `json:"key"`
	Origin      string `json:"origin"`
	BackendType string `json:"backend_type"`
	Watchable   bool   `json:"watchable"`
}

// State implements introspection.Introspectable.
func (s *Store) State() any {
	backendType := "backend"
	if comp, ok := s.backend.(introspection.Component); ok {
		backendType = comp.ComponentType()
	}
	_, watchable := s.backend.(Watchable)

	return StoreState{
		Key:         s.key,
		Origin:      s.origin,
		BackendType: backendType,
		Watchable:   watchable,
	}
}

// ComponentType implements introspection.Component.
func (s *Store) ComponentType() string {
	return "store"
}

var _ introspection.Introspectable = (*Store)(nil)
var _ introspection.Component = (*Store)(nil)
