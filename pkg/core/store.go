package core

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/aretw0/lifecycle"
	"github.com/google/uuid"
)

// DefaultKey is the shared key notes are stored under.
const DefaultKey = "notepad.notes"

// DefaultPeriod is both the writer's autosave cadence and the reader's polling cadence.
const DefaultPeriod = 2 * time.Second

// TimeFormat renders the "saved at" and "updated at" status timestamps.
const TimeFormat = "3:04:05 PM"

// Store adapts a Backend to the snapshot contract shared by writers and readers.
// It holds exactly one key; every Save overwrites the whole snapshot.
type Store struct {
	backend Backend
	key     string
	origin  string
	logger  *slog.Logger
	encode  func(v any) ([]byte, error)
}

// NewStore creates a Store handle over backend for key.
// Each handle gets its own origin id, so a handle never observes its own writes via Watch.
func NewStore(backend Backend, key string, logger *slog.Logger) (*Store, error) {
	if backend == nil {
		return nil, fmt.Errorf("store requires a backend")
	}
	if err := ValidateKey(key); err != nil {
		return nil, err
	}
	return &Store{
		backend: backend,
		key:     key,
		origin:  uuid.NewString(),
		logger:  logger,
		encode:  json.Marshal,
	}, nil
}

// ValidateKey checks that key can be used as a store key by every backend.
func ValidateKey(key string) error {
	if key == "" {
		return fmt.Errorf("%w: key cannot be empty", ErrInvalidKey)
	}
	if strings.HasPrefix(key, ".") {
		return fmt.Errorf("%w: %q cannot start with a dot", ErrInvalidKey, key)
	}
	if strings.ContainsAny(key, `/\*?[]{}`) {
		return fmt.Errorf("%w: %q contains a path or pattern character", ErrInvalidKey, key)
	}
	return nil
}

// Key returns the shared key.
func (s *Store) Key() string { return s.key }

// Origin returns the id stamped on writes made through this handle.
func (s *Store) Origin() string { return s.origin }

// Backend returns the underlying backend.
func (s *Store) Backend() Backend { return s.backend }

// Save serializes snap and overwrites the shared key.
// On failure the previously stored value is left untouched.
func (s *Store) Save(ctx context.Context, snap Snapshot) error {
	if snap == nil {
		snap = Snapshot{}
	}

	data, err := s.encode(snap)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSerialization, err)
	}

	ctx = context.WithValue(ctx, OriginKey, s.origin)
	if err := s.backend.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return nil
}

// Raw returns the stored value as-is. A missing key reads as EmptyRaw.
func (s *Store) Raw(ctx context.Context) ([]byte, error) {
	data, ok, err := s.backend.Get(ctx, s.key)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if !ok || data == nil {
		return []byte(EmptyRaw), nil
	}
	return data, nil
}

// Load reads the current snapshot.
// Missing, unreadable, or malformed values all load as an empty snapshot.
func (s *Store) Load(ctx context.Context) Snapshot {
	raw, err := s.Raw(ctx)
	if err != nil {
		if s.logger != nil {
			s.logger.Warn("store read failed, using empty snapshot", "key", s.key, "error", err)
		}
		return Snapshot{}
	}
	return s.Decode(raw)
}

// Decode parses raw, recovering from malformed input with an empty snapshot.
func (s *Store) Decode(raw []byte) Snapshot {
	snap, err := ParseSnapshot(raw)
	if err != nil {
		if s.logger != nil {
			s.logger.Debug("stored value is not a snapshot, using empty snapshot", "key", s.key, "error", err)
		}
		return Snapshot{}
	}
	return snap
}

// ParseSnapshot decodes a raw stored value.
// A nil value or JSON null yields an empty snapshot.
func ParseSnapshot(raw []byte) (Snapshot, error) {
	if len(raw) == 0 {
		return Snapshot{}, nil
	}
	var snap Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", ErrDeserialization, err)
	}
	if snap == nil {
		snap = Snapshot{}
	}
	return snap, nil
}

// Watch streams changes of the shared key made by other handles.
// It returns ErrWatchUnsupported when the backend cannot push notifications.
func (s *Store) Watch(ctx context.Context) (<-chan Event, error) {
	w, ok := s.backend.(Watchable)
	if !ok {
		return nil, ErrWatchUnsupported
	}

	in, err := w.Watch(ctx, s.key)
	if err != nil {
		return nil, err
	}

	out := make(chan Event)
	lifecycle.Go(ctx, func(ctx context.Context) error {
		defer close(out)
		for {
			select {
			case <-ctx.Done():
				return nil
			case e, ok := <-in:
				if !ok {
					return nil
				}
				if e.Key != s.key || (e.Origin != "" && e.Origin == s.origin) {
					continue
				}
				select {
				case out <- e:
				case <-ctx.Done():
					return nil
				}
			}
		}
	})
	return out, nil
}
