package core

import "errors"

// Common errors.
var (
	ErrSerialization    = errors.New("snapshot could not be serialized")
	ErrDeserialization  = errors.New("snapshot could not be deserialized")
	ErrStoreUnavailable = errors.New("store unavailable")
	ErrQuotaExceeded    = errors.New("store quota exceeded")
	ErrWatchUnsupported = errors.New("store does not support change notifications")
	ErrNotFound         = errors.New("note not found")
	ErrInvalidKey       = errors.New("invalid store key")
	ErrReadOnly         = errors.New("store is in read-only mode")
)
