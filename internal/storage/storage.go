// Package storage is the load/save boundary for persisted records.
//
// Every record is an opaque JSON document stored under a string key. Callers
// must tolerate a missing key on first run; Get reports that case as ErrNotFound.
package storage

import (
	"context"
	"errors"
)

// Keys used by the application.
const (
	KeyProducts = "vst_products"
	KeyEvents   = "vst_events"
	KeyUser     = "vst_user"
)

var ErrNotFound = errors.New("key not found")

type Backend interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
}
