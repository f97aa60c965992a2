// Package store persists single named values to a durable key/value backend.
//
// Persistence is best-effort: a Value never reports a failure to its caller
// through Read or Write, it logs it and carries on. The in-memory state that
// produced a write stays authoritative for the session.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// ErrNotFound is returned by a Backend when no value is stored under a key.
var ErrNotFound = errors.New("not found")

// Backend is a durable key/value medium.
type Backend interface {
	Get(key string) ([]byte, error)
	Put(key string, data []byte) error
	Close() error
}

// Value is a typed value stored under a fixed key with a fallback default.
type Value[T any] struct {
	backend  Backend
	key      string
	def      T
	logger   *log.Logger
	validate func([]byte) error
}

type valueOptions struct {
	logger   *log.Logger
	validate func([]byte) error
}

// ValueOption tunes a Value.
type ValueOption func(*valueOptions)

// WithLogger sets where read/write failures are reported.
func WithLogger(l *log.Logger) ValueOption {
	return func(o *valueOptions) { o.logger = l }
}

// WithValidator runs fn on the raw stored bytes before decoding.
// A validation error is treated like any other read failure.
func WithValidator(fn func([]byte) error) ValueOption {
	return func(o *valueOptions) { o.validate = fn }
}

// NewValue binds key on b. def is returned whenever reading fails.
func NewValue[T any](b Backend, key string, def T, opts ...ValueOption) *Value[T] {
	o := valueOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}
	return &Value[T]{
		backend:  b,
		key:      key,
		def:      def,
		logger:   o.logger,
		validate: o.validate,
	}
}

// Key returns the storage key.
func (v *Value[T]) Key() string { return v.key }

// Read returns the stored value, or the default if it is absent or unreadable.
func (v *Value[T]) Read() T {
	out, err := v.ReadErr()
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			v.logger.Debug("no stored value, using default", "key", v.key)
		} else {
			v.logger.Warn("read stored value", "key", v.key, "err", err)
		}
		return v.def
	}
	return out
}

// ReadErr is Read with the failure reported instead of logged.
// On error the returned value is the default.
func (v *Value[T]) ReadErr() (T, error) {
	b, err := v.backend.Get(v.key)
	if err != nil {
		return v.def, fmt.Errorf("get %q: %w", v.key, err)
	}
	if v.validate != nil {
		if err := v.validate(b); err != nil {
			return v.def, fmt.Errorf("validate %q: %w", v.key, err)
		}
	}
	var out T
	if err := json.Unmarshal(b, &out); err != nil {
		return v.def, fmt.Errorf("json unmarshal %q: %w", v.key, err)
	}
	return out, nil
}

// Write stores val under the key. Failures are logged and dropped.
func (v *Value[T]) Write(val T) {
	if err := v.WriteErr(val); err != nil {
		v.logger.Error("write stored value", "key", v.key, "err", err)
	}
}

// WriteErr is Write with the failure reported instead of logged.
func (v *Value[T]) WriteErr(val T) error {
	b, err := json.Marshal(val)
	if err != nil {
		return fmt.Errorf("json marshal %q: %w", v.key, err)
	}
	if err := v.backend.Put(v.key, b); err != nil {
		return fmt.Errorf("put %q: %w", v.key, err)
	}
	return nil
}
