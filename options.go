package safemap

import (
	"cmp"
	"time"

	"go.uber.org/zap"
)

/*
Option defines a functional configuration modifier for Map.

DESIGN PATTERN

This file implements the Functional Options Pattern, the idiomatic Go
alternative to Map accepting a long, fragile parameter list or an
unexported config struct literal. New() accepts a variadic list of Option
values:

    m := New[string, int, OnlyForward, Linear](
        WithLogger[string, int](logger),
    )

Each Option mutates a config before the Map becomes active.

BENEFITS

1. API Stability: adding a new knob never changes New()'s signature.
2. Readability: configuration reads as a short, explicit list at the
   call site instead of positional arguments.
3. Extensibility: WithComparator/WithLogger/WithAllocator today, more
   tomorrow, without breaking existing callers.
*/

// Allocator supplies the zero value a container returns when a lookup
// misses and the caller asked for InsertOrGet / operator[]-style access
// rather than a plain Find. The default allocator returns V's Go zero
// value, matching the original design's default-constructed mapped type.
type Allocator[V any] interface {
	New() V
}

type defaultAllocator[V any] struct{}

func (defaultAllocator[V]) New() V {
	var zero V
	return zero
}

type config[K any, V any] struct {
	compare         Compare[K]
	log             *zap.SugaredLogger
	alloc           Allocator[V]
	cleanupInterval time.Duration
}

// Option configures a Map at construction time.
type Option[K any, V any] func(*config[K, V])

// WithComparator overrides the default key ordering. Map's K is always
// cmp.Ordered, so this is optional (e.g. to reverse the order, or to
// compare case-insensitively).
func WithComparator[K any, V any](cmp Compare[K]) Option[K, V] {
	return func(c *config[K, V]) {
		c.compare = cmp
	}
}

// WithLogger attaches a structured logger. A nil logger is treated as
// "no logging": the container falls back to zap.NewNop().
func WithLogger[K any, V any](logger *zap.Logger) Option[K, V] {
	return func(c *config[K, V]) {
		if logger == nil {
			logger = zap.NewNop()
		}
		c.log = logger.Sugar()
	}
}

// WithAllocator overrides how a missing key's zero value is produced.
func WithAllocator[K any, V any](alloc Allocator[V]) Option[K, V] {
	return func(c *config[K, V]) {
		c.alloc = alloc
	}
}

// WithCleanupInterval starts a background goroutine that calls Cleanup
// every d, collecting tombstoned entries that no Iterator pins — those
// left by EraseFast, ClearFast, AssignMap and SwapMap. Entries tombstoned
// while pinned are collected without this option, the moment their last
// pin drops. Call Map.Stop to shut the goroutine down.
func WithCleanupInterval[K any, V any](d time.Duration) Option[K, V] {
	return func(c *config[K, V]) {
		c.cleanupInterval = d
	}
}

func newConfig[K cmp.Ordered, V any](opts ...Option[K, V]) *config[K, V] {
	c := &config[K, V]{
		compare: defaultCompare[K](),
		log:     zap.NewNop().Sugar(),
		alloc:   defaultAllocator[V]{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
