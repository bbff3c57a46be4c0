package parcel

import (
	"reflect"
	"sync"
)

// registryKey combines type and mode for cache lookup.
type registryKey struct {
	typ  reflect.Type
	mode Mode
}

var (
	registry   = make(map[registryKey]any)
	layouts    = make(map[reflect.Type]Layout)
	registryMu sync.RWMutex
)

// Use returns a cached default processor or builds a new one.
// The processor is cached by type and mode.
func Use[T any](mode Mode) *Processor[T] {
	key := registryKey{typ: reflect.TypeFor[T](), mode: mode}

	// Fast path: read-lock cache check
	registryMu.RLock()
	if cached, ok := registry[key]; ok {
		registryMu.RUnlock()
		return cached.(*Processor[T])
	}
	registryMu.RUnlock()

	// Build outside the lock; LayoutOf takes it.
	processor := newProcessor[T](mode, nil)

	registryMu.Lock()
	// Double-check pattern
	if cached, ok := registry[key]; ok {
		registryMu.Unlock()
		return cached.(*Processor[T])
	}
	registry[key] = processor
	registryMu.Unlock()

	// Only the processor that made it into the cache is announced.
	processor.announce()
	return processor
}

func lookupLayout(typ reflect.Type) (Layout, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	l, ok := layouts[typ]
	return l, ok
}

func storeLayout(typ reflect.Type, l Layout) Layout {
	registryMu.Lock()
	defer registryMu.Unlock()
	if cached, ok := layouts[typ]; ok {
		return cached
	}
	layouts[typ] = l
	return l
}

// Reset clears the processor and layout caches.
// This is primarily useful for test isolation.
func Reset() {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry = make(map[registryKey]any)
	layouts = make(map[reflect.Type]Layout)
}
