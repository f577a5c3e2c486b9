// Package di provides a minimal typed service container used to wire the
// bounded context modules together at startup.
package di

import (
	"fmt"
	"sync"
)

// ServiceRegistry is the read side of the container exposed to modules.
type ServiceRegistry interface {
	// Get resolves a service by name, invoking its factory on first use.
	// It panics if the name was never registered.
	Get(name string) any
}

// Container is the write side used during module registration.
type Container interface {
	ServiceRegistry
	// Register stores an already-constructed value.
	Register(name string, value any)
	// RegisterFactory stores a lazy constructor. The factory runs at most
	// once; its result is memoized.
	RegisterFactory(name string, factory func(ServiceRegistry) any)
}

type entry struct {
	value    any
	factory  func(ServiceRegistry) any
	resolved bool
}

type container struct {
	mu      sync.Mutex
	entries map[string]*entry
}

// NewContainer creates an empty Container.
func NewContainer() Container {
	return &container{entries: make(map[string]*entry)}
}

func (c *container) Register(name string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[name] = &entry{value: value, resolved: true}
}

func (c *container) RegisterFactory(name string, factory func(ServiceRegistry) any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[name] = &entry{factory: factory}
}

func (c *container) Get(name string) any {
	c.mu.Lock()
	e, ok := c.entries[name]
	if !ok {
		c.mu.Unlock()
		panic(fmt.Sprintf("di: service %q not registered", name))
	}
	if e.resolved {
		c.mu.Unlock()
		return e.value
	}
	// Release the lock while the factory runs so factories can resolve
	// their own dependencies through the container.
	c.mu.Unlock()
	value := e.factory(c)

	c.mu.Lock()
	defer c.mu.Unlock()
	if !e.resolved {
		e.value = value
		e.resolved = true
		e.factory = nil
	}
	return e.value
}

// Token is a typed handle for a registered service.
type Token[T any] struct {
	name string
}

// NewToken creates a token with a stable, unique name.
func NewToken[T any](name string) Token[T] {
	return Token[T]{name: name}
}

// Name returns the registration name of the token.
func (t Token[T]) Name() string { return t.name }

// RegisterToken registers a typed factory under the token's name.
func RegisterToken[T any](c Container, token Token[T], factory func(ServiceRegistry) T) {
	c.RegisterFactory(token.name, func(sr ServiceRegistry) any {
		return factory(sr)
	})
}

// GetToken resolves a typed service. It panics on a type mismatch, which
// indicates a wiring bug rather than a runtime condition.
func GetToken[T any](sr ServiceRegistry, token Token[T]) T {
	v := sr.Get(token.name)
	typed, ok := v.(T)
	if !ok {
		panic(fmt.Sprintf("di: service %q has type %T, not the token type", token.name, v))
	}
	return typed
}
