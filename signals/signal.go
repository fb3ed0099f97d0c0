// Package signals is a small push-based reactive-state library: Signal
// holds a value, Computed derives one from others lazily, and Effect reruns
// a function whenever anything it read last time changes. Models that keep
// state outside the Elm-architecture Update/View loop (e.g. a value shared
// across several widgets) use a Signal directly; Watch bridges a Signal's
// updates into the runtime's own Subscription/Msg loop.
package signals

import (
	"context"
	"reflect"
	"sync"

	"github.com/thorstone137/frankentui-sub012/tui"
)

// Getter type-erases Signal/Computed so callers that only need to read a
// value, not also track or set it, don't need the generic type parameter.
type Getter interface {
	GetValue() interface{}
}

// Dependency is anything a Subscriber can read and be notified by: Signal
// and Computed both implement it.
type Dependency interface {
	subscribe(s Subscriber)
	unsubscribe(s Subscriber)
}

// Subscriber is anything that reads Dependencies and wants to hear about
// changes to them: Effect and Computed both implement it.
type Subscriber interface {
	onDependencyUpdated()
	addDependency(d Dependency)
}

var (
	activeSubscriber Subscriber
	activeMu         sync.Mutex

	batchDepth int
	batchQueue map[Subscriber]struct{}
	batchMu    sync.Mutex
)

// Batch runs fn with Subscriber notifications deferred until the outermost
// Batch call returns, so N Signal.Set calls inside fn only re-run each
// affected Effect/Computed once instead of N times.
func Batch(fn func()) {
	batchMu.Lock()
	batchDepth++
	batchMu.Unlock()

	defer func() {
		batchMu.Lock()
		batchDepth--
		if batchDepth == 0 && len(batchQueue) > 0 {
			queue := batchQueue
			batchQueue = nil
			batchMu.Unlock()
			for sub := range queue {
				sub.onDependencyUpdated()
			}
			return
		}
		batchMu.Unlock()
	}()

	fn()
}

// Signal holds a value of type T and notifies its subscribers whenever Set
// changes it (by reflect.DeepEqual).
type Signal[T any] struct {
	value       T
	subscribers map[Subscriber]struct{}
	mu          sync.RWMutex
}

// New creates a Signal holding val.
func New[T any](val T) *Signal[T] {
	return &Signal[T]{value: val, subscribers: make(map[Subscriber]struct{})}
}

func (s *Signal[T]) subscribe(sub Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers[sub] = struct{}{}
}

func (s *Signal[T]) unsubscribe(sub Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subscribers, sub)
}

func (s *Signal[T]) GetValue() interface{} { return s.Get() }

// Get reads the current value, registering the active Subscriber (if any,
// i.e. this call happened inside a Computed's fn or an Effect's fn) as a
// dependent.
func (s *Signal[T]) Get() T {
	activeMu.Lock()
	current := activeSubscriber
	activeMu.Unlock()

	if current != nil {
		current.addDependency(s)
		s.subscribe(current)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Peek reads the current value without registering a dependency.
func (s *Signal[T]) Peek() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set stores val and notifies every current subscriber, unless val is
// DeepEqual to the value already held.
func (s *Signal[T]) Set(val T) {
	s.mu.Lock()
	if reflect.DeepEqual(s.value, val) {
		s.mu.Unlock()
		return
	}
	s.value = val

	subs := make([]Subscriber, 0, len(s.subscribers))
	for sub := range s.subscribers {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub.onDependencyUpdated()
	}
}

// Computed lazily derives a value of type T from other Signals/Computeds
// read inside fn, re-evaluating only when one of them has actually changed
// since the last Get.
type Computed[T any] struct {
	fn           func() T
	value        T
	dirty        bool
	dependencies map[Dependency]struct{}
	subscribers  map[Subscriber]struct{}
	mu           sync.Mutex
}

// NewComputed creates a Computed that evaluates fn lazily on first Get.
func NewComputed[T any](fn func() T) *Computed[T] {
	return &Computed[T]{
		fn:           fn,
		dirty:        true,
		dependencies: make(map[Dependency]struct{}),
		subscribers:  make(map[Subscriber]struct{}),
	}
}

func (c *Computed[T]) subscribe(sub Subscriber) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subscribers[sub] = struct{}{}
}

func (c *Computed[T]) unsubscribe(sub Subscriber) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.subscribers, sub)
}

func (c *Computed[T]) addDependency(d Dependency) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dependencies[d] = struct{}{}
}

func (c *Computed[T]) onDependencyUpdated() {
	c.mu.Lock()
	if c.dirty {
		c.mu.Unlock()
		return
	}
	c.dirty = true

	subs := make([]Subscriber, 0, len(c.subscribers))
	for sub := range c.subscribers {
		subs = append(subs, sub)
	}
	c.mu.Unlock()

	for _, sub := range subs {
		sub.onDependencyUpdated()
	}
}

func (c *Computed[T]) GetValue() interface{} { return c.Get() }

// Get returns the current value, re-evaluating fn first if a dependency has
// changed since the last evaluation.
func (c *Computed[T]) Get() T {
	activeMu.Lock()
	current := activeSubscriber
	activeMu.Unlock()

	if current != nil {
		current.addDependency(c)
		c.subscribe(current)
	}

	c.mu.Lock()
	if c.dirty {
		for dep := range c.dependencies {
			dep.unsubscribe(c)
		}
		c.dependencies = make(map[Dependency]struct{})

		activeMu.Lock()
		prev := activeSubscriber
		activeSubscriber = c
		activeMu.Unlock()

		// fn may itself read other Signals/Computeds, so c.mu must be free
		// for the duration of the call.
		c.mu.Unlock()
		val := c.fn()
		c.mu.Lock()

		c.value = val
		c.dirty = false

		activeMu.Lock()
		activeSubscriber = prev
		activeMu.Unlock()
	}
	defer c.mu.Unlock()
	return c.value
}

// Effect reruns fn whenever any Signal/Computed it read during the last run
// changes, until Dispose is called.
type Effect struct {
	fn           func()
	dependencies map[Dependency]struct{}
	mu           sync.Mutex
	disposed     bool
}

// CreateEffect creates an Effect and runs fn once immediately.
func CreateEffect(fn func()) *Effect {
	e := &Effect{fn: fn, dependencies: make(map[Dependency]struct{})}
	e.Run()
	return e
}

func (e *Effect) addDependency(d Dependency) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.dependencies[d] = struct{}{}
}

func (e *Effect) onDependencyUpdated() {
	batchMu.Lock()
	if batchDepth > 0 {
		if batchQueue == nil {
			batchQueue = make(map[Subscriber]struct{})
		}
		batchQueue[e] = struct{}{}
		batchMu.Unlock()
		return
	}
	batchMu.Unlock()

	e.Run()
}

// Run re-runs fn, first dropping the dependency set from the previous run
// (fn rebuilds it by reading Signals/Computeds again, which may differ run
// to run if fn branches on their values).
func (e *Effect) Run() {
	e.mu.Lock()
	if e.disposed {
		e.mu.Unlock()
		return
	}
	oldDeps := e.dependencies
	e.dependencies = make(map[Dependency]struct{})
	e.mu.Unlock()

	for dep := range oldDeps {
		dep.unsubscribe(e)
	}

	activeMu.Lock()
	prev := activeSubscriber
	activeSubscriber = e
	activeMu.Unlock()

	e.fn()

	activeMu.Lock()
	activeSubscriber = prev
	activeMu.Unlock()
}

// Dispose unsubscribes the Effect from every dependency it holds; fn will
// never run again.
func (e *Effect) Dispose() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.disposed {
		return
	}
	e.disposed = true
	for dep := range e.dependencies {
		dep.unsubscribe(e)
	}
	e.dependencies = nil
}

// Watch bridges sig into the runtime's own message loop: it returns a
// tui.Subscription that runs an Effect re-reading sig on every change and
// forwards toMsg(value) to the runtime, including one initial send when the
// Subscription starts. Models that hold state in a Signal (e.g. shared
// across several widgets, or updated from a goroutine outside Update) use
// this instead of polling it from a Tick subscription.
func Watch[T any](sig *Signal[T], toMsg func(T) tui.Msg) tui.Subscription {
	return tui.SubscriptionFunc(func(ctx context.Context, out chan<- tui.Msg) {
		effect := CreateEffect(func() {
			val := sig.Get()
			select {
			case out <- toMsg(val):
			case <-ctx.Done():
			}
		})
		<-ctx.Done()
		effect.Dispose()
	})
}
