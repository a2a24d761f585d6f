// Package intercept provides the priority-ordered gate chain the
// navigator runs before creating any UI instance. Each interceptor may
// veto a navigation by returning false; the chain short-circuits at the
// first veto.
package intercept

import "math"

// Interceptor is a navigation gate. Intercept reports whether the
// navigation may proceed. Higher-priority interceptors run first.
type Interceptor interface {
	Intercept(routeKey string, params map[string]any) bool
	Priority() int
}

// Func adapts a bare predicate to the Interceptor interface. Bare
// predicates carry no priority and run after every prioritized
// interceptor.
type Func func(routeKey string, params map[string]any) bool

// Intercept calls the predicate.
func (f Func) Intercept(routeKey string, params map[string]any) bool {
	return f(routeKey, params)
}

// Priority of a bare predicate is the lowest possible.
func (Func) Priority() int { return math.MinInt }

// Chain is an ordered sequence of interceptors. It is an explicitly
// constructed, injected dependency; every navigator owns its own chain.
type Chain struct {
	interceptors []Interceptor
}

// NewChain returns an empty chain.
func NewChain() *Chain {
	return &Chain{}
}

// Add inserts the interceptor in priority order: before the first
// existing entry with strictly lower priority, after existing entries of
// equal priority.
func (c *Chain) Add(i Interceptor) {
	priority := i.Priority()
	for idx, existing := range c.interceptors {
		if existing.Priority() < priority {
			c.interceptors = append(c.interceptors, nil)
			copy(c.interceptors[idx+1:], c.interceptors[idx:])
			c.interceptors[idx] = i
			return
		}
	}
	c.interceptors = append(c.interceptors, i)
}

// AddFunc appends a bare predicate at the end of the chain.
func (c *Chain) AddFunc(f Func) {
	c.Add(f)
}

// Run executes the chain in order and stops at the first interceptor
// returning false. It reports whether the navigation may proceed.
func (c *Chain) Run(routeKey string, params map[string]any) bool {
	for _, i := range c.interceptors {
		if !i.Intercept(routeKey, params) {
			return false
		}
	}
	return true
}

// Len returns the number of installed interceptors.
func (c *Chain) Len() int { return len(c.interceptors) }

// List returns the interceptors in execution order.
func (c *Chain) List() []Interceptor {
	out := make([]Interceptor, len(c.interceptors))
	copy(out, c.interceptors)
	return out
}

// Reset removes every interceptor. Intended for test isolation.
func (c *Chain) Reset() {
	c.interceptors = c.interceptors[:0]
}
