// Package effects implements time-driven palette transformations. Effects
// keep their own clock in milliseconds, so the same sequence of frame times
// always yields the same colors.
package effects

import "github.com/valerio/go-jazz/jazz/video"

// Effect transforms a contiguous range of palette entries.
type Effect interface {
	// Range returns the palette entries the effect works on.
	Range() (first, amount int)
	// Apply transforms colors, which holds exactly the entries named by
	// Range. mspf is the time since the previous frame; a stopped effect
	// redraws its current state without advancing.
	Apply(colors []video.Color, mspf int, stopped bool)
}

type span struct {
	first, amount int
}

func (s span) Range() (int, int) {
	return s.first, s.amount
}

type clock struct {
	elapsed int
}

func (c *clock) advance(mspf int, stopped bool) int {
	if !stopped && mspf > 0 {
		c.elapsed += mspf
	}
	return c.elapsed
}

// Chain is an ordered list of effects. The zero value is an empty chain.
type Chain struct {
	effects []Effect
}

// NewChain creates a chain applying effects in the given order.
func NewChain(effects ...Effect) *Chain {
	c := &Chain{}
	for _, e := range effects {
		c.Add(e)
	}
	return c
}

// Add appends e; it runs after every effect already in the chain.
func (c *Chain) Add(e Effect) {
	if e == nil {
		return
	}
	c.effects = append(c.effects, e)
}

func (c *Chain) Len() int {
	if c == nil {
		return 0
	}
	return len(c.effects)
}

// Apply runs every effect over its own range of p, in registration order.
// A nil chain leaves p untouched.
func (c *Chain) Apply(p *video.Palette, mspf int, stopped bool) {
	if c == nil {
		return
	}
	for _, e := range c.effects {
		first, amount := e.Range()
		e.Apply(p.Range(first, amount), mspf, stopped)
	}
}

// Reset removes every effect.
func (c *Chain) Reset() {
	c.effects = nil
}
