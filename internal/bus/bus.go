// Package bus implements the NES's shared signal lines: named, scalar
// rendezvous points that a dynamic set of devices listen to via Harnesses.
package bus

import "fmt"

// Callback is invoked when a bus level changes and the harness's
// threshold, if any, matches the new level. owner is whatever value was
// passed to Attach, letting a device recover its own state from a shared
// callback.
type Callback func(owner any, level uint32)

// Harness is a device's handle onto a Bus. It is created by the device,
// attached to at most one bus at a time, and becomes inert once the bus
// it was attached to calls DetachAll.
type Harness struct {
	owner    any
	callback Callback

	hasThreshold bool
	lower, upper uint32

	bus *Bus
}

// NewHarness creates a harness for owner. A nil callback is valid: the
// harness can still be passed to Bus.Put as the originator but is never
// notified of other writers.
func NewHarness(owner any, callback Callback) *Harness {
	return &Harness{owner: owner, callback: callback}
}

// WithThreshold restricts callback invocation to levels in the inclusive
// range [lower, upper]. It returns the harness for chaining at construction.
func (h *Harness) WithThreshold(lower, upper uint32) *Harness {
	h.hasThreshold = true
	h.lower, h.upper = lower, upper
	return h
}

func (h *Harness) matches(level uint32) bool {
	if !h.hasThreshold {
		return true
	}
	return level >= h.lower && level <= h.upper
}

// Bus is a named broadcast point carrying one scalar level. Three
// instances exist per NES: the address bus (16-bit), the data bus
// (8-bit), and the single-bit write signal.
type Bus struct {
	name  string
	level uint32

	harnesses []*Harness
	// broadcasting is set while a Put is notifying harnesses. Put ranges
	// over a snapshot of the harness slice, so a callback may re-enter
	// Put without corrupting that range.
	broadcasting bool
}

// New creates an empty, unattached bus.
func New(name string) *Bus {
	return &Bus{name: name}
}

// Name returns the bus's identifier, e.g. "address", "data", "write".
func (b *Bus) Name() string {
	return b.name
}

// Attach appends harness to the bus's listener list. It is a
// precondition violation — and panics — to attach a harness already
// bound to a bus.
func (b *Bus) Attach(harness *Harness) {
	if harness.bus != nil {
		panic(fmt.Sprintf("bus %s: harness already attached", b.name))
	}
	harness.bus = b
	b.harnesses = append(b.harnesses, harness)
}

// Get returns the bus's current level.
func (b *Bus) Get() uint32 {
	return b.level
}

// Put sets the bus's level, then invokes every other attached harness's
// callback, in attachment order, when the harness has no threshold or its
// threshold contains the new level. The originating harness is never
// re-notified of its own write.
func (b *Bus) Put(level uint32, by *Harness) {
	b.level = level

	b.broadcasting = true
	harnesses := b.harnesses
	for _, h := range harnesses {
		if h == by || h.callback == nil {
			continue
		}
		if h.matches(level) {
			h.callback(h.owner, level)
		}
	}
	b.broadcasting = false
}

// DetachAll unbinds every harness, clears the listener list, and resets
// the level to zero. Detached harnesses become inert: their bus
// reference is cleared, and re-attaching them to any bus is safe again.
func (b *Bus) DetachAll() {
	for _, h := range b.harnesses {
		h.bus = nil
	}
	b.harnesses = nil
	b.level = 0
}

// Harnesses returns the currently attached harnesses in attachment order.
// Intended for tests that assert on attach/detach sequencing.
func (b *Bus) Harnesses() []*Harness {
	out := make([]*Harness, len(b.harnesses))
	copy(out, b.harnesses)
	return out
}
