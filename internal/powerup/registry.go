// Package powerup tracks the consumable power-up catalog: remaining uses,
// active flags and the deferred modifiers they contribute to resolution.
package powerup

import (
	"fmt"

	"WagerArena/internal/model"
	"WagerArena/internal/rejection"
)

// Registry owns the power-up catalog for one session.
type Registry struct {
	initial []model.PowerUp
	items   []model.PowerUp
	index   map[string]int
}

// NewRegistry builds a registry from catalog definitions. Ids must be unique.
func NewRegistry(defs []model.PowerUp) (*Registry, error) {
	index := make(map[string]int, len(defs))
	for i, d := range defs {
		if d.ID == "" {
			return nil, fmt.Errorf("power-up %d: empty id", i)
		}
		if _, dup := index[d.ID]; dup {
			return nil, fmt.Errorf("power-up %q: duplicate id", d.ID)
		}
		if d.Cost < 0 || d.RemainingUses < 0 {
			return nil, fmt.Errorf("power-up %q: cost and uses must be non-negative", d.ID)
		}
		if d.Effect.String() == "unknown" {
			return nil, fmt.Errorf("power-up %q: unknown effect %d", d.ID, d.Effect)
		}
		index[d.ID] = i
	}
	r := &Registry{
		initial: append([]model.PowerUp(nil), defs...),
		index:   index,
	}
	r.Reset()
	return r, nil
}

// Get returns a copy of the power-up with the given id.
func (r *Registry) Get(id string) (model.PowerUp, bool) {
	i, ok := r.index[id]
	if !ok {
		return model.PowerUp{}, false
	}
	return r.items[i], true
}

// Check reports whether id could be activated now without changing anything.
func (r *Registry) Check(id string, tokens int64, state model.RoundState) error {
	i, ok := r.index[id]
	if !ok {
		return rejection.PowerUp(rejection.CodePowerUpUnknown, fmt.Sprintf("unknown power-up %q", id))
	}
	p := r.items[i]
	if state.Phase != model.PhaseActive {
		return rejection.PowerUp(rejection.CodePowerUpRoundInactive, "power-ups can only be used during an active round")
	}
	if p.RemainingUses <= 0 {
		return rejection.PowerUp(rejection.CodeNoUsesLeft, fmt.Sprintf("%s has no uses left", p.Name))
	}
	if tokens < p.Cost {
		return rejection.PowerUp(rejection.CodeInsufficientTokens,
			fmt.Sprintf("%s costs %d, balance is %d", p.Name, p.Cost, tokens))
	}
	if p.Effect.Deferred() && p.Active {
		return rejection.PowerUp(rejection.CodePowerUpAlreadyActive, fmt.Sprintf("%s is already active", p.Name))
	}
	return nil
}

// Consume spends one use of id. Deferred effects become active until the
// round ends.
func (r *Registry) Consume(id string) (model.PowerUp, error) {
	i, ok := r.index[id]
	if !ok {
		return model.PowerUp{}, rejection.PowerUp(rejection.CodePowerUpUnknown, fmt.Sprintf("unknown power-up %q", id))
	}
	p := &r.items[i]
	if p.RemainingUses <= 0 {
		return *p, rejection.PowerUp(rejection.CodeNoUsesLeft, fmt.Sprintf("%s has no uses left", p.Name))
	}
	p.RemainingUses--
	if p.Effect.Deferred() {
		p.Active = true
	}
	return *p, nil
}

// Modifiers returns the deferred effects active this round.
func (r *Registry) Modifiers() model.ModifierSet {
	var m model.ModifierSet
	for _, p := range r.items {
		if p.Active && p.Effect.Deferred() {
			m = m.With(p.Effect)
		}
	}
	return m
}

// ResetRound clears every active flag. Uses are not restored.
func (r *Registry) ResetRound() {
	for i := range r.items {
		r.items[i].Active = false
	}
}

// Reset restores the catalog to its initial uses.
func (r *Registry) Reset() {
	r.items = append(r.items[:0:0], r.initial...)
	for i := range r.items {
		r.items[i].Active = false
	}
}

// Snapshot returns a copy of the catalog in definition order.
func (r *Registry) Snapshot() []model.PowerUp {
	return append([]model.PowerUp(nil), r.items...)
}
