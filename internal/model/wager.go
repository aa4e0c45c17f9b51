package model

// Wager is a bet for the current round. It is discarded once the round resolves.
type Wager struct {
	Stake      int64
	Selection  Selection
	Confidence int // multiplier chosen by the player, >= 1
}

// EffectKind is the tagged effect of a power-up.
type EffectKind int

const (
	EffectExtendTimer EffectKind = iota + 1
	EffectRevealWrongOption
	EffectNullifyLoss
	EffectDoubleMultiplier
)

func (k EffectKind) String() string {
	switch k {
	case EffectExtendTimer:
		return "extend_timer"
	case EffectRevealWrongOption:
		return "reveal_wrong_option"
	case EffectNullifyLoss:
		return "nullify_loss"
	case EffectDoubleMultiplier:
		return "double_multiplier"
	default:
		return "unknown"
	}
}

// Deferred reports whether the effect waits for resolution instead of applying
// on activation.
func (k EffectKind) Deferred() bool {
	return k == EffectNullifyLoss || k == EffectDoubleMultiplier
}

// ParseEffectKind maps a catalog name to an EffectKind.
func ParseEffectKind(s string) (EffectKind, bool) {
	for _, k := range []EffectKind{EffectExtendTimer, EffectRevealWrongOption, EffectNullifyLoss, EffectDoubleMultiplier} {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

// PowerUp is a consumable modifier.
type PowerUp struct {
	ID            string
	Name          string
	Cost          int64
	RemainingUses int
	Effect        EffectKind
	Active        bool
}

// ModifierSet holds the deferred effects active for the current round.
type ModifierSet uint8

func (m ModifierSet) Has(k EffectKind) bool { return m&(1<<uint(k)) != 0 }

func (m ModifierSet) With(k EffectKind) ModifierSet { return m | 1<<uint(k) }

// Kinds lists the active effects in declaration order.
func (m ModifierSet) Kinds() []EffectKind {
	var out []EffectKind
	for _, k := range []EffectKind{EffectExtendTimer, EffectRevealWrongOption, EffectNullifyLoss, EffectDoubleMultiplier} {
		if m.Has(k) {
			out = append(out, k)
		}
	}
	return out
}
