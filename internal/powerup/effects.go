package powerup

import "WagerArena/internal/model"

// ExtendTimer adds bonus ticks without exceeding ceiling. A timer already above
// the ceiling is left as is.
func ExtendTimer(remaining, bonus, ceiling int) int {
	if remaining >= ceiling {
		return remaining
	}
	extended := remaining + bonus
	if extended > ceiling {
		extended = ceiling
	}
	return extended
}

// RevealWrongOption removes the first incorrect option in presentation order.
// It reports false when only the correct answer is left.
func RevealWrongOption(p model.Problem) (model.Problem, int, bool) {
	for i, o := range p.Options {
		if o == p.CorrectAnswer {
			continue
		}
		options := make([]int, 0, len(p.Options)-1)
		options = append(options, p.Options[:i]...)
		options = append(options, p.Options[i+1:]...)
		p.Options = options
		return p, o, true
	}
	return p, 0, false
}
