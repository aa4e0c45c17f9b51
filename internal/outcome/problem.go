package outcome

import (
	"fmt"

	"WagerArena/internal/model"
	"WagerArena/internal/random"
)

// operandRange is an inclusive-exclusive span [Min, Min+Span).
type operandRange struct {
	Min  int
	Span int
}

// TierRanges defines the operand ranges per difficulty tier.
var TierRanges = map[model.DifficultyTier][2]operandRange{
	model.TierEasy:   {{Min: 1, Span: 20}, {Min: 1, Span: 20}},
	model.TierMedium: {{Min: 10, Span: 50}, {Min: 5, Span: 30}},
	model.TierHard:   {{Min: 20, Span: 100}, {Min: 10, Span: 50}},
}

var operators = []model.Operator{model.OpAdd, model.OpSub, model.OpMul, model.OpDiv}

const (
	// distractor offsets are drawn from [-distractorSpread, distractorSpread)
	distractorSpread = 10
	// after this many rejected draws the nearest free offsets are used
	maxDistractorDraws = 64
)

// GenerateProblem builds an arithmetic problem with one correct option and two
// positive distractors, shuffled into presentation order.
func GenerateProblem(tier model.DifficultyTier, src random.Source) model.Problem {
	if src == nil {
		src = random.Default()
	}
	ranges, ok := TierRanges[tier]
	if !ok {
		ranges = TierRanges[model.TierEasy]
	}

	op := operators[random.IntN(src, len(operators))]
	a := ranges[0].Min + random.IntN(src, ranges[0].Span)
	b := ranges[1].Min + random.IntN(src, ranges[1].Span)

	var correct int
	switch op {
	case model.OpAdd:
		correct = a + b
	case model.OpSub:
		if a < b {
			a, b = b, a
		}
		correct = a - b
	case model.OpMul:
		correct = a * b
	case model.OpDiv:
		quotient := a / b
		if quotient < 1 {
			quotient = 1
		}
		a = quotient * b
		correct = quotient
	}

	options := append([]int{correct}, distractors(correct, src)...)
	random.Shuffle(src, len(options), func(i, j int) { options[i], options[j] = options[j], options[i] })

	return model.Problem{
		Prompt:        fmt.Sprintf("%d %s %d = ?", a, op, b),
		Operator:      op,
		Operands:      [2]int{a, b},
		Options:       options,
		CorrectAnswer: correct,
		Tier:          tier,
	}
}

// distractors perturbs correct with random offsets until two distinct positive
// wrong answers are found.
func distractors(correct int, src random.Source) []int {
	out := make([]int, 0, 2)
	accept := func(v int) bool {
		if v == correct || v <= 0 {
			return false
		}
		for _, d := range out {
			if d == v {
				return false
			}
		}
		out = append(out, v)
		return true
	}

	for draws := 0; len(out) < 2 && draws < maxDistractorDraws; draws++ {
		offset := random.IntN(src, 2*distractorSpread) - distractorSpread
		accept(correct + offset)
	}
	// correct is never negative, so correct+k is positive for every k >= 1
	for k := 1; len(out) < 2; k++ {
		accept(correct + k)
	}
	return out
}
