package outcome

import (
	"errors"
	"math"
	"testing"

	"WagerArena/internal/model"
	"WagerArena/internal/random"

	"github.com/shopspring/decimal"
)

var racers = []model.Candidate{
	{ID: "lion", Name: "Lion", Weight: 0.5},
	{ID: "cheetah", Name: "Cheetah", Weight: 0.3},
	{ID: "wolf", Name: "Wolf", Weight: 0.2},
}

func TestPickWeightedFrequencies(t *testing.T) {
	const draws = 20000
	src := random.NewSeeded(42)
	counts := map[string]int{}
	for i := 0; i < draws; i++ {
		c, err := PickWeighted(racers, src)
		if err != nil {
			t.Fatalf("PickWeighted: %v", err)
		}
		counts[c.ID]++
	}
	for _, c := range racers {
		freq := float64(counts[c.ID]) / draws
		if math.Abs(freq-c.Weight) > 0.02 {
			t.Errorf("%s: frequency %.3f, expected %.3f", c.ID, freq, c.Weight)
		}
	}
}

func TestPickWeightedCallerOrder(t *testing.T) {
	tests := []struct {
		r    float64
		want string
	}{
		{0, "lion"},
		{0.5, "lion"},
		{0.51, "cheetah"},
		{0.79, "cheetah"},
		{0.81, "wolf"},
	}
	for _, tt := range tests {
		c, err := PickWeighted(racers, random.NewFixed(tt.r))
		if err != nil {
			t.Fatalf("PickWeighted: %v", err)
		}
		if c.ID != tt.want {
			t.Errorf("r=%.2f: expected %s, got %s", tt.r, tt.want, c.ID)
		}
	}
}

func TestPickWeightedFallsBackToLast(t *testing.T) {
	// A draw past the final cumulative weight resolves to the last candidate.
	c, err := PickWeighted(racers, random.NewFixed(1.5))
	if err != nil {
		t.Fatalf("PickWeighted: %v", err)
	}
	if c.ID != "wolf" {
		t.Errorf("expected wolf, got %s", c.ID)
	}
}

func TestPickWeightedRejectsBadInput(t *testing.T) {
	if _, err := PickWeighted(nil, random.NewFixed(0)); !errors.Is(err, ErrNoCandidates) {
		t.Errorf("expected ErrNoCandidates, got %v", err)
	}
	bad := [][]model.Candidate{
		{{ID: "a", Weight: 0}},
		{{ID: "a", Weight: -1}},
		{{ID: "a", Weight: 1}, {ID: "b", Weight: math.NaN()}},
		{{ID: "a", Weight: math.Inf(1)}},
	}
	for i, cands := range bad {
		if _, err := PickWeighted(cands, random.NewFixed(0)); !errors.Is(err, ErrInvalidWeight) {
			t.Errorf("case %d: expected ErrInvalidWeight, got %v", i, err)
		}
	}
}

func TestProbability(t *testing.T) {
	p, err := Probability(racers, "lion")
	if err != nil {
		t.Fatalf("Probability: %v", err)
	}
	if !p.Equal(decimal.RequireFromString("0.5")) {
		t.Errorf("expected 0.5, got %s", p)
	}
	if _, err := Probability(racers, "zebra"); !errors.Is(err, ErrUnknownCandidate) {
		t.Errorf("expected ErrUnknownCandidate, got %v", err)
	}
}

func TestShareIsExact(t *testing.T) {
	cands := []model.Candidate{{ID: "a", Weight: 2}, {ID: "b", Weight: 1}}
	weight, total, err := Share(cands, "a")
	if err != nil {
		t.Fatalf("Share: %v", err)
	}
	if !weight.Equal(decimal.NewFromInt(2)) || !total.Equal(decimal.NewFromInt(3)) {
		t.Errorf("expected 2/3, got %s/%s", weight, total)
	}
	if _, _, err := Share(cands, "zebra"); !errors.Is(err, ErrUnknownCandidate) {
		t.Errorf("expected ErrUnknownCandidate, got %v", err)
	}
}

func TestResolveCopiesCandidates(t *testing.T) {
	choice, err := Resolve(racers, random.NewFixed(0.9))
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if choice.Resolved != "wolf" {
		t.Errorf("expected wolf, got %s", choice.Resolved)
	}
	choice.Candidates[0].Weight = 99
	if racers[0].Weight != 0.5 {
		t.Error("Resolve must not alias the caller's slice")
	}
}

func TestGenerateProblemProperties(t *testing.T) {
	tiers := []model.DifficultyTier{model.TierEasy, model.TierMedium, model.TierHard}
	for _, tier := range tiers {
		src := random.NewSeeded(uint64(tier) + 1)
		for i := 0; i < 500; i++ {
			p := GenerateProblem(tier, src)
			if len(p.Options) != 3 {
				t.Fatalf("%s: expected 3 options, got %v", tier, p.Options)
			}
			seen := map[int]bool{}
			hasCorrect := false
			for _, o := range p.Options {
				if seen[o] {
					t.Fatalf("%s: duplicate option in %v", tier, p.Options)
				}
				seen[o] = true
				if o == p.CorrectAnswer {
					hasCorrect = true
				} else if o <= 0 {
					t.Fatalf("%s: non-positive distractor in %v", tier, p.Options)
				}
			}
			if !hasCorrect {
				t.Fatalf("%s: correct answer %d missing from %v", tier, p.CorrectAnswer, p.Options)
			}
			if p.CorrectAnswer < 0 {
				t.Fatalf("%s: negative answer for %s", tier, p.Prompt)
			}
			a, b := p.Operands[0], p.Operands[1]
			switch p.Operator {
			case model.OpAdd:
				if a+b != p.CorrectAnswer {
					t.Fatalf("%s: wrong sum", p.Prompt)
				}
			case model.OpSub:
				if a-b != p.CorrectAnswer {
					t.Fatalf("%s: wrong difference", p.Prompt)
				}
			case model.OpMul:
				if a*b != p.CorrectAnswer {
					t.Fatalf("%s: wrong product", p.Prompt)
				}
			case model.OpDiv:
				if b == 0 || a%b != 0 || a/b != p.CorrectAnswer || p.CorrectAnswer < 1 {
					t.Fatalf("%s: division must be exact with quotient >= 1", p.Prompt)
				}
			}
		}
	}
}

func TestGenerateProblemRetriesCollidingDistractors(t *testing.T) {
	// operator +, a=1, b=1; offsets 0 (collides), -5 (non-positive), +1, +1 (duplicate), +2
	src := random.NewFixed(0, 0, 0, 0.5, 0.25, 0.5625, 0.5625, 0.625, 0, 0)
	p := GenerateProblem(model.TierEasy, src)
	if p.Operator != model.OpAdd || p.CorrectAnswer != 2 {
		t.Fatalf("expected 1 + 1 = 2, got %s answer %d", p.Prompt, p.CorrectAnswer)
	}
	want := map[int]bool{2: true, 3: true, 4: true}
	for _, o := range p.Options {
		if !want[o] {
			t.Fatalf("unexpected options %v", p.Options)
		}
		delete(want, o)
	}
	if src.Calls != 10 {
		t.Errorf("expected 10 draws, got %d", src.Calls)
	}
}

func TestGenerateProblemTerminatesOnConstantSource(t *testing.T) {
	// every offset draw is 0, so the nearest free values are used
	p := GenerateProblem(model.TierEasy, random.NewFixed(0.5))
	if p.Operator != model.OpMul || p.CorrectAnswer != 121 {
		t.Fatalf("expected 11 × 11 = 121, got %s answer %d", p.Prompt, p.CorrectAnswer)
	}
	want := map[int]bool{121: true, 122: true, 123: true}
	for _, o := range p.Options {
		if !want[o] {
			t.Fatalf("unexpected options %v", p.Options)
		}
	}
}
