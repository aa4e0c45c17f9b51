package model

import "testing"

func TestOutcomeOffersAndMatches(t *testing.T) {
	race := NewWeightedOutcome(WeightedChoice{
		Candidates: []Candidate{{ID: "lion", Weight: 1}, {ID: "wolf", Weight: 1}},
		Resolved:   "wolf",
	})
	if !race.Offers(PickCandidate("lion")) || race.Offers(PickCandidate("zebra")) || race.Offers(PickOption(1)) {
		t.Error("unexpected race Offers")
	}
	if !race.Matches(PickCandidate("wolf")) || race.Matches(PickCandidate("lion")) {
		t.Error("unexpected race Matches")
	}

	quiz := NewProblemOutcome(Problem{Options: []int{0, 4, 7}, CorrectAnswer: 0})
	if !quiz.Offers(PickOption(0)) || quiz.Offers(Selection{}) {
		t.Error("a zero answer is a real option, the zero selection is not")
	}
	if !quiz.Matches(PickOption(0)) || quiz.Answer() != "0" {
		t.Error("unexpected quiz Matches/Answer")
	}
}

func TestModifierSet(t *testing.T) {
	var m ModifierSet
	m = m.With(EffectDoubleMultiplier).With(EffectNullifyLoss)
	kinds := m.Kinds()
	if len(kinds) != 2 || kinds[0] != EffectNullifyLoss || kinds[1] != EffectDoubleMultiplier {
		t.Fatalf("unexpected kinds %v", kinds)
	}
	if m.Has(EffectExtendTimer) {
		t.Error("unexpected ExtendTimer")
	}
}

func TestParseEffectKind(t *testing.T) {
	for _, k := range []EffectKind{EffectExtendTimer, EffectRevealWrongOption, EffectNullifyLoss, EffectDoubleMultiplier} {
		got, ok := ParseEffectKind(k.String())
		if !ok || got != k {
			t.Errorf("%s did not round-trip", k)
		}
	}
	if _, ok := ParseEffectKind("teleport"); ok {
		t.Error("unknown effect accepted")
	}
}
