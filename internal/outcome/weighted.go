package outcome

import (
	"errors"
	"math"

	"WagerArena/internal/model"
	"WagerArena/internal/random"

	"github.com/shopspring/decimal"
)

var (
	ErrNoCandidates     = errors.New("weighted draw needs at least one candidate")
	ErrInvalidWeight    = errors.New("candidate weight must be a positive finite number")
	ErrUnknownCandidate = errors.New("unknown candidate")
)

// ValidateCandidates checks that every weight is usable.
func ValidateCandidates(cands []model.Candidate) error {
	if len(cands) == 0 {
		return ErrNoCandidates
	}
	for _, c := range cands {
		if math.IsNaN(c.Weight) || math.IsInf(c.Weight, 0) || c.Weight <= 0 {
			return ErrInvalidWeight
		}
	}
	return nil
}

// PickWeighted draws r in [0,1) and walks the normalized cumulative weights in
// caller order, returning the first candidate whose cumulative weight reaches r.
// Rounding can leave the final cumulative just below r; the last candidate is
// returned in that case.
func PickWeighted(cands []model.Candidate, src random.Source) (model.Candidate, error) {
	if err := ValidateCandidates(cands); err != nil {
		return model.Candidate{}, err
	}
	if src == nil {
		src = random.Default()
	}
	total := 0.0
	for _, c := range cands {
		total += c.Weight
	}
	r := src.Float64()
	cum := 0.0
	for _, c := range cands {
		cum += c.Weight / total
		if cum >= r {
			return c, nil
		}
	}
	return cands[len(cands)-1], nil
}

// Resolve draws a winner and returns the resolved choice.
func Resolve(cands []model.Candidate, src random.Source) (model.WeightedChoice, error) {
	winner, err := PickWeighted(cands, src)
	if err != nil {
		return model.WeightedChoice{}, err
	}
	return model.WeightedChoice{
		Candidates: append([]model.Candidate(nil), cands...),
		Resolved:   winner.ID,
	}, nil
}

// Share returns the selected weight and the total weight of the draw, both
// exact. Callers that divide by a probability should divide by these instead.
func Share(cands []model.Candidate, id string) (weight, total decimal.Decimal, err error) {
	if err := ValidateCandidates(cands); err != nil {
		return decimal.Zero, decimal.Zero, err
	}
	found := false
	for _, c := range cands {
		w := decimal.NewFromFloat(c.Weight)
		total = total.Add(w)
		if c.ID == id {
			weight = w
			found = true
		}
	}
	if !found {
		return decimal.Zero, decimal.Zero, ErrUnknownCandidate
	}
	return weight, total, nil
}

// Probability returns the normalized probability of id. Repeating fractions
// are rounded to decimal.DivisionPrecision digits.
func Probability(cands []model.Candidate, id string) (decimal.Decimal, error) {
	weight, total, err := Share(cands, id)
	if err != nil {
		return decimal.Zero, err
	}
	return weight.Div(total), nil
}
