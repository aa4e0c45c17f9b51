package model

import "strconv"

// Candidate is one entrant of a weighted draw. Weights need not sum to 1.
type Candidate struct {
	ID         string
	Name       string
	Weight     float64
	Multiplier int64 // fixed payout multiplier; 0 outside table games
}

// WeightedChoice is a race-style outcome: one candidate wins with probability
// proportional to its weight.
type WeightedChoice struct {
	Candidates []Candidate
	Resolved   string
}

// Operator is an arithmetic operation used by generated problems.
type Operator string

const (
	OpAdd Operator = "+"
	OpSub Operator = "-"
	OpMul Operator = "×"
	OpDiv Operator = "÷"
)

// Problem is a quiz-style outcome with exactly one correct option.
type Problem struct {
	Prompt        string
	Operator      Operator
	Operands      [2]int
	Options       []int
	CorrectAnswer int
	Tier          DifficultyTier
}

// OutcomeKind tags which variant an Outcome holds.
type OutcomeKind int

const (
	OutcomeNone OutcomeKind = iota
	OutcomeWeighted
	OutcomeProblem
)

// Outcome is the resolved truth a wager is judged against.
type Outcome struct {
	Kind    OutcomeKind
	Choice  *WeightedChoice
	Problem *Problem
}

// NewWeightedOutcome wraps a resolved weighted choice.
func NewWeightedOutcome(c WeightedChoice) Outcome {
	return Outcome{Kind: OutcomeWeighted, Choice: &c}
}

// NewProblemOutcome wraps a generated problem.
func NewProblemOutcome(p Problem) Outcome {
	return Outcome{Kind: OutcomeProblem, Problem: &p}
}

// Offers reports whether sel is one of the choices presented for this outcome.
func (o Outcome) Offers(sel Selection) bool {
	switch o.Kind {
	case OutcomeWeighted:
		if sel.kind != selectCandidate {
			return false
		}
		for _, c := range o.Choice.Candidates {
			if c.ID == sel.Candidate {
				return true
			}
		}
	case OutcomeProblem:
		if sel.kind != selectOption {
			return false
		}
		for _, v := range o.Problem.Options {
			if v == sel.Option {
				return true
			}
		}
	}
	return false
}

// Matches reports whether sel equals the resolved truth.
func (o Outcome) Matches(sel Selection) bool {
	switch o.Kind {
	case OutcomeWeighted:
		return sel.kind == selectCandidate && sel.Candidate == o.Choice.Resolved
	case OutcomeProblem:
		return sel.kind == selectOption && sel.Option == o.Problem.CorrectAnswer
	}
	return false
}

// Answer returns the resolved truth as display text.
func (o Outcome) Answer() string {
	switch o.Kind {
	case OutcomeWeighted:
		return o.Choice.Resolved
	case OutcomeProblem:
		return strconv.Itoa(o.Problem.CorrectAnswer)
	}
	return ""
}

type selectionKind int

const (
	selectNone selectionKind = iota
	selectCandidate
	selectOption
)

// Selection is what the player bets on: a candidate id or a numeric option.
// The zero value means no selection was made.
type Selection struct {
	Candidate string
	Option    int
	kind      selectionKind
}

// PickCandidate selects a weighted-choice candidate.
func PickCandidate(id string) Selection {
	return Selection{Candidate: id, kind: selectCandidate}
}

// PickOption selects a problem option.
func PickOption(v int) Selection {
	return Selection{Option: v, kind: selectOption}
}

// IsZero reports whether nothing was selected.
func (s Selection) IsZero() bool { return s.kind == selectNone }

func (s Selection) String() string {
	switch s.kind {
	case selectCandidate:
		return s.Candidate
	case selectOption:
		return strconv.Itoa(s.Option)
	}
	return ""
}
