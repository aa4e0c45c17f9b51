package wager

import (
	"errors"
	"testing"

	"WagerArena/internal/model"
	"WagerArena/internal/rejection"
)

var active = model.RoundState{Phase: model.PhaseActive, TimeRemaining: 10}

func TestValidate(t *testing.T) {
	v := Validator{MaxStake: 500, Levels: []int{1, 2, 3, 5}}
	pick := model.PickOption(12)

	tests := []struct {
		name    string
		w       model.Wager
		balance int64
		state   model.RoundState
		want    rejection.Code
	}{
		{"valid", model.Wager{Stake: 100, Selection: pick, Confidence: 1}, 500, active, ""},
		{"whole balance", model.Wager{Stake: 500, Selection: pick, Confidence: 5}, 500, active, ""},
		{"zero stake", model.Wager{Stake: 0, Selection: pick, Confidence: 1}, 500, active, rejection.CodeStakeNotPositive},
		{"negative stake", model.Wager{Stake: -10, Selection: pick, Confidence: 1}, 500, active, rejection.CodeStakeNotPositive},
		{"over balance", model.Wager{Stake: 600, Selection: pick, Confidence: 1}, 500, active, rejection.CodeStakeExceedsBalance},
		{"over limit", model.Wager{Stake: 600, Selection: pick, Confidence: 1}, 1000, active, rejection.CodeStakeExceedsLimit},
		{"no selection", model.Wager{Stake: 100, Confidence: 1}, 500, active, rejection.CodeSelectionMissing},
		{"confidence zero", model.Wager{Stake: 100, Selection: pick, Confidence: 0}, 500, active, rejection.CodeInvalidConfidence},
		{"confidence off menu", model.Wager{Stake: 100, Selection: pick, Confidence: 4}, 500, active, rejection.CodeInvalidConfidence},
		{"idle", model.Wager{Stake: 100, Selection: pick, Confidence: 1}, 500, model.RoundState{Phase: model.PhaseIdle}, rejection.CodeRoundNotActive},
		{"resolved", model.Wager{Stake: 100, Selection: pick, Confidence: 1}, 500, model.RoundState{Phase: model.PhaseResolved}, rejection.CodeWagerAlreadyPlaced},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(tt.w, tt.balance, tt.state, true)
			if tt.want == "" {
				if err != nil {
					t.Fatalf("expected nil, got %v", err)
				}
				return
			}
			if got := rejection.CodeOf(err); got != tt.want {
				t.Fatalf("expected %s, got %v", tt.want, err)
			}
			if !errors.Is(err, rejection.Validation(tt.want, "")) {
				t.Error("errors.Is should match by code")
			}
		})
	}
}

func TestValidateStagingSkipsSelection(t *testing.T) {
	v := Validator{}
	w := model.Wager{Stake: 50, Confidence: 1}
	if err := v.Validate(w, 100, active, false); err != nil {
		t.Fatalf("staging without a selection should pass, got %v", err)
	}
}

func TestValidateOpenLevels(t *testing.T) {
	v := Validator{}
	w := model.Wager{Stake: 50, Selection: model.PickCandidate("lion"), Confidence: 7}
	if err := v.Validate(w, 100, active, true); err != nil {
		t.Fatalf("any confidence >= 1 should pass without levels, got %v", err)
	}
}
