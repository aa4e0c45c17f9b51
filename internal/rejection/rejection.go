// Package rejection defines the recoverable errors the engine returns when an
// event is refused. A rejection never changes engine state.
package rejection

import "errors"

// Kind groups rejection codes.
type Kind string

const (
	KindValidation Kind = "VALIDATION"
	KindPowerUp    Kind = "POWER_UP"
)

// Code is a machine-readable rejection reason.
type Code string

const (
	// Wager and round state
	CodeStakeNotPositive    Code = "STAKE_NOT_POSITIVE"
	CodeStakeExceedsBalance Code = "STAKE_EXCEEDS_BALANCE"
	CodeStakeExceedsLimit   Code = "STAKE_EXCEEDS_LIMIT"
	CodeSelectionMissing    Code = "SELECTION_MISSING"
	CodeSelectionUnknown    Code = "SELECTION_UNKNOWN"
	CodeInvalidConfidence   Code = "INVALID_CONFIDENCE"
	CodeRoundNotActive      Code = "ROUND_NOT_ACTIVE"
	CodeWagerAlreadyPlaced  Code = "WAGER_ALREADY_PLACED"
	CodeRoundInProgress     Code = "ROUND_IN_PROGRESS"
	CodeSessionOver         Code = "SESSION_OVER"
	CodeUnparsableSelection Code = "UNPARSABLE_SELECTION"
	CodeUnparsableStake     Code = "UNPARSABLE_STAKE"

	// Power-ups
	CodePowerUpUnknown       Code = "POWER_UP_UNKNOWN"
	CodeNoUsesLeft           Code = "NO_USES_LEFT"
	CodeInsufficientTokens   Code = "INSUFFICIENT_TOKENS"
	CodePowerUpRoundInactive Code = "POWER_UP_ROUND_INACTIVE"
	CodePowerUpAlreadyActive Code = "POWER_UP_ALREADY_ACTIVE"
	CodeEffectNotApplicable  Code = "EFFECT_NOT_APPLICABLE"
)

// Error is a rejected event.
type Error struct {
	Kind    Kind
	Code    Code
	Message string
}

func (e *Error) Error() string { return e.Message }

// Reason is the user-facing explanation.
func (e *Error) Reason() string { return e.Message }

// Is reports whether target carries the same code.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Code == t.Code
	}
	return false
}

// Validation creates a validation rejection.
func Validation(code Code, message string) *Error {
	return &Error{Kind: KindValidation, Code: code, Message: message}
}

// PowerUp creates a power-up rejection.
func PowerUp(code Code, message string) *Error {
	return &Error{Kind: KindPowerUp, Code: code, Message: message}
}

// CodeOf returns the code carried by err, or "" when err is not a rejection.
func CodeOf(err error) Code {
	if r, ok := As(err); ok {
		return r.Code
	}
	return ""
}

// As unwraps err into a rejection.
func As(err error) (*Error, bool) {
	var r *Error
	ok := errors.As(err, &r)
	return r, ok
}
