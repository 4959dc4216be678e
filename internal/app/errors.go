package service

import "errors"

// Sentinel kinds for service errors. The HTTP layer maps these onto status
// codes; integrity violations and store availability carry their own types
// and pass through unwrapped.
var (
	// ErrInvalidTask rejects queries whose task description is too short to
	// rank meaningfully.
	ErrInvalidTask = errors.New("task description too short")

	// ErrNoMatch means ranking produced zero candidates for the query.
	ErrNoMatch = errors.New("no matching skill found")

	// ErrSkillNotFound means no skill matches the requested slug or id.
	ErrSkillNotFound = errors.New("skill not found")
)
