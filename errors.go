package socratic

import "errors"

// Sentinel errors returned by the session protocol and the generation stages.
// Protocol-misuse errors (ErrNoPendingTurn, ErrBudgetExceeded,
// ErrSessionComplete) are fatal to the call and leave the session unchanged.
var (
	// ErrNoPendingTurn is returned when an answer arrives but no question
	// is waiting for one.
	ErrNoPendingTurn = errors.New("socratic: no pending turn to answer")

	// ErrPendingTurnExists is returned when a new question would be created
	// while the previous one is still unanswered.
	ErrPendingTurnExists = errors.New("socratic: a pending turn is already awaiting an answer")

	// ErrBudgetExceeded is returned when a question is requested after the
	// configured question budget has been met.
	ErrBudgetExceeded = errors.New("socratic: question budget already met")

	// ErrSessionStarted is returned by Manager.Start when the session
	// already has an initial query.
	ErrSessionStarted = errors.New("socratic: session already started")

	// ErrSessionNotStarted is returned when a session is driven before
	// Start supplied the initial query.
	ErrSessionNotStarted = errors.New("socratic: session not started")

	// ErrSessionComplete is returned for any input submitted after the
	// final plan has been produced.
	ErrSessionComplete = errors.New("socratic: session already complete")

	// ErrDuplicateSearchTerm is returned when a generated search plan
	// contains two queries that normalize to the same string. The plan is
	// rejected rather than deduplicated, since silent dedup would
	// under-produce the requested number of terms.
	ErrDuplicateSearchTerm = errors.New("socratic: search plan contains duplicate queries")

	// ErrMalformedGeneration is returned when the model output cannot be
	// parsed into the expected shape or is missing a required field.
	ErrMalformedGeneration = errors.New("socratic: malformed model output")
)
