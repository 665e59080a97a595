package domain

// Outcome is the terminal state of one resolution.
type Outcome string

const (
	OutcomeMatched   Outcome = "matched"
	OutcomeUnmatched Outcome = "unmatched"
	OutcomeFailed    Outcome = "failed"
)

// Fixed user-facing sentences.
const (
	RefusalText = "Sorry, that information is not available. I can only help with places and destinations in my knowledge base. Try asking about popular tourist spots, temples, monuments, or specific cities in India!"
	ApologyText = "Sorry, I encountered an error processing your request. Please try again."
	// ModelRefusalText is the sentence the model is instructed to emit when a question is out of scope.
	ModelRefusalText = "Sorry, that information is not available in my travel database."
)

// Resolution carries the answer and at most one attached place.
type Resolution struct {
	Answer  string
	Place   *Place
	Intent  Intent
	Outcome Outcome
}
