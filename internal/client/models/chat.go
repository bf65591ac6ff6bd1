package models

// ConversationTurn is one prior exchange sent along with a question so the
// backend can answer with context.
type ConversationTurn struct {
	Role    string
	Content string
}

// Answer is the response to a question, with the sources that grounded it.
type Answer struct {
	Answer  string
	Sources []string
}
