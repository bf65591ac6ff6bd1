package models

// QuizOption is one selectable answer of a generated question.
type QuizOption struct {
	ID   string
	Text string
}

// QuizQuestion is one generated multiple-choice question. The answer key is
// delivered with the question so the client can grade locally and only echo
// the graded turn back.
type QuizQuestion struct {
	ID              string
	Prompt          string
	Difficulty      string
	Options         []QuizOption
	CorrectOptionID string
	Explanation     string
	ConceptLabel    string
}

// QuizTurn is one graded exchange. The full history is sent with every step
// so the backend can adapt the difficulty of the next question.
type QuizTurn struct {
	QuestionID        string
	Question          string
	SelectedOptionID  string
	CorrectOptionID   string
	CorrectOptionText string
	Difficulty        string
	WasCorrect        bool
	Explanation       string
	ConceptLabel      string
}

// QuizConceptStat aggregates results per concept label.
type QuizConceptStat struct {
	Concept  string
	Attempts int
	Correct  int
	Accuracy float64
}

// QuizSummary closes an adaptive session. Accuracy is a 0..1 fraction.
type QuizSummary struct {
	TotalQuestions      int
	CorrectCount        int
	IncorrectCount      int
	Accuracy            float64
	ConceptBreakdown    []QuizConceptStat
	RecommendedConcepts []string
}

// QuizStep is one reply of the adaptive endpoint: either the next question
// or, when the run is over, the summary. Exactly one of the two is set.
type QuizStep struct {
	Question  *QuizQuestion
	Total     int
	Remaining int
	Summary   *QuizSummary
}
