package models

// Course is the generated deep-dive learning artifact attached to a tool.
// It is stored as a JSON payload, not as its own table.
type Course struct {
	Title              string   `json:"title"`
	TotalDurationHours float64  `json:"totalDurationHours"`
	Modules            []Module `json:"modules"`
	SuggestedResources []string `json:"suggestedResources"`
}

type Module struct {
	Title              string   `json:"title"`
	Overview           string   `json:"overview"`
	VideoScript        string   `json:"videoScript,omitempty"`
	Lessons            []Lesson `json:"lessons"`
	PracticalExercises []string `json:"practicalExercises"`
	Quiz               Quiz     `json:"quiz"`
}

type Lesson struct {
	Title           string `json:"title"`
	DurationMinutes int    `json:"durationMinutes"`
	Content         string `json:"content"` // markdown
}

type Quiz struct {
	Questions []QuizQuestion `json:"questions"`
}

const (
	QuestionMultipleChoice = "multiple-choice"
	QuestionTrueFalse      = "true-false"
)

type QuizQuestion struct {
	Type               string   `json:"type,omitempty"`
	Question           string   `json:"question"`
	Options            []string `json:"options"`
	CorrectAnswerIndex int      `json:"correctAnswerIndex"`
	Explanation        string   `json:"explanation,omitempty"`
}
