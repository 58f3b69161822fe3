package progress

import "vetorre/backend/models"

// ViewMode is the panel the course player currently shows.
type ViewMode string

const (
	ViewScript    ViewMode = "script"
	ViewLesson    ViewMode = "lesson"
	ViewExercises ViewMode = "exercises"
	ViewQuiz      ViewMode = "quiz"
	ViewResources ViewMode = "resources"
)

// Player is the linear navigation state machine over a course: per module
// the order is script (when present), lessons in sequence, exercises, then
// quiz; passing the last module's quiz ends the course.
type Player struct {
	course  models.Course
	tracker *Tracker

	moduleIndex int
	lessonIndex int
	mode        ViewMode
	done        bool

	answers   []int
	submitted bool
}

// NewPlayer starts at the first module, opening its video script when it
// has one and its first lesson otherwise.
func NewPlayer(course models.Course, tracker *Tracker) *Player {
	p := &Player{course: course, tracker: tracker, mode: ViewLesson}
	if len(course.Modules) > 0 && course.Modules[0].VideoScript != "" {
		p.mode = ViewScript
	}
	p.resetQuiz()
	return p
}

func (p *Player) ModuleIndex() int { return p.moduleIndex }
func (p *Player) LessonIndex() int { return p.lessonIndex }
func (p *Player) Mode() ViewMode   { return p.mode }

// Done reports whether the last module's quiz has been passed through.
func (p *Player) Done() bool { return p.done }

func (p *Player) module() models.Module {
	return p.course.Modules[p.moduleIndex]
}

// Next advances one step in the fixed module order. From the quiz it moves
// to the following module, or marks the course done on the last one. From
// the resources panel it returns to the current lesson.
func (p *Player) Next() {
	if p.done || len(p.course.Modules) == 0 {
		return
	}
	switch p.mode {
	case ViewScript:
		p.mode = ViewLesson
		p.lessonIndex = 0
	case ViewLesson:
		if p.lessonIndex < len(p.module().Lessons)-1 {
			p.lessonIndex++
		} else {
			p.mode = ViewExercises
		}
	case ViewExercises:
		p.mode = ViewQuiz
		p.resetQuiz()
	case ViewQuiz:
		if p.moduleIndex == len(p.course.Modules)-1 {
			p.done = true
			return
		}
		p.moduleIndex++
		p.lessonIndex = 0
		if p.module().VideoScript != "" {
			p.mode = ViewScript
		} else {
			p.mode = ViewLesson
		}
		p.resetQuiz()
	case ViewResources:
		p.mode = ViewLesson
	}
}

// Previous steps back within the module order, crossing into the previous
// module's last lesson when at a module boundary.
func (p *Player) Previous() {
	switch p.mode {
	case ViewQuiz:
		p.mode = ViewExercises
	case ViewExercises:
		p.mode = ViewLesson
	default:
		// Script and resources step back through the lesson sequence the
		// same way a lesson does; at the very start there is nowhere to go.
		if p.lessonIndex > 0 {
			p.lessonIndex--
			p.mode = ViewLesson
			return
		}
		if p.moduleIndex == 0 {
			return
		}
		p.moduleIndex--
		p.lessonIndex = len(p.module().Lessons) - 1
		if p.lessonIndex < 0 {
			p.lessonIndex = 0
		}
		p.mode = ViewLesson
	}
}

// CanGoPrevious is false only at the start of the first module, outside
// the exercises/quiz tail.
func (p *Player) CanGoPrevious() bool {
	if p.mode == ViewQuiz || p.mode == ViewExercises {
		return true
	}
	return p.moduleIndex > 0 || p.lessonIndex > 0
}

// ShowResources flips to the suggested-resources panel; Next returns to
// the lesson that was open.
func (p *Player) ShowResources() {
	if !p.done {
		p.mode = ViewResources
	}
}

// Answers returns the working answer sheet, -1 for unanswered questions.
func (p *Player) Answers() []int {
	return append([]int(nil), p.answers...)
}

func (p *Player) Submitted() bool { return p.submitted }

// Answer records a choice for one quiz question. Answers are frozen once
// the quiz has been submitted.
func (p *Player) Answer(questionIndex, optionIndex int) {
	if p.submitted || questionIndex < 0 || questionIndex >= len(p.answers) {
		return
	}
	p.answers[questionIndex] = optionIndex
}

// SubmitQuiz grades the sheet, locks it, and marks the module quiz
// complete. It refuses while any question is unanswered, reporting ok
// false with a zero score.
func (p *Player) SubmitQuiz() (score int, ok bool) {
	if p.submitted {
		return p.score(), true
	}
	for _, a := range p.answers {
		if a < 0 {
			return 0, false
		}
	}
	p.submitted = true
	p.tracker.MarkComplete(ItemQuiz, p.moduleIndex)
	return p.score(), true
}

func (p *Player) score() int {
	questions := p.module().Quiz.Questions
	score := 0
	for i, q := range questions {
		if i < len(p.answers) && p.answers[i] == q.CorrectAnswerIndex {
			score++
		}
	}
	return score
}

func (p *Player) resetQuiz() {
	p.submitted = false
	if len(p.course.Modules) == 0 {
		p.answers = nil
		return
	}
	questions := p.module().Quiz.Questions
	p.answers = make([]int, len(questions))
	for i := range p.answers {
		p.answers[i] = -1
	}
}
