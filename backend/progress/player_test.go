package progress

import (
	"testing"

	"vetorre/backend/models"

	"github.com/stretchr/testify/assert"
)

func newTestPlayer(course models.Course) *Player {
	return NewPlayer(course, NewTracker(course, NewMemoryStore()))
}

func TestPlayerStartsOnScriptWhenPresent(t *testing.T) {
	p := newTestPlayer(sampleCourse())
	assert.Equal(t, ViewScript, p.Mode())

	p.Next()
	assert.Equal(t, ViewLesson, p.Mode())
	assert.Equal(t, 0, p.LessonIndex())
}

func TestPlayerWalksModuleInOrder(t *testing.T) {
	p := newTestPlayer(sampleCourse())

	p.Next() // script -> lesson 0
	p.Next() // lesson 1
	p.Next() // lesson 2
	assert.Equal(t, ViewLesson, p.Mode())
	assert.Equal(t, 2, p.LessonIndex())

	p.Next()
	assert.Equal(t, ViewExercises, p.Mode())
	p.Next()
	assert.Equal(t, ViewQuiz, p.Mode())
}

func TestPlayerQuizToNextModule(t *testing.T) {
	p := newTestPlayer(sampleCourse())
	for p.Mode() != ViewQuiz {
		p.Next()
	}

	p.Next()
	// Second module has no video script, so it opens on its first lesson
	assert.Equal(t, 1, p.ModuleIndex())
	assert.Equal(t, ViewLesson, p.Mode())
	assert.Equal(t, 0, p.LessonIndex())
}

func TestPlayerFinishesOnLastQuiz(t *testing.T) {
	p := newTestPlayer(sampleCourse())
	for !p.Done() {
		p.Next()
	}
	assert.Equal(t, 1, p.ModuleIndex())

	// Terminal: further navigation is a no-op
	p.Next()
	assert.True(t, p.Done())
}

func TestPlayerPrevious(t *testing.T) {
	p := newTestPlayer(sampleCourse())
	p.Next() // lesson 0
	p.Next() // lesson 1
	p.Next() // lesson 2
	p.Next() // exercises
	p.Next() // quiz

	p.Previous()
	assert.Equal(t, ViewExercises, p.Mode())
	p.Previous()
	assert.Equal(t, ViewLesson, p.Mode())
	assert.Equal(t, 2, p.LessonIndex())
	p.Previous()
	assert.Equal(t, 1, p.LessonIndex())
}

func TestPlayerPreviousCrossesModuleBoundary(t *testing.T) {
	p := newTestPlayer(sampleCourse())
	for p.ModuleIndex() == 0 {
		p.Next()
	}
	assert.Equal(t, ViewLesson, p.Mode())

	p.Previous()
	assert.Equal(t, 0, p.ModuleIndex())
	assert.Equal(t, ViewLesson, p.Mode())
	// Lands on the last lesson of the previous module
	assert.Equal(t, 2, p.LessonIndex())
}

func TestPlayerPreviousFromOpeningScript(t *testing.T) {
	p := newTestPlayer(sampleCourse())
	assert.Equal(t, ViewScript, p.Mode())
	assert.False(t, p.CanGoPrevious())

	p.Previous()
	assert.Equal(t, ViewScript, p.Mode())
	assert.Equal(t, 0, p.ModuleIndex())
	assert.Equal(t, 0, p.LessonIndex())
}

func TestPlayerPreviousFromLaterScript(t *testing.T) {
	course := sampleCourse()
	course.Modules[1].VideoScript = "module two script"
	p := newTestPlayer(course)
	for p.ModuleIndex() == 0 {
		p.Next()
	}
	assert.Equal(t, ViewScript, p.Mode())

	p.Previous()
	assert.Equal(t, 0, p.ModuleIndex())
	assert.Equal(t, ViewLesson, p.Mode())
	assert.Equal(t, 2, p.LessonIndex())
}

func TestPlayerPreviousFromOpeningResources(t *testing.T) {
	course := sampleCourse()
	course.Modules[0].VideoScript = ""
	p := newTestPlayer(course)
	p.ShowResources()

	p.Previous()
	assert.Equal(t, ViewResources, p.Mode())
	assert.Equal(t, 0, p.ModuleIndex())
}

func TestCanGoPrevious(t *testing.T) {
	course := sampleCourse()
	course.Modules[0].VideoScript = ""
	p := newTestPlayer(course)

	assert.False(t, p.CanGoPrevious())
	p.Next()
	assert.True(t, p.CanGoPrevious())
}

func TestResourcesPanelReturnsToLesson(t *testing.T) {
	p := newTestPlayer(sampleCourse())
	p.Next() // lesson 0
	p.Next() // lesson 1

	p.ShowResources()
	assert.Equal(t, ViewResources, p.Mode())
	p.Next()
	assert.Equal(t, ViewLesson, p.Mode())
	assert.Equal(t, 1, p.LessonIndex())
}

func TestSubmitQuizRequiresAllAnswers(t *testing.T) {
	p := newTestPlayer(sampleCourse())
	for p.Mode() != ViewQuiz {
		p.Next()
	}

	_, ok := p.SubmitQuiz()
	assert.False(t, ok)
	assert.False(t, p.Submitted())

	p.Answer(0, 1) // correct
	_, ok = p.SubmitQuiz()
	assert.False(t, ok)

	p.Answer(1, 1) // wrong
	score, ok := p.SubmitQuiz()
	assert.True(t, ok)
	assert.Equal(t, 1, score)
	assert.True(t, p.Submitted())
}

func TestAnswersFrozenAfterSubmit(t *testing.T) {
	p := newTestPlayer(sampleCourse())
	for p.Mode() != ViewQuiz {
		p.Next()
	}
	p.Answer(0, 1)
	p.Answer(1, 0)

	score, ok := p.SubmitQuiz()
	assert.True(t, ok)
	assert.Equal(t, 2, score)

	p.Answer(0, 0)
	assert.Equal(t, []int{1, 0}, p.Answers())
}

func TestSubmitQuizMarksCompletion(t *testing.T) {
	course := sampleCourse()
	tracker := NewTracker(course, NewMemoryStore())
	p := NewPlayer(course, tracker)
	for p.Mode() != ViewQuiz {
		p.Next()
	}
	p.Answer(0, 0)
	p.Answer(1, 0)

	_, ok := p.SubmitQuiz()
	assert.True(t, ok)
	assert.True(t, tracker.IsCompleted(ItemQuiz, 0))
}

func TestQuizResetsForNextModule(t *testing.T) {
	p := newTestPlayer(sampleCourse())
	for p.Mode() != ViewQuiz {
		p.Next()
	}
	p.Answer(0, 0)
	p.Answer(1, 0)
	p.SubmitQuiz()

	p.Next() // into module 1
	for p.Mode() != ViewQuiz {
		p.Next()
	}
	assert.False(t, p.Submitted())
	assert.Equal(t, []int{-1}, p.Answers())
}
