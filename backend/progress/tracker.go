// Package progress tracks fine-grained completion state for a generated
// course, independent of the course content itself. State is a set of
// completion-item ids persisted under a key derived from the course title.
package progress

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strings"

	"vetorre/backend/models"
)

// ItemType tags one trackable unit of course progress.
type ItemType string

const (
	ItemLesson    ItemType = "lesson"
	ItemExercises ItemType = "exercises"
	ItemQuiz      ItemType = "quiz"
	ItemScript    ItemType = "script"
)

// Store persists the completion set. Implementations must write the full
// set on every Save; there is no incremental update.
type Store interface {
	Load(key string) ([]string, error)
	Save(key string, items []string) error
}

var whitespaceRuns = regexp.MustCompile(`\s+`)

// StorageKey derives the persistence key from the course title: lowercase,
// each whitespace run replaced with a single underscore. Leading and
// trailing whitespace becomes an underscore too, so keys stay stable for
// titles that were saved with stray padding. Two courses whose titles
// normalize to the same key share storage; that collision is a known,
// accepted property of the scheme.
func StorageKey(title string) string {
	return "course_progress_" + whitespaceRuns.ReplaceAllString(strings.ToLower(title), "_")
}

// ItemID builds the composite completion-item id: {type}-{module}-{lesson}
// with the lesson position left empty for module-level items.
func ItemID(typ ItemType, moduleIndex int, lessonIndex ...int) string {
	suffix := ""
	if len(lessonIndex) > 0 {
		suffix = fmt.Sprintf("%d", lessonIndex[0])
	}
	return fmt.Sprintf("%s-%d-%s", typ, moduleIndex, suffix)
}

// Stats describes one module's completion.
type Stats struct {
	Completed  int `json:"completed"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// Tracker owns the completion set for one course instance. Every mutation
// synchronously persists the whole set.
type Tracker struct {
	course models.Course
	key    string
	store  Store
	items  map[string]struct{}
}

// NewTracker loads any previously saved progress for the course's storage
// key. A load failure silently starts from an empty set.
func NewTracker(course models.Course, store Store) *Tracker {
	t := &Tracker{
		course: course,
		key:    StorageKey(course.Title),
		store:  store,
		items:  make(map[string]struct{}),
	}
	if saved, err := store.Load(t.key); err == nil {
		for _, id := range saved {
			t.items[id] = struct{}{}
		}
	}
	return t
}

func (t *Tracker) IsCompleted(typ ItemType, moduleIndex int, lessonIndex ...int) bool {
	_, ok := t.items[ItemID(typ, moduleIndex, lessonIndex...)]
	return ok
}

// Toggle flips membership of the item in the completion set.
func (t *Tracker) Toggle(typ ItemType, moduleIndex int, lessonIndex ...int) {
	id := ItemID(typ, moduleIndex, lessonIndex...)
	if _, ok := t.items[id]; ok {
		delete(t.items, id)
	} else {
		t.items[id] = struct{}{}
	}
	t.save()
}

// MarkComplete is an idempotent insert. Quizzes only ever go through here:
// they can be completed but never un-completed.
func (t *Tracker) MarkComplete(typ ItemType, moduleIndex int, lessonIndex ...int) {
	t.items[ItemID(typ, moduleIndex, lessonIndex...)] = struct{}{}
	t.save()
}

// ModuleProgress counts lessons plus the exercises and quiz slots, plus
// one for the video script when the module has one.
func (t *Tracker) ModuleProgress(moduleIndex int) Stats {
	if moduleIndex < 0 || moduleIndex >= len(t.course.Modules) {
		return Stats{}
	}
	module := t.course.Modules[moduleIndex]
	hasScript := module.VideoScript != ""

	total := len(module.Lessons) + 2
	if hasScript {
		total++
	}

	completed := 0
	for i := range module.Lessons {
		if t.IsCompleted(ItemLesson, moduleIndex, i) {
			completed++
		}
	}
	if t.IsCompleted(ItemExercises, moduleIndex) {
		completed++
	}
	if t.IsCompleted(ItemQuiz, moduleIndex) {
		completed++
	}
	if hasScript && t.IsCompleted(ItemScript, moduleIndex) {
		completed++
	}

	return Stats{
		Completed:  completed,
		Total:      total,
		Percentage: percentage(completed, total),
	}
}

// CourseProgress aggregates completion across all modules; 0 when the
// course has no trackable items.
func (t *Tracker) CourseProgress() int {
	total, completed := 0, 0
	for i := range t.course.Modules {
		stats := t.ModuleProgress(i)
		total += stats.Total
		completed += stats.Completed
	}
	return percentage(completed, total)
}

func (t *Tracker) save() {
	ids := make([]string, 0, len(t.items))
	for id := range t.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	// A failed save only loses persistence, never in-memory state.
	_ = t.store.Save(t.key, ids)
}

func percentage(completed, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(completed) / float64(total) * 100))
}
