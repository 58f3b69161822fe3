package workflow

import "sync"

// EditState is the admin form's tiny state machine:
// idle -> editing(entityId) -> idle on cancel or submit. Success and
// failure both return to idle from the form's perspective.
type EditState struct {
	mu        sync.Mutex
	editingID string
}

// Start enters edit mode for the given entity.
func (s *EditState) Start(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.editingID = id
}

// Finish leaves edit mode (cancel and submit both land here) and returns
// the id that was being edited, if any.
func (s *EditState) Finish() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.editingID
	s.editingID = ""
	return id, id != ""
}

// Editing reports the entity currently under edit.
func (s *EditState) Editing() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.editingID, s.editingID != ""
}
