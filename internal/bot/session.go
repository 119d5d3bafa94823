package bot

import (
	"sync"

	"github.com/fekuna/omnipos-stockbot/internal/model"
)

// step is the input a chat is currently expected to type.
type step int

const (
	stepIdle step = iota
	stepCategoryName
	stepCategoryRename
	stepProductName
	stepProductQty
	stepProductLimit
	stepProductRename
	stepQuantity
	stepLimit
	stepTaskText
	stepTaskEdit
)

type session struct {
	step       step
	categoryID int64 // last opened category, where cancel returns to
	productID  int64
	taskID     int64
	process    model.Process
	draftName  string
	draftQty   float64
}

// reset ends the conversation but remembers the active category.
func (s *session) reset() {
	*s = session{categoryID: s.categoryID}
}

type chatSession struct {
	mu sync.Mutex
	session
}

// sessionStore serializes updates per chat while letting different chats
// proceed in parallel.
type sessionStore struct {
	mu    sync.Mutex
	chats map[int64]*chatSession
}

func newSessionStore() *sessionStore {
	return &sessionStore{chats: make(map[int64]*chatSession)}
}

// acquire returns the chat's session locked. The caller must unlock it.
func (s *sessionStore) acquire(chatID int64) *chatSession {
	s.mu.Lock()
	cs, ok := s.chats[chatID]
	if !ok {
		cs = &chatSession{}
		s.chats[chatID] = cs
	}
	s.mu.Unlock()

	cs.mu.Lock()
	return cs
}

// scopeForStep is the callback scope whose cancel button ends step s.
func scopeForStep(s step) string {
	switch s {
	case stepCategoryName, stepCategoryRename:
		return scopeCategory
	case stepTaskText, stepTaskEdit:
		return scopeTaskProcess
	default:
		return scopeProduct
	}
}
