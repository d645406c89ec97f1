package service

import "docqa/internal/domain"

// Session is the explicit conversation state of one chat surface: an ordered
// list of user/assistant turns. It lives for the lifetime of the surface and
// is never persisted.
type Session struct {
	history []domain.Message
}

// NewSession starts an empty conversation.
func NewSession() *Session { return &Session{} }

// History returns the turns in order. The slice is a copy; mutating it does
// not affect the session.
func (s *Session) History() []domain.Message {
	return append([]domain.Message(nil), s.history...)
}

// Append records one question/answer exchange.
func (s *Session) Append(question, answer string) {
	s.history = append(s.history,
		domain.Message{Role: domain.RoleUser, Content: question},
		domain.Message{Role: domain.RoleAssistant, Content: answer},
	)
}

// Clear forgets the conversation, e.g. on an explicit clear action or a
// folder change.
func (s *Session) Clear() { s.history = nil }

// Turns reports the number of stored messages.
func (s *Session) Turns() int { return len(s.history) }
