package dialogue

import (
	"log"

	"api-club-bot/internal/conversation"
	"api-club-bot/internal/storage"
)

// Service applies engine steps to the conversation store and the
// submission log. Callers serialize Handle per chat.
type Service struct {
	engine *Engine
	store  *conversation.Store[State]
	subs   storage.SubmissionLog
}

func NewService(engine *Engine, store *conversation.Store[State], subs storage.SubmissionLog) *Service {
	return &Service{engine: engine, store: store, subs: subs}
}

// State returns the current dialogue state of the chat.
func (s *Service) State(chatID int64) State { return s.store.Get(chatID) }

// Handle advances the chat's dialogue and returns the reply to send, if any.
// The new state is committed before the reply goes out; a failed append
// keeps the chat where it was so the submission can be retried.
func (s *Service) Handle(chatID int64, in Input) string {
	cur := s.store.Get(chatID)
	step := s.engine.Advance(cur, in)
	if step.Persist != nil {
		if err := s.subs.Append(*step.Persist); err != nil {
			log.Printf("failed to append submission from %s in chat %d: %v", in.Sender, chatID, err)
			return msgSaveFailed
		}
		log.Printf("submission saved: sender=%s artist=%q song=%q", step.Persist.SenderID, step.Persist.Artist, step.Persist.Song)
	}
	if cur.String() != step.Next.String() {
		log.Printf("dialogue %d: %s -> %s", chatID, cur, step.Next)
	}
	s.store.Set(chatID, step.Next)
	return step.Reply
}
