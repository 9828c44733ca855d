package dialogue

import (
	"fmt"
	"log"
	"time"

	"api-club-bot/internal/storage"
)

const (
	msgPromptArtist = "🎙 ~ Send an author of a song to be played\n(or /cancel)"
	msgPromptSong   = "🎧 ~ Send a name of the song\n(or /cancel)"
	msgPromptLink   = "🔗 ~ Send a link to the song\n(optional, or /done)"
	msgPlainText    = "Send it plain text, please"
	msgRequested    = "💡 ~ Song requested successfully!\nSee you on the event"
	msgCancelled    = "🚫 ~ Request cancelled"
	msgPriorCount   = "📝 ~ You have already requested %d songs"
	msgSaveFailed   = "⚠️ ~ Couldn't save your request, please try again\n(send the link again or /done)"
)

// PriorCounter answers how many submissions a sender already has.
type PriorCounter interface {
	CountBySender(senderID string) (int, error)
}

// Step is the outcome of feeding one input to the engine.
type Step struct {
	Next    State
	Reply   string // empty means no reply
	Persist *storage.Submission
}

// Engine is the request dialogue state machine. It holds no per-chat data:
// the current state comes in, the next one goes out.
type Engine struct {
	prior PriorCounter
	now   func() time.Time
}

func NewEngine(prior PriorCounter, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{prior: prior, now: now}
}

func (e *Engine) Advance(st State, in Input) Step {
	if InProgress(st) && in.Kind == InputCommand && in.Command == CmdCancel {
		return Step{Next: Start{}, Reply: msgCancelled}
	}
	switch s := st.(type) {
	case Start:
		return e.begin(in)
	case AwaitingArtist:
		text, ok := plainText(in)
		if !ok {
			return Step{Next: s, Reply: msgPlainText}
		}
		return Step{Next: AwaitingSong{Artist: text}, Reply: msgPromptSong}
	case AwaitingSong:
		text, ok := plainText(in)
		if !ok {
			return Step{Next: s, Reply: msgPlainText}
		}
		return Step{Next: AwaitingLink{Artist: s.Artist, Song: text}, Reply: msgPromptLink}
	case AwaitingLink:
		sub := storage.Submission{
			Timestamp: e.now().UTC().Truncate(time.Second),
			SenderID:  in.Sender,
			Artist:    s.Artist,
			Song:      s.Song,
			Link:      linkFrom(in),
		}
		return Step{Next: Start{}, Reply: msgRequested, Persist: &sub}
	}
	log.Printf("dialogue: unknown state %T, resetting", st)
	return Step{Next: Start{}}
}

func (e *Engine) begin(in Input) Step {
	if in.Kind != InputCommand || !IsDialogueCommand(in.Command) {
		return Step{Next: Start{}}
	}
	reply := msgPromptArtist
	if n := e.priorCount(in.Sender); n > 0 {
		reply = fmt.Sprintf(msgPriorCount, n) + "\n\n" + reply
	}
	return Step{Next: AwaitingArtist{}, Reply: reply}
}

// priorCount is advisory: a failed read counts as zero.
func (e *Engine) priorCount(sender string) int {
	if e.prior == nil {
		return 0
	}
	n, err := e.prior.CountBySender(sender)
	if err != nil {
		log.Printf("failed to count prior submissions of %s: %v", sender, err)
		return 0
	}
	return n
}

// plainText accepts text messages and, mid-dialogue, commands as literal
// text. Whitespace-only input is rejected.
func plainText(in Input) (string, bool) {
	if in.Kind == InputNonText {
		return "", false
	}
	text := Sanitize(in.Text)
	return text, text != ""
}

func linkFrom(in Input) string {
	switch in.Kind {
	case InputNonText:
		return ""
	case InputCommand:
		if in.Command == CmdDone {
			return ""
		}
	}
	return Sanitize(in.Text)
}
