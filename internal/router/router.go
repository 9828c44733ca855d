// Package router decides which handler an inbound event goes to and which
// ordering partition it belongs to.
package router

import (
	"api-club-bot/internal/dialogue"
	"api-club-bot/internal/event"
)

type Target int

const (
	TargetNone Target = iota
	TargetCleanup
	TargetGreeting
	TargetDialogue
	TargetCommand
	TargetFallback
)

func (t Target) String() string {
	switch t {
	case TargetCleanup:
		return "cleanup"
	case TargetGreeting:
		return "greeting"
	case TargetDialogue:
		return "dialogue"
	case TargetCommand:
		return "command"
	case TargetFallback:
		return "fallback"
	}
	return "none"
}

// Informational commands answered outside of the dialogue.
var infoCommands = map[string]bool{
	"start":   true,
	"help":    true,
	"h":       true,
	"?":       true,
	"version": true,
	"ver":     true,
}

// IsInfoCommand reports whether cmd is answered by the command handler.
func IsInfoCommand(cmd string) bool { return infoCommands[cmd] }

// Route classifies ev. st is the dialogue state of the event's chat; it is
// only consulted for private chats. First match wins.
func Route(ev event.Event, st dialogue.State) Target {
	if _, ok := ev.(event.MembershipChanged); ok {
		return TargetCleanup
	}
	chat := ev.EventChat()
	if tr, ok := ev.(event.ChatMemberTransition); ok {
		if tr.From == event.StatusLeft && tr.To == event.StatusPresent && isGroup(chat.Kind) {
			return TargetGreeting
		}
		return TargetNone
	}
	if chat.Kind != event.ChatPrivate {
		return TargetNone
	}
	if dialogue.InProgress(st) {
		return TargetDialogue
	}
	if c, ok := ev.(event.CommandMessage); ok {
		if dialogue.IsDialogueCommand(c.Command) {
			return TargetDialogue
		}
		if IsInfoCommand(c.Command) {
			return TargetCommand
		}
	}
	return TargetFallback
}

// PartitionKey returns the key events must be serialized on. Supergroups
// and channels only produce membership events, which commute, so they are
// not partitioned.
func PartitionKey(ev event.Event) (int64, bool) {
	chat := ev.EventChat()
	switch chat.Kind {
	case event.ChatPrivate, event.ChatGroup:
		return chat.ID, true
	}
	return 0, false
}

func isGroup(k event.ChatKind) bool {
	return k == event.ChatGroup || k == event.ChatSupergroup
}
