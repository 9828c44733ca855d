// Package event holds the transport-independent model of inbound updates.
// The telegram adapter maps raw updates into these values; everything past
// the adapter works on Event only.
package event

import "strconv"

type ChatKind int

const (
	ChatPrivate ChatKind = iota
	ChatGroup
	ChatSupergroup
	ChatChannel
)

func (k ChatKind) String() string {
	switch k {
	case ChatPrivate:
		return "private"
	case ChatGroup:
		return "group"
	case ChatSupergroup:
		return "supergroup"
	case ChatChannel:
		return "channel"
	}
	return "unknown"
}

type Chat struct {
	ID   int64
	Kind ChatKind
}

// Sender identifies the author of a message. Handle is the username
// without the leading '@' and may be empty.
type Sender struct {
	ID     int64
	Handle string
}

// Key is the identifier submissions are stored and counted under:
// the handle when present, the numeric id otherwise.
func (s Sender) Key() string {
	if s.Handle != "" {
		return s.Handle
	}
	return strconv.FormatInt(s.ID, 10)
}

// Label is the form used in operator logs.
func (s Sender) Label() string {
	if s.Handle != "" {
		return "@" + s.Handle
	}
	return "id#" + strconv.FormatInt(s.ID, 10)
}

// Event is one of TextMessage, CommandMessage, NonTextMessage,
// MembershipChanged or ChatMemberTransition.
type Event interface {
	EventChat() Chat
	isEvent()
}

type TextMessage struct {
	Chat      Chat
	MessageID int
	Sender    Sender
	Text      string
}

// CommandMessage is a message starting with a bot command. Text keeps the
// raw message so the command can be replayed as plain input.
type CommandMessage struct {
	Chat      Chat
	MessageID int
	Sender    Sender
	Command   string
	Args      string
	Text      string
}

// NonTextMessage is a message carrying no text: stickers, media, etc.
type NonTextMessage struct {
	Chat      Chat
	MessageID int
	Sender    Sender
}

type MembershipKind int

const (
	MembersJoined MembershipKind = iota
	MemberLeft
)

func (k MembershipKind) String() string {
	if k == MemberLeft {
		return "member_left"
	}
	return "members_joined"
}

// MembershipChanged is the service notice posted into a chat when members
// join or leave.
type MembershipChanged struct {
	Chat      Chat
	Kind      MembershipKind
	MessageID int
}

type MemberStatus int

const (
	StatusOther MemberStatus = iota
	StatusLeft
	StatusPresent
)

// Subject is the user a membership transition is about.
type Subject struct {
	ID          int64
	DisplayName string
}

type ChatMemberTransition struct {
	Chat    Chat
	Subject Subject
	From    MemberStatus
	To      MemberStatus
}

func (e TextMessage) EventChat() Chat          { return e.Chat }
func (e CommandMessage) EventChat() Chat       { return e.Chat }
func (e NonTextMessage) EventChat() Chat       { return e.Chat }
func (e MembershipChanged) EventChat() Chat    { return e.Chat }
func (e ChatMemberTransition) EventChat() Chat { return e.Chat }

func (TextMessage) isEvent()          {}
func (CommandMessage) isEvent()       {}
func (NonTextMessage) isEvent()       {}
func (MembershipChanged) isEvent()    {}
func (ChatMemberTransition) isEvent() {}
