package router

import (
	"testing"

	"api-club-bot/internal/dialogue"
	"api-club-bot/internal/event"
)

var (
	private    = event.Chat{ID: 1, Kind: event.ChatPrivate}
	group      = event.Chat{ID: -2, Kind: event.ChatGroup}
	supergroup = event.Chat{ID: -1003, Kind: event.ChatSupergroup}
	channel    = event.Chat{ID: -1004, Kind: event.ChatChannel}
)

func TestRoute(t *testing.T) {
	idle := dialogue.Start{}
	busy := dialogue.AwaitingSong{Artist: "A"}
	cases := []struct {
		name string
		ev   event.Event
		st   dialogue.State
		want Target
	}{
		{"join notice in supergroup", event.MembershipChanged{Chat: supergroup, Kind: event.MembersJoined}, idle, TargetCleanup},
		{"leave notice in group", event.MembershipChanged{Chat: group, Kind: event.MemberLeft}, idle, TargetCleanup},
		{"join notice wins over dialogue", event.MembershipChanged{Chat: private}, busy, TargetCleanup},
		{"newcomer in supergroup", event.ChatMemberTransition{Chat: supergroup, From: event.StatusLeft, To: event.StatusPresent}, idle, TargetGreeting},
		{"newcomer in group", event.ChatMemberTransition{Chat: group, From: event.StatusLeft, To: event.StatusPresent}, idle, TargetGreeting},
		{"promotion is not a join", event.ChatMemberTransition{Chat: supergroup, From: event.StatusPresent, To: event.StatusPresent}, idle, TargetNone},
		{"member leaving", event.ChatMemberTransition{Chat: supergroup, From: event.StatusPresent, To: event.StatusLeft}, idle, TargetNone},
		{"transition in channel", event.ChatMemberTransition{Chat: channel, From: event.StatusLeft, To: event.StatusPresent}, idle, TargetNone},
		{"request command", event.CommandMessage{Chat: private, Command: "request"}, idle, TargetDialogue},
		{"help command", event.CommandMessage{Chat: private, Command: "help"}, idle, TargetCommand},
		{"help alias", event.CommandMessage{Chat: private, Command: "?"}, idle, TargetCommand},
		{"version command", event.CommandMessage{Chat: private, Command: "ver"}, idle, TargetCommand},
		{"unknown command", event.CommandMessage{Chat: private, Command: "nope"}, idle, TargetFallback},
		{"plain text idle", event.TextMessage{Chat: private, Text: "hi"}, idle, TargetFallback},
		{"sticker idle", event.NonTextMessage{Chat: private}, idle, TargetFallback},
		{"text mid dialogue", event.TextMessage{Chat: private, Text: "hi"}, busy, TargetDialogue},
		{"help mid dialogue", event.CommandMessage{Chat: private, Command: "help"}, busy, TargetDialogue},
		{"sticker mid dialogue", event.NonTextMessage{Chat: private}, busy, TargetDialogue},
		{"text in group", event.TextMessage{Chat: group, Text: "hi"}, idle, TargetNone},
		{"request in supergroup", event.CommandMessage{Chat: supergroup, Command: "request"}, idle, TargetNone},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Route(tc.ev, tc.st); got != tc.want {
				t.Fatalf("want %s, got %s", tc.want, got)
			}
		})
	}
}

func TestPartitionKey(t *testing.T) {
	if k, ok := PartitionKey(event.TextMessage{Chat: private}); !ok || k != private.ID {
		t.Fatalf("private: want %d, got %d (%v)", private.ID, k, ok)
	}
	if k, ok := PartitionKey(event.MembershipChanged{Chat: group}); !ok || k != group.ID {
		t.Fatalf("group: want %d, got %d (%v)", group.ID, k, ok)
	}
	if _, ok := PartitionKey(event.MembershipChanged{Chat: supergroup}); ok {
		t.Fatalf("supergroup events must not be partitioned")
	}
	if _, ok := PartitionKey(event.TextMessage{Chat: channel}); ok {
		t.Fatalf("channel events must not be partitioned")
	}
}
