package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"api-club-bot/internal/event"
)

// Normalize maps a raw update to an event. Updates the bot does not act on
// (edits, callbacks, channel posts, chats of unknown type, ...) are
// reported as not ok.
func Normalize(u tgbotapi.Update) (event.Event, bool) {
	if m := u.Message; m != nil && m.Chat != nil {
		kind, ok := chatKind(m.Chat.Type)
		if !ok {
			return nil, false
		}
		return normalizeMessage(m, event.Chat{ID: m.Chat.ID, Kind: kind}), true
	}
	if cm := u.ChatMember; cm != nil {
		kind, ok := chatKind(cm.Chat.Type)
		if !ok {
			return nil, false
		}
		tr := event.ChatMemberTransition{
			Chat: event.Chat{ID: cm.Chat.ID, Kind: kind},
			From: memberStatus(cm.OldChatMember),
			To:   memberStatus(cm.NewChatMember),
		}
		if user := cm.NewChatMember.User; user != nil {
			tr.Subject = event.Subject{ID: user.ID, DisplayName: user.FirstName}
		}
		return tr, true
	}
	return nil, false
}

func normalizeMessage(m *tgbotapi.Message, chat event.Chat) event.Event {
	if len(m.NewChatMembers) > 0 {
		return event.MembershipChanged{Chat: chat, Kind: event.MembersJoined, MessageID: m.MessageID}
	}
	if m.LeftChatMember != nil {
		return event.MembershipChanged{Chat: chat, Kind: event.MemberLeft, MessageID: m.MessageID}
	}
	var from event.Sender
	if m.From != nil {
		from = event.Sender{ID: m.From.ID, Handle: m.From.UserName}
	}
	if m.IsCommand() {
		return event.CommandMessage{
			Chat:      chat,
			MessageID: m.MessageID,
			Sender:    from,
			Command:   m.Command(),
			Args:      m.CommandArguments(),
			Text:      m.Text,
		}
	}
	if m.Text != "" {
		return event.TextMessage{Chat: chat, MessageID: m.MessageID, Sender: from, Text: m.Text}
	}
	return event.NonTextMessage{Chat: chat, MessageID: m.MessageID, Sender: from}
}

func chatKind(t string) (event.ChatKind, bool) {
	switch t {
	case "private":
		return event.ChatPrivate, true
	case "group":
		return event.ChatGroup, true
	case "supergroup":
		return event.ChatSupergroup, true
	case "channel":
		return event.ChatChannel, true
	}
	return event.ChatChannel, false
}

func memberStatus(m tgbotapi.ChatMember) event.MemberStatus {
	switch m.Status {
	case "left":
		return event.StatusLeft
	case "creator", "administrator", "member":
		return event.StatusPresent
	case "restricted":
		if m.IsMember {
			return event.StatusPresent
		}
	}
	return event.StatusOther
}
