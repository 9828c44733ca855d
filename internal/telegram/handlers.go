package telegram

import (
	"fmt"
	"html"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"api-club-bot/internal/dialogue"
	"api-club-bot/internal/event"
	"api-club-bot/internal/router"
)

func (b *Bot) handleEvent(ev event.Event) {
	chat := ev.EventChat()
	switch router.Route(ev, b.dialogue.State(chat.ID)) {
	case router.TargetCleanup:
		b.handleMembershipNotice(ev.(event.MembershipChanged))
	case router.TargetGreeting:
		b.handleNewMember(ev.(event.ChatMemberTransition))
	case router.TargetDialogue:
		b.handleDialogue(ev)
	case router.TargetCommand:
		b.handleCommand(ev.(event.CommandMessage))
	case router.TargetFallback:
		logMessage(ev)
	}
}

// handleMembershipNotice removes join/leave service messages.
func (b *Bot) handleMembershipNotice(ev event.MembershipChanged) {
	if err := b.deleteMessage(ev.Chat.ID, ev.MessageID); err != nil {
		log.Printf("failed to delete %s notice %d in chat %d: %v", ev.Kind, ev.MessageID, ev.Chat.ID, err)
	}
}

// handleNewMember greets a newcomer and schedules removal of the greeting.
func (b *Bot) handleNewMember(ev event.ChatMemberTransition) {
	mention := fmt.Sprintf(`<a href="tg://user?id=%d">%s</a>`, ev.Subject.ID, html.EscapeString(ev.Subject.DisplayName))
	text := fmt.Sprintf("<i>🎶 ~ Welcome aboard</i>, <b>%s</b>!", mention)
	greeting, err := b.sendText(ev.Chat.ID, text, sendOptions{ParseMode: tgbotapi.ModeHTML, Silent: true})
	if err != nil {
		log.Printf("failed to greet user %d in chat %d: %v", ev.Subject.ID, ev.Chat.ID, err)
		return
	}
	b.greeter.Schedule(b.done, ev.Chat.ID, greeting.MessageID)
}

func (b *Bot) handleDialogue(ev event.Event) {
	in, ok := dialogue.InputFromEvent(ev)
	if !ok {
		return
	}
	chatID := ev.EventChat().ID
	if reply := b.dialogue.Handle(chatID, in); reply != "" {
		b.sendMessage(chatID, reply)
	}
}

func (b *Bot) handleCommand(cmd event.CommandMessage) {
	switch cmd.Command {
	case "version", "ver":
		b.sendMessage(cmd.Chat.ID, fmt.Sprintf("Bot version: v%s", b.opts.Version))
	default:
		text := fmt.Sprintf("Check out the <b><a href=\"%s\">[repo]</a></b>!", html.EscapeString(b.opts.RepoURL))
		if _, err := b.sendText(cmd.Chat.ID, text, sendOptions{ParseMode: tgbotapi.ModeHTML}); err != nil {
			log.Printf("failed to send help to chat %d: %v", cmd.Chat.ID, err)
		}
	}
}

// logMessage records direct messages nobody handled.
func logMessage(ev event.Event) {
	var from event.Sender
	var content string
	switch e := ev.(type) {
	case event.TextMessage:
		from, content = e.Sender, e.Text
	case event.CommandMessage:
		from, content = e.Sender, e.Text
	default:
		return
	}
	sep := " "
	if strings.Contains(content, "\n") {
		sep = "\n"
	}
	log.Printf("Message from user %s:\n~~> Text:%s%s", from.Label(), sep, content)
}
