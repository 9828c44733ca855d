package telegram

import (
	"context"
	"log"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"api-club-bot/internal/dialogue"
	"api-club-bot/internal/greeter"
	"api-club-bot/internal/router"
	"api-club-bot/internal/worker"
)

type Options struct {
	GreetingTTL           time.Duration
	MaxConcurrentHandlers int
	RepoURL               string
	Version               string
}

type Bot struct {
	api      *tgbotapi.BotAPI
	s        sender
	dialogue *dialogue.Service
	greeter  *greeter.Timer
	pool     *worker.Pool
	opts     Options

	// done ends pending greeting removals on shutdown
	done context.Context
}

func New(botToken string, svc *dialogue.Service, opts Options) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, err
	}
	b := newBot(botAPISender{api: api}, svc, opts)
	b.api = api
	return b, nil
}

func newBot(s sender, svc *dialogue.Service, opts Options) *Bot {
	b := &Bot{
		s:        s,
		dialogue: svc,
		pool:     worker.New(opts.MaxConcurrentHandlers),
		opts:     opts,
		done:     context.Background(),
	}
	b.greeter = greeter.New(opts.GreetingTTL, b.deleteMessage, nil)
	return b
}

// Start long-polls for updates until ctx is cancelled, then stops
// receiving and waits for in-flight handlers.
func (b *Bot) Start(ctx context.Context) {
	b.done = ctx
	b.registerCommands()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	u.AllowedUpdates = []string{"message", "chat_member"}

	updates := b.api.GetUpdatesChan(u)
	log.Printf("🎶 Bot @%s started", b.api.Self.UserName)

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.shutdown()
			return
		case update, ok := <-updates:
			if !ok {
				b.shutdown()
				return
			}
			b.Dispatch(update)
		}
	}
}

func (b *Bot) shutdown() {
	b.pool.Close()
	log.Printf("🛑 Bot stopped, %d greeting(s) left in place", b.greeter.Pending())
}

// Dispatch normalizes the update and queues it on its chat's partition.
func (b *Bot) Dispatch(update tgbotapi.Update) {
	ev, ok := Normalize(update)
	if !ok {
		log.Printf("unhandled update %d", update.UpdateID)
		return
	}
	job := func() { b.handleEvent(ev) }
	var err error
	if key, partitioned := router.PartitionKey(ev); partitioned {
		err = b.pool.Submit(key, job)
	} else {
		err = b.pool.Go(job)
	}
	if err != nil {
		log.Printf("dropping update %d: %v", update.UpdateID, err)
	}
}

func (b *Bot) registerCommands() {
	cfg := tgbotapi.NewSetMyCommandsWithScope(
		tgbotapi.NewBotCommandScopeAllPrivateChats(),
		tgbotapi.BotCommand{Command: dialogue.CmdRequest, Description: "Request a song"},
		tgbotapi.BotCommand{Command: dialogue.CmdCancel, Description: "Cancel the current request"},
		tgbotapi.BotCommand{Command: dialogue.CmdDone, Description: "Finish a request without a link"},
		tgbotapi.BotCommand{Command: "help", Description: "Show useful info"},
	)
	if _, err := b.s.Request(cfg); err != nil {
		log.Printf("failed to set bot commands: %v", err)
	}
}
