package dialogue

import "api-club-bot/internal/event"

const (
	CmdRequest = "request"
	CmdCancel  = "cancel"
	CmdDone    = "done"
)

type InputKind int

const (
	InputText InputKind = iota
	InputCommand
	InputNonText
)

// Input is the part of a direct message the engine looks at.
type Input struct {
	Kind    InputKind
	Command string // set for InputCommand
	Text    string // raw text, including the command for InputCommand
	Sender  string // submission sender key
}

// InputFromEvent extracts engine input from a direct-message event.
func InputFromEvent(ev event.Event) (Input, bool) {
	switch e := ev.(type) {
	case event.TextMessage:
		return Input{Kind: InputText, Text: e.Text, Sender: e.Sender.Key()}, true
	case event.CommandMessage:
		return Input{Kind: InputCommand, Command: e.Command, Text: e.Text, Sender: e.Sender.Key()}, true
	case event.NonTextMessage:
		return Input{Kind: InputNonText, Sender: e.Sender.Key()}, true
	}
	return Input{}, false
}

// IsDialogueCommand reports whether the command opens a dialogue.
func IsDialogueCommand(cmd string) bool { return cmd == CmdRequest }
