package dialogue

// State is the position of a chat in the request dialogue. The set of
// implementations is closed: Start, AwaitingArtist, AwaitingSong and
// AwaitingLink.
type State interface {
	String() string
	isState()
}

type Start struct{}

type AwaitingArtist struct{}

type AwaitingSong struct {
	Artist string
}

type AwaitingLink struct {
	Artist string
	Song   string
}

func (Start) String() string          { return "start" }
func (AwaitingArtist) String() string { return "awaiting_artist" }
func (AwaitingSong) String() string   { return "awaiting_song" }
func (AwaitingLink) String() string   { return "awaiting_link" }

func (Start) isState()          {}
func (AwaitingArtist) isState() {}
func (AwaitingSong) isState()   {}
func (AwaitingLink) isState()   {}

// InProgress reports whether a dialogue is running in this state.
func InProgress(st State) bool {
	_, idle := st.(Start)
	return st != nil && !idle
}
