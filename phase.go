package kazhutha

// Phase represents where in its lifecycle the session is
// NoGame  -> no session identity assigned yet
// Lobby   -> identity assigned, game not yet started
// Playing -> a game_started event has been processed
// Reverse transitions are not exposed; leaving a game is process teardown.
type Phase int

const (
	NoGame Phase = iota
	Lobby
	Playing
)

var phaseNames = []string{"no_game", "lobby", "playing"}

func (p Phase) String() string {
	if p < NoGame || p > Playing {
		return ""
	}
	return phaseNames[p]
}

// Mode routes presentation between the create and join forms before a
// game exists. It carries no protocol meaning.
type Mode int

const (
	ModeCreate Mode = iota
	ModeJoin
)
