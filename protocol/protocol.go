package protocol

// EventType is the discriminator the server puts on every inbound frame
type EventType string

const (
	Ping               EventType = "ping"
	PlayerJoined       EventType = "player_joined"
	GameStarted        EventType = "game_started"
	GameUpdate         EventType = "game_update"
	CardPlayed         EventType = "card_played"
	GameState          EventType = "game_state"
	PlayerDisconnected EventType = "player_disconnected"
)

var knownEvents = map[EventType]bool{
	Ping:               true,
	PlayerJoined:       true,
	GameStarted:        true,
	GameUpdate:         true,
	CardPlayed:         true,
	GameState:          true,
	PlayerDisconnected: true,
}

// StateBearing reports whether frames of this type carry a game snapshot
// the client must apply
func (e EventType) StateBearing() bool {
	switch e {
	case PlayerJoined, GameStarted, GameUpdate, CardPlayed, GameState, PlayerDisconnected:
		return true
	}
	return false
}

// Known reports whether the client understands this event type. Unknown
// types are dropped, never treated as errors, so newer servers can add
// frames without breaking older clients.
func (e EventType) Known() bool {
	return knownEvents[e]
}

// Pong is the only frame the client ever sends on the push channel
const Pong = "pong"
