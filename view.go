package kazhutha

import (
	"kazhutha/deck"
	"kazhutha/protocol"
)

// View is an immutable read of the session for rendering. The snapshot
// is a copy; holding on to it across updates is safe.
type View struct {
	Phase      Phase
	Mode       Mode
	GameID     string
	PlayerName string
	Snapshot   *protocol.GameSnapshot
	Notice     string
}

// YourTurn reports whether this client may act. This is the only
// turn-related check done locally; move legality is the server's call.
func (v View) YourTurn() bool {
	return v.Snapshot != nil && v.PlayerName != "" && v.Snapshot.CurrentPlayer == v.PlayerName
}

// IsHost reports whether this client is the game's host
func (v View) IsHost() bool {
	return v.Snapshot != nil && v.Snapshot.IsHost(v.PlayerName)
}

func cloneSnapshot(s *protocol.GameSnapshot) *protocol.GameSnapshot {
	if s == nil {
		return nil
	}
	clone := &protocol.GameSnapshot{
		CurrentPlayer: s.CurrentPlayer,
		CurrentSuit:   s.CurrentSuit,
	}
	clone.Players = append([]protocol.Player(nil), s.Players...)
	clone.CurrentPile = append([]protocol.PileEntry(nil), s.CurrentPile...)
	clone.YourHand = append(deck.Hand(nil), s.YourHand...)
	return clone
}
