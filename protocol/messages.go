package protocol

import (
	"encoding/json"
	"errors"

	"kazhutha/deck"
)

// Player is one seat at the table as the server describes it. Other
// players' cards are only ever visible as a count.
type Player struct {
	Name      string `json:"name"`
	IsHost    bool   `json:"is_host"`
	CardCount int    `json:"card_count"`
}

// PileEntry is one play in the current trick. Order within the pile is
// submission order and is meaningful.
type PileEntry struct {
	Player string    `json:"player"`
	Card   deck.Card `json:"card"`
}

// GameSnapshot is the full shared game document the server pushes. The
// client never edits it field by field; it is replaced wholesale.
type GameSnapshot struct {
	Players       []Player    `json:"players"`
	CurrentPlayer string      `json:"current_player"`
	CurrentSuit   deck.Suit   `json:"current_suit,omitempty"`
	CurrentPile   []PileEntry `json:"current_pile"`
	YourHand      deck.Hand   `json:"your_hand"`
}

// Find returns the named player's seat
func (s *GameSnapshot) Find(name string) (Player, bool) {
	for _, p := range s.Players {
		if p.Name == name {
			return p, true
		}
	}
	return Player{}, false
}

// IsHost reports whether the named player is the host
func (s *GameSnapshot) IsHost(name string) bool {
	p, ok := s.Find(name)
	return ok && p.IsHost
}

// Event is a decoded inbound frame
type Event struct {
	Type       EventType     `json:"type"`
	GameState  *GameSnapshot `json:"game_state,omitempty"`
	PlayerName string        `json:"player_name,omitempty"`
}

var ErrMissingType = errors.New("frame has no type")

// Decode parses a raw inbound frame. A decode error means the single
// frame is bad, nothing more; callers log and drop it.
func Decode(raw []byte) (Event, error) {
	var event Event
	if err := json.Unmarshal(raw, &event); err != nil {
		return Event{}, err
	}
	if event.Type == "" {
		return Event{}, ErrMissingType
	}
	return event, nil
}
