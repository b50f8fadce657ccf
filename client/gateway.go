package client

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	uuid "github.com/satori/go.uuid"

	"kazhutha/deck"
	"kazhutha/protocol"
)

// ErrInvalidMove is returned by PlayCard when the server rejects the
// move. The shared game document is left untouched in that case.
var ErrInvalidMove = errors.New("invalid move")

type createGameReq struct {
	PlayerName string `json:"player_name"`
}

type createGameRes struct {
	GameID string `json:"game_id"`
}

type joinGameReq struct {
	GameID     string `json:"game_id"`
	PlayerName string `json:"player_name"`
}

type successRes struct {
	Success bool `json:"success"`
}

type playCardReq struct {
	GameID     string    `json:"game_id"`
	PlayerName string    `json:"player_name"`
	Card       deck.Card `json:"card"`
	// RequestID lets the server dedupe a play that is retried after a
	// connection drop mid-flight.
	RequestID string `json:"request_id"`
}

type playCardRes struct {
	Success   bool                   `json:"success"`
	GameState *protocol.GameSnapshot `json:"game_state,omitempty"`
}

// Gateway issues the request/response calls that mutate server state.
// None of them retries automatically; a transport failure surfaces as a
// plain error for the caller to report.
type Gateway struct {
	base   string
	client *http.Client
}

func NewGateway(cfg Config) *Gateway {
	return &Gateway{
		base:   cfg.BaseURL(),
		client: &http.Client{Timeout: cfg.RequestTimeout},
	}
}

// CreateGame asks the server for a fresh game and returns its id
func (g *Gateway) CreateGame(playerName string) (string, error) {
	var res createGameRes
	if err := g.post("/game/create", createGameReq{PlayerName: playerName}, &res); err != nil {
		return "", err
	}
	if res.GameID == "" {
		return "", errors.New("server returned no game id")
	}
	return res.GameID, nil
}

// JoinGame confirms the identity is valid for an existing game. A false
// return means the game is full, unknown or already started; the server
// does not say which. The roster update arrives on the push channel.
func (g *Gateway) JoinGame(gameID, playerName string) (bool, error) {
	var res successRes
	if err := g.post("/game/join", joinGameReq{GameID: gameID, PlayerName: playerName}, &res); err != nil {
		return false, err
	}
	return res.Success, nil
}

// StartGame asks the server to start the game. Only the host may start;
// that is enforced server-side, any client-side host check is advisory.
func (g *Gateway) StartGame(gameID, playerName string) (bool, error) {
	var res successRes
	if err := g.post("/game/start", joinGameReq{GameID: gameID, PlayerName: playerName}, &res); err != nil {
		return false, err
	}
	return res.Success, nil
}

// PlayCard submits a play. On success the returned snapshot reflects the
// play immediately, ahead of the push round-trip. A rejected move is
// ErrInvalidMove with no snapshot.
func (g *Gateway) PlayCard(gameID, playerName string, card deck.Card) (*protocol.GameSnapshot, error) {
	req := playCardReq{
		GameID:     gameID,
		PlayerName: playerName,
		Card:       card,
		RequestID:  uuid.NewV4().String(),
	}

	var res playCardRes
	if err := g.post("/game/play", req, &res); err != nil {
		return nil, err
	}
	if !res.Success {
		return nil, ErrInvalidMove
	}
	return res.GameState, nil
}

func (g *Gateway) post(path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	resp, err := g.client.Post(g.base+path, "application/json", bytes.NewReader(payload))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%s returned status %d", path, resp.StatusCode)
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
