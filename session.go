package kazhutha

import (
	"context"
	"errors"
	"fmt"
	"log"

	"kazhutha/client"
	"kazhutha/deck"
	"kazhutha/protocol"
)

var (
	// ErrNoGame means an action needing a session identity was called
	// before one was assigned
	ErrNoGame = errors.New("no game in progress")

	// ErrJoinFailed means the server declined the join: the game is
	// full, unknown or already started (it does not say which)
	ErrJoinFailed = errors.New("could not join game")

	// ErrStartFailed means the server declined to start the game
	ErrStartFailed = errors.New("could not start game")
)

// Actions is the request/response surface the session mutates server
// state through
type Actions interface {
	CreateGame(playerName string) (string, error)
	JoinGame(gameID, playerName string) (bool, error)
	StartGame(gameID, playerName string) (bool, error)
	PlayCard(gameID, playerName string, card deck.Card) (*protocol.GameSnapshot, error)
}

// Stopper tears down a supervised push channel
type Stopper interface {
	Stop()
}

// ConnectFunc opens the supervised push channel for a session identity,
// delivering its events to the given sink
type ConnectFunc func(gameID, playerName string, sink client.EventSink) Stopper

type sessionMsg interface{ isSessionMsg() }

type serverEvent struct{ event protocol.Event }

type identityAssigned struct{ gameID, playerName string }

type optimisticReplace struct{ snapshot *protocol.GameSnapshot }

type noticePosted struct{ text string }

type modeSet struct{ mode Mode }

type viewRequest struct{ reply chan View }

func (serverEvent) isSessionMsg()       {}
func (identityAssigned) isSessionMsg()  {}
func (optimisticReplace) isSessionMsg() {}
func (noticePosted) isSessionMsg()      {}
func (modeSet) isSessionMsg()           {}
func (viewRequest) isSessionMsg()       {}

// Session owns all client-side game state: the phase, the session
// identity and the latest shared game document. Every mutation flows
// through a typed inbox consumed by a single goroutine, so pushes and
// action responses are applied strictly in arrival order and the last
// processed snapshot wins.
type Session struct {
	inbox   chan sessionMsg
	updates chan View
	gateway Actions
	connect ConnectFunc
	ctx     context.Context
	cancel  context.CancelFunc
	done    chan struct{}

	// owned by the loop goroutine
	phase      Phase
	mode       Mode
	gameID     string
	playerName string
	snapshot   *protocol.GameSnapshot
	notice     string
	channel    Stopper
}

type SessionOpts struct {
	Gateway Actions
	// Connect may be nil, in which case no push channel is opened;
	// useful for tests that drive events directly.
	Connect ConnectFunc
}

// NewSession constructs a session and starts its loop
func NewSession(opts SessionOpts) *Session {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		inbox:   make(chan sessionMsg, 64),
		updates: make(chan View, 1),
		gateway: opts.Gateway,
		connect: opts.Connect,
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}

	go s.loop()

	return s
}

// Updates delivers a fresh View after every mutation. The buffer holds
// only the latest view; a slow consumer sees the newest state, not a
// backlog.
func (s *Session) Updates() <-chan View {
	return s.updates
}

// View is a synchronous read of the current session state
func (s *Session) View() View {
	reply := make(chan View, 1)
	select {
	case s.inbox <- viewRequest{reply: reply}:
	case <-s.ctx.Done():
		return View{}
	}
	select {
	case v := <-reply:
		return v
	case <-s.ctx.Done():
		return View{}
	}
}

// HandleEvent receives decoded events from the message dispatcher
func (s *Session) HandleEvent(event protocol.Event) {
	s.post(serverEvent{event: event})
}

// SetMode records the create/join presentation sub-state
func (s *Session) SetMode(mode Mode) {
	s.post(modeSet{mode: mode})
}

// Stop tears the session down: the push channel is stopped, pending
// reconnections are cancelled and the updates channel is closed.
func (s *Session) Stop() {
	s.cancel()
	<-s.done
}

// CreateGame asks the server for a fresh game and, on success, assigns
// this session's identity and opens the push channel
func (s *Session) CreateGame(playerName string) error {
	gameID, err := s.gateway.CreateGame(playerName)
	if err != nil {
		log.Printf("create game failed: %s", err.Error())
		s.post(noticePosted{text: "Failed to create game"})
		return err
	}

	s.post(identityAssigned{gameID: gameID, playerName: playerName})
	return nil
}

// JoinGame validates the identity against an existing game. On success
// the roster update arrives over the push channel; the join response
// itself carries no snapshot.
func (s *Session) JoinGame(gameID, playerName string) error {
	ok, err := s.gateway.JoinGame(gameID, playerName)
	if err != nil {
		log.Printf("join game failed: %s", err.Error())
		s.post(noticePosted{text: "Failed to join game"})
		return err
	}
	if !ok {
		s.post(noticePosted{text: "Failed to join game"})
		return ErrJoinFailed
	}

	s.post(identityAssigned{gameID: gameID, playerName: playerName})
	return nil
}

// StartGame asks the server to start the game. The phase flips only
// when the game_started push is processed, so every player, host
// included, transitions through the same gate.
func (s *Session) StartGame() error {
	v := s.View()
	if v.GameID == "" {
		return ErrNoGame
	}

	ok, err := s.gateway.StartGame(v.GameID, v.PlayerName)
	if err != nil {
		log.Printf("start game failed: %s", err.Error())
		s.post(noticePosted{text: "Failed to start game"})
		return err
	}
	if !ok {
		s.post(noticePosted{text: "Failed to start game"})
		return ErrStartFailed
	}
	return nil
}

// PlayCard submits a play. On success the response's snapshot replaces
// the current one immediately, so the card leaves the displayed hand
// without waiting for the push round-trip. On a rejected move nothing
// changes except the notice.
func (s *Session) PlayCard(card deck.Card) error {
	v := s.View()
	if v.GameID == "" {
		return ErrNoGame
	}

	snapshot, err := s.gateway.PlayCard(v.GameID, v.PlayerName, card)
	if errors.Is(err, client.ErrInvalidMove) {
		s.post(noticePosted{text: "Invalid move"})
		return err
	}
	if err != nil {
		log.Printf("play card failed: %s", err.Error())
		s.post(noticePosted{text: "Failed to play card"})
		return err
	}

	if snapshot != nil {
		s.post(optimisticReplace{snapshot: snapshot})
	}
	return nil
}

func (s *Session) post(msg sessionMsg) {
	select {
	case s.inbox <- msg:
	case <-s.ctx.Done():
	}
}

func (s *Session) loop() {
	defer close(s.done)

	for {
		select {
		case <-s.ctx.Done():
			if s.channel != nil {
				s.channel.Stop()
			}
			close(s.updates)
			return

		case m := <-s.inbox:
			switch msg := m.(type) {
			case serverEvent:
				s.applyEvent(msg.event)

			case identityAssigned:
				if s.gameID != "" {
					// identity is immutable once assigned
					break
				}
				s.gameID = msg.gameID
				s.playerName = msg.playerName
				s.phase = Lobby
				s.notice = ""
				if s.connect != nil {
					s.channel = s.connect(s.gameID, s.playerName, s)
				}
				s.publish()

			case optimisticReplace:
				s.snapshot = msg.snapshot
				s.notice = ""
				s.publish()

			case noticePosted:
				s.notice = msg.text
				s.publish()

			case modeSet:
				s.mode = msg.mode
				s.publish()

			case viewRequest:
				msg.reply <- s.view()
			}
		}
	}
}

// applyEvent applies one authoritative push. Every state-bearing event
// replaces the snapshot wholesale; there is no field-level merge.
func (s *Session) applyEvent(event protocol.Event) {
	if !event.Type.StateBearing() {
		return
	}

	if event.GameState != nil {
		s.snapshot = event.GameState
	}
	s.notice = ""

	switch event.Type {
	case protocol.GameStarted:
		// the one-way gate into play: no other event or snapshot
		// content causes this transition
		s.phase = Playing

	case protocol.PlayerDisconnected:
		s.notice = fmt.Sprintf("Player %s disconnected", event.PlayerName)
	}

	s.publish()
}

func (s *Session) view() View {
	return View{
		Phase:      s.phase,
		Mode:       s.mode,
		GameID:     s.gameID,
		PlayerName: s.playerName,
		Snapshot:   cloneSnapshot(s.snapshot),
		Notice:     s.notice,
	}
}

func (s *Session) publish() {
	v := s.view()
	select {
	case s.updates <- v:
	default:
		// drop the stale view so the consumer always sees the latest
		select {
		case <-s.updates:
		default:
		}
		select {
		case s.updates <- v:
		default:
		}
	}
}
