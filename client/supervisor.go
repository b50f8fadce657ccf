package client

import (
	"context"
	"log"
	"sync"
	"time"
)

// Supervisor keeps a channel open for one session identity. Whenever the
// channel dies it schedules a single reconnection attempt after the
// configured delay and dials again with the same identity, forever,
// until Stop is called. It is the sole owner of the live channel; no
// other component holds one across a reconnect.
type Supervisor struct {
	cfg        Config
	gameID     string
	playerName string
	dispatcher *Dispatcher

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	mu      sync.Mutex
	current *Channel
}

// NewSupervisor starts supervising the push channel for the given
// identity. It returns immediately; dialing happens in the background.
func NewSupervisor(cfg Config, gameID, playerName string, sink EventSink) *Supervisor {
	ctx, cancel := context.WithCancel(context.Background())
	s := &Supervisor{
		cfg:        cfg,
		gameID:     gameID,
		playerName: playerName,
		dispatcher: NewDispatcher(sink),
		ctx:        ctx,
		cancel:     cancel,
		done:       make(chan struct{}),
	}

	go s.loop()

	return s
}

// Stop tears the session down: it cancels any pending reconnection,
// closes the live channel if there is one, and waits for the loop to
// exit. No channel for this identity survives a Stop.
func (s *Supervisor) Stop() {
	s.cancel()

	s.mu.Lock()
	if s.current != nil {
		s.current.Close()
	}
	s.mu.Unlock()

	<-s.done
}

func (s *Supervisor) loop() {
	defer close(s.done)

	socketURL := s.cfg.SocketURL(s.gameID, s.playerName)

	for {
		if s.ctx.Err() != nil {
			return
		}

		ch, err := Dial(socketURL)
		if err != nil {
			log.Printf("could not connect to game %s: %s", s.gameID, err.Error())
		} else {
			s.setCurrent(ch)
			s.attach(ch)
			s.setCurrent(nil)
			ch.Close()
		}

		// exactly one scheduled attempt per disruption, at a fixed
		// delay, cancellable on teardown
		select {
		case <-s.ctx.Done():
			return
		case <-time.After(s.cfg.RetryInterval):
		}
	}
}

// attach drains the channel's inbound sequence until it terminates
func (s *Supervisor) attach(ch *Channel) {
	for frame := range ch.Frames() {
		if frame.Err != nil {
			log.Printf("channel for game %s closed: %s", s.gameID, frame.Err.Error())
			return
		}
		s.dispatcher.Dispatch(frame.Data, ch)
	}
}

func (s *Supervisor) setCurrent(ch *Channel) {
	s.mu.Lock()
	s.current = ch
	s.mu.Unlock()
}
