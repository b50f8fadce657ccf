package client

import (
	"errors"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second
)

// ErrChannelClosed is returned by Send once the channel is no longer open
var ErrChannelClosed = errors.New("channel is closed")

// Frame is one inbound delivery from the socket. A Frame with a non-nil
// Err is terminal: the channel is dead and no further frames will arrive.
type Frame struct {
	Data []byte
	Err  error
}

// Channel is a single-attempt transport to the server. It holds exactly
// one websocket connection and never retries; reconnection policy lives
// in the Supervisor.
type Channel struct {
	conn      *websocket.Conn
	frames    chan Frame
	closed    chan struct{}
	closeOnce sync.Once
}

// Dial opens a channel for the given socket URL. The handshake is a
// single attempt; an error here means no channel exists.
func Dial(socketURL string) (*Channel, error) {
	conn, _, err := websocket.DefaultDialer.Dial(socketURL, nil)
	if err != nil {
		return nil, err
	}

	ch := &Channel{
		conn:   conn,
		frames: make(chan Frame),
		closed: make(chan struct{}),
	}
	go ch.readPump()

	return ch, nil
}

// Frames exposes the inbound sequence. It is closed after a terminal
// frame or an explicit Close.
func (c *Channel) Frames() <-chan Frame {
	return c.frames
}

// Send writes one text frame to the server
func (c *Channel) Send(text string) error {
	select {
	case <-c.closed:
		return ErrChannelClosed
	default:
	}

	c.conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.conn.WriteMessage(websocket.TextMessage, []byte(text)); err != nil {
		return err
	}
	return nil
}

// Close releases the connection. Safe to call more than once.
func (c *Channel) Close() error {
	c.closeOnce.Do(func() {
		close(c.closed)
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
		c.conn.Close()
	})
	return nil
}

func (c *Channel) readPump() {
	defer close(c.frames)

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			c.deliver(Frame{Err: err})
			return
		}
		if !c.deliver(Frame{Data: data}) {
			return
		}
	}
}

// deliver hands a frame to the consumer unless the channel has been
// closed out from under the pump
func (c *Channel) deliver(f Frame) bool {
	select {
	case c.frames <- f:
		return true
	case <-c.closed:
		return false
	}
}
