package client

import (
	"log"

	"kazhutha/protocol"
)

// EventSink receives decoded state-bearing events from the push channel
type EventSink interface {
	HandleEvent(protocol.Event)
}

// Replier can answer the server on the same channel a frame arrived on
type Replier interface {
	Send(text string) error
}

// Dispatcher decodes inbound frames and routes them by type. It owns no
// state of its own.
type Dispatcher struct {
	sink EventSink
}

func NewDispatcher(sink EventSink) *Dispatcher {
	return &Dispatcher{sink: sink}
}

// Dispatch routes one inbound frame. A decode failure faults only that
// frame: it is logged and dropped, and the channel carries on.
func (d *Dispatcher) Dispatch(raw []byte, replier Replier) {
	event, err := protocol.Decode(raw)
	if err != nil {
		log.Printf("dropping undecodable frame: %s", err.Error())
		return
	}

	switch {
	case event.Type == protocol.Ping:
		// liveness probe: answer on the same channel, touch nothing else
		if err := replier.Send(protocol.Pong); err != nil {
			log.Printf("could not answer ping: %s", err.Error())
		}

	case event.Type.StateBearing():
		d.sink.HandleEvent(event)

	default:
		log.Printf("ignoring unknown message type %q", event.Type)
	}
}
