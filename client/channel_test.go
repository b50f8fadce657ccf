package client

import (
	"testing"
	"time"

	utils "kazhutha/internal"
)

const within = 2 * time.Second

func TestChannel(t *testing.T) {
	t.Run("dial fails cleanly when nothing is listening", func(t *testing.T) {
		_, err := Dial("ws://127.0.0.1:1/ws/KWRTYA/Ines")
		utils.AssertErrored(t, err)
	})

	t.Run("delivers inbound frames in arrival order", func(t *testing.T) {
		server := newGameServer(t)

		ch, err := Dial(server.config().SocketURL("KWRTYA", "Ines"))
		utils.AssertNoError(t, err)
		defer ch.Close()

		conn := server.waitForConn(t, within)
		conn.push(t, `{"type": "player_joined"}`)
		conn.push(t, `{"type": "game_update"}`)

		first := <-ch.Frames()
		utils.AssertNoError(t, first.Err)
		utils.AssertEqual(t, string(first.Data), `{"type": "player_joined"}`)

		second := <-ch.Frames()
		utils.AssertNoError(t, second.Err)
		utils.AssertEqual(t, string(second.Data), `{"type": "game_update"}`)
	})

	t.Run("sends text frames", func(t *testing.T) {
		server := newGameServer(t)

		ch, err := Dial(server.config().SocketURL("KWRTYA", "Ines"))
		utils.AssertNoError(t, err)
		defer ch.Close()

		conn := server.waitForConn(t, within)

		utils.AssertNoError(t, ch.Send("pong"))
		conn.expectText(t, "pong", within)
	})

	t.Run("a server-side drop is a terminal frame", func(t *testing.T) {
		server := newGameServer(t)

		ch, err := Dial(server.config().SocketURL("KWRTYA", "Ines"))
		utils.AssertNoError(t, err)
		defer ch.Close()

		conn := server.waitForConn(t, within)
		conn.drop()

		sawTerminal := false
		utils.Within(t, within, func() {
			for frame := range ch.Frames() {
				if frame.Err != nil {
					sawTerminal = true
				}
			}
		})
		utils.AssertTrue(t, sawTerminal)
	})

	t.Run("send after close fails", func(t *testing.T) {
		server := newGameServer(t)

		ch, err := Dial(server.config().SocketURL("KWRTYA", "Ines"))
		utils.AssertNoError(t, err)

		server.waitForConn(t, within)
		ch.Close()

		utils.AssertEqual(t, ch.Send("pong"), ErrChannelClosed)
	})

	t.Run("close is idempotent", func(t *testing.T) {
		server := newGameServer(t)

		ch, err := Dial(server.config().SocketURL("KWRTYA", "Ines"))
		utils.AssertNoError(t, err)

		server.waitForConn(t, within)
		utils.AssertNoError(t, ch.Close())
		utils.AssertNoError(t, ch.Close())
	})
}
