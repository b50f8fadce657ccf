package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"kazhutha"
	"kazhutha/client"
)

func main() {
	godotenv.Load()

	name := flag.String("name", "", "your display name")
	join := flag.String("join", "", "code of an existing game to join")
	flag.Parse()

	if *name == "" {
		log.Fatal("a display name is required: -name <name>")
	}

	cfg, err := client.ConfigFromEnv()
	if err != nil {
		log.Fatal(err.Error())
	}

	session := kazhutha.NewSession(kazhutha.SessionOpts{
		Gateway: client.NewGateway(cfg),
		Connect: func(gameID, playerName string, sink client.EventSink) kazhutha.Stopper {
			return client.NewSupervisor(cfg, gameID, playerName, sink)
		},
	})
	defer session.Stop()

	if *join == "" {
		session.SetMode(kazhutha.ModeCreate)
		if err := session.CreateGame(*name); err != nil {
			log.Fatal("Could not create a game")
		}
	} else {
		session.SetMode(kazhutha.ModeJoin)
		if err := session.JoinGame(strings.ToUpper(*join), *name); err != nil {
			log.Fatal("Could not join the game")
		}
	}

	fmt.Printf("Game code: %s\n", session.View().GameID)

	go func() {
		for v := range session.Updates() {
			render(v)
		}
	}()

	prompt(session)
}

// prompt reads commands from stdin: "start" in the lobby, a card number
// during play
func prompt(session *kazhutha.Session) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		v := session.View()
		switch {
		case line == "quit":
			return

		case v.Phase == kazhutha.Lobby && line == "start":
			if !v.IsHost() {
				fmt.Println("Only the host can start the game")
				continue
			}
			session.StartGame()

		case v.Phase == kazhutha.Playing:
			idx, err := strconv.Atoi(line)
			if err != nil || v.Snapshot == nil || idx < 1 || idx > len(v.Snapshot.YourHand) {
				fmt.Println("Enter the number of a card in your hand")
				continue
			}
			if !v.YourTurn() {
				fmt.Println("It is not your turn")
				continue
			}
			session.PlayCard(v.Snapshot.YourHand[idx-1])
		}
	}
}

func render(v kazhutha.View) {
	switch v.Phase {
	case kazhutha.Lobby:
		fmt.Printf("\n-- Lobby %s --\n", v.GameID)
		if v.Snapshot != nil {
			for _, p := range v.Snapshot.Players {
				host := ""
				if p.IsHost {
					host = " (host)"
				}
				fmt.Printf("  %s%s\n", p.Name, host)
			}
		}
		if v.IsHost() {
			fmt.Println("Type 'start' to begin")
		}

	case kazhutha.Playing:
		if v.Snapshot == nil {
			return
		}
		fmt.Printf("\n-- Game %s --\n", v.GameID)
		fmt.Printf("Current player: %s", v.Snapshot.CurrentPlayer)
		if v.Snapshot.CurrentSuit != "" {
			fmt.Printf("   Suit: %s", v.Snapshot.CurrentSuit)
		}
		fmt.Println()

		for _, entry := range v.Snapshot.CurrentPile {
			fmt.Printf("  %s played %s\n", entry.Player, entry.Card)
		}

		fmt.Println("Your hand:")
		for i, card := range v.Snapshot.YourHand {
			fmt.Printf("  [%d] %s\n", i+1, card)
		}
		for _, p := range v.Snapshot.Players {
			fmt.Printf("  %s: %d cards\n", p.Name, p.CardCount)
		}
		if v.YourTurn() {
			fmt.Println("Your turn: enter a card number to play it")
		}
	}

	if v.Notice != "" {
		fmt.Printf("! %s\n", v.Notice)
	}
}
