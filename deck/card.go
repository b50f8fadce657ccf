package deck

import (
	"errors"
	"fmt"
)

// Rank represents a card rank, spelled the way the server spells it
type Rank string

const (
	Two   Rank = "2"
	Three Rank = "3"
	Four  Rank = "4"
	Five  Rank = "5"
	Six   Rank = "6"
	Seven Rank = "7"
	Eight Rank = "8"
	Nine  Rank = "9"
	Ten   Rank = "10"
	Jack  Rank = "J"
	Queen Rank = "Q"
	King  Rank = "K"
	Ace   Rank = "A"
)

var ranks = []Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

// Valid reports whether the rank is one the server recognises
func (r Rank) Valid() bool {
	for _, known := range ranks {
		if r == known {
			return true
		}
	}
	return false
}

// Suit represents a card suit, spelled the way the server spells it
type Suit string

const (
	Hearts   Suit = "hearts"
	Diamonds Suit = "diamonds"
	Clubs    Suit = "clubs"
	Spades   Suit = "spades"
)

var suits = []Suit{Hearts, Diamonds, Clubs, Spades}

// Valid reports whether the suit is one the server recognises
func (s Suit) Valid() bool {
	for _, known := range suits {
		if s == known {
			return true
		}
	}
	return false
}

// Card represents a playing card. Two cards with equal rank and suit
// are interchangeable, so cards are compared structurally.
type Card struct {
	Rank Rank `json:"rank"`
	Suit Suit `json:"suit"`
}

// NewCard constructs a card
func NewCard(rank Rank, suit Suit) (Card, error) {
	if !rank.Valid() || !suit.Valid() {
		return Card{}, errors.New("arguments out of range")
	}
	return Card{Rank: rank, Suit: suit}, nil
}

func (c Card) String() string {
	return fmt.Sprintf("%s of %s", c.Rank, c.Suit)
}
