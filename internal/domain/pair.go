// Package domain defines core data structures used throughout the assistant.
package domain

import (
	"fmt"
	"strings"
)

// Pair cryptocurrency trading pair.
type Pair struct {
	// From base currency symbol.
	From string
	// To quote currency symbol.
	To string
}

// BTCUSDT is the only pair the assistant consults on.
var BTCUSDT = Pair{From: "BTC", To: "USDT"}

// String returns the string representation.
func (p *Pair) String() string {
	return fmt.Sprintf("%s_%s", p.From, p.To)
}

// Symbol returns the concatenated symbol representation.
func (p *Pair) Symbol() string {
	return fmt.Sprintf("%s%s", p.From, p.To)
}

// PairFromString parses a pair in FROM_TO form.
func PairFromString(s string) (Pair, error) {
	elements := strings.Split(s, "_")
	if len(elements) != 2 {
		return Pair{}, fmt.Errorf("invalid pair param: %s", s)
	}
	return Pair{From: elements[0], To: elements[1]}, nil
}
