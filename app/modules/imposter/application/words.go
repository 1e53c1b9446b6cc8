package imposterservice

import (
	"context"
	"math/rand/v2"
)

// WordProvider supplies the secret word and the imposter's hint for a round.
// Implementations may call an external generative service; StaticDeck ships
// for parties without connectivity.
type WordProvider interface {
	NextWord(ctx context.Context) (word, hint string, err error)
}

type deckEntry struct {
	word string
	hint string
}

// StaticDeck deals word/hint pairs from a fixed deck in random order.
type StaticDeck struct {
	entries []deckEntry
}

// NewStaticDeck returns the built-in household word deck.
func NewStaticDeck() *StaticDeck {
	return &StaticDeck{entries: []deckEntry{
		{word: "birthday cake", hint: "something with candles"},
		{word: "campfire", hint: "warm at night"},
		{word: "roller coaster", hint: "you queue for it"},
		{word: "snowman", hint: "seasonal and short-lived"},
		{word: "karaoke", hint: "loud after dinner"},
		{word: "treehouse", hint: "kids argue over it"},
		{word: "barbecue", hint: "smells across the garden"},
		{word: "piñata", hint: "everyone takes a swing"},
		{word: "sleeping bag", hint: "zips all the way up"},
		{word: "water balloon", hint: "one use only"},
		{word: "scavenger hunt", hint: "comes with a list"},
		{word: "marshmallow", hint: "best slightly burnt"},
	}}
}

func (d *StaticDeck) NextWord(ctx context.Context) (string, string, error) {
	entry := d.entries[rand.IntN(len(d.entries))]
	return entry.word, entry.hint, nil
}
