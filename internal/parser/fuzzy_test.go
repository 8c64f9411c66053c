package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func noopHandler(ctx *Context) error { return nil }

func TestMaxSearchDistance(t *testing.T) {
	assert.Equal(t, 0, maxSearchDistance(1))
	assert.Equal(t, 1, maxSearchDistance(4))
	assert.Equal(t, 2, maxSearchDistance(6))
	assert.Equal(t, 3, maxSearchDistance(7))
	assert.Equal(t, 3, maxSearchDistance(20))
}

func TestSearchCommand(t *testing.T) {
	p, _, _ := newTestParser(t)
	p.AddCommands(map[string]CommandDef{
		"info": {Handler: noopHandler},
		"help": {Handler: noopHandler},
	})
	p.data.DynCmds["guide"] = &DynNode{Reply: "read the docs"}

	tests := []struct {
		query string
		want  string
	}{
		{"inffo", "info"},       // one insertion
		{"hlp", "help"},         // one deletion
		{"guise", "guide"},      // dynamic ids are searched too
		{"i", ""},               // single characters never match
		{"", ""},                // nothing to search for
		{"xxxxx", ""},           // nothing within the distance budget
		{"informations", ""},    // too far even with the largest budget
		{"info", "info"},        // exact ids match themselves
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, p.SearchCommand(tt.query), "query %q", tt.query)
	}
}

func TestSearchCommandPrefersStatic(t *testing.T) {
	p, _, _ := newTestParser(t)
	p.AddCommands(map[string]CommandDef{"abcd": {Handler: noopHandler}})
	p.data.DynCmds["abce"] = &DynNode{Reply: "x"}

	// Both candidates sit at distance 1; the static id wins the tie.
	assert.Equal(t, "abcd", p.SearchCommand("abcf"))
}

func TestCommandExists(t *testing.T) {
	p, _, _ := newTestParser(t)
	p.AddCommands(map[string]CommandDef{"ping": {Handler: noopHandler}})
	p.data.DynCmds["faq"] = &DynNode{Reply: "x"}

	assert.True(t, p.CommandExists("ping"))
	assert.True(t, p.CommandExists("faq"))
	assert.False(t, p.CommandExists("pong"))
}

func TestCommandIDs(t *testing.T) {
	p, _, _ := newTestParser(t)
	p.AddCommands(map[string]CommandDef{
		"ping": {Handler: noopHandler},
		"info": {Handler: noopHandler},
	})
	p.data.DynCmds["faq"] = &DynNode{Reply: "x"}

	assert.Equal(t, []string{"info", "ping", "faq"}, p.CommandIDs())
}
