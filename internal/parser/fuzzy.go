package parser

import (
	"sort"

	"github.com/agnivade/levenshtein"
)

// maxSearchDistance returns the edit-distance budget for a command id
// of the given length. Very short ids never match anything; longer ids
// tolerate more typos.
func maxSearchDistance(length int) int {
	switch {
	case length <= 1:
		return 0
	case length <= 4:
		return 1
	case length <= 6:
		return 2
	default:
		return 3
	}
}

// SearchCommand finds the closest registered command id to cmd within
// the length-tiered distance budget, or "" when nothing is close
// enough. Static ids are evaluated before dynamic ids and the first
// candidate at the smallest distance wins, so suggestions are
// deterministic.
func (p *Parser) SearchCommand(cmd string) string {
	if cmd == "" {
		return ""
	}
	maxLd := maxSearchDistance(len(cmd))
	if maxLd == 0 {
		return ""
	}

	best := ""
	bestLd := maxLd + 1
	consider := func(id string) {
		if ld := levenshtein.ComputeDistance(id, cmd); ld < bestLd {
			best = id
			bestLd = ld
		}
	}

	for _, id := range sortedKeys(p.commands) {
		consider(id)
	}
	for _, id := range sortedKeys(p.data.DynCmds) {
		consider(id)
	}
	return best
}

// CommandExists reports whether cmd names a static or dynamic command.
func (p *Parser) CommandExists(cmd string) bool {
	if _, ok := p.commands[cmd]; ok {
		return true
	}
	_, ok := p.data.DynCmds[cmd]
	return ok
}

// CommandIDs returns every static and dynamic command id.
func (p *Parser) CommandIDs() []string {
	ids := sortedKeys(p.commands)
	return append(ids, sortedKeys(p.data.DynCmds)...)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
