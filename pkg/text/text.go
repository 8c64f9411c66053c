// Package text provides the normalization rules used across the bot:
// user ids, room ids, command ids and chat formatting for a
// Showdown-style chat server.
package text

import "strings"

// ToID normalizes a user name to its id: lowercase, alphanumeric only.
func ToID(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ToRoomID normalizes a room name: lowercase, alphanumeric and dashes.
func ToRoomID(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ToCmdID normalizes a command token: lowercase with non-identifier
// characters stripped. Dashes survive so dynamic sub-commands can use them.
func ToCmdID(s string) string {
	return ToRoomID(s)
}

// StripCommands escapes outgoing text so it can never run a server
// command: a leading "/" is doubled (rendered literally by the server)
// and a leading "!" is padded with a space.
func StripCommands(s string) string {
	t := strings.TrimSpace(s)
	switch {
	case strings.HasPrefix(t, "/"):
		return "/" + s
	case strings.HasPrefix(t, "!"):
		return " " + t
	default:
		return s
	}
}

// Bold wraps text in chat bold markup.
func Bold(s string) string { return "**" + s + "**" }

// Italics wraps text in chat italics markup.
func Italics(s string) string { return "__" + s + "__" }
