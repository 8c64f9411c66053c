package showdown

import (
	"strings"

	"github.com/4N5H64M3R/Showdown-ChatBot/pkg/text"
)

// handleLine processes one protocol line within its room context.
// Lines look like "|cmd|arg1|arg2|...". Lines without a leading pipe
// are raw room log output and carry nothing actionable.
func (c *Client) handleLine(room, line string) {
	if !strings.HasPrefix(line, "|") {
		return
	}
	cmd, rest, _ := strings.Cut(line[1:], "|")

	switch cmd {
	case "challstr":
		go c.login(rest)
	case "updateuser":
		c.handleUpdateUser(rest)
	case "init":
		c.initRoom(room, rest)
	case "deinit":
		c.deinitRoom(room)
	case "users":
		c.setUsers(room, rest)
	case "j", "J":
		c.userJoin(room, rest)
	case "l", "L":
		c.userLeave(room, rest)
	case "n", "N":
		newUser, oldID, _ := strings.Cut(rest, "|")
		c.userRename(room, newUser, oldID)
	case "c":
		user, msg, ok := strings.Cut(rest, "|")
		if ok {
			c.handleChat(room, user, msg)
		}
	case "c:":
		// Timestamped chat: |c:|<unix ts>|<user>|<message>
		parts := strings.SplitN(rest, "|", 3)
		if len(parts) == 3 {
			c.handleChat(room, parts[1], parts[2])
		}
	case "pm":
		parts := strings.SplitN(rest, "|", 3)
		if len(parts) == 3 {
			c.handlePM(parts[0], parts[1], parts[2])
		}
	case "error":
		c.log.Warn().Str("room", room).Str("message", rest).Msg("server error")
	}
}

// handleUpdateUser tracks the login handshake: once the server reports
// our configured nick as a named user, the auto-join rooms are entered.
func (c *Client) handleUpdateUser(rest string) {
	parts := strings.SplitN(rest, "|", 3)
	if len(parts) < 2 {
		return
	}
	user, named := parts[0], parts[1]
	if named != "1" || text.ToID(user) != text.ToID(c.cfg.Nick) {
		return
	}
	c.mu.Lock()
	already := c.named
	c.named = true
	c.mu.Unlock()
	if already {
		return
	}
	c.log.Info().Str("nick", c.cfg.Nick).Msg("logged in")
	for _, room := range c.cfg.Rooms {
		c.Send("/join " + room)
	}
}

func (c *Client) handleChat(room, user, msg string) {
	if text.ToID(user) == text.ToID(c.cfg.Nick) {
		return
	}
	if c.handler != nil {
		c.handler.Parse(msg, room, user)
	}
}

func (c *Client) handlePM(from, to, msg string) {
	if text.ToID(from) == text.ToID(c.cfg.Nick) {
		return
	}
	if text.ToID(to) != text.ToID(c.cfg.Nick) {
		return
	}
	if c.handler != nil {
		c.handler.Parse(msg, "", from)
	}
}
