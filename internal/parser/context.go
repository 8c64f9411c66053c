package parser

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/4N5H64M3R/Showdown-ChatBot/pkg/text"
)

// UserIdent is the resolved identity of a message sender: normalized
// id, display name and the rank symbol the server prefixed.
type UserIdent struct {
	ID    string
	Name  string
	Group string
}

// ParseUserIdent splits a protocol user string ("+Some User") into its
// rank symbol and name. Rank symbols may be multibyte (battle lists use
// stars); names without a rank prefix get the lowest implicit rank.
func ParseUserIdent(by string) UserIdent {
	group := " "
	name := by
	if by != "" {
		r, size := utf8.DecodeRuneInString(by)
		if !(r >= 'a' && r <= 'z') && !(r >= 'A' && r <= 'Z') && !(r >= '0' && r <= '9') {
			group = string(r)
			name = by[size:]
		}
	}
	return UserIdent{ID: text.ToID(name), Name: name, Group: group}
}

// Context carries the circumstances of one command execution. It is
// built per incoming line and owned exclusively by that dispatch call.
type Context struct {
	parser *Parser

	// Room is the source room id, empty for private messages.
	Room string
	// By is the raw sender string including rank prefix.
	By      string
	ByIdent UserIdent
	// Token is the command prefix that matched.
	Token string
	// Cmd is the normalized command id; dynamic resolution appends the
	// consumed sub-command path.
	Cmd string
	// Arg is the raw trailing argument string; Args is Arg split on
	// commas for convenience.
	Arg  string
	Args []string
	// TargetRoom is where the command logically acts: the source room
	// unless a bracket override or a room-control redirect changed it.
	TargetRoom string
	// Wall makes Reply use announcements when permitted.
	Wall     bool
	IsPM     bool
	RoomType string
	Lang     string

	handler string
}

func newContext(p *Parser, room, by, token, cmd, arg, targetRoom string, wall bool) *Context {
	ctx := &Context{
		parser:     p,
		Room:       room,
		By:         by,
		ByIdent:    ParseUserIdent(by),
		Token:      token,
		Cmd:        cmd,
		Arg:        strings.TrimSpace(arg),
		TargetRoom: room,
		Wall:       wall,
	}
	ctx.Args = strings.Split(ctx.Arg, ",")

	if room == "" {
		ctx.IsPM = true
		ctx.RoomType = "pm"
	} else {
		ctx.RoomType = p.rooms.RoomType(room)
	}
	if targetRoom != "" {
		ctx.TargetRoom = targetRoom
	}
	ctx.Lang = p.languageFor(room)
	return ctx
}

// Parser exposes the owning parser, for handlers that administer it.
func (c *Context) Parser() *Parser { return c.parser }

// Send hands data to the transport for the default destination.
func (c *Context) Send(data string) { c.parser.sender.Send(data) }

// SendTo hands data to the transport for one room.
func (c *Context) SendTo(room, data string) { c.parser.sender.SendTo(room, data) }

// SendPM sends a private message.
func (c *Context) SendPM(to, data string) { c.parser.sender.PM(to, data) }

// Reply answers where the command came from: PM for private commands,
// an announcement when the wall flag is set and permitted, the source
// room otherwise.
func (c *Context) Reply(msg string) {
	switch {
	case c.IsPM:
		c.SendPM(c.ByIdent.ID, msg)
	case c.Wall && c.Can("wall", c.Room):
		c.WallReply(msg)
	default:
		c.SendTo(c.Room, msg)
	}
}

// WallReply announces msg in the source room when the bot itself ranks
// high enough there, and falls back to a plain message when not.
func (c *Context) WallReply(msg string) {
	botID := text.ToID(c.parser.rooms.BotNick())
	if group, ok := c.parser.rooms.UserGroup(c.Room, botID); ok &&
		c.parser.hierarchy.AtLeast(group, "driver") {
		c.SendTo(c.Room, "/announce "+msg)
		return
	}
	c.SendTo(c.Room, msg)
}

// PmReply answers via private message regardless of source.
func (c *Context) PmReply(msg string) {
	c.SendPM(c.ByIdent.ID, msg)
}

// RestrictReply replies publicly when the sender holds perm, privately
// otherwise. Dynamic replies and error messages use it so unprivileged
// users cannot make the bot spam a room.
func (c *Context) RestrictReply(msg, perm string) {
	if c.Can(perm, c.Room) {
		c.Reply(msg)
	} else {
		c.PmReply(msg)
	}
}

// ErrorReply reports a failure, never as an announcement.
func (c *Context) ErrorReply(msg string) {
	c.Wall = false
	c.RestrictReply(msg, "info")
}

// ReplyAccessDenied reports a permission denial naming the permission.
func (c *Context) ReplyAccessDenied(perm string) {
	c.PmReply("Access denied. You need the permission " + text.Italics(perm) + " to do this.")
}

// Can checks a permission for the sender.
func (c *Context) Can(perm, room string) bool {
	return c.parser.Can(c.ByIdent, perm, room)
}

// IsExcepted reports whether the sender holds the global bypass.
func (c *Context) IsExcepted() bool {
	return c.parser.data.Exceptions[c.ByIdent.ID]
}

// UsageArg describes one argument for Usage.
type UsageArg struct {
	Desc     string
	Optional bool
}

// Usage formats a usage line for the current command.
func (c *Context) Usage(args ...UsageArg) string {
	var b strings.Builder
	b.WriteString("Usage: ")
	b.WriteString(c.Token + c.Cmd + " ")
	parts := make([]string, len(args))
	for i, a := range args {
		if a.Optional {
			parts[i] = "[" + a.Desc + "]"
		} else {
			parts[i] = "<" + a.Desc + ">"
		}
	}
	b.WriteString(text.Italics(strings.Join(parts, ", ")))
	return b.String()
}

// ParseArguments interprets the comma arguments as id=value pairs.
// Bare ids map to the empty string.
func (c *Context) ParseArguments() map[string]string {
	parsed := make(map[string]string, len(c.Args))
	for _, a := range c.Args {
		id, val, _ := strings.Cut(a, "=")
		parsed[text.ToID(id)] = strings.TrimSpace(val)
	}
	return parsed
}

// String describes the execution for logs.
func (c *Context) String() string {
	return fmt.Sprintf("[Room: %s] [By: %s] [Target: %s] [Token: %s] [Cmd: %s] [Arg: %s]",
		c.Room, c.By, c.TargetRoom, c.Token, c.Cmd, c.Arg)
}
