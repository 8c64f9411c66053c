package showdown

import (
	"strings"
	"unicode/utf8"

	"github.com/4N5H64M3R/Showdown-ChatBot/pkg/text"
)

// Room is the tracked state of one joined room: its type and the rank
// symbol of every present user.
type Room struct {
	Type  string
	Users map[string]string
}

func (c *Client) getRoom(room string) *Room {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.rooms[room]
	if !ok {
		r = &Room{Type: "chat", Users: make(map[string]string)}
		c.rooms[room] = r
	}
	return r
}

// RoomType reports the type of a joined room, "unknown" otherwise.
func (c *Client) RoomType(room string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if r, ok := c.rooms[room]; ok {
		return r.Type
	}
	return "unknown"
}

// UserGroup reports the rank symbol of a user in a joined room.
func (c *Client) UserGroup(room, userID string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	r, ok := c.rooms[room]
	if !ok {
		return "", false
	}
	group, ok := r.Users[userID]
	return group, ok
}

// Rooms lists the ids of joined rooms.
func (c *Client) Rooms() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ids := make([]string, 0, len(c.rooms))
	for id := range c.rooms {
		ids = append(ids, id)
	}
	return ids
}

func (c *Client) initRoom(room, roomType string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.rooms[room] = &Room{Type: roomType, Users: make(map[string]string)}
}

func (c *Client) deinitRoom(room string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.rooms, room)
}

// setUsers replaces the user list from a "|users|" snapshot, which is
// "<count>,<user>,<user>,...".
func (c *Client) setUsers(room, list string) {
	r := c.getRoom(room)
	c.mu.Lock()
	defer c.mu.Unlock()
	r.Users = make(map[string]string)
	parts := strings.Split(list, ",")
	for _, u := range parts[1:] {
		ident := splitUser(u)
		r.Users[ident.id] = ident.group
	}
}

func (c *Client) userJoin(room, user string) {
	r := c.getRoom(room)
	ident := splitUser(user)
	c.mu.Lock()
	r.Users[ident.id] = ident.group
	c.mu.Unlock()
}

func (c *Client) userLeave(room, user string) {
	r := c.getRoom(room)
	ident := splitUser(user)
	c.mu.Lock()
	delete(r.Users, ident.id)
	c.mu.Unlock()
}

func (c *Client) userRename(room, newUser, oldID string) {
	r := c.getRoom(room)
	ident := splitUser(newUser)
	c.mu.Lock()
	delete(r.Users, text.ToID(oldID))
	r.Users[ident.id] = ident.group
	c.mu.Unlock()
}

type userEntry struct {
	id    string
	group string
}

// splitUser separates the rank symbol from a protocol user string. Rank
// symbols may be multibyte (battle lists use stars); the user status
// suffix ("@!" for busy, "@away") is dropped.
func splitUser(user string) userEntry {
	group := " "
	if user != "" {
		r, size := utf8.DecodeRuneInString(user)
		if !(r >= 'a' && r <= 'z') && !(r >= 'A' && r <= 'Z') && !(r >= '0' && r <= '9') {
			group = string(r)
			user = user[size:]
		}
	}
	if at := strings.Index(user, "@"); at != -1 {
		user = user[:at]
	}
	return userEntry{id: text.ToID(user), group: group}
}
