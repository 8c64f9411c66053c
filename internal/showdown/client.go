// Package showdown is the transport adapter: it keeps the websocket
// connection to the chat server, tracks joined rooms and their users,
// and feeds incoming chat and PM lines to the command parser. Outbound
// traffic goes through a throttled send queue because the server drops
// messages sent too fast.
package showdown

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/4N5H64M3R/Showdown-ChatBot/pkg/text"
)

// Config holds the connection settings.
type Config struct {
	URL         string
	LoginServer string
	Nick        string
	Password    string
	// Rooms are joined automatically once the login handshake is done.
	Rooms []string
}

// MessageHandler receives every user-authored chat or PM line. The
// command parser implements it.
type MessageHandler interface {
	Parse(msg, room, by string)
}

// Client owns the server connection and the room state.
type Client struct {
	cfg Config
	log zerolog.Logger

	mu    sync.RWMutex
	conn  *websocket.Conn
	rooms map[string]*Room
	named bool

	queue   *sendQueue
	handler MessageHandler
}

func NewClient(cfg Config, log zerolog.Logger) *Client {
	c := &Client{
		cfg:   cfg,
		log:   log.With().Str("component", "showdown").Logger(),
		rooms: make(map[string]*Room),
	}
	c.queue = newSendQueue(c.write, c.log)
	return c
}

// SetHandler installs the receiver for user messages. Must be called
// before Run.
func (c *Client) SetHandler(h MessageHandler) { c.handler = h }

// Run dials the server and processes incoming frames until the
// connection drops or ctx is canceled.
func (c *Client) Run(ctx context.Context) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, c.cfg.URL, nil)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", c.cfg.URL, err)
	}
	c.mu.Lock()
	c.conn = conn
	c.mu.Unlock()
	defer conn.Close()

	c.log.Info().Str("url", c.cfg.URL).Msg("connected")
	go c.queue.run(ctx)

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("reading from server: %w", err)
		}
		c.handleFrame(string(payload))
	}
}

// handleFrame splits a websocket frame into protocol lines. A leading
// ">roomid" line sets the room context for the rest of the frame.
func (c *Client) handleFrame(frame string) {
	room := ""
	for i, line := range strings.Split(frame, "\n") {
		if i == 0 && strings.HasPrefix(line, ">") {
			room = text.ToRoomID(line[1:])
			continue
		}
		if line == "" {
			continue
		}
		c.handleLine(room, line)
	}
}

// write sends one raw frame. Only the send queue calls this.
func (c *Client) write(data string) error {
	c.mu.RLock()
	conn := c.conn
	c.mu.RUnlock()
	if conn == nil {
		return fmt.Errorf("not connected")
	}
	conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return conn.WriteMessage(websocket.TextMessage, []byte(data))
}

// Send queues data for the server's global room.
func (c *Client) Send(data string) { c.queue.enqueue("|" + data) }

// SendTo queues data for one room.
func (c *Client) SendTo(room, data string) { c.queue.enqueue(room + "|" + data) }

// PM queues a private message.
func (c *Client) PM(user, data string) { c.queue.enqueue("|/pm " + user + ", " + data) }

// BotNick returns the configured nick.
func (c *Client) BotNick() string { return c.cfg.Nick }
