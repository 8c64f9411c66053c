package parser

import (
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type sentMsg struct {
	Kind string // "send", "room" or "pm"
	To   string
	Data string
}

type fakeSender struct {
	sent []sentMsg
}

func (s *fakeSender) Send(data string) {
	s.sent = append(s.sent, sentMsg{Kind: "send", Data: data})
}

func (s *fakeSender) SendTo(room, data string) {
	s.sent = append(s.sent, sentMsg{Kind: "room", To: room, Data: data})
}

func (s *fakeSender) PM(user, data string) {
	s.sent = append(s.sent, sentMsg{Kind: "pm", To: user, Data: data})
}

func (s *fakeSender) reset() { s.sent = nil }

func (s *fakeSender) last(t *testing.T) sentMsg {
	t.Helper()
	require.NotEmpty(t, s.sent, "expected a message to be sent")
	return s.sent[len(s.sent)-1]
}

type fakeRooms struct {
	types  map[string]string
	groups map[string]map[string]string
	nick   string
}

func (r *fakeRooms) RoomType(room string) string {
	if t, ok := r.types[room]; ok {
		return t
	}
	return "unknown"
}

func (r *fakeRooms) UserGroup(room, userID string) (string, bool) {
	group, ok := r.groups[room][userID]
	return group, ok
}

func (r *fakeRooms) BotNick() string { return r.nick }

type memStore struct {
	sections map[string]json.RawMessage
	saves    int
}

func newMemStore() *memStore {
	return &memStore{sections: make(map[string]json.RawMessage)}
}

func (s *memStore) Load(key string, v any) error {
	raw, ok := s.sections[key]
	if !ok {
		return nil
	}
	return json.Unmarshal(raw, v)
}

func (s *memStore) Put(key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	s.sections[key] = raw
}

func (s *memStore) Save() error {
	s.saves++
	return nil
}

func testSettings() Settings {
	return Settings{
		Tokens: []string{"."},
		Groups: []string{"+", "%", "@", "*", "#", "&", "~"},
		NamedGroups: map[string]string{
			"voice":  "+",
			"driver": "%",
			"mod":    "@",
			"bot":    "*",
			"owner":  "#",
			"leader": "&",
			"admin":  "~",
		},
		DefaultLanguage:  "english",
		MaxMessageLength: 300,
	}
}

func newTestParser(t *testing.T) (*Parser, *fakeSender, *fakeRooms) {
	t.Helper()
	sender := &fakeSender{}
	rooms := &fakeRooms{
		types:  map[string]string{"lobby": "chat"},
		groups: map[string]map[string]string{},
		nick:   "TestBot",
	}
	p, err := New(newMemStore(), sender, rooms, testSettings(), zerolog.Nop())
	require.NoError(t, err)
	return p, sender, rooms
}
