package storage

import (
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestLoadPutSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bot.json")

	s, err := New(path, zerolog.Nop())
	require.NoError(t, err)

	type doc struct {
		HelpMsg  string            `json:"helpmsg"`
		Aliases  map[string]string `json:"aliases"`
		AntiSpam bool              `json:"antispam"`
	}

	// Missing section leaves the value untouched.
	d := doc{HelpMsg: "default"}
	require.NoError(t, s.Load("cmd-parser", &d))
	require.Equal(t, "default", d.HelpMsg)

	d.Aliases = map[string]string{"tour": "newtour"}
	d.AntiSpam = true
	s.Put("cmd-parser", d)
	require.NoError(t, s.Save())
	require.NoError(t, s.Close())

	s2, err := New(path, zerolog.Nop())
	require.NoError(t, err)
	defer s2.Close()

	var d2 doc
	require.NoError(t, s2.Load("cmd-parser", &d2))
	require.True(t, d2.AntiSpam)
	require.Equal(t, "newtour", d2.Aliases["tour"])
}
