package parser

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDynNodeJSON(t *testing.T) {
	raw := `{"ping":"pong","faq":{"rules":"no spam","links":{"site":"example.org"}}}`
	var cmds map[string]*DynNode
	require.NoError(t, json.Unmarshal([]byte(raw), &cmds))

	require.True(t, cmds["ping"].IsLeaf())
	assert.Equal(t, "pong", cmds["ping"].Reply)

	faq := cmds["faq"]
	require.False(t, faq.IsLeaf())
	assert.Equal(t, "no spam", faq.Children["rules"].Reply)
	assert.Equal(t, "example.org", faq.Children["links"].Children["site"].Reply)

	// Leaves serialize back to plain strings, branches to objects.
	out, err := json.Marshal(cmds["ping"])
	require.NoError(t, err)
	assert.Equal(t, `"pong"`, string(out))
	out, err = json.Marshal(faq.Children["links"])
	require.NoError(t, err)
	assert.JSONEq(t, `{"site":"example.org"}`, string(out))
}

func TestDynNodeRejectsInvalidJSON(t *testing.T) {
	var n DynNode
	assert.Error(t, json.Unmarshal([]byte(`42`), &n))
	assert.Error(t, json.Unmarshal([]byte(`["a"]`), &n))
}

func TestDynamicLeafReply(t *testing.T) {
	p, sender, _ := newTestParser(t)
	p.data.DynCmds["faq"] = &DynNode{Reply: "read the rules"}

	p.Parse(".faq", "", "+Alice")
	msg := sender.last(t)
	assert.Equal(t, "pm", msg.Kind)
	assert.Equal(t, "alice", msg.To)
	assert.Equal(t, "read the rules", msg.Data)
}

func TestDynamicLeafReplyIsEscaped(t *testing.T) {
	p, sender, _ := newTestParser(t)
	p.data.DynCmds["evil"] = &DynNode{Reply: "/ban everyone"}

	p.Parse(".evil", "", "+Alice")
	assert.Equal(t, "//ban everyone", sender.last(t).Data)
}

func TestDynamicBranchDescent(t *testing.T) {
	p, sender, _ := newTestParser(t)
	p.data.DynCmds["help"] = &DynNode{Children: map[string]*DynNode{
		"bar": {Reply: "hello"},
	}}

	p.Parse(".help bar", "", "+Alice")
	assert.Equal(t, "hello", sender.last(t).Data)
}

func TestDynamicBranchListsOptions(t *testing.T) {
	p, sender, _ := newTestParser(t)
	p.data.DynCmds["help"] = &DynNode{Children: map[string]*DynNode{
		"bar": {Reply: "hello"},
		"baz": {Reply: "world"},
	}}

	// No sub-command: plain listing.
	p.Parse(".help", "", "+Alice")
	msg := sender.last(t)
	assert.Equal(t, "Available options for **help**: bar, baz", msg.Data)

	// Unknown sub-command: the same listing with a complaint, and the
	// command path does not include the bad argument.
	sender.reset()
	p.Parse(".help qux", "", "+Alice")
	msg = sender.last(t)
	assert.Equal(t, "Unknown option. Available options for **help**: bar, baz", msg.Data)
}

func TestDynamicNestedUnknownKeepsConsumedPath(t *testing.T) {
	p, sender, _ := newTestParser(t)
	p.data.DynCmds["faq"] = &DynNode{Children: map[string]*DynNode{
		"links": {Children: map[string]*DynNode{
			"site": {Reply: "example.org"},
		}},
	}}

	p.Parse(".faq links, nope", "", "+Alice")
	msg := sender.last(t)
	assert.Equal(t, "Unknown option. Available options for **faq links**: site", msg.Data)
}

func TestDynamicAliasHop(t *testing.T) {
	p, sender, _ := newTestParser(t)
	p.data.DynCmds["faq"] = &DynNode{Reply: "read the rules"}
	p.data.Aliases["f"] = "faq"

	p.Parse(".f", "", "+Alice")
	assert.Equal(t, "read the rules", sender.last(t).Data)
}
