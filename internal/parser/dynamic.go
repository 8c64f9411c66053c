package parser

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/4N5H64M3R/Showdown-ChatBot/pkg/text"
)

// DynNode is one node of the user-editable command tree: either a leaf
// holding a reply string or a branch mapping sub-command ids to child
// nodes. The persisted JSON form is the string itself for leaves and
// an object for branches.
type DynNode struct {
	Reply    string
	Children map[string]*DynNode
}

// IsLeaf reports whether the node is a terminal reply.
func (n *DynNode) IsLeaf() bool { return n.Children == nil }

func (n *DynNode) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		n.Reply = s
		n.Children = nil
		return nil
	}
	var children map[string]*DynNode
	if err := json.Unmarshal(b, &children); err != nil {
		return fmt.Errorf("dynamic command node must be a string or an object: %w", err)
	}
	if children == nil {
		children = map[string]*DynNode{}
	}
	n.Reply = ""
	n.Children = children
	return nil
}

func (n *DynNode) MarshalJSON() ([]byte, error) {
	if n.IsLeaf() {
		return json.Marshal(n.Reply)
	}
	return json.Marshal(n.Children)
}

// execDyn resolves the context command against the dynamic tree,
// following one alias hop like the static path does. It reports
// whether a dynamic command matched.
func (p *Parser) execDyn(ctx *Context) (bool, error) {
	id := ctx.Cmd
	node, ok := p.data.DynCmds[id]
	if !ok {
		if target, aliased := p.data.Aliases[id]; aliased {
			if node, ok = p.data.DynCmds[target]; ok {
				id = target
			}
		}
	}
	if !ok {
		return false, nil
	}
	ctx.handler = id
	return true, p.runDynNode(node, ctx)
}

func (p *Parser) runDynNode(node *DynNode, ctx *Context) error {
	if node.IsLeaf() {
		ctx.RestrictReply(text.StripCommands(node.Reply), "info")
		return nil
	}
	if len(ctx.Args) == 0 {
		p.listDynChildren(node, ctx, "")
		return nil
	}

	arg := text.ToCmdID(ctx.Args[0])
	ctx.Args = ctx.Args[1:]
	path := ctx.Cmd
	ctx.Cmd += " " + arg

	if child, ok := node.Children[arg]; ok {
		return p.runDynNode(child, ctx)
	}
	if len(node.Children) > 0 {
		ctx.Cmd = path
		p.listDynChildren(node, ctx, arg)
	}
	return nil
}

// listDynChildren replies with the sub-commands available under a
// branch node, split across messages when the listing gets long.
func (p *Parser) listDynChildren(node *DynNode, ctx *Context, badArg string) {
	subs := make([]string, 0, len(node.Children))
	for id := range node.Children {
		subs = append(subs, id)
	}
	sort.Strings(subs)

	spl := text.NewLineSplitter(p.settings.MaxMessageLength)
	head := ""
	if badArg != "" {
		head = "Unknown option. "
	}
	spl.Add(head + "Available options for " + text.Bold(ctx.Cmd) + ":")
	for i, sub := range subs {
		sep := ","
		if i == len(subs)-1 {
			sep = ""
		}
		spl.Add(" " + sub + sep)
	}
	for _, line := range spl.Lines() {
		ctx.ErrorReply(line)
	}
}
