package botcmds

import (
	"strings"

	"github.com/4N5H64M3R/Showdown-ChatBot/internal/parser"
	"github.com/4N5H64M3R/Showdown-ChatBot/pkg/text"
)

// cmdSetDyn creates or replaces a dynamic command. The first argument
// is the command path ("faq" or "faq rules" for a sub-command), the
// rest of the line after the comma is the reply text. Intermediate
// branches are created as needed; setting a sub-command under a leaf
// turns the leaf into a branch.
func cmdSetDyn(ctx *parser.Context) error {
	if !ctx.Can("dyncmd", ctx.Room) {
		ctx.ReplyAccessDenied("dyncmd")
		return nil
	}
	pathArg, reply, ok := strings.Cut(ctx.Arg, ",")
	reply = strings.TrimSpace(reply)
	if !ok || reply == "" {
		ctx.ErrorReply(ctx.Usage(parser.UsageArg{Desc: "command"}, parser.UsageArg{Desc: "reply"}))
		return nil
	}
	path := cmdPath(pathArg)
	if len(path) == 0 {
		ctx.ErrorReply(ctx.Usage(parser.UsageArg{Desc: "command"}, parser.UsageArg{Desc: "reply"}))
		return nil
	}

	p := ctx.Parser()
	if len(path) == 1 {
		p.Data().DynCmds[path[0]] = &parser.DynNode{Reply: reply}
	} else {
		root := p.Data().DynCmds[path[0]]
		if root == nil || root.IsLeaf() {
			root = &parser.DynNode{Children: map[string]*parser.DynNode{}}
			p.Data().DynCmds[path[0]] = root
		}
		node := root
		for _, sub := range path[1 : len(path)-1] {
			child := node.Children[sub]
			if child == nil || child.IsLeaf() {
				child = &parser.DynNode{Children: map[string]*parser.DynNode{}}
				node.Children[sub] = child
			}
			node = child
		}
		node.Children[path[len(path)-1]] = &parser.DynNode{Reply: reply}
	}
	if err := p.Save(); err != nil {
		return err
	}
	ctx.Reply("Command " + text.Italics(strings.Join(path, " ")) + " set.")
	return nil
}

// cmdRmDyn removes a dynamic command or sub-command by path.
func cmdRmDyn(ctx *parser.Context) error {
	if !ctx.Can("dyncmd", ctx.Room) {
		ctx.ReplyAccessDenied("dyncmd")
		return nil
	}
	path := cmdPath(ctx.Arg)
	if len(path) == 0 {
		ctx.ErrorReply(ctx.Usage(parser.UsageArg{Desc: "command"}))
		return nil
	}

	p := ctx.Parser()
	name := strings.Join(path, " ")
	if len(path) == 1 {
		if _, ok := p.Data().DynCmds[path[0]]; !ok {
			ctx.ErrorReply("The command " + text.Italics(name) + " does not exist.")
			return nil
		}
		delete(p.Data().DynCmds, path[0])
	} else {
		node := p.Data().DynCmds[path[0]]
		for _, sub := range path[1 : len(path)-1] {
			if node == nil || node.IsLeaf() {
				node = nil
				break
			}
			node = node.Children[sub]
		}
		last := path[len(path)-1]
		if node == nil || node.IsLeaf() {
			ctx.ErrorReply("The command " + text.Italics(name) + " does not exist.")
			return nil
		}
		if _, ok := node.Children[last]; !ok {
			ctx.ErrorReply("The command " + text.Italics(name) + " does not exist.")
			return nil
		}
		delete(node.Children, last)
	}
	if err := p.Save(); err != nil {
		return err
	}
	ctx.Reply("Command " + text.Italics(name) + " removed.")
	return nil
}

func cmdPath(arg string) []string {
	var path []string
	for _, part := range strings.Fields(arg) {
		if id := text.ToCmdID(part); id != "" {
			path = append(path, id)
		}
	}
	return path
}
