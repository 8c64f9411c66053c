package botcmds

import (
	"github.com/4N5H64M3R/Showdown-ChatBot/internal/parser"
	"github.com/4N5H64M3R/Showdown-ChatBot/pkg/text"
)

func cmdJoinRoom(ctx *parser.Context) error {
	if !ctx.Can("joinroom", "") {
		ctx.ReplyAccessDenied("joinroom")
		return nil
	}
	if ctx.Arg == "" {
		ctx.ErrorReply(ctx.Usage(parser.UsageArg{Desc: "room"}))
		return nil
	}
	for _, room := range ctx.Args {
		ctx.Send("/join " + text.ToRoomID(room))
	}
	return nil
}

func cmdLeaveRoom(ctx *parser.Context) error {
	if !ctx.Can("joinroom", "") {
		ctx.ReplyAccessDenied("joinroom")
		return nil
	}
	room := text.ToRoomID(ctx.Arg)
	if room == "" {
		room = ctx.TargetRoom
	}
	if room == "" {
		ctx.ErrorReply(ctx.Usage(parser.UsageArg{Desc: "room"}))
		return nil
	}
	ctx.SendTo(room, "/leave")
	return nil
}

func cmdSetAlias(ctx *parser.Context) error {
	if !ctx.Can("alias", ctx.Room) {
		ctx.ReplyAccessDenied("alias")
		return nil
	}
	if len(ctx.Args) < 2 {
		ctx.ErrorReply(ctx.Usage(parser.UsageArg{Desc: "alias"}, parser.UsageArg{Desc: "command"}))
		return nil
	}
	alias := text.ToCmdID(ctx.Args[0])
	target := text.ToCmdID(ctx.Args[1])
	p := ctx.Parser()
	if !p.CommandExists(target) {
		ctx.ErrorReply("The command " + text.Italics(target) + " does not exist.")
		return nil
	}
	p.Data().Aliases[alias] = target
	if err := p.Save(); err != nil {
		return err
	}
	ctx.Reply("Alias " + text.Italics(alias) + " now points to " + text.Italics(target) + ".")
	return nil
}

func cmdRmAlias(ctx *parser.Context) error {
	if !ctx.Can("alias", ctx.Room) {
		ctx.ReplyAccessDenied("alias")
		return nil
	}
	alias := text.ToCmdID(ctx.Arg)
	p := ctx.Parser()
	if _, ok := p.Data().Aliases[alias]; !ok {
		ctx.ErrorReply("The alias " + text.Italics(alias) + " does not exist.")
		return nil
	}
	delete(p.Data().Aliases, alias)
	if err := p.Save(); err != nil {
		return err
	}
	ctx.Reply("Alias " + text.Italics(alias) + " removed.")
	return nil
}

// cmdSetPerm configures the required group of a permission. Used in a
// room it edits that room's table, in private it edits the global one.
func cmdSetPerm(ctx *parser.Context) error {
	if len(ctx.Args) < 2 {
		ctx.ErrorReply(ctx.Usage(parser.UsageArg{Desc: "permission"}, parser.UsageArg{Desc: "group"}))
		return nil
	}
	perm := text.ToID(ctx.Args[0])
	group := ctx.Args[1]
	p := ctx.Parser()
	if !p.CanSet(ctx.ByIdent, perm, ctx.Room, group) {
		ctx.ReplyAccessDenied("set")
		return nil
	}
	if ctx.Room == "" {
		p.Data().Permissions[perm] = group
	} else {
		room := ctx.TargetRoom
		if p.Data().RoomPermissions[room] == nil {
			p.Data().RoomPermissions[room] = map[string]string{}
		}
		p.Data().RoomPermissions[room][perm] = group
	}
	if err := p.Save(); err != nil {
		return err
	}
	ctx.Reply("Permission " + text.Italics(perm) + " now requires group " + text.Italics(group) + ".")
	return nil
}

func cmdSleep(ctx *parser.Context) error {
	if !ctx.Can("sleep", ctx.Room) {
		ctx.ReplyAccessDenied("sleep")
		return nil
	}
	room := ctx.TargetRoom
	if room == "" {
		ctx.ErrorReply("This command only works in rooms.")
		return nil
	}
	p := ctx.Parser()
	p.Data().Sleep[room] = true
	if err := p.Save(); err != nil {
		return err
	}
	ctx.Reply("Now sleeping in this room. Good night!")
	return nil
}

func cmdWake(ctx *parser.Context) error {
	if !ctx.Can("sleep", ctx.Room) {
		ctx.ReplyAccessDenied("sleep")
		return nil
	}
	room := ctx.TargetRoom
	p := ctx.Parser()
	if !p.Data().Sleep[room] {
		ctx.ErrorReply("I was not sleeping here.")
		return nil
	}
	delete(p.Data().Sleep, room)
	if err := p.Save(); err != nil {
		return err
	}
	ctx.Reply("Good morning!")
	return nil
}

// cmdRoomCtrl points a control room at a target room, so commands typed
// in the control room act on the target. An empty argument clears the
// redirect.
func cmdRoomCtrl(ctx *parser.Context) error {
	if !ctx.IsExcepted() {
		ctx.ReplyAccessDenied("roomctrl")
		return nil
	}
	if ctx.Room == "" {
		ctx.ErrorReply("This command only works in rooms.")
		return nil
	}
	p := ctx.Parser()
	target := text.ToRoomID(ctx.Arg)
	if target == "" {
		delete(p.Data().RoomCtrl, ctx.Room)
		ctx.Reply("Room control cleared.")
	} else {
		p.Data().RoomCtrl[ctx.Room] = target
		ctx.Reply("Commands here now act on " + text.Italics(target) + ".")
	}
	return p.Save()
}

func cmdUnlock(ctx *parser.Context) error {
	if !ctx.Can("unlock", "") {
		ctx.ReplyAccessDenied("unlock")
		return nil
	}
	user := text.ToID(ctx.Arg)
	if user == "" {
		ctx.ErrorReply(ctx.Usage(parser.UsageArg{Desc: "user"}))
		return nil
	}
	p := ctx.Parser()
	if !p.IsLocked(user) {
		ctx.ErrorReply("The user " + text.Italics(user) + " is not locked.")
		return nil
	}
	p.Unlock(user)
	ctx.Reply("The user " + text.Italics(user) + " was unlocked.")
	return nil
}

// cmdSetHelpMsg sets the message PMed to users who talk to the bot
// without a command. $USER and $BOT are substituted on delivery; an
// empty argument disables the message.
func cmdSetHelpMsg(ctx *parser.Context) error {
	if !ctx.Can("helpmsg", "") {
		ctx.ReplyAccessDenied("helpmsg")
		return nil
	}
	p := ctx.Parser()
	p.Data().HelpMsg = ctx.Arg
	if err := p.Save(); err != nil {
		return err
	}
	if ctx.Arg == "" {
		ctx.Reply("Help message disabled.")
	} else {
		ctx.Reply("Help message updated.")
	}
	return nil
}

func cmdAntiSpam(ctx *parser.Context) error {
	if !ctx.IsExcepted() {
		ctx.ReplyAccessDenied("antispam")
		return nil
	}
	p := ctx.Parser()
	switch text.ToID(ctx.Arg) {
	case "on":
		p.Data().AntiSpam = true
	case "off":
		p.Data().AntiSpam = false
	default:
		ctx.ErrorReply(ctx.Usage(parser.UsageArg{Desc: "on / off"}))
		return nil
	}
	if err := p.Save(); err != nil {
		return err
	}
	ctx.Reply("Anti-spam is now " + text.Bold(text.ToID(ctx.Arg)) + ".")
	return nil
}
