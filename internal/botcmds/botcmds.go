// Package botcmds wires the built-in command set and triggers into the
// command parser. Everything here goes through the same registration
// surface an external add-on would use.
package botcmds

import (
	"strings"
	"time"

	"github.com/4N5H64M3R/Showdown-ChatBot/internal/parser"
	"github.com/4N5H64M3R/Showdown-ChatBot/internal/version"
	"github.com/4N5H64M3R/Showdown-ChatBot/pkg/text"
)

var startTime = time.Now()

// Register installs the built-in commands, their permissions and the
// command-suggestion trigger.
func Register(p *parser.Parser) {
	p.AddPermission("joinroom", parser.PermAttribs{Excepted: true})
	p.AddPermission("alias", parser.PermAttribs{Group: "owner"})
	p.AddPermission("set", parser.PermAttribs{Group: "owner"})
	p.AddPermission("sleep", parser.PermAttribs{Group: "owner"})
	p.AddPermission("dyncmd", parser.PermAttribs{Group: "owner"})
	p.AddPermission("unlock", parser.PermAttribs{Excepted: true})
	p.AddPermission("helpmsg", parser.PermAttribs{Excepted: true})

	p.AddCommands(map[string]parser.CommandDef{
		"ping":    {Handler: cmdPing},
		"version": {Handler: cmdVersion},
		"uptime":  {Handler: cmdUptime},
		"cmdlist": {Handler: cmdList},

		"joinroom":   {Handler: cmdJoinRoom},
		"leaveroom":  {Handler: cmdLeaveRoom},
		"setalias":   {Handler: cmdSetAlias},
		"rmalias":    {Handler: cmdRmAlias},
		"setperm":    {Handler: cmdSetPerm},
		"sleep":      {Handler: cmdSleep},
		"wake":       {Handler: cmdWake},
		"roomctrl":   {Handler: cmdRoomCtrl},
		"unlock":     {Handler: cmdUnlock},
		"sethelpmsg": {Handler: cmdSetHelpMsg},
		"setdyn":     {Handler: cmdSetDyn},
		"rmdyn":      {Handler: cmdRmDyn},
		"antispam":   {Handler: cmdAntiSpam},

		"commands": {Alias: "cmdlist"},
		"join":     {Alias: "joinroom"},
		"leave":    {Alias: "leaveroom"},
	})

	p.AddTrigger("didyoumean", parser.TriggerAfter, suggestCommand)
}

func cmdPing(ctx *parser.Context) error {
	ctx.Reply("Pong!")
	return nil
}

func cmdVersion(ctx *parser.Context) error {
	ctx.RestrictReply(text.Bold(version.AppName)+" v"+version.Version+
		" (built "+version.BuildDate+", "+version.GoVersion+")", "info")
	return nil
}

func cmdUptime(ctx *parser.Context) error {
	up := time.Since(startTime).Round(time.Second)
	ctx.RestrictReply("Uptime: "+text.Bold(up.String()), "info")
	return nil
}

func cmdList(ctx *parser.Context) error {
	ids := ctx.Parser().CommandIDs()
	ctx.RestrictReply("Available commands: "+strings.Join(ids, ", "), "info")
	return nil
}

// suggestCommand answers unknown private commands with the closest
// registered id. Rooms are left alone so typos cannot make the bot
// chatter publicly.
func suggestCommand(ctx *parser.Context) bool {
	if !ctx.IsPM {
		return false
	}
	match := ctx.Parser().SearchCommand(ctx.Cmd)
	if match == "" {
		return false
	}
	ctx.PmReply("Unknown command. Did you mean " + text.Bold(ctx.Token+match) + "?")
	return true
}
