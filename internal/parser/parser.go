// Package parser is the command dispatch engine: it turns raw chat and
// PM lines into command executions, subject to the permission
// hierarchy, abuse and anti-spam protection, the trigger pipeline and
// typo-tolerant command search.
package parser

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/4N5H64M3R/Showdown-ChatBot/pkg/text"
)

const (
	// MaxCmdFlood commands within FloodInterval lock a user out.
	MaxCmdFlood   = 30
	FloodInterval = 45 * time.Second
	// HelpMsgInterval rate-limits the PM help message per user.
	HelpMsgInterval = 2 * time.Minute
	// CommandWaitInterval is the anti-spam cooldown between private
	// commands from one user.
	CommandWaitInterval = 1500 * time.Millisecond
)

// Sender is the transport side the parser replies through. Sends are
// fire-and-forget; delivery and ordering are the transport's problem.
type Sender interface {
	Send(data string)
	SendTo(room, data string)
	PM(user, data string)
}

// RoomProvider exposes the transport's view of joined rooms.
type RoomProvider interface {
	// RoomType returns "chat", "battle", "pm" or "unknown".
	RoomType(room string) string
	// UserGroup returns the rank symbol of a user in a room.
	UserGroup(room, userID string) (string, bool)
	BotNick() string
}

// Store persists the parser document.
type Store interface {
	Load(key string, v any) error
	Put(key string, v any)
	Save() error
}

// Settings is the static configuration the parser needs.
type Settings struct {
	// Tokens are the command prefixes, checked in order.
	Tokens []string
	// Groups is the rank order, lowest first.
	Groups []string
	// NamedGroups maps long rank names to group symbols.
	NamedGroups map[string]string
	// DefaultLanguage and RoomLanguages drive Context.Lang.
	DefaultLanguage  string
	RoomLanguages    map[string]string
	MaxMessageLength int
}

// CommandError is the structured failure a handler reports: an
// identifying code plus a human message. The dispatcher converts it to
// the generic crash reply.
type CommandError struct {
	Code    string
	Message string
}

func (e *CommandError) Error() string {
	return e.Code + ": " + e.Message
}

// Parser is the command dispatch engine. One instance processes lines
// strictly one at a time; nothing here blocks or runs concurrently.
type Parser struct {
	log      zerolog.Logger
	store    Store
	sender   Sender
	rooms    RoomProvider
	settings Settings

	hierarchy   *GroupHierarchy
	commands    map[string]*StaticCommand
	permissions map[string]PermAttribs
	triggers    *TriggerPipeline
	monitor     *AbuseMonitor
	antispam    *AntiSpamThrottle
	data        *Data

	lastHelp map[string]time.Time
	clock    func() time.Time
}

// New loads the persisted document and assembles the engine.
func New(store Store, sender Sender, rooms RoomProvider, settings Settings, log zerolog.Logger) (*Parser, error) {
	data := &Data{}
	if err := store.Load(storageKey, data); err != nil {
		return nil, fmt.Errorf("loading parser data: %w", err)
	}
	data.fillDefaults()

	p := &Parser{
		log:         log.With().Str("component", "parser").Logger(),
		store:       store,
		sender:      sender,
		rooms:       rooms,
		settings:    settings,
		hierarchy:   NewGroupHierarchy(settings.Groups, settings.NamedGroups),
		commands:    make(map[string]*StaticCommand),
		permissions: defaultPermissions(),
		triggers:    NewTriggerPipeline(),
		monitor:     NewAbuseMonitor(MaxCmdFlood, FloodInterval),
		antispam:    NewAntiSpamThrottle(CommandWaitInterval),
		data:        data,
		lastHelp:    make(map[string]time.Time),
		clock:       time.Now,
	}

	p.monitor.OnLock = func(user, reason string) {
		p.log.Warn().Str("user", user).Str("reason", reason).Msg("abuse lock")
	}
	p.monitor.OnUnlock = func(user string) {
		p.log.Info().Str("user", user).Msg("abuse unlock")
	}

	return p, nil
}

// Hierarchy exposes the group comparison used by permission checks.
func (p *Parser) Hierarchy() *GroupHierarchy { return p.hierarchy }

// Data exposes the persisted document. Mutations are synchronous with
// dispatch; call Save to flush them.
func (p *Parser) Data() *Data { return p.data }

// Save writes the document back to persistent storage.
func (p *Parser) Save() error {
	p.store.Put(storageKey, p.data)
	return p.store.Save()
}

// AddTrigger registers a trigger; see TriggerMode for semantics.
func (p *Parser) AddTrigger(id string, mode TriggerMode, fn Trigger) {
	p.triggers.Add(id, mode, fn)
}

// RemoveTrigger drops a trigger.
func (p *Parser) RemoveTrigger(id string, mode TriggerMode) {
	p.triggers.Remove(id, mode)
}

// IsLocked reports whether the abuse monitor has locked a user.
func (p *Parser) IsLocked(userID string) bool { return p.monitor.IsLocked(userID) }

// Unlock clears an abuse lock. Administrative commands call this; the
// engine never unlocks on its own.
func (p *Parser) Unlock(userID string) { p.monitor.Unlock(userID) }

// Parse is the single entry point: one raw chat or PM line in, all
// routing, protection and execution behind it. room is empty for
// private messages; by is the sender string with rank prefix.
func (p *Parser) Parse(msg, room, by string) {
	// Server conveniences handled before anything else: an /invite in
	// PM behaves like a joinroom command, and /html wrappers are
	// transparent.
	if room == "" && strings.HasPrefix(msg, "/invite ") {
		token := ""
		if len(p.settings.Tokens) > 0 {
			token = p.settings.Tokens[0]
		}
		p.Parse(token+"joinroom "+msg[len("/invite "):], room, by)
		return
	}
	if strings.HasPrefix(msg, "/html ") {
		p.Parse(msg[len("/html "):], room, by)
		return
	}

	userID := text.ToID(by)
	excepted := p.data.Exceptions[userID]

	// Protective drops are silent: replying would tell an abusive
	// sender exactly when the throttle ends.
	if !excepted {
		if room != "" && p.data.Sleep[room] {
			return
		}
		if p.monitor.IsLocked(userID) {
			return
		}
		if p.checkAntiSpam(userID, room) {
			return
		}
	}

	// Target room: a [roomid] override for globally excepted senders,
	// else a room-control redirect.
	tarRoom := room
	if closeIdx := strings.Index(msg, "]"); strings.HasPrefix(msg, "[") && closeIdx != -1 && excepted {
		tarRoom = text.ToRoomID(msg[1:closeIdx])
		msg = msg[closeIdx+1:]
	} else if room != "" && p.data.RoomCtrl[room] != "" {
		tarRoom = p.data.RoomCtrl[room]
	}

	token := ""
	for _, t := range p.settings.Tokens {
		if strings.HasPrefix(msg, t) {
			token = t
			break
		}
	}
	if token == "" {
		if room == "" && p.data.HelpMsg != "" {
			p.sendHelpMsg(userID, by)
		}
		return
	}

	rest := msg[len(token):]
	cmd, arg, _ := strings.Cut(rest, " ")
	cmd = text.ToCmdID(cmd)

	ctx := newContext(p, room, by, token, cmd, arg, tarRoom, false)

	if p.triggers.RunBefore(ctx) {
		return
	}

	matched, err := p.execCommand(ctx)
	if !matched {
		p.triggers.RunAfter(ctx)
		return
	}
	if err != nil {
		p.reportFailure(ctx, err)
		return
	}
	if !excepted {
		p.monitor.Count(userID)
		p.markPrivateCommand(userID, room)
	}
}

// execCommand resolves and runs the command for ctx, static first,
// then dynamic. A panic anywhere below becomes a structured failure
// here; this is the only recovery boundary in the engine.
func (p *Parser) execCommand(ctx *Context) (matched bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			matched = true
			err = &CommandError{Code: "PANIC", Message: fmt.Sprint(r)}
		}
	}()
	matched, err = p.execStatic(ctx)
	if !matched {
		matched, err = p.execDyn(ctx)
	}
	return matched, err
}

// reportFailure logs a handler failure with its full context and tells
// the user the command failed, without taking the process down.
func (p *Parser) reportFailure(ctx *Context, err error) {
	cmdErr, ok := err.(*CommandError)
	if !ok {
		cmdErr = &CommandError{Code: "ERR", Message: err.Error()}
	}
	p.log.Error().
		Str("code", cmdErr.Code).
		Str("context", ctx.String()).
		Msg("command crashed: " + cmdErr.Message)
	ctx.ErrorReply("The command crashed: " + cmdErr.Code + " (" + cmdErr.Message + ")")
}

// sendHelpMsg PMs the configured help message, at most once per user
// per HelpMsgInterval.
func (p *Parser) sendHelpMsg(userID, by string) {
	now := p.clock()
	for user, ts := range p.lastHelp {
		if now.Sub(ts) >= HelpMsgInterval {
			delete(p.lastHelp, user)
		}
	}
	if _, recent := p.lastHelp[userID]; recent {
		return
	}
	p.lastHelp[userID] = now

	helpMsg := p.data.HelpMsg
	helpMsg = strings.Replace(helpMsg, "$USER", ParseUserIdent(by).Name, 1)
	helpMsg = strings.Replace(helpMsg, "$BOT", p.rooms.BotNick(), 1)
	p.sender.PM(userID, text.StripCommands(helpMsg))
}

// checkAntiSpam reports whether the anti-spam throttle should drop a
// command. Public chat rooms are exempt; the system as a whole can be
// switched off in the document.
func (p *Parser) checkAntiSpam(userID, room string) bool {
	if !p.data.AntiSpam {
		return false
	}
	if room != "" && p.rooms.RoomType(room) == "chat" {
		return false
	}
	return p.antispam.Check(userID)
}

// markPrivateCommand records a non-public command for the throttle.
func (p *Parser) markPrivateCommand(userID, room string) {
	if !p.data.AntiSpam {
		return
	}
	if room != "" && p.rooms.RoomType(room) == "chat" {
		return
	}
	p.antispam.Mark(userID)
}

// languageFor resolves the reply language for a room.
func (p *Parser) languageFor(room string) string {
	if room == "" {
		return p.settings.DefaultLanguage
	}
	if lang, ok := p.settings.RoomLanguages[room]; ok {
		return lang
	}
	return p.settings.DefaultLanguage
}
