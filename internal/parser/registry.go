package parser

import "reflect"

// Handler executes a static command. A returned error is reported to
// the invoking user as a generic failure; it never escapes the
// dispatcher.
type Handler func(ctx *Context) error

// StaticCommand pairs a command id with its handler. Static commands
// are immutable once registered except through RemoveCommands.
type StaticCommand struct {
	ID   string
	Func Handler
}

func (c *StaticCommand) exec(ctx *Context) error {
	ctx.handler = c.ID
	return c.Func(ctx)
}

// CommandDef is one entry of an AddCommands/RemoveCommands batch:
// either a handler (static command) or an alias target.
type CommandDef struct {
	Handler Handler
	Alias   string
}

// AddCommands registers a batch of static commands and aliases.
// Existing entries are never overwritten; an id collision between two
// add-ons keeps the first registration and logs the loser.
func (p *Parser) AddCommands(cmds map[string]CommandDef) {
	for id, def := range cmds {
		switch {
		case def.Handler != nil:
			if _, exists := p.commands[id]; exists {
				p.log.Warn().Str("cmd", id).Msg("command already registered, keeping existing handler")
				continue
			}
			p.commands[id] = &StaticCommand{ID: id, Func: def.Handler}
		case def.Alias != "":
			if _, exists := p.data.Aliases[id]; !exists {
				p.data.Aliases[id] = def.Alias
			}
		}
	}
}

// RemoveCommands unregisters a batch. An entry is only deleted when
// the stored value is the one the caller passed, so an add-on cannot
// unregister another add-on's command by id collision.
func (p *Parser) RemoveCommands(cmds map[string]CommandDef) {
	for id, def := range cmds {
		switch {
		case def.Handler != nil:
			if sc, exists := p.commands[id]; exists && sameHandler(sc.Func, def.Handler) {
				delete(p.commands, id)
			}
		case def.Alias != "":
			if target, exists := p.data.Aliases[id]; exists && target == def.Alias {
				delete(p.data.Aliases, id)
			}
		}
	}
}

// sameHandler compares handler identity. Go functions are not
// comparable, so identity means the same code pointer.
func sameHandler(a, b Handler) bool {
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

// execStatic resolves the context command against the static registry:
// direct hit, else one alias hop. It reports whether a command ran.
func (p *Parser) execStatic(ctx *Context) (bool, error) {
	if c, ok := p.commands[ctx.Cmd]; ok {
		return true, c.exec(ctx)
	}
	if target, ok := p.data.Aliases[ctx.Cmd]; ok {
		if c, ok := p.commands[target]; ok {
			return true, c.exec(ctx)
		}
	}
	return false, nil
}

// PermAttribs describes a registered permission: the default required
// group, or excepted-only access.
type PermAttribs struct {
	Group    string
	Excepted bool
}

// defaultPermissions is the built-in table of well-known permissions.
func defaultPermissions() map[string]PermAttribs {
	return map[string]PermAttribs{
		"wall": {Group: "driver"},
		"info": {Group: "voice"},
	}
}

// AddPermission registers a permission with its default attributes.
// Already-registered ids keep their existing attributes.
func (p *Parser) AddPermission(id string, attribs PermAttribs) {
	if _, exists := p.permissions[id]; !exists {
		p.permissions[id] = attribs
	}
}

// Can reports whether ident holds perm, in room scope when room is
// non-empty. Resolution order: global bypass, scoped exception, room
// permission table, global permission table, built-in defaults.
func (p *Parser) Can(ident UserIdent, perm, room string) bool {
	if p.data.Exceptions[ident.ID] {
		return true
	}
	for _, ex := range p.data.CanExceptions {
		if ex.User == ident.ID && (ex.Room == nil || *ex.Room == room) && ex.Perm == perm {
			return true
		}
	}
	if room != "" {
		if roomPerms, ok := p.data.RoomPermissions[room]; ok {
			if group, ok := roomPerms[perm]; ok {
				return p.hierarchy.AtLeast(ident.Group, group)
			}
		}
	}
	if group, ok := p.data.Permissions[perm]; ok {
		return p.hierarchy.AtLeast(ident.Group, group)
	}
	attribs, ok := p.permissions[perm]
	if !ok {
		return false
	}
	if attribs.Excepted {
		return false
	}
	if attribs.Group != "" {
		return p.hierarchy.AtLeast(ident.Group, attribs.Group)
	}
	return false
}

// CanSet reports whether ident may configure perm at the given scope
// to require tarGroup. Requires the "set" permission and forbids
// raising a requirement above the caller's own rank.
func (p *Parser) CanSet(ident UserIdent, perm, room, tarGroup string) bool {
	if p.data.Exceptions[ident.ID] {
		return true
	}
	if !p.Can(ident, "set", room) {
		return false
	}
	if !p.Can(ident, perm, room) {
		return false
	}
	return p.hierarchy.AtLeast(ident.Group, tarGroup)
}
