package parser

// storageKey is the section of the persisted document owned by the
// command parser.
const storageKey = "cmd-parser"

// CanException grants one permission to one user, optionally scoped to
// a single room. A nil Room matches any room.
type CanException struct {
	User string  `json:"user"`
	Room *string `json:"room"`
	Perm string  `json:"perm"`
}

// Data is the persisted parser document. It is loaded once at startup,
// mutated in place by administrative commands, and flushed on demand
// through Save.
type Data struct {
	Aliases         map[string]string            `json:"aliases"`
	Exceptions      map[string]bool              `json:"exceptions"`
	CanExceptions   []CanException               `json:"canExceptions"`
	Permissions     map[string]string            `json:"permissions"`
	RoomPermissions map[string]map[string]string `json:"roompermissions"`
	Sleep           map[string]bool              `json:"sleep"`
	RoomCtrl        map[string]string            `json:"roomctrl"`
	DynCmds         map[string]*DynNode          `json:"dyncmds"`
	HelpMsg         string                       `json:"helpmsg"`
	AntiSpam        bool                         `json:"antispam"`
}

// fillDefaults makes every table usable without nil checks at the
// mutation sites.
func (d *Data) fillDefaults() {
	if d.Aliases == nil {
		d.Aliases = map[string]string{}
	}
	if d.Exceptions == nil {
		d.Exceptions = map[string]bool{}
	}
	if d.CanExceptions == nil {
		d.CanExceptions = []CanException{}
	}
	if d.Permissions == nil {
		d.Permissions = map[string]string{}
	}
	if d.RoomPermissions == nil {
		d.RoomPermissions = map[string]map[string]string{}
	}
	if d.Sleep == nil {
		d.Sleep = map[string]bool{}
	}
	if d.RoomCtrl == nil {
		d.RoomCtrl = map[string]string{}
	}
	if d.DynCmds == nil {
		d.DynCmds = map[string]*DynNode{}
	}
}
