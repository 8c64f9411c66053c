package parser

// GroupExcepted is the sentinel rank that no group satisfies; only the
// exception lists can grant a permission configured with it.
const GroupExcepted = "excepted"

// GroupUser is the sentinel rank that every sender satisfies.
const GroupUser = "user"

// GroupHierarchy compares group symbols by their position in the
// server's rank order, lowest first. Long names ("driver", "admin")
// resolve through a configured name table before comparison.
type GroupHierarchy struct {
	order []string
	rank  map[string]int
	named map[string]string
}

func NewGroupHierarchy(order []string, named map[string]string) *GroupHierarchy {
	rank := make(map[string]int, len(order))
	for i, g := range order {
		rank[g] = i
	}
	if named == nil {
		named = map[string]string{}
	}
	return &GroupHierarchy{order: order, rank: rank, named: named}
}

// Rank returns the ordinal position of a group symbol, or -1 if the
// symbol is not part of the hierarchy.
func (h *GroupHierarchy) Rank(group string) int {
	if i, ok := h.rank[group]; ok {
		return i
	}
	return -1
}

// AtLeast reports whether subject ranks equal to or higher than
// required. An unrecognized required group restricts nothing; an
// unrecognized subject group ranks below everything.
func (h *GroupHierarchy) AtLeast(subject, required string) bool {
	if len(required) > 1 {
		switch required {
		case GroupExcepted:
			return false
		case GroupUser:
			return true
		}
		if sym, ok := h.named[required]; ok {
			required = sym
		}
	}
	i := h.Rank(required)
	j := h.Rank(subject)
	if i == -1 {
		return true
	}
	if j == -1 {
		return false
	}
	return j >= i
}
