package text

import "strings"

// LineSplitter accumulates fragments into chat lines bounded by a
// maximum length, so long listings become several messages instead of
// one the server would truncate.
type LineSplitter struct {
	max   int
	lines []string
	cur   strings.Builder
}

// NewLineSplitter returns a splitter producing lines of at most max
// characters. A non-positive max disables splitting.
func NewLineSplitter(max int) *LineSplitter {
	return &LineSplitter{max: max}
}

// Add appends a fragment, starting a new line if it would not fit.
func (ls *LineSplitter) Add(s string) {
	if ls.max > 0 && ls.cur.Len() > 0 && ls.cur.Len()+len(s) > ls.max {
		ls.lines = append(ls.lines, ls.cur.String())
		ls.cur.Reset()
	}
	ls.cur.WriteString(s)
}

// Lines returns all completed lines including the one in progress.
func (ls *LineSplitter) Lines() []string {
	out := ls.lines
	if ls.cur.Len() > 0 {
		out = append(out, ls.cur.String())
	}
	return out
}
