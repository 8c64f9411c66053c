package parser

// TriggerMode selects the pipeline stage a trigger runs in.
type TriggerMode string

const (
	// TriggerBefore runs prior to command resolution; a true return
	// stops processing of the line.
	TriggerBefore TriggerMode = "before"
	// TriggerAfter runs when no command matched; return values are
	// ignored and every registered trigger runs.
	TriggerAfter TriggerMode = "after"
)

// Trigger is a predicate over the execution context.
type Trigger func(ctx *Context) bool

// TriggerPipeline keeps the two ordered hook lists. Triggers are
// registered and removed by id so add-ons can manage their own entries
// without stepping on each other.
type TriggerPipeline struct {
	before *triggerList
	after  *triggerList
}

type triggerList struct {
	funcs map[string]Trigger
	order []string
}

func NewTriggerPipeline() *TriggerPipeline {
	return &TriggerPipeline{
		before: &triggerList{funcs: make(map[string]Trigger)},
		after:  &triggerList{funcs: make(map[string]Trigger)},
	}
}

func (tp *TriggerPipeline) list(mode TriggerMode) *triggerList {
	switch mode {
	case TriggerBefore:
		return tp.before
	case TriggerAfter:
		return tp.after
	}
	return nil
}

// Add registers a trigger under id, keeping registration order.
// Re-registering an id replaces the function but keeps its position.
func (tp *TriggerPipeline) Add(id string, mode TriggerMode, fn Trigger) {
	l := tp.list(mode)
	if l == nil || fn == nil {
		return
	}
	if _, exists := l.funcs[id]; !exists {
		l.order = append(l.order, id)
	}
	l.funcs[id] = fn
}

// Remove drops the trigger registered under id, if any.
func (tp *TriggerPipeline) Remove(id string, mode TriggerMode) {
	l := tp.list(mode)
	if l == nil {
		return
	}
	if _, exists := l.funcs[id]; !exists {
		return
	}
	delete(l.funcs, id)
	for i, k := range l.order {
		if k == id {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

// RunBefore runs the before stage; true means a trigger interrupted
// the command and the rest of the stage was skipped.
func (tp *TriggerPipeline) RunBefore(ctx *Context) bool {
	for _, id := range tp.before.order {
		if tp.before.funcs[id](ctx) {
			return true
		}
	}
	return false
}

// RunAfter runs every after trigger regardless of return values.
func (tp *TriggerPipeline) RunAfter(ctx *Context) {
	for _, id := range tp.after.order {
		tp.after.funcs[id](ctx)
	}
}
