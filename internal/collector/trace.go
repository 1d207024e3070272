package collector

// trace is the structured request-chain context threaded through the
// recursion. It replaces any ambient debug state: every diagnostic carries
// the chain of request names and component types that led to it.
type trace struct {
	frames []traceFrame
}

type traceFrame struct {
	name          string
	componentType string
}

func (t *trace) push(name, componentType string) {
	t.frames = append(t.frames, traceFrame{name: name, componentType: componentType})
}

func (t *trace) pop() {
	t.frames = t.frames[:len(t.frames)-1]
}

func (t *trace) depth() int {
	return len(t.frames)
}

// chain renders the request path as "name(type)" segments, outermost first.
func (t *trace) chain() []string {
	out := make([]string, 0, len(t.frames))
	for _, f := range t.frames {
		out = append(out, f.name+"("+f.componentType+")")
	}
	return out
}
