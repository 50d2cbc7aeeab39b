package bridge

// Event is one Report call observed by a Recorder.
type Event struct {
	Kind    Kind
	Message string
}

// Recorder is a Sink that keeps every call in order.
type Recorder struct {
	Events   []Event
	Logs     [][]byte
	Released int
}

func (r *Recorder) Report(kind Kind, message string) {
	r.Events = append(r.Events, Event{Kind: kind, Message: message})
}

func (r *Recorder) DumpErrorLogs(output []byte) {
	r.Logs = append(r.Logs, append([]byte(nil), output...))
}

func (r *Recorder) Release() {
	r.Released++
}

// Count returns how many events of the given kind were recorded.
func (r *Recorder) Count(kind Kind) int {
	n := 0
	for _, ev := range r.Events {
		if ev.Kind == kind {
			n++
		}
	}
	return n
}
