package driver

import (
	"bufio"
	"io"
	"strings"

	"github.com/wippyai/texbridge/status"
)

// event is one diagnostic parsed from the engine's terminal output.
type event struct {
	err  error
	msg  string
	kind status.MessageKind
}

// causeChain is the "caused by:" trail attached to an engine message.
type causeChain []string

func (c causeChain) Error() string {
	return strings.Join(c, ": ")
}

var chatterPrefixes = []struct {
	prefix string
	kind   status.MessageKind
}{
	{"note: ", status.Note},
	{"warning: ", status.Warning},
	{"error: ", status.Error},
}

const causedByPrefix = "caused by: "

// parseChatter reads engine terminal output and sends one event per message.
// "caused by:" lines become the message's error. When other is nil, lines
// without a severity prefix continue the previous message; otherwise they are
// not chatter and are copied to other. It returns when r is exhausted.
func parseChatter(r io.Reader, out chan<- event, other io.Writer) error {
	var (
		pending *event
		causes  causeChain
	)
	flush := func() {
		if pending == nil {
			return
		}
		if len(causes) > 0 {
			pending.err = causes
		}
		out <- *pending
		pending = nil
		causes = nil
	}

	passThrough := func(line string) error {
		flush()
		_, err := io.WriteString(other, line+"\n")
		return err
	}

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			if other != nil {
				if err := passThrough(line); err != nil {
					return err
				}
			}
			continue
		}

		if kind, msg, ok := splitSeverity(line); ok {
			flush()
			pending = &event{kind: kind, msg: msg}
			continue
		}
		if cause, ok := strings.CutPrefix(line, causedByPrefix); ok && pending != nil {
			causes = append(causes, cause)
			continue
		}
		if other != nil {
			if err := passThrough(line); err != nil {
				return err
			}
			continue
		}
		if pending == nil {
			pending = &event{kind: status.Note, msg: line}
			continue
		}
		pending.msg += "\n" + line
	}
	flush()
	return sc.Err()
}

func splitSeverity(line string) (status.MessageKind, string, bool) {
	for _, p := range chatterPrefixes {
		if msg, ok := strings.CutPrefix(line, p.prefix); ok {
			return p.kind, msg, true
		}
	}
	return status.Note, "", false
}
