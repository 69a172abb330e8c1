package status

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
)

// TimestampFormat is the ISO-8601 layout used for diagnostic lines, always in UTC.
const TimestampFormat = "2006-01-02T15:04:05.000Z07:00"

var _ hclog.SinkAdapter = (*Sink)(nil)

// Sink feeds log lines from an hclog.InterceptLogger into a Ring.
// NewSink should be used to create instances of Sink.
type Sink struct {
	ring  *Ring
	level hclog.Level
	now   func() time.Time
}

// NewSink returns a Sink writing entries at or above level into ring.
func NewSink(ring *Ring, level hclog.Level) *Sink {
	if level == hclog.NoLevel {
		level = hclog.Info
	}
	return &Sink{
		ring:  ring,
		level: level,
		now:   time.Now,
	}
}

// Accept implements hclog.SinkAdapter.
func (s *Sink) Accept(name string, level hclog.Level, msg string, args ...any) {
	if level < s.level || level == hclog.Off {
		return
	}

	if name != "" {
		msg = name + ": " + msg
	}

	s.ring.Append(FormatLine(s.now(), level, msg, args...))
}

// FormatLine renders one diagnostic line as '[<timestamp>] <message> key=value ...'.
// Error lines carry an 'ERROR' marker after the timestamp. Non-string values are rendered as JSON.
func FormatLine(ts time.Time, level hclog.Level, msg string, args ...any) string {
	var b strings.Builder

	b.WriteString("[")
	b.WriteString(ts.UTC().Format(TimestampFormat))
	b.WriteString("] ")

	if level >= hclog.Error {
		b.WriteString("ERROR ")
	}
	b.WriteString(msg)

	for i := 0; i < len(args); i += 2 {
		key := fmt.Sprint(args[i])
		if i+1 >= len(args) {
			b.WriteString(" " + renderValue(key))
			break
		}
		b.WriteString(" " + key + "=" + renderValue(args[i+1]))
	}

	return b.String()
}

func renderValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case error:
		return val.Error()
	case fmt.Stringer:
		return val.String()
	}

	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}
