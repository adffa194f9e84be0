package cli

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger returns the CLI logger. Solver runs are short, so timestamps
// carry milliseconds.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.000",
		Prefix:          "pckp",
		Level:           level,
	})
}

// phase times one unit of CLI work (a solve, a bench batch) and reports it
// as a single structured line.
type phase struct {
	logger  *log.Logger
	msg     string
	keyvals []interface{}
	start   time.Time
}

// startPhase logs msg at debug level and starts its clock. keyvals are
// repeated on the finishing line.
func (c *CLI) startPhase(msg string, keyvals ...interface{}) *phase {
	c.Logger.Debug(msg+" started", keyvals...)

	return &phase{logger: c.Logger, msg: msg, keyvals: keyvals, start: time.Now()}
}

// finish logs msg at info level with the phase keyvals, extra and the
// elapsed wall time.
func (p *phase) finish(extra ...interface{}) {
	kv := make([]interface{}, 0, len(p.keyvals)+len(extra)+2)
	kv = append(kv, p.keyvals...)
	kv = append(kv, extra...)
	kv = append(kv, "elapsed", time.Since(p.start).Round(time.Millisecond))
	p.logger.Info(p.msg, kv...)
}
