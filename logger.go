package unitelway

import (
	"log"
	"os"
)

// logger is a thin leveled wrapper around the standard log package. A nil
// custom logger falls back to writing to stdout, matching Configuration's
// documented default.
type logger struct {
	prefix string
	stdLog *log.Logger
}

func newLogger(prefix string, custom *log.Logger) *logger {
	l := &logger{prefix: prefix, stdLog: custom}

	if l.stdLog == nil {
		l.stdLog = log.New(os.Stdout, "", log.LstdFlags)
	}

	return l
}

func (l *logger) Info(msg string) {
	l.stdLog.Printf("%s [info]: %s", l.prefix, msg)
}

func (l *logger) Infof(format string, args ...interface{}) {
	l.stdLog.Printf("%s [info]: "+format, append([]interface{}{l.prefix}, args...)...)
}

func (l *logger) Warning(msg string) {
	l.stdLog.Printf("%s [warn]: %s", l.prefix, msg)
}

func (l *logger) Warningf(format string, args ...interface{}) {
	l.stdLog.Printf("%s [warn]: "+format, append([]interface{}{l.prefix}, args...)...)
}

func (l *logger) Error(msg string) {
	l.stdLog.Printf("%s [error]: %s", l.prefix, msg)
}

func (l *logger) Errorf(format string, args ...interface{}) {
	l.stdLog.Printf("%s [error]: "+format, append([]interface{}{l.prefix}, args...)...)
}
