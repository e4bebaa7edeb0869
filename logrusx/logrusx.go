package logrusx

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Logger wraps a logrus entry so callers can chain fields without touching
// the underlying logger configuration.
type Logger struct {
	*logrus.Entry
	name string
}

func (l *Logger) Logrus() *logrus.Logger {
	return l.Entry.Logger
}

func (l *Logger) WithFields(f logrus.Fields) *Logger {
	ll := *l
	ll.Entry = l.Entry.WithFields(f)
	return &ll
}

func (l *Logger) WithField(key string, value interface{}) *Logger {
	ll := *l
	ll.Entry = l.Entry.WithField(key, value)
	return &ll
}

func (l *Logger) WithError(err error) *Logger {
	ll := *l
	ll.Entry = l.Entry.WithError(err)
	return &ll
}

type Option func(*options)

type options struct {
	level  logrus.Level
	format logrus.Formatter
	out    io.Writer
}

func WithLevel(level logrus.Level) Option {
	return func(o *options) {
		o.level = level
	}
}

func WithFormatter(f logrus.Formatter) Option {
	return func(o *options) {
		o.format = f
	}
}

func WithOutput(w io.Writer) Option {
	return func(o *options) {
		o.out = w
	}
}

// New creates a named logger with sane defaults (json output, info level).
func New(name string, opts ...Option) *Logger {
	o := &options{
		level:  logrus.InfoLevel,
		format: &logrus.JSONFormatter{},
	}
	for _, opt := range opts {
		opt(o)
	}

	ll := logrus.New()
	ll.SetLevel(o.level)
	ll.SetFormatter(o.format)
	if o.out != nil {
		ll.SetOutput(o.out)
	}

	return &Logger{
		Entry: ll.WithField("component", name),
		name:  name,
	}
}
