package event

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/zeromicro/go-zero/core/logx"
)

// Logger routes watermill logs into logx.
type Logger struct {
	fields watermill.LogFields
}

func NewLogger() *Logger {
	return &Logger{fields: watermill.LogFields{}}
}

func (l *Logger) Error(msg string, err error, fields watermill.LogFields) {
	logx.Errorf("%s: %v%s", msg, err, l.format(fields))
}

func (l *Logger) Info(msg string, fields watermill.LogFields) {
	logx.Infof("%s%s", msg, l.format(fields))
}

func (l *Logger) Debug(msg string, fields watermill.LogFields) {
	logx.Debugf("%s%s", msg, l.format(fields))
}

func (l *Logger) Trace(msg string, fields watermill.LogFields) {
	logx.Debugf("%s%s", msg, l.format(fields))
}

func (l *Logger) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &Logger{fields: l.fields.Add(fields)}
}

func (l *Logger) format(fields watermill.LogFields) string {
	all := l.fields.Add(fields)
	if len(all) == 0 {
		return ""
	}
	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, all[k])
	}
	return b.String()
}
