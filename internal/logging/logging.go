// © 2024 Microglot LLC
//
// SPDX-License-Identifier: Apache-2.0

package logging

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
)

// Level is the verbosity threshold of a Logger.
type Level uint8

const (
	Error Level = iota
	Warn
	Info
	Debug
)

// Logger is the logging interface used throughout pegc. Components receive
// a Logger instead of logging through a package global so that embedders
// can swap in their own implementation.
type Logger interface {
	Debug(fmt string, a ...interface{})
	Info(fmt string, a ...interface{})
	Warn(fmt string, a ...interface{})
	Error(fmt string, a ...interface{})

	WithFields(fields map[string]interface{}) Logger

	SetLevel(Level)
	GetLevel() Level
}

// StandardLogger is the default Logger implementation, backed by logrus.
type StandardLogger struct {
	logger *logrus.Logger
	fields map[string]interface{}
}

func New() *StandardLogger {
	return &StandardLogger{logger: logrus.New()}
}

func (l *StandardLogger) WithFields(fields map[string]interface{}) Logger {
	cp := *l
	cp.fields = make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		cp.fields[k] = v
	}
	for k, v := range fields {
		cp.fields[k] = v
	}
	return &cp
}

func (l *StandardLogger) SetOutput(w io.Writer) {
	l.logger.SetOutput(w)
}

func (l *StandardLogger) SetFormatter(formatter logrus.Formatter) {
	l.logger.SetFormatter(formatter)
}

func (l *StandardLogger) SetLevel(level Level) {
	switch level {
	case Error:
		l.logger.SetLevel(logrus.ErrorLevel)
	case Warn:
		l.logger.SetLevel(logrus.WarnLevel)
	case Info:
		l.logger.SetLevel(logrus.InfoLevel)
	default:
		l.logger.SetLevel(logrus.DebugLevel)
	}
}

func (l *StandardLogger) GetLevel() Level {
	switch l.logger.GetLevel() {
	case logrus.ErrorLevel:
		return Error
	case logrus.WarnLevel:
		return Warn
	case logrus.InfoLevel:
		return Info
	default:
		return Debug
	}
}

func (l *StandardLogger) entry() *logrus.Entry {
	return l.logger.WithFields(logrus.Fields(l.fields))
}

func (l *StandardLogger) Debug(fmt string, a ...interface{}) {
	l.entry().Debugf(fmt, a...)
}

func (l *StandardLogger) Info(fmt string, a ...interface{}) {
	l.entry().Infof(fmt, a...)
}

func (l *StandardLogger) Warn(fmt string, a ...interface{}) {
	l.entry().Warnf(fmt, a...)
}

func (l *StandardLogger) Error(fmt string, a ...interface{}) {
	l.entry().Errorf(fmt, a...)
}

// NoOpLogger discards everything. It is the default for library use where
// no logger was configured.
type NoOpLogger struct {
	level Level
}

func NewNoOpLogger() *NoOpLogger {
	return &NoOpLogger{}
}

func (*NoOpLogger) Debug(string, ...interface{}) {}
func (*NoOpLogger) Info(string, ...interface{})  {}
func (*NoOpLogger) Warn(string, ...interface{})  {}
func (*NoOpLogger) Error(string, ...interface{}) {}

func (l *NoOpLogger) WithFields(map[string]interface{}) Logger {
	return l
}

func (l *NoOpLogger) SetLevel(level Level) {
	l.level = level
}

func (l *NoOpLogger) GetLevel() Level {
	return l.level
}

// GetLevel maps a command line level name to a Level.
func GetLevel(level string) (Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return Debug, nil
	case "", "info":
		return Info, nil
	case "warn":
		return Warn, nil
	case "error":
		return Error, nil
	default:
		return Debug, fmt.Errorf("invalid log level: %v", level)
	}
}

// GetFormatter maps a command line format name to a logrus formatter.
func GetFormatter(format string, timestampFormat string) logrus.Formatter {
	switch format {
	case "text":
		return &prettyFormatter{}
	case "json-pretty":
		return &logrus.JSONFormatter{PrettyPrint: true, TimestampFormat: timestampFormat}
	default:
		return &logrus.JSONFormatter{TimestampFormat: timestampFormat}
	}
}

// prettyFormatter is a plainer alternative to logrus.TextFormatter meant
// for humans watching a terminal rather than log collectors.
type prettyFormatter struct{}

func (p *prettyFormatter) Format(e *logrus.Entry) ([]byte, error) {
	b := new(bytes.Buffer)

	fmt.Fprintf(b, "[%s] %s\n", strings.ToUpper(e.Level.String()), e.Message)

	keys := make([]string, 0, len(e.Data))
	for k := range e.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v, err := json.Marshal(e.Data[k])
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(b, "  %s = %s\n", k, v)
	}
	return b.Bytes(), nil
}
