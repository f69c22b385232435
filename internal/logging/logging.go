package logging

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
)

type Field struct {
	Key   string
	Value any
}

// Logger writes one logfmt line per call. Loggers derived with With share
// the parent's output.
type Logger interface {
	Debug(msg string, fields ...Field)
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
	Enabled(level Level) bool
}

type sink struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *sink) write(line []byte) {
	s.mu.Lock()
	_, _ = s.w.Write(line)
	s.mu.Unlock()
}

type logfmtLogger struct {
	out    *sink
	min    Level
	prefix []byte
	now    func() time.Time
}

func New(out io.Writer, level Level) Logger {
	if out == nil {
		out = os.Stderr
	}
	return &logfmtLogger{out: &sink{w: out}, min: level, now: time.Now}
}

// Nop discards everything.
func Nop() Logger {
	return nopLogger{}
}

// OpenFile appends to path, creating its directory. Close the returned
// closer once the logger is done.
func OpenFile(path string, level Level) (Logger, io.Closer, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, nil, errors.New("log path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, nil, err
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, err
	}
	return New(file, level), file, nil
}

func (l *logfmtLogger) Enabled(level Level) bool {
	return level >= l.min
}

func (l *logfmtLogger) With(fields ...Field) Logger {
	prefix := append([]byte(nil), l.prefix...)
	for _, field := range fields {
		prefix = appendField(prefix, field.Key, field.Value)
	}
	return &logfmtLogger{out: l.out, min: l.min, prefix: prefix, now: l.now}
}

func (l *logfmtLogger) Debug(msg string, fields ...Field) { l.emit(Debug, msg, fields) }
func (l *logfmtLogger) Info(msg string, fields ...Field)  { l.emit(Info, msg, fields) }
func (l *logfmtLogger) Warn(msg string, fields ...Field)  { l.emit(Warn, msg, fields) }
func (l *logfmtLogger) Error(msg string, fields ...Field) { l.emit(Error, msg, fields) }

func (l *logfmtLogger) emit(level Level, msg string, fields []Field) {
	if !l.Enabled(level) {
		return
	}
	line := make([]byte, 0, 128+len(l.prefix))
	line = appendField(line, "ts", l.now().UTC().Format(time.RFC3339Nano))
	line = appendField(line, "level", level.String())
	line = appendField(line, "msg", msg)
	if len(l.prefix) > 0 {
		line = append(line, ' ')
		line = append(line, l.prefix...)
	}
	for _, field := range fields {
		line = appendField(line, field.Key, field.Value)
	}
	l.out.write(append(line, '\n'))
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...Field) {}
func (nopLogger) Info(string, ...Field)  {}
func (nopLogger) Warn(string, ...Field)  {}
func (nopLogger) Error(string, ...Field) {}
func (n nopLogger) With(...Field) Logger { return n }
func (nopLogger) Enabled(Level) bool     { return false }

func appendField(buf []byte, key string, value any) []byte {
	if len(buf) > 0 {
		buf = append(buf, ' ')
	}
	buf = append(buf, key...)
	buf = append(buf, '=')
	return appendValue(buf, value)
}

func appendValue(buf []byte, value any) []byte {
	switch v := value.(type) {
	case nil:
		return append(buf, "null"...)
	case string:
		return appendText(buf, v)
	case error:
		return appendText(buf, v.Error())
	case bool:
		return strconv.AppendBool(buf, v)
	case int:
		return strconv.AppendInt(buf, int64(v), 10)
	case int64:
		return strconv.AppendInt(buf, v, 10)
	case uint64:
		return strconv.AppendUint(buf, v, 10)
	case float64:
		return strconv.AppendFloat(buf, v, 'g', -1, 64)
	case time.Time:
		return append(buf, v.UTC().Format(time.RFC3339Nano)...)
	case fmt.Stringer:
		return appendText(buf, v.String())
	default:
		return appendText(buf, fmt.Sprint(v))
	}
}

// appendText quotes values that would otherwise break the key=value split.
func appendText(buf []byte, s string) []byte {
	if s == "" {
		return append(buf, `""`...)
	}
	if strings.ContainsAny(s, " \t\r\n\"=") {
		return strconv.AppendQuote(buf, s)
	}
	return append(buf, s...)
}

func (l Level) String() string {
	switch l {
	case Debug:
		return "debug"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return "info"
	}
}

// ParseLevel maps a config value to a Level, defaulting to Info.
func ParseLevel(raw string) Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return Debug
	case "warn", "warning":
		return Warn
	case "error":
		return Error
	default:
		return Info
	}
}

func NewRequestID() string {
	var buf [8]byte
	if _, err := rand.Read(buf[:]); err != nil {
		return strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	return hex.EncodeToString(buf[:])
}

func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Err is shorthand for the conventional error field.
func Err(err error) Field {
	return Field{Key: "error", Value: err}
}
