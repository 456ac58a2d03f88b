// Package debug provides the structured debug log and assertion helpers.
//
// Logging is disabled unless LINEDIT_ENABLE_LOG is set, because the editor
// owns the terminal while it runs. Set it to "1"/"true" to log to
// linedit-debug.log in the working directory, or to a file path.
package debug

import (
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

const (
	envEnableLog   = "LINEDIT_ENABLE_LOG"
	envAssertPanic = "LINEDIT_ENABLE_ASSERT"
	logFileName    = "linedit-debug.log"
)

var (
	logfile      *os.File
	logger       *logiface.Logger[*stumpy.Event]
	enableAssert bool
)

func init() {
	loadAssertEnv()
	loadLoggerEnv()
}

func loadAssertEnv() {
	enableAssert = envTrue(os.Getenv(envAssertPanic))
}

func loadLoggerEnv() {
	v := os.Getenv(envEnableLog)
	if v == "" {
		logger = newLogger(io.Discard, logiface.LevelDisabled)
		return
	}
	path := v
	if b, err := strconv.ParseBool(v); err == nil {
		if !b {
			logger = newLogger(io.Discard, logiface.LevelDisabled)
			return
		}
		path = logFileName
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
	if err != nil {
		logger = newLogger(io.Discard, logiface.LevelDisabled)
		return
	}
	logfile = f
	logger = newLogger(f, logiface.LevelTrace)
}

func newLogger(w io.Writer, level logiface.Level) *logiface.Logger[*stumpy.Event] {
	return stumpy.L.New(
		stumpy.L.WithStumpy(stumpy.WithWriter(w)),
		stumpy.L.WithLevel(level),
	)
}

func envTrue(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

// Logger returns the package logger, which may be used to log structured
// events. It never returns nil.
func Logger() *logiface.Logger[*stumpy.Event] {
	if logger == nil {
		return newLogger(io.Discard, logiface.LevelDisabled)
	}
	return logger
}

// Log writes a debug level message.
func Log(msg string) {
	Logger().Debug().Log(msg)
}

// Assert panics if cond is false and assertions are enabled, otherwise the
// failure is logged.
func Assert(cond bool, msg any) {
	if cond {
		return
	}
	if enableAssert {
		panic(msg)
	}
	Logger().Err().Str("assert", toString(msg)).Log("assertion failed")
}

// AssertNoError is Assert for an error value.
func AssertNoError(err error) {
	if err == nil {
		return
	}
	if enableAssert {
		panic(err)
	}
	Logger().Err().Err(err).Log("unexpected error")
}

// Close closes the log file, if one was opened.
func Close() {
	if logfile != nil {
		_ = logfile.Close()
		logfile = nil
		logger = newLogger(io.Discard, logiface.LevelDisabled)
	}
}

func toString(v any) string {
	switch a := v.(type) {
	case func() string:
		return a()
	case string:
		return a
	case fmt.Stringer:
		return a.String()
	default:
		return fmt.Sprintf("unexpected type, %v", v)
	}
}
