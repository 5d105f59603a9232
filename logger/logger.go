// Package logger provides leveled logging for the panel with a console/syslog
// backend, a file backend and a buffer of recent entries.
package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"time"

	"github.com/op/go-logging"
)

const (
	moduleName       = "party-panel"
	maxLogBufferSize = 10240
	logFileName      = "party-panel.log"
	timeFormat       = "2006/01/02 15:04:05"
)

type entry struct {
	time  string
	level logging.Level
	log   string
}

var (
	logger  *logging.Logger
	logFile *os.File

	bufferMu  sync.Mutex
	logBuffer []entry
)

func init() {
	// stderr only until InitLogger runs, so packages are usable from tests.
	l := logging.MustGetLogger(moduleName)
	backend := logging.AddModuleLevel(logging.NewBackendFormatter(
		logging.NewLogBackend(os.Stderr, "", 0), newFormatter(true)))
	backend.SetLevel(logging.WARNING, moduleName)
	l.SetBackend(backend)
	logger = l
}

// InitLogger installs the console/syslog backend at the given level and, when
// logFolder is not empty, a DEBUG-level file backend in that folder.
func InitLogger(level logging.Level, logFolder string) {
	newLogger := logging.MustGetLogger(moduleName)
	backends := make([]logging.Backend, 0, 2)

	if consoleBackend := initDefaultBackend(); consoleBackend != nil {
		leveledBackend := logging.AddModuleLevel(consoleBackend)
		leveledBackend.SetLevel(level, moduleName)
		backends = append(backends, leveledBackend)
	}

	if logFolder != "" {
		if fileBackend := initFileBackend(logFolder); fileBackend != nil {
			leveledBackend := logging.AddModuleLevel(fileBackend)
			leveledBackend.SetLevel(logging.DEBUG, moduleName)
			backends = append(backends, leveledBackend)
		}
	}

	newLogger.SetBackend(logging.MultiLogger(backends...))
	logger = newLogger
}

// ParseLevel maps a configured level name onto a go-logging level.
func ParseLevel(name string) (logging.Level, error) {
	switch name {
	case "warn":
		return logging.WARNING, nil
	default:
		return logging.LogLevel(name)
	}
}

// initDefaultBackend writes to stderr on Windows and tries syslog elsewhere.
func initDefaultBackend() logging.Backend {
	var backend logging.Backend
	includeTime := false

	if runtime.GOOS == "windows" {
		backend = logging.NewLogBackend(os.Stderr, "", 0)
		includeTime = true
	} else {
		if syslogBackend, err := logging.NewSyslogBackend(""); err != nil {
			fmt.Fprintf(os.Stderr, "syslog backend disabled: %v\n", err)
			backend = logging.NewLogBackend(os.Stderr, "", 0)
			includeTime = os.Getppid() > 0
		} else {
			backend = syslogBackend
		}
	}

	return logging.NewBackendFormatter(backend, newFormatter(includeTime))
}

// initFileBackend truncates the log file on startup.
func initFileBackend(logDir string) logging.Backend {
	if err := os.MkdirAll(logDir, 0o750); err != nil {
		fmt.Fprintf(os.Stderr, "failed to create log folder %s: %v\n", logDir, err)
		return nil
	}

	logPath := filepath.Join(logDir, logFileName)
	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o660)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log file %s: %v\n", logPath, err)
		return nil
	}

	if logFile != nil {
		_ = logFile.Close()
	}
	logFile = file

	backend := logging.NewLogBackend(file, "", 0)
	return logging.NewBackendFormatter(backend, newFormatter(true))
}

func newFormatter(withTime bool) logging.Formatter {
	format := `%{level} - %{message}`
	if withTime {
		format = `%{time:` + timeFormat + `} %{level} - %{message}`
	}
	return logging.MustStringFormatter(format)
}

// CloseLogger closes the log file. Call it during shutdown.
func CloseLogger() {
	if logFile != nil {
		_ = logFile.Close()
		logFile = nil
	}
}

func Debug(args ...any) {
	logger.Debug(args...)
	addToBuffer(logging.DEBUG, fmt.Sprint(args...))
}

func Debugf(format string, args ...any) {
	logger.Debugf(format, args...)
	addToBuffer(logging.DEBUG, fmt.Sprintf(format, args...))
}

func Info(args ...any) {
	logger.Info(args...)
	addToBuffer(logging.INFO, fmt.Sprint(args...))
}

func Infof(format string, args ...any) {
	logger.Infof(format, args...)
	addToBuffer(logging.INFO, fmt.Sprintf(format, args...))
}

func Notice(args ...any) {
	logger.Notice(args...)
	addToBuffer(logging.NOTICE, fmt.Sprint(args...))
}

func Noticef(format string, args ...any) {
	logger.Noticef(format, args...)
	addToBuffer(logging.NOTICE, fmt.Sprintf(format, args...))
}

func Warning(args ...any) {
	logger.Warning(args...)
	addToBuffer(logging.WARNING, fmt.Sprint(args...))
}

func Warningf(format string, args ...any) {
	logger.Warningf(format, args...)
	addToBuffer(logging.WARNING, fmt.Sprintf(format, args...))
}

func Error(args ...any) {
	logger.Error(args...)
	addToBuffer(logging.ERROR, fmt.Sprint(args...))
}

func Errorf(format string, args ...any) {
	logger.Errorf(format, args...)
	addToBuffer(logging.ERROR, fmt.Sprintf(format, args...))
}

func addToBuffer(level logging.Level, newLog string) {
	bufferMu.Lock()
	defer bufferMu.Unlock()

	if len(logBuffer) >= maxLogBufferSize {
		logBuffer = logBuffer[1:]
	}
	logBuffer = append(logBuffer, entry{
		time:  time.Now().Format(timeFormat),
		level: level,
		log:   newLog,
	})
}

// GetLogs returns up to c of the newest buffered entries at or above the
// severity named by level, newest first.
func GetLogs(c int, level string) []string {
	bufferMu.Lock()
	defer bufferMu.Unlock()

	logLevel, err := ParseLevel(level)
	if err != nil {
		logLevel = logging.DEBUG
	}

	output := []string{}
	for i := len(logBuffer) - 1; i >= 0 && len(output) < c; i-- {
		if logBuffer[i].level <= logLevel {
			output = append(output, fmt.Sprintf("%s %s - %s", logBuffer[i].time, logBuffer[i].level, logBuffer[i].log))
		}
	}
	return output
}
