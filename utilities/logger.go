package utilities

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	infoLog  *log.Logger
	warnLog  *log.Logger
	errorLog *log.Logger
	logMutex sync.Mutex
)

// LogOptions controls rotation of the on-disk log files.
type LogOptions struct {
	Dir        string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// SetupLogging wires the leveled loggers to stdout/stderr plus rotating files.
// It is safe to skip in tests; the loggers fall back to stderr.
func SetupLogging(opts LogOptions) {
	if opts.Dir == "" {
		opts.Dir = "logs"
	}
	if opts.MaxSizeMB == 0 {
		opts.MaxSizeMB = 50
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		log.Fatalf("failed to create log directory: %v", err)
	}

	infoFile := rotatingFile(filepath.Join(opts.Dir, "info.log"), opts)
	warnFile := rotatingFile(filepath.Join(opts.Dir, "warn.log"), opts)
	errorFile := rotatingFile(filepath.Join(opts.Dir, "error.log"), opts)

	infoWriter := io.MultiWriter(os.Stdout, infoFile)
	warnWriter := io.MultiWriter(os.Stdout, warnFile)
	errorWriter := io.MultiWriter(os.Stderr, errorFile)

	logMutex.Lock()
	defer logMutex.Unlock()
	infoLog = log.New(infoWriter, "INFO: ", log.Ldate|log.Ltime)
	warnLog = log.New(warnWriter, "WARNING: ", log.Ldate|log.Ltime)
	errorLog = log.New(errorWriter, "ERROR: ", log.Ldate|log.Ltime)

	// Override Go's default log output as well.
	log.SetOutput(infoWriter)
}

func rotatingFile(path string, opts LogOptions) io.Writer {
	return &lumberjack.Logger{
		Filename:   path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
		Compress:   true,
	}
}

func getCallerInfo() string {
	pc, _, _, ok := runtime.Caller(3)
	if !ok {
		return "unknown"
	}
	return runtime.FuncForPC(pc).Name()
}

func logAt(logger *log.Logger, format string, v ...interface{}) {
	logMutex.Lock()
	defer logMutex.Unlock()
	if logger == nil {
		log.Printf("[%s] %s", getCallerInfo(), fmt.Sprintf(format, v...))
		return
	}
	logger.Printf("[%s] %s", getCallerInfo(), fmt.Sprintf(format, v...))
}

func Info(format string, v ...interface{}) {
	logAt(infoLog, format, v...)
}

func Warn(format string, v ...interface{}) {
	logAt(warnLog, format, v...)
}

func Error(format string, v ...interface{}) {
	logAt(errorLog, format, v...)
}
