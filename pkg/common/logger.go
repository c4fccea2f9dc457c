package common

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

type Logger interface {
	Log(message string)
}

type fileLogger struct {
	mutex      sync.Mutex
	path       string
	file       *os.File
	fileWriter *bufio.Writer
}

// NewFileLogger logs to the file specified by `path`. If the file is unavailable, writes to the console.
// Every message is prefixed with a timestamp.
func NewFileLogger(path string) Logger {
	return &fileLogger{
		path: path,
	}
}

func (f *fileLogger) Log(message string) {
	f.mutex.Lock()
	defer f.mutex.Unlock()
	message = stampMessage(message)
	if f.fileWriterReady() {
		_, err := f.fileWriter.WriteString(message)
		if err != nil {
			f.logErrorToConsole(err.Error())
			f.logMessageToConsole(message)
		}
		err = f.fileWriter.Flush()
		if err != nil {
			f.logErrorToConsole(err.Error())
		}
	} else {
		f.logMessageToConsole(message)
	}
}

func (f *fileLogger) logErrorToConsole(message string) {
	fmt.Printf("Error: %s. Logging switched to console.\n", message)
}

func (f *fileLogger) logMessageToConsole(message string) {
	fmt.Print(message)
}

func (f *fileLogger) fileWriterReady() bool {
	if f.fileWriter != nil {
		return true
	}
	file, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		f.logErrorToConsole(err.Error())
		return false
	}
	f.file = file
	f.fileWriter = bufio.NewWriter(file)
	return true
}

type writerLogger struct {
	mutex  sync.Mutex
	writer io.Writer
}

// NewWriterLogger logs to an arbitrary writer (for example, a buffer in tests, or io.Discard).
func NewWriterLogger(writer io.Writer) Logger {
	return &writerLogger{writer: writer}
}

func (w *writerLogger) Log(message string) {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	_, _ = io.WriteString(w.writer, stampMessage(message))
}

func stampMessage(message string) string {
	if len(message) == 0 || message[len(message)-1] != '\n' {
		message += "\n"
	}
	return time.Now().Format("2006-01-02 15:04:05.000") + " " + message
}
