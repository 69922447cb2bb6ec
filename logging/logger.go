package logging

import (
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"sync"
	"time"

	"dine-insights/monitoring"

	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	logger    *logrus.Logger
	logChan   chan *logrus.Entry
	once      sync.Once
	logBuffer sync.Pool
)

const (
	logQueueSize = 10000
)

func Init() {
	once.Do(func() {
		logger = logrus.New()
		logger.SetLevel(logrus.InfoLevel)

		// lumberjack 负责日志轮转
		logRotator := &lumberjack.Logger{
			Filename:   "app.log",
			MaxSize:    50, // megabytes
			MaxBackups: 3,
			MaxAge:     7, //days
			Compress:   true,
		}
		// 同时输出到文件和标准输出
		mw := io.MultiWriter(os.Stdout, logRotator)
		logger.SetOutput(mw)

		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			CallerPrettyfier: func(f *runtime.Frame) (string, string) {
				filename := strings.Split(f.File, "/")
				return fmt.Sprintf("%s()", f.Function), fmt.Sprintf("%s:%d", filename[len(filename)-1], f.Line)
			},
		})

		logger.SetReportCaller(true)

		logChan = make(chan *logrus.Entry, logQueueSize)
		logBuffer = sync.Pool{
			New: func() interface{} {
				return new(logrus.Entry)
			},
		}

		go consumeLogs()
	})
}

func consumeLogs() {
	for entry := range logChan {
		entry.Logger.WithFields(entry.Data).Log(entry.Level, entry.Message)
		logBuffer.Put(entry)
		monitoring.LogQueueSize.Set(float64(len(logChan)))
	}
}

func Log(level logrus.Level, message string, fields logrus.Fields) {
	if logger == nil {
		// 未初始化时退回标准输出
		fmt.Printf("logger not initialized: %s\n", message)
		return
	}

	entry := logBuffer.Get().(*logrus.Entry)
	entry.Logger = logger
	entry.Level = level
	entry.Message = message
	entry.Time = time.Now()
	entry.Data = fields

	select {
	case logChan <- entry:
	default:
		// 队列满时丢弃该条日志并计数
		monitoring.LogsDroppedTotal.Inc()
	}
}

func Info(message string, fields logrus.Fields) {
	Log(logrus.InfoLevel, message, fields)
}

func Warn(message string, fields logrus.Fields) {
	Log(logrus.WarnLevel, message, fields)
}

func Error(message string, fields logrus.Fields) {
	Log(logrus.ErrorLevel, message, fields)
}
