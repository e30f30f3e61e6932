package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	logFileMaxSizeMB  = 10
	logFileMaxBackups = 3
	logFileMaxAgeDays = 28
)

/*
newLogger returns a zap logger writing messages of the given level or above
either to a rotated log file as JSON or, if no file is given, to STDERR in
console format. verbose forces the debug level.
*/
func newLogger(level, file string, verbose bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level: %v", err)
	}
	if verbose {
		lvl = zapcore.DebugLevel
	}
	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	var core zapcore.Core
	if file == "" {
		encoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
		core = zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), zapcore.Lock(os.Stderr), lvl)
	} else {
		w := zapcore.AddSync(&lumberjack.Logger{
			Filename:   file,
			MaxSize:    logFileMaxSizeMB,
			MaxBackups: logFileMaxBackups,
			MaxAge:     logFileMaxAgeDays,
		})
		core = zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), w, lvl)
	}
	return zap.New(core), nil
}

// Logf logs an info message formatted with the given format and arguments.
func (rcc *rootCmdConfig) Logf(format string, a ...interface{}) {
	if rcc.logger == nil {
		return
	}
	rcc.logger.Sugar().Infof(format, a...)
}

// fail prints err on STDERR, logs it and exits with the given code.
func (rcc *rootCmdConfig) fail(code int, err error) {
	fmt.Fprintln(os.Stderr, err)
	if rcc.logger != nil {
		rcc.logger.Error("command failed", zap.Error(err), zap.Int("exitCode", code))
		rcc.logger.Sync()
	}
	os.Exit(code)
}
