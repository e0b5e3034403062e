// Copyright (c) 2017-2020 The Elastos Foundation
// Use of this source code is governed by an MIT
// license that can be found in the LICENSE file.
//

// Package log provides the process wide logger. Messages are written through
// a zap sugared logger, human readable on terminals and JSON otherwise.
package log

import (
	"fmt"
	"os"
	"sync"

	"github.com/mattn/go-isatty"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	level  = zap.NewAtomicLevelAt(zap.InfoLevel)
	mtx    sync.RWMutex
	logger = newLogger(os.Stderr)
)

// ParseLevel converts a level name into a zap level.
func ParseLevel(name string) (zapcore.Level, error) {
	switch name {
	case "debug":
		return zap.DebugLevel, nil
	case "info", "":
		return zap.InfoLevel, nil
	case "warn":
		return zap.WarnLevel, nil
	case "error":
		return zap.ErrorLevel, nil
	case "fatal":
		return zap.FatalLevel, nil
	}
	return zap.InfoLevel, fmt.Errorf("invalid log level %q", name)
}

// SetLevel changes the level of the process logger.
func SetLevel(name string) error {
	l, err := ParseLevel(name)
	if err != nil {
		return err
	}
	level.SetLevel(l)
	return nil
}

// Init sets the log level and redirects output to path. An empty path keeps
// logging on stderr.
func Init(levelName, path string) error {
	if err := SetLevel(levelName); err != nil {
		return err
	}
	if path == "" {
		return nil
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0640)
	if err != nil {
		return err
	}
	l := newLogger(file)
	mtx.Lock()
	logger = l
	mtx.Unlock()
	return nil
}

func newLogger(file *os.File) *zap.SugaredLogger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var encoder zapcore.Encoder
	if isatty.IsTerminal(file.Fd()) {
		encCfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encCfg)
	} else {
		encoder = zapcore.NewJSONEncoder(encCfg)
	}
	core := zapcore.NewCore(encoder, zapcore.Lock(file), level)
	return zap.New(core, zap.AddCaller(), zap.AddCallerSkip(1)).Sugar()
}

func get() *zap.SugaredLogger {
	mtx.RLock()
	defer mtx.RUnlock()
	return logger
}

func Debug(a ...interface{}) { get().Debug(a...) }

func Debugf(format string, a ...interface{}) { get().Debugf(format, a...) }

func Info(a ...interface{}) { get().Info(a...) }

func Infof(format string, a ...interface{}) { get().Infof(format, a...) }

func Warn(a ...interface{}) { get().Warn(a...) }

func Warnf(format string, a ...interface{}) { get().Warnf(format, a...) }

func Error(a ...interface{}) { get().Error(a...) }

func Errorf(format string, a ...interface{}) { get().Errorf(format, a...) }

func Fatal(a ...interface{}) { get().Fatal(a...) }

// Sync flushes buffered log entries.
func Sync() error {
	return get().Sync()
}
