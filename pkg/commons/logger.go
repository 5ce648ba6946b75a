// Copyright (c) 2024-2026 Confera
// Author: Platform Team <platform@confera.io>
//
// Licensed under GPL-2.0 with Confera Additional Terms.
// See LICENSE.md or contact sales@confera.io for commercial usage.

package commons

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Logger is the application-wide logging contract. All services, apis and
// clients receive it by reference at construction time.
type Logger interface {
	Debug(args ...interface{})
	Debugf(template string, args ...interface{})
	Info(args ...interface{})
	Infof(template string, args ...interface{})
	Warn(args ...interface{})
	Warnf(template string, args ...interface{})
	Error(args ...interface{})
	Errorf(template string, args ...interface{})
	Fatalf(template string, args ...interface{})
	With(args ...interface{}) Logger
}

type applicationLogger struct {
	sugar *zap.SugaredLogger
}

// NewApplicationLogger builds a zap-backed logger writing to stdout and,
// when filePath is non-empty, to a size-rotated log file.
func NewApplicationLogger(serviceName string, level string, filePath string) Logger {
	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	cores := []zapcore.Core{
		zapcore.NewCore(
			zapcore.NewConsoleEncoder(encoderCfg),
			zapcore.AddSync(os.Stdout),
			parseLevel(level),
		),
	}
	if filePath != "" {
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(encoderCfg),
			zapcore.AddSync(&lumberjack.Logger{
				Filename:   filePath,
				MaxSize:    100,
				MaxBackups: 5,
				MaxAge:     30,
			}),
			parseLevel(level),
		))
	}

	base := zap.New(zapcore.NewTee(cores...), zap.AddCaller(), zap.AddCallerSkip(1))
	return &applicationLogger{
		sugar: base.Sugar().With("service", serviceName),
	}
}

func parseLevel(level string) zapcore.Level {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return zapcore.InfoLevel
	}
	return lvl
}

func (l *applicationLogger) Debug(args ...interface{}) { l.sugar.Debug(args...) }
func (l *applicationLogger) Info(args ...interface{})  { l.sugar.Info(args...) }
func (l *applicationLogger) Warn(args ...interface{})  { l.sugar.Warn(args...) }
func (l *applicationLogger) Error(args ...interface{}) { l.sugar.Error(args...) }

func (l *applicationLogger) Debugf(template string, args ...interface{}) {
	l.sugar.Debugf(template, args...)
}

func (l *applicationLogger) Infof(template string, args ...interface{}) {
	l.sugar.Infof(template, args...)
}

func (l *applicationLogger) Warnf(template string, args ...interface{}) {
	l.sugar.Warnf(template, args...)
}

func (l *applicationLogger) Errorf(template string, args ...interface{}) {
	l.sugar.Errorf(template, args...)
}

func (l *applicationLogger) Fatalf(template string, args ...interface{}) {
	l.sugar.Fatalf(template, args...)
}

func (l *applicationLogger) With(args ...interface{}) Logger {
	return &applicationLogger{sugar: l.sugar.With(args...)}
}
