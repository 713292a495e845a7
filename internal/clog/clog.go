// Package clog is the compiler's structured logger: a single
// logrus.Logger built once with logrus.New(), never the mutated package
// global logrus.StandardLogger(), so that concurrent Compile calls never
// race on shared logger state.
package clog

import "github.com/sirupsen/logrus"

var logger = logrus.New()

// Configure adjusts the package logger's level and output. It is meant to
// be called once, by cmd/sqlquerypp at startup, never from core compiler
// code.
func Configure(level logrus.Level, out logrus.Hook) {
	logger.SetLevel(level)
	if out != nil {
		logger.AddHook(out)
	}
}

// With returns a logrus.FieldLogger carrying key as a structured field,
// for chaining further WithField/WithError calls.
func With(key string, value interface{}) logrus.FieldLogger {
	return logger.WithField(key, value)
}

// Default returns the package logger as a logrus.FieldLogger.
func Default() logrus.FieldLogger {
	return logger
}
