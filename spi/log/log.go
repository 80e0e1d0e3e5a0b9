/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

// Package log defines the logging contract used throughout fabric-wallet-go.
// The default implementation lives in component/log; hosting applications swap
// in their own logging stack by passing a LoggerProvider to that package's
// Initialize function.
package log

// Level is the severity of a log line. Lower values are more severe - a module
// configured at a given level emits that level and everything more severe.
type Level int

// Severities, most severe first. INFO is the default for unconfigured modules.
const (
	CRITICAL Level = iota
	ERROR
	WARNING
	INFO
	DEBUG
)

// Logger is a leveled, fmt-style logger for one module. Fatalf is expected to
// end the process after logging and Panicf to panic, though custom
// implementations may choose otherwise.
type Logger interface {
	Panicf(msg string, args ...interface{})
	Fatalf(msg string, args ...interface{})
	Errorf(msg string, args ...interface{})
	Warnf(msg string, args ...interface{})
	Infof(msg string, args ...interface{})
	Debugf(msg string, args ...interface{})
}

// LoggerProvider returns the Logger to use for the given module name.
type LoggerProvider interface {
	GetLogger(module string) Logger
}
