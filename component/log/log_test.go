/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package log

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/securekey/fabric-wallet-go/component/log/internal/metadata"
	"github.com/securekey/fabric-wallet-go/spi/log"
)

// TestAllLevels tests logging level behaviour
// logging levels can be set per modules, if not set then it will default to 'INFO'.
func TestAllLevels(t *testing.T) {
	module := "sample-module-critical"
	SetLevel(module, log.CRITICAL)
	require.Equal(t, log.CRITICAL, GetLevel(module))
	verifyLevels(t, module, []log.Level{log.CRITICAL}, []log.Level{log.ERROR, log.WARNING, log.INFO, log.DEBUG})

	module = "sample-module-error"
	SetLevel(module, log.ERROR)
	require.Equal(t, log.ERROR, GetLevel(module))
	verifyLevels(t, module, []log.Level{log.CRITICAL, log.ERROR}, []log.Level{log.WARNING, log.INFO, log.DEBUG})

	module = "sample-module-warning"
	SetLevel(module, log.WARNING)
	require.Equal(t, log.WARNING, GetLevel(module))
	verifyLevels(t, module, []log.Level{log.CRITICAL, log.ERROR, log.WARNING}, []log.Level{log.INFO, log.DEBUG})

	module = "sample-module-info"
	SetLevel(module, log.INFO)
	require.Equal(t, log.INFO, GetLevel(module))
	verifyLevels(t, module, []log.Level{log.CRITICAL, log.ERROR, log.WARNING, log.INFO}, []log.Level{log.DEBUG})

	module = "sample-module-debug"
	SetLevel(module, log.DEBUG)
	require.Equal(t, log.DEBUG, GetLevel(module))
	verifyLevels(t, module, []log.Level{log.CRITICAL, log.ERROR, log.WARNING, log.INFO, log.DEBUG}, []log.Level{})
}

// TestLogLevel testing 'ParseLevel()' used for parsing log levels from strings.
func TestLogLevel(t *testing.T) {
	verifyLevelsNoError := func(expected log.Level, levels ...string) {
		for _, level := range levels {
			actual, err := ParseLevel(level)
			require.NoError(t, err, "not supposed to fail while parsing level string [%s]", level)
			require.Equal(t, expected, actual)
		}
	}

	verifyLevelsNoError(log.CRITICAL, "critical", "CRITICAL", "CriticAL")
	verifyLevelsNoError(log.ERROR, "error", "ERROR", "ErroR")
	verifyLevelsNoError(log.WARNING, "warning", "WARNING", "WarninG")
	verifyLevelsNoError(log.DEBUG, "debug", "DEBUG", "DebUg")
	verifyLevelsNoError(log.INFO, "info", "INFO", "iNFo")
}

// TestParseLevelError testing 'ParseLevel()' used for parsing log levels from strings.
func TestParseLevelError(t *testing.T) {
	verifyLevelError := func(levels ...string) {
		for _, level := range levels {
			_, err := ParseLevel(level)
			require.Error(t, err, "not supposed to succeed while parsing level string [%s]", level)
		}
	}

	verifyLevelError("", "D", "DE BUG", ".")
}

// TestCustomLogger tests custom logging feature when custom logging provider is supplied
// through 'Initialize()' call.
func TestCustomLogger(t *testing.T) {
	defer func() { loggerProviderOnce = sync.Once{} }()

	const module = "sample-module"

	recorder := &recordingLogger{}

	Initialize(&sampleProvider{recorder})

	logger := New(module)

	SetLevel(module, log.DEBUG)

	logger.Infof("sample info line")
	logger.Debugf("sample debug line")
	logger.Errorf("sample error line")

	require.Equal(t, []string{"sample info line", "sample debug line", "sample error line"}, recorder.entries)

	SetLevel(module, log.ERROR)

	logger.Infof("filtered info line")
	require.NotContains(t, recorder.entries, "filtered info line")
}

func verifyLevels(t *testing.T, module string, enabled, disabled []log.Level) {
	t.Helper()

	for _, level := range enabled {
		levelStr := metadata.ParseString(level)
		require.True(t, metadata.IsEnabledFor(module, level),
			"expected level [%s] to be enabled for module [%s]", levelStr, module)
	}

	for _, level := range disabled {
		levelStr := metadata.ParseString(level)
		require.False(t, metadata.IsEnabledFor(module, level),
			"expected level [%s] to be disabled for module [%s]", levelStr, module)
	}
}

// sampleProvider is a custom logging provider.
type sampleProvider struct {
	logger log.Logger
}

// GetLogger returns custom logger implementation.
func (p *sampleProvider) GetLogger(module string) log.Logger {
	return p.logger
}

// recordingLogger collects formatted log lines for assertions.
type recordingLogger struct {
	entries []string
}

func (l *recordingLogger) Panicf(msg string, args ...interface{}) {
	l.record(msg, args...)
}

func (l *recordingLogger) Fatalf(msg string, args ...interface{}) {
	l.record(msg, args...)
}

func (l *recordingLogger) Errorf(msg string, args ...interface{}) {
	l.record(msg, args...)
}

func (l *recordingLogger) Warnf(msg string, args ...interface{}) {
	l.record(msg, args...)
}

func (l *recordingLogger) Infof(msg string, args ...interface{}) {
	l.record(msg, args...)
}

func (l *recordingLogger) Debugf(msg string, args ...interface{}) {
	l.record(msg, args...)
}

func (l *recordingLogger) record(msg string, args ...interface{}) {
	l.entries = append(l.entries, fmt.Sprintf(msg, args...))
}
