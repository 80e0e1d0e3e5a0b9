/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package metadata

import (
	"fmt"
	"strings"
	"sync"

	"github.com/securekey/fabric-wallet-go/spi/log"
)

// levels keeps the configured log level per module. Default level is INFO.
type levels struct {
	sync.RWMutex
	values map[string]log.Level
}

//nolint:gochecknoglobals
var moduleLevels = &levels{values: make(map[string]log.Level)}

// SetLevel saves the log level for given module.
func SetLevel(module string, level log.Level) {
	moduleLevels.Lock()
	defer moduleLevels.Unlock()

	moduleLevels.values[module] = level
}

// GetLevel returns the log level for given module.
func GetLevel(module string) log.Level {
	moduleLevels.RLock()
	defer moduleLevels.RUnlock()

	level, exists := moduleLevels.values[module]
	if !exists {
		level, exists = moduleLevels.values[""]
		if !exists {
			return log.INFO
		}
	}

	return level
}

// IsEnabledFor returns true if given log level is enabled for given module.
func IsEnabledFor(module string, level log.Level) bool {
	return level <= GetLevel(module)
}

//nolint:gochecknoglobals
var levelNames = []string{
	"CRITICAL",
	"ERROR",
	"WARNING",
	"INFO",
	"DEBUG",
}

// ParseLevel returns the log level from a string representation.
func ParseLevel(level string) (log.Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(name, level) {
			return log.Level(i), nil
		}
	}

	return log.ERROR, fmt.Errorf("logger: invalid log level '%s'", level)
}

// ParseString returns string representation of given log level.
func ParseString(level log.Level) string {
	return levelNames[level]
}
