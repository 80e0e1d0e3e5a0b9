/*
Copyright SecureKey Technologies Inc. All Rights Reserved.

SPDX-License-Identifier: Apache-2.0
*/

package logutil

import (
	"fmt"

	"github.com/securekey/fabric-wallet-go/spi/log"
)

// LogError is a utility function to log error conditions from controller commands.
func LogError(logger log.Logger, command, action, errMsg string, data ...string) {
	logger.Errorf("command=[%s] action=[%s] %s errMsg=[%s]", command, action, data, errMsg)
}

// LogInfo is a utility function to log info conditions from controller commands.
func LogInfo(logger log.Logger, command, action, errMsg string, data ...string) {
	logger.Infof("command=[%s] action=[%s] %s errMsg=[%s]", command, action, data, errMsg)
}

// LogDebug is a utility function to log debug conditions from controller commands.
func LogDebug(logger log.Logger, command, action, msg string, data ...string) {
	logger.Debugf("command=[%s] action=[%s] %s msg=[%s]", command, action, data, msg)
}

// CreateKeyValueString creates a concatenated string to represent a key-value pair.
func CreateKeyValueString(key, val string) string {
	return fmt.Sprintf("%s=%s", key, val)
}
