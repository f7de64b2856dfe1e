// Command incomfort reads and controls heaters behind an Intergas InComfort
// LAN2RF gateway.
package main

import (
	"os"

	"incomfort/internal/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.Get(logger.InfoLevel).Errorw("command failed", "err", err)
		os.Exit(1)
	}
}
