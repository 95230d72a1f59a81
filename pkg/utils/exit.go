package utils

import (
	"os"
	"time"

	log "github.com/sirupsen/logrus"
)

// ForceExit terminates the process when a second signal arrives or when the
// graceful shutdown takes longer than maxDelay.
func ForceExit(exitSig chan os.Signal, maxDelay time.Duration) {
	go func() {
		time.Sleep(maxDelay)
		log.Warnf("Shutdown did not complete within %v, exiting", maxDelay)
		os.Exit(1)
	}()

	s := <-exitSig
	log.Warnf("Signal %s received during shutdown, exiting", s)
	os.Exit(1)
}
