//go:build windows

package main

import "os"

// Windows delivers only os.Interrupt through os/signal.
var shutdownSignals = []os.Signal{os.Interrupt}
