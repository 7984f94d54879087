//go:build windows

package main

import "os"

// shutdownSignals cancel a running conversion. SIGTERM does not exist on
// Windows.
var shutdownSignals = []os.Signal{os.Interrupt}
