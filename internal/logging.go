package internal

import (
	"log"
	"os"
)

// Logf is the diagnostic logger shared by every package. It defaults to
// log.Printf; tests may redirect or mute it with SetLogger.
var Logf func(format string, v ...any) = log.Printf

func InitLogging() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
}

// SetLogger replaces Logf. Passing nil installs a no-op logger.
func SetLogger(f func(format string, v ...any)) {
	if f == nil {
		Logf = func(string, ...any) {}
		return
	}
	Logf = f
}
