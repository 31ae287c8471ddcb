// Package signals keeps terminal-generated signals from interrupting a
// database session halfway through a manifest write.
//
// While at least one Guard is held, SIGHUP, SIGINT, SIGQUIT and SIGTERM are
// ignored process-wide. The default disposition comes back when the last
// guard is released.
package signals

import (
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/arthur-debert/pkgdb/pkg/logging"
)

// Ignored lists the signals ignored while a guard is held.
var Ignored = []os.Signal{syscall.SIGHUP, syscall.SIGINT, syscall.SIGQUIT, syscall.SIGTERM}

var (
	mu     sync.Mutex
	active int
)

// Guard is one holder of the process-wide ignore policy.
type Guard struct {
	once sync.Once
}

// Ignore installs the policy (if not already active) and returns a guard.
func Ignore() *Guard {
	mu.Lock()
	defer mu.Unlock()

	if active == 0 {
		signal.Ignore(Ignored...)
		logger := logging.GetLogger("signals")
		logger.Debug().Msg("Ignoring terminal signals")
	}
	active++
	return &Guard{}
}

// Restore releases the guard. Calling it twice is harmless.
func (g *Guard) Restore() {
	g.once.Do(func() {
		mu.Lock()
		defer mu.Unlock()

		active--
		if active == 0 {
			signal.Reset(Ignored...)
			logger := logging.GetLogger("signals")
			logger.Debug().Msg("Restored signal handling")
		}
	})
}

// Active reports whether the policy is currently installed.
func Active() bool {
	mu.Lock()
	defer mu.Unlock()
	return active > 0
}
