package internal

import (
	"time"

	"github.com/rs/zerolog/log"
)

// startTimer logs the elapsed time of a named phase at debug level when the
// returned func is called.
func startTimer(label string) func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		elapsed := time.Since(start)
		log.Debug().Str("phase", label).Dur("elapsed", elapsed).Msg("perf")
		return elapsed
	}
}
