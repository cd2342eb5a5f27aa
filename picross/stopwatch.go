package picross

import (
	"fmt"
	"strings"
	"time"
)

// Stopwatch accumulates wall time into named buckets. Start/Stop pairs for
// the same bucket add up across calls; Stop without a matching Start is a
// no-op.
type Stopwatch struct {
	Buckets map[string]time.Duration
	starts  map[string]time.Time
}

func NewStopwatch() Stopwatch {
	return Stopwatch{
		Buckets: make(map[string]time.Duration),
		starts:  make(map[string]time.Time),
	}
}

func (s *Stopwatch) Start(name string) {
	s.starts[name] = time.Now()
}

func (s *Stopwatch) Stop(name string) {
	start, ok := s.starts[name]
	if !ok {
		return
	}
	s.Buckets[name] += time.Since(start)
	delete(s.starts, name)
}

func (s *Stopwatch) Results() string {
	var sb strings.Builder
	for name, d := range s.Buckets {
		fmt.Fprintf(&sb, "%s: %.4f\n", name, d.Seconds())
	}
	return sb.String()
}
