package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/joshua23/animation-Build-hub/internal/system"
)

// BenchmarkLog collects one line per run when stats are enabled.
var BenchmarkLog = "benchmark.log"

// Stats accumulates stage timings across documents. Stage times are summed
// over workers, so with more than one worker they can exceed Total.
type Stats struct {
	mu sync.Mutex

	Documents int
	Parse     time.Duration
	Assemble  time.Duration
	Write     time.Duration
	Total     time.Duration
}

func (s *Stats) add(parse, assemble, write time.Duration) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Documents++
	s.Parse += parse
	s.Assemble += assemble
	s.Write += write
}

func (s *Stats) finish(start time.Time) {
	if s == nil {
		return
	}
	s.mu.Lock()
	s.Total += time.Since(start)
	s.mu.Unlock()
}

// Rate returns documents converted per second of wall time.
func (s *Stats) Rate() float64 {
	if s.Total <= 0 {
		return 0
	}
	return float64(s.Documents) / s.Total.Seconds()
}

// Report formats the performance report printed after a run.
func (s *Stats) Report(build string, res system.Resources) string {
	return fmt.Sprintf(
		"--- [PERFORMANCE REPORT] ---\n"+
			"Build: %s\n"+
			"Documents: %d\n"+
			"Total Time: %.2fs\n"+
			"Parsing: %.2fs\n"+
			"Assembly: %.2fs\n"+
			"Writing: %.2fs\n"+
			"Docs/s: %.2f\n"+
			"RSS: %.1f MiB | CPUs: %d\n"+
			"----------------------------\n",
		build, s.Documents, s.Total.Seconds(), s.Parse.Seconds(), s.Assemble.Seconds(),
		s.Write.Seconds(), s.Rate(), res.RSSMiB(), res.CPUs,
	)
}

// AppendLog appends a one-line summary of the run to path.
func (s *Stats) AppendLog(path, build, input string) error {
	entry := fmt.Sprintf("[%s] Build: %s | Input: %s | Docs: %d | Total: %.2fs | Parse: %.2fs | Assemble: %.2fs | Write: %.2fs | Docs/s: %.2f\n",
		time.Now().Format("2006-01-02 15:04:05"),
		build,
		filepath.Base(input),
		s.Documents,
		s.Total.Seconds(),
		s.Parse.Seconds(),
		s.Assemble.Seconds(),
		s.Write.Seconds(),
		s.Rate(),
	)

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = f.WriteString(entry)
	return err
}
