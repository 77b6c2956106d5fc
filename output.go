package main

import (
	"io"
	"os"

	"git.sr.ht/~spc/go-log"
	"github.com/coreos/go-systemd/v22/journal"

	"github.com/capdb/capdiff/internal/report"
)

// journalSink mirrors transcript lines to the systemd journal.
type journalSink struct {
	send func(message string, priority journal.Priority, vars map[string]string) error
}

func (s journalSink) Emit(line string) {
	if line == "" {
		return
	}
	if err := s.send(line, journal.PriInfo, map[string]string{"SYSLOG_IDENTIFIER": "capdiff"}); err != nil {
		log.Debugf("cannot mirror to journal: %v", err)
	}
}

// outputSink returns the sink the transcript is written to: w, and the
// journal as well when mirroring is requested and the journal is reachable.
func outputSink(w io.Writer, mirrorJournal bool) report.Sink {
	if w == nil {
		w = os.Stdout
	}
	stdout := report.WriterSink{W: w}
	if !mirrorJournal {
		return stdout
	}
	if !journal.Enabled() {
		log.Warnf("journal mirroring requested but the journal is not available")
		return stdout
	}
	return report.MultiSink{stdout, journalSink{send: journal.Send}}
}
