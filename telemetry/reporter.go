package telemetry

import (
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/Nikitarc/mazerunner-core/mouse"
)

var (
	_ mouse.Reporter = (*LogReporter)(nil)
	_ mouse.Reporter = (MultiReporter)(nil)
)

// LogReporter writes one structured line per trace record. Every
// reporter carries its own run id, so records from consecutive or
// interleaved runs can be told apart in the shared log.
type LogReporter struct {
	entry *log.Entry
}

// NewLogReporter builds a reporter on the given logger. A nil logger
// means the standard one.
func NewLogReporter(logger *log.Logger) *LogReporter {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &LogReporter{
		entry: logger.WithField("run", uuid.NewString()),
	}
}

// Report logs the record at info level.
func (r *LogReporter) Report(rep mouse.Report) {
	r.entry.WithFields(log.Fields{
		"action":  rep.Action.String(),
		"state":   rep.State.String(),
		"x":       rep.Location.X,
		"y":       rep.Location.Y,
		"heading": rep.Heading.String(),
		"pos":     rep.Position,
		"front":   rep.FrontSum,
	}).Info("mouse: trace")
}

// MultiReporter fans each record out to every reporter in order. Nil
// entries are skipped.
type MultiReporter []mouse.Reporter

// Report forwards rep to every sink.
func (mr MultiReporter) Report(rep mouse.Report) {
	for _, r := range mr {
		if r != nil {
			r.Report(rep)
		}
	}
}
