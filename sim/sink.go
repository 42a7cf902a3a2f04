package sim

import (
	"fmt"

	"github.com/pthm-cable/fluidgrid/scene"
	"github.com/pthm-cable/fluidgrid/telemetry"
)

// snapshotSink overwrites the output file on every snapshot and, when an
// archive directory is set, also keeps one file per snapshot tick.
type snapshotSink struct {
	outFile    string
	archiveDir string
	ticks      func() int64
}

func (s *snapshotSink) WriteSnapshot(sc *scene.Scene) error {
	if s.outFile != "" {
		if err := scene.Save(s.outFile, sc); err != nil {
			return err
		}
	}
	if s.archiveDir != "" {
		// The engine counts the tick after the sink returns.
		if _, err := telemetry.SaveSnapshot(sc, s.archiveDir, s.ticks()+1); err != nil {
			return fmt.Errorf("archiving snapshot: %w", err)
		}
	}
	return nil
}
