package telemetry

import (
	"fmt"
	"log/slog"
)

// BookmarkType identifies the type of bookmark.
type BookmarkType string

const (
	BookmarkSettled       BookmarkType = "settled"
	BookmarkMoveSurge     BookmarkType = "move_surge"
	BookmarkPressureSpike BookmarkType = "pressure_spike"
)

// Bookmark represents an automatically triggered bookmark.
type Bookmark struct {
	Type        BookmarkType `csv:"type"`
	Tick        int64        `csv:"tick"`
	Description string       `csv:"description"`
}

// LogBookmark logs the bookmark using slog.
func (b Bookmark) LogBookmark() {
	slog.Info("bookmark",
		"type", string(b.Type),
		"tick", b.Tick,
		"description", b.Description,
	)
}

// BookmarkDetector detects interesting moments in a run.
type BookmarkDetector struct {
	// Rolling history (circular buffer)
	history     []WindowStats
	historySize int
	historyIdx  int
	historyFull bool

	settled bool // last window had no moves after earlier movement
}

// NewBookmarkDetector creates a detector with the given history size.
func NewBookmarkDetector(historySize int) *BookmarkDetector {
	if historySize < 3 {
		historySize = 3
	}
	return &BookmarkDetector{
		history:     make([]WindowStats, historySize),
		historySize: historySize,
	}
}

// Check analyzes the latest stats and returns any triggered bookmarks.
func (bd *BookmarkDetector) Check(stats WindowStats) []Bookmark {
	var bookmarks []Bookmark

	if bd.historyFull || bd.historyIdx > 0 {
		if b := bd.checkSettled(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		if b := bd.checkMoveSurge(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
		if b := bd.checkPressureSpike(stats); b != nil {
			bookmarks = append(bookmarks, *b)
		}
	}

	bd.addToHistory(stats)
	return bookmarks
}

func (bd *BookmarkDetector) addToHistory(stats WindowStats) {
	bd.history[bd.historyIdx] = stats
	bd.historyIdx = (bd.historyIdx + 1) % bd.historySize
	if bd.historyIdx == 0 {
		bd.historyFull = true
	}
}

func (bd *BookmarkDetector) getHistory() []WindowStats {
	if bd.historyFull {
		return bd.history
	}
	return bd.history[:bd.historyIdx]
}

// checkSettled fires once when movement stops, and re-arms when it resumes.
func (bd *BookmarkDetector) checkSettled(stats WindowStats) *Bookmark {
	if stats.Moves > 0 {
		bd.settled = false
		return nil
	}
	if bd.settled {
		return nil
	}

	var moved int
	for _, h := range bd.getHistory() {
		moved += h.Moves
	}
	if moved == 0 {
		return nil
	}

	bd.settled = true
	return &Bookmark{
		Type:        BookmarkSettled,
		Tick:        stats.WindowEndTick,
		Description: fmt.Sprintf("No displacement over %d ticks after %d recent moves", stats.Ticks, moved),
	}
}

func (bd *BookmarkDetector) checkMoveSurge(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total int
	for _, h := range history {
		total += h.Moves
	}
	avg := float64(total) / float64(len(history))
	if avg == 0 {
		return nil
	}

	if float64(stats.Moves) > avg*2.0 && stats.Moves >= 10 {
		return &Bookmark{
			Type:        BookmarkMoveSurge,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Moves %d is %.1fx average (%.1f)", stats.Moves, float64(stats.Moves)/avg, avg),
		}
	}
	return nil
}

func (bd *BookmarkDetector) checkPressureSpike(stats WindowStats) *Bookmark {
	history := bd.getHistory()
	if len(history) < 3 {
		return nil
	}

	var total float64
	for _, h := range history {
		total += h.PressureMax
	}
	avg := total / float64(len(history))
	if avg <= 0 {
		return nil
	}

	if stats.PressureMax > avg*2.0 {
		return &Bookmark{
			Type:        BookmarkPressureSpike,
			Tick:        stats.WindowEndTick,
			Description: fmt.Sprintf("Max pressure %.3g is %.1fx average (%.3g)", stats.PressureMax, stats.PressureMax/avg, avg),
		}
	}
	return nil
}
