package tasks

import (
	"fmt"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Operation phase enumeration
type Phase int

const (
	LoadLists Phase = iota
	ExportList
	WriteManifest
)

func (p Phase) String() string {
	switch p {
	case LoadLists:
		return "load_lists"
	case ExportList:
		return "export_list"
	case WriteManifest:
		return "write_manifest"
	default:
		return ""
	}
}

func loadingListsUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   LoadLists,
		Step:    1,
		Total:   1,
		Message: "Loading grocery lists...",
	}
}

func foundListsUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   LoadLists,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Found %d grocery lists", total),
		Data:    total,
	}
}

func exportCompletedUpdate(step, total int, listID int64, filesCount int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportList,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ list %d (%d files)", step, total, listID, filesCount),
	}
}

func exportFailedUpdate(step, total int, listID int64, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   ExportList,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ list %d: %v", step, total, listID, err),
	}
}

func manifestUpdate(path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteManifest,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Manifest written to %s", path),
		Data:    path,
	}
}
