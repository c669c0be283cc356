package render

import "github.com/themerdev/themer/internal/manifest"

// WriteMode is the write policy for a run. The type is open for extension;
// Normal and Force are the two defined modes.
type WriteMode int

const (
	// Normal respects conflicts: a file modified outside themer is never
	// overwritten.
	Normal WriteMode = iota
	// Force always (re)writes, overriding conflicts.
	Force
)

// String returns the string representation of the write mode.
func (m WriteMode) String() string {
	if m == Force {
		return "force"
	}

	return "normal"
}

// Decision is the per-file outcome of combining a FileStatus with the write
// policy.
type Decision int

const (
	// Write generates the file: it is untracked or its inputs changed.
	Write Decision = iota
	// ForceWrite rewrites a file that would otherwise be skipped or
	// conflict. Re-writing byte-identical content still counts as an action
	// for logging.
	ForceWrite
	// Skip leaves an up-to-date file alone.
	Skip
	// Conflict refuses to touch a file modified outside themer.
	Conflict
)

// ShouldWrite reports whether the decision touches the disk.
func (d Decision) ShouldWrite() bool {
	return d == Write || d == ForceWrite
}

// LogAction returns the human-readable action label for the decision.
func (d Decision) LogAction() string {
	switch d {
	case Write:
		return "write"
	case ForceWrite:
		return "force write"
	case Skip:
		return "up to date"
	case Conflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// Decide maps a file status and write policy to a decision. Pure function;
// the full table:
//
//	status     | Normal   | Force
//	NotTracked | Write    | Write
//	Stale      | Write    | Write
//	Unchanged  | Skip     | ForceWrite
//	Modified   | Conflict | ForceWrite
func Decide(status manifest.FileStatus, mode WriteMode) Decision {
	switch status {
	case manifest.Unchanged:
		if mode == Force {
			return ForceWrite
		}

		return Skip
	case manifest.Modified:
		if mode == Force {
			return ForceWrite
		}

		return Conflict
	default: // NotTracked, Stale
		return Write
	}
}
