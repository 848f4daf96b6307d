package tree

import (
	"io/fs"
)

// Kind is what a path refers to.
type Kind int

const (
	KindAbsent Kind = iota
	KindFile
	KindDir
	KindSymlink
	KindOther
)

func (k Kind) String() string {
	switch k {
	case KindAbsent:
		return "absent"
	case KindFile:
		return "file"
	case KindDir:
		return "directory"
	case KindSymlink:
		return "symlink"
	default:
		return "other"
	}
}

// kindOf classifies file info. Symlinks are only reported when info came
// from Lstat.
func kindOf(info fs.FileInfo) Kind {
	mode := info.Mode()
	switch {
	case mode&fs.ModeSymlink != 0:
		return KindSymlink
	case mode.IsDir():
		return KindDir
	case mode.IsRegular():
		return KindFile
	default:
		return KindOther
	}
}

// Strategy is how Move relocates a tree.
type Strategy int

const (
	// StrategyNone means no relocation happened: the operation was not a
	// move, or it was a no-op.
	StrategyNone Strategy = iota
	// StrategyRename relocates with the host's rename primitive.
	StrategyRename
	// StrategyCopyDelete copies the tree and then deletes the source.
	StrategyCopyDelete
)

func (s Strategy) String() string {
	switch s {
	case StrategyRename:
		return "rename"
	case StrategyCopyDelete:
		return "copy-delete"
	default:
		return "none"
	}
}

// Status is the arm of an Outcome.
type Status int

const (
	StatusSuccess Status = iota
	StatusFailure
)

func (s Status) String() string {
	if s == StatusSuccess {
		return "success"
	}
	return "failure"
}

// Outcome is the result of a tree operation.
type Outcome struct {
	Status Status

	// Reason is an errors.Error describing the failure. Nil on success.
	Reason error

	// Skipped is set when the destination already existed and nothing was
	// written.
	Skipped bool

	// Strategy is the strategy that completed, or was last attempted by, a
	// Move.
	Strategy Strategy

	// CleanupPending is set when a Move copied the tree but could not delete
	// the source. Both trees exist.
	CleanupPending bool
}

// OK reports whether the operation succeeded.
func (o Outcome) OK() bool {
	return o.Status == StatusSuccess
}

func success() Outcome {
	return Outcome{Status: StatusSuccess}
}

func failure(reason error) Outcome {
	return Outcome{Status: StatusFailure, Reason: reason}
}
