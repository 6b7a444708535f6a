package slurm

import "strings"

// Job states as reported by the backend, always upper case.
const (
	StatePending     = "PENDING"
	StateRunning     = "RUNNING"
	StateCompleting  = "COMPLETING"
	StateCompleted   = "COMPLETED"
	StateOutOfMemory = "OUT_OF_MEMORY"
	StateTimeout     = "TIMEOUT"
	StateFailed      = "FAILED"
	StateCancelled   = "CANCELLED"
	StatePreempted   = "PREEMPTED"
)

// States lists the job states the dashboard knows how to toggle.
func States() []string {
	return []string{
		StatePending,
		StateRunning,
		StateCompleting,
		StateCompleted,
		StateOutOfMemory,
		StateTimeout,
		StateFailed,
		StateCancelled,
		StatePreempted,
	}
}

// Bucket 为状态汇总类别, 仪表盘计数器按此分组.
type Bucket int

const (
	BucketNone Bucket = iota
	BucketCompleted
	BucketRunning
	BucketPending
	BucketStalled
)

func (b Bucket) String() string {
	switch b {
	case BucketCompleted:
		return "completed"
	case BucketRunning:
		return "running"
	case BucketPending:
		return "pending"
	case BucketStalled:
		return "stalled"
	default:
		return "none"
	}
}

// Classify 将作业状态映射到汇总类别, 比较时忽略大小写. 未列出的状态归为 BucketNone.
func Classify(state string) Bucket {
	switch strings.ToLower(state) {
	case "completed":
		return BucketCompleted
	case "running", "completing":
		return BucketRunning
	case "pending":
		return BucketPending
	case "timeout", "out_of_memory", "failed", "cancelled", "preempted":
		return BucketStalled
	default:
		return BucketNone
	}
}

// CSSClass is the lower-cased state, used as a class name on the state cell.
func CSSClass(state string) string {
	return strings.ToLower(state)
}

// Display renders OUT_OF_MEMORY as "out of memory".
func Display(state string) string {
	return strings.ReplaceAll(strings.ToLower(state), "_", " ")
}
