package store

import "fmt"

// BatchStrategy selects how a bulk insert is executed. All strategies produce
// identical stored state; they differ only in throughput and latency.
type BatchStrategy int

const (
	// BatchSequential issues one autocommitted insert per entity.
	BatchSequential BatchStrategy = iota

	// BatchGrouped sends all rows in a single multi-row statement.
	BatchGrouped

	// BatchTransaction wraps every insert in one transaction with a single
	// commit at the end.
	BatchTransaction
)

// ParseBatchStrategy converts a strategy name to its BatchStrategy.
func ParseBatchStrategy(name string) (BatchStrategy, error) {
	switch name {
	case "sequential":
		return BatchSequential, nil
	case "grouped":
		return BatchGrouped, nil
	case "transaction":
		return BatchTransaction, nil
	default:
		return 0, ErrInvalidInput.WithCause(fmt.Errorf("unknown batch strategy %q", name))
	}
}

// String returns the strategy name for logs.
func (s BatchStrategy) String() string {
	switch s {
	case BatchSequential:
		return "sequential"
	case BatchGrouped:
		return "grouped"
	case BatchTransaction:
		return "transaction"
	default:
		return fmt.Sprintf("unknown(%d)", int(s))
	}
}
