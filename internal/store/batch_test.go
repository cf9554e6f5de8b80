package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBatchStrategy_String(t *testing.T) {
	assert.Equal(t, "sequential", BatchSequential.String())
	assert.Equal(t, "grouped", BatchGrouped.String())
	assert.Equal(t, "transaction", BatchTransaction.String())
	assert.Equal(t, "unknown(42)", BatchStrategy(42).String())
}

func TestParseBatchStrategy(t *testing.T) {
	for _, strategy := range []BatchStrategy{BatchSequential, BatchGrouped, BatchTransaction} {
		got, err := ParseBatchStrategy(strategy.String())
		require.NoError(t, err)
		assert.Equal(t, strategy, got)
	}

	_, err := ParseBatchStrategy("bulk")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
