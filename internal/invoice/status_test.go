package invoice

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for in, want := range map[string]Status{
		"draft":      Draft,
		" Finalized": Finalized,
		"VOIDED":     Voided,
	} {
		got, err := ParseStatus(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}

	_, err := ParseStatus("paid")
	require.Error(t, err)
}

func TestNextCycles(t *testing.T) {
	assert.Equal(t, Finalized, Next(Draft))
	assert.Equal(t, Voided, Next(Finalized))
	assert.Equal(t, Draft, Next(Voided))
	assert.Equal(t, Draft, Next(Status("bogus")))
}

func TestStatusCellCycle(t *testing.T) {
	cell := NewStatusCell(Draft)

	// A reader captured before the change still sees the latest value.
	var reader StatusReader = cell
	require.Equal(t, Draft, reader.Load())

	assert.Equal(t, Finalized, cell.Cycle())
	assert.Equal(t, Finalized, reader.Load())
	assert.Equal(t, Voided, cell.Cycle())
	assert.Equal(t, Draft, cell.Cycle())
	assert.Equal(t, Draft, reader.Load())
}

func TestConcurrentCyclesEachAdvanceOnce(t *testing.T) {
	cell := NewStatusCell(Draft)

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			cell.Cycle()
		}()
	}
	wg.Wait()

	// 30 steps through a cycle of three lands back on the start
	assert.Equal(t, Draft, cell.Load())
	cell.Cycle()
	assert.Equal(t, Finalized, cell.Load())
}

func TestZeroCellIsDraft(t *testing.T) {
	var c StatusCell
	assert.Equal(t, Draft, c.Load())
}

func TestZeroCellCycles(t *testing.T) {
	var c StatusCell
	assert.Equal(t, Finalized, c.Cycle())
	assert.Equal(t, Finalized, c.Load())
}
