package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDivide(t *testing.T) {
	items := make([]int, 2500)
	for i := range items {
		items[i] = i
	}

	chunks := Divide(items, 1000)
	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 1000)
	assert.Len(t, chunks[1], 1000)
	assert.Len(t, chunks[2], 500)
	assert.Equal(t, 1000, chunks[1][0])
	assert.Equal(t, 2499, chunks[2][499])
}

func TestDivideEdgeCases(t *testing.T) {
	assert.Nil(t, Divide([]int{}, 10))
	assert.Equal(t, [][]int{{1, 2}, {3, 4}}, Divide([]int{1, 2, 3, 4}, 2))
	assert.Equal(t, [][]int{{1, 2, 3}}, Divide([]int{1, 2, 3}, 10))
	assert.Equal(t, [][]int{{1, 2, 3}}, Divide([]int{1, 2, 3}, 0))
}

func TestDivideChunksDoNotShareCapacity(t *testing.T) {
	chunks := Divide([]int{1, 2, 3, 4}, 2)
	_ = append(chunks[0], 99)
	assert.Equal(t, 3, chunks[1][0])
}

func TestUploadInBatchesStopsOnFirstError(t *testing.T) {
	var calls [][]string
	boom := errors.New("boom")

	_, err := uploadInBatches(context.Background(), []string{"a", "b", "c", "d", "e"}, 2,
		func(ctx context.Context, chunk []string) (int, error) {
			calls = append(calls, chunk)
			if len(calls) == 2 {
				return 0, boom
			}
			return 0, nil
		})

	require.ErrorIs(t, err, boom)
	assert.Equal(t, [][]string{{"a", "b"}, {"c", "d"}}, calls)
}

func TestUploadInBatchesSumsRejected(t *testing.T) {
	rejected, err := uploadInBatches(context.Background(), []int{1, 2, 3}, 1,
		func(ctx context.Context, chunk []int) (int, error) {
			return chunk[0] % 2, nil
		})
	require.NoError(t, err)
	assert.Equal(t, 2, rejected)
}
