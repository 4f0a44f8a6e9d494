package research

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPartition_SplitsWithShorterTail(t *testing.T) {
	follows := makeFollows(220)

	batches := Partition(follows, 75)

	require.Len(t, batches, 3)
	assert.Len(t, batches[0].Follows, 75)
	assert.Len(t, batches[1].Follows, 75)
	assert.Len(t, batches[2].Follows, 70)
	for i, b := range batches {
		assert.Equal(t, i, b.Index)
	}
}

func TestPartition_ConcatenationReconstructsInput(t *testing.T) {
	follows := makeFollows(163)

	batches := Partition(follows, 50)

	var rebuilt []string
	for _, b := range batches {
		for _, f := range b.Follows {
			rebuilt = append(rebuilt, f.Handle)
		}
	}

	require.Len(t, rebuilt, len(follows))
	for i, f := range follows {
		assert.Equal(t, f.Handle, rebuilt[i])
	}
}

func TestPartition_ExactMultiple(t *testing.T) {
	batches := Partition(makeFollows(150), 75)

	require.Len(t, batches, 2)
	assert.Len(t, batches[0].Follows, 75)
	assert.Len(t, batches[1].Follows, 75)
}

func TestPartition_FewerThanOneBatch(t *testing.T) {
	batches := Partition(makeFollows(12), 75)

	require.Len(t, batches, 1)
	assert.Len(t, batches[0].Follows, 12)
}

func TestPartition_EmptyInput(t *testing.T) {
	assert.Empty(t, Partition(nil, 75))
}

func TestPartition_NonPositiveSizeFallsBackToDefault(t *testing.T) {
	batches := Partition(makeFollows(80), 0)

	require.Len(t, batches, 2)
	assert.Len(t, batches[0].Follows, 75)
	assert.Len(t, batches[1].Follows, 5)
}

func TestHandleSet(t *testing.T) {
	follows := makeFollows(3)
	follows = append(follows, follows[0]) // duplicate handle

	set := HandleSet(follows)

	assert.Len(t, set, 3)
	_, ok := set["acct_001"]
	assert.True(t, ok)
	_, ok = set["not_followed"]
	assert.False(t, ok)
}
