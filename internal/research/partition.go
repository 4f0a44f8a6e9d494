package research

import "github.com/sells-group/deepresearch-cli/internal/model"

// defaultBatchSize bounds how many follow records go into one model call.
const defaultBatchSize = 75

// Partition splits follows into contiguous, order-preserving batches of at
// most batchSize entries. The last batch may be shorter. Concatenating the
// batches in index order reconstructs the input exactly; an empty input
// yields zero batches. Pure function, no failure modes.
func Partition(follows []model.FollowRelation, batchSize int) []model.Batch {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	if len(follows) == 0 {
		return nil
	}

	batches := make([]model.Batch, 0, (len(follows)+batchSize-1)/batchSize)
	for start := 0; start < len(follows); start += batchSize {
		end := min(start+batchSize, len(follows))
		batches = append(batches, model.Batch{
			Index:   len(batches),
			Follows: follows[start:end],
		})
	}
	return batches
}

// HandleSet collects the distinct handles present in follows. Evidence
// citations are validated against this set before acceptance.
func HandleSet(follows []model.FollowRelation) map[string]struct{} {
	set := make(map[string]struct{}, len(follows))
	for _, f := range follows {
		if f.Handle != "" {
			set[f.Handle] = struct{}{}
		}
	}
	return set
}
