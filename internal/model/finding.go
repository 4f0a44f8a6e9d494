package model

// ClusterCategory identifies one fixed analysis category.
type ClusterCategory string

const (
	ClusterSportsFitness   ClusterCategory = "sports_fitness"
	ClusterEntertainment   ClusterCategory = "entertainment"
	ClusterCausesPolitics  ClusterCategory = "causes_politics"
	ClusterPersonalNetwork ClusterCategory = "personal_network"
	ClusterHiddenInterests ClusterCategory = "hidden_interests"
)

// ClusterCategories is the canonical category ordering. Downstream
// composition depends on this order, not on completion order.
var ClusterCategories = []ClusterCategory{
	ClusterSportsFitness,
	ClusterEntertainment,
	ClusterCausesPolitics,
	ClusterPersonalNetwork,
	ClusterHiddenInterests,
}

// Label returns the human-readable name used in prompts and the dossier.
func (c ClusterCategory) Label() string {
	switch c {
	case ClusterSportsFitness:
		return "Sports & Fitness"
	case ClusterEntertainment:
		return "Entertainment & Media"
	case ClusterCausesPolitics:
		return "Causes & Politics"
	case ClusterPersonalNetwork:
		return "Personal Network"
	case ClusterHiddenInterests:
		return "Hidden Interests"
	}
	return string(c)
}

// CategoryRank returns the position of c in the canonical ordering, or
// len(ClusterCategories) for unknown categories so they sort last.
func CategoryRank(c ClusterCategory) int {
	for i, known := range ClusterCategories {
		if known == c {
			return i
		}
	}
	return len(ClusterCategories)
}

// Batch is a contiguous fixed-size slice of the following list. Index is its
// position in the partition; concatenating all batches in index order
// reconstructs the original sequence exactly.
type Batch struct {
	Index   int              `json:"index"`
	Follows []FollowRelation `json:"follows"`
}

// Signal is one category-tagged observation extracted from a batch, with the
// actor handles that back it.
type Signal struct {
	Category    ClusterCategory `json:"category"`
	Observation string          `json:"observation"`
	Evidence    []string        `json:"evidence,omitempty"`
}

// NotableAccount is a standout account surfaced during batch analysis.
type NotableAccount struct {
	Handle        string `json:"handle"`
	Reason        string `json:"reason,omitempty"`
	FollowerCount int64  `json:"follower_count,omitempty"`
}

// BatchFinding is the output of analyzing one batch. A degraded batch yields
// an empty finding that contributes nothing to synthesis.
type BatchFinding struct {
	BatchIndex int              `json:"batch_index"`
	Topics     []string         `json:"topics,omitempty"`
	Signals    []Signal         `json:"signals,omitempty"`
	Notable    []NotableAccount `json:"notable,omitempty"`
	Degraded   bool             `json:"degraded,omitempty"`
}

// Empty reports whether the finding carries no extracted data.
func (f BatchFinding) Empty() bool {
	return len(f.Topics) == 0 && len(f.Signals) == 0 && len(f.Notable) == 0
}

// Claim is one statement in a cluster finding. Evidence holds the handles
// cited for the claim; handles are validated against the known follow set
// before acceptance, so a surviving claim always cites at least one real
// handle.
type Claim struct {
	Text     string   `json:"text"`
	Evidence []string `json:"evidence"`
}

// ClusterFinding is the output of one category's synthesis pass.
type ClusterFinding struct {
	Category ClusterCategory `json:"category"`
	Summary  string          `json:"summary,omitempty"`
	Claims   []Claim         `json:"claims,omitempty"`
}
