package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryRank_CanonicalOrder(t *testing.T) {
	for i, cat := range ClusterCategories {
		assert.Equal(t, i, CategoryRank(cat))
	}
	assert.Equal(t, len(ClusterCategories), CategoryRank(ClusterCategory("astrology")))
}

func TestCategoryLabel(t *testing.T) {
	assert.Equal(t, "Sports & Fitness", ClusterSportsFitness.Label())
	assert.Equal(t, "Hidden Interests", ClusterHiddenInterests.Label())
	assert.Equal(t, "something_else", ClusterCategory("something_else").Label())
}

func TestBatchFindingEmpty(t *testing.T) {
	assert.True(t, BatchFinding{BatchIndex: 2, Degraded: true}.Empty())
	assert.False(t, BatchFinding{Topics: []string{"running"}}.Empty())
	assert.False(t, BatchFinding{Signals: []Signal{{Category: ClusterEntertainment}}}.Empty())
	assert.False(t, BatchFinding{Notable: []NotableAccount{{Handle: "a"}}}.Empty())
}

func TestIdentityHelpers(t *testing.T) {
	var empty Identity
	assert.Empty(t, empty.FullName())
	assert.Empty(t, empty.CurrentCompany())
	assert.Empty(t, empty.TwitterURL())

	id := Identity{
		FirstName:      "Jane",
		LastName:       "Doe",
		SocialProfiles: map[string]string{"twitter": "https://x.com/janedoe"},
		Careers:        []CareerEntry{{Company: "Acme", Current: true}, {Company: "Initech"}},
	}
	assert.Equal(t, "Jane Doe", id.FullName())
	assert.Equal(t, "Acme", id.CurrentCompany())
	assert.Equal(t, "https://x.com/janedoe", id.TwitterURL())
}

func TestResearchResultDegraded(t *testing.T) {
	r := &ResearchResult{}
	assert.False(t, r.Degraded())
	r.Degradations = append(r.Degradations, Degradation{Stage: StageFetching, Unit: "articles"})
	assert.True(t, r.Degraded())
}
