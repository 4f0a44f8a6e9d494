package research

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/deepresearch-cli/pkg/nyne"
)

func TestFetchEnrichment_SkippedWithoutIdentifiers(t *testing.T) {
	source := &mockSource{}
	f := newFetcher(source, testResearchConfig())

	identity, err := f.FetchEnrichment(context.Background(), Input{Name: "Jane Doe"})

	require.NoError(t, err)
	assert.Nil(t, identity)
	source.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestFetchEnrichment_CompletesAfterPending(t *testing.T) {
	result := json.RawMessage(`{
		"firstname": "Jane",
		"lastname": "Doe",
		"headline": "CTO at Acme",
		"location": "Austin, TX",
		"social_profiles": {"twitter": {"url": "https://x.com/janedoe"}},
		"careers_info": [{"company_name": "Acme", "title": "CTO", "is_current": true}]
	}`)

	source := &mockSource{}
	source.On("Submit", mock.Anything, mock.MatchedBy(func(spec nyne.JobSpec) bool {
		return spec.Type == nyne.JobEnrichment && spec.Email == "jane@acme.com"
	})).Return("req-1", nil)
	source.On("Poll", mock.Anything, nyne.JobEnrichment, "req-1").
		Return(&nyne.JobStatus{State: nyne.JobPending}, nil).Once()
	source.On("Poll", mock.Anything, nyne.JobEnrichment, "req-1").
		Return(&nyne.JobStatus{State: nyne.JobDone, Result: result}, nil).Once()

	f := newFetcher(source, testResearchConfig())
	identity, err := f.FetchEnrichment(context.Background(), Input{Email: "jane@acme.com"})

	require.NoError(t, err)
	require.NotNil(t, identity)
	assert.Equal(t, "Jane Doe", identity.FullName())
	assert.Equal(t, "Acme", identity.CurrentCompany())
	assert.Equal(t, "https://x.com/janedoe", identity.TwitterURL())
	source.AssertExpectations(t)
}

func TestFetchFollowing_SkippedWithoutURL(t *testing.T) {
	source := &mockSource{}
	f := newFetcher(source, testResearchConfig())

	follows, err := f.FetchFollowing(context.Background(), "")

	require.NoError(t, err)
	assert.Nil(t, follows)
	source.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestFetchFollowing_MapsEntries(t *testing.T) {
	result := json.RawMessage(`{"items": [
		{"username": "runnersworld", "name": "Runner's World", "description": "running", "followers_count": 500000, "relationship": "follows"},
		{"username": "localcoach", "name": "Coach", "followers_count": 1200}
	]}`)

	source := &mockSource{}
	source.On("Submit", mock.Anything, mock.MatchedBy(func(spec nyne.JobSpec) bool {
		return spec.Type == nyne.JobFollowing && spec.SocialMediaURL == "https://x.com/janedoe" && spec.MaxResults == 500
	})).Return("req-2", nil)
	source.On("Poll", mock.Anything, nyne.JobFollowing, "req-2").
		Return(&nyne.JobStatus{State: nyne.JobDone, Result: result}, nil)

	f := newFetcher(source, testResearchConfig())
	follows, err := f.FetchFollowing(context.Background(), "https://x.com/janedoe")

	require.NoError(t, err)
	require.Len(t, follows, 2)
	assert.Equal(t, "runnersworld", follows[0].Handle)
	assert.Equal(t, int64(500000), follows[0].FollowerCount)
	assert.Equal(t, "localcoach", follows[1].Handle)
}

func TestFetchArticles_SkippedWithoutNameOrCompany(t *testing.T) {
	source := &mockSource{}
	f := newFetcher(source, testResearchConfig())

	articles, err := f.FetchArticles(context.Background(), "Jane Doe", "")

	require.NoError(t, err)
	assert.Nil(t, articles)
	source.AssertNotCalled(t, "Submit", mock.Anything, mock.Anything)
}

func TestFetch_JobFailureIsFetchFailed(t *testing.T) {
	source := &mockSource{}
	source.On("Submit", mock.Anything, mock.Anything).Return("req-3", nil)
	source.On("Poll", mock.Anything, nyne.JobArticleSearch, "req-3").
		Return(&nyne.JobStatus{State: nyne.JobFailed, Reason: "no results"}, nil)

	f := newFetcher(source, testResearchConfig())
	articles, err := f.FetchArticles(context.Background(), "Jane Doe", "Acme")

	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrFetchFailed))
	assert.Nil(t, articles)
}

func TestFetch_PendingForeverTimesOut(t *testing.T) {
	source := &mockSource{}
	source.On("Submit", mock.Anything, mock.Anything).Return("req-4", nil)
	source.On("Poll", mock.Anything, nyne.JobFollowing, "req-4").
		Return(&nyne.JobStatus{State: nyne.JobPending}, nil)

	cfg := testResearchConfig()
	cfg.FetchTimeoutSecs = 1

	f := newFetcher(source, cfg)
	follows, err := f.FetchFollowing(context.Background(), "https://x.com/janedoe")

	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrFetchTimeout))
	assert.Nil(t, follows)
}

func TestFetch_TransientPollErrorKeepsPolling(t *testing.T) {
	result := json.RawMessage(`{"items": []}`)

	source := &mockSource{}
	source.On("Submit", mock.Anything, mock.Anything).Return("req-5", nil)
	source.On("Poll", mock.Anything, nyne.JobFollowing, "req-5").
		Return(nil, eris.New("connection reset by peer")).Once()
	source.On("Poll", mock.Anything, nyne.JobFollowing, "req-5").
		Return(&nyne.JobStatus{State: nyne.JobDone, Result: result}, nil).Once()

	f := newFetcher(source, testResearchConfig())
	follows, err := f.FetchFollowing(context.Background(), "https://x.com/janedoe")

	require.NoError(t, err)
	assert.Empty(t, follows)
	source.AssertExpectations(t)
}

func TestFetch_SubmitFailureIsFetchFailed(t *testing.T) {
	source := &mockSource{}
	source.On("Submit", mock.Anything, mock.Anything).Return("", eris.New("HTTP 401"))

	f := newFetcher(source, testResearchConfig())
	_, err := f.FetchFollowing(context.Background(), "https://x.com/janedoe")

	require.Error(t, err)
	assert.True(t, eris.Is(err, ErrFetchFailed))
}
