package research

import (
	"context"
	"fmt"

	"github.com/stretchr/testify/mock"

	"github.com/sells-group/deepresearch-cli/internal/config"
	"github.com/sells-group/deepresearch-cli/internal/llm"
	"github.com/sells-group/deepresearch-cli/internal/model"
	"github.com/sells-group/deepresearch-cli/pkg/nyne"
)

// --- Nyne Mock ---

type mockSource struct {
	mock.Mock
}

func (m *mockSource) Submit(ctx context.Context, spec nyne.JobSpec) (string, error) {
	args := m.Called(ctx, spec)
	return args.String(0), args.Error(1)
}

func (m *mockSource) Poll(ctx context.Context, jobType nyne.JobType, requestID string) (*nyne.JobStatus, error) {
	args := m.Called(ctx, jobType, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*nyne.JobStatus), args.Error(1)
}

// --- Provider Fake ---

// fakeProvider lets a test script per-request behavior without matching on
// full prompt text.
type fakeProvider struct {
	name     string
	generate func(ctx context.Context, req llm.Request) (*llm.Response, error)
}

func (p *fakeProvider) Name() string {
	if p.name == "" {
		return "fake"
	}
	return p.name
}

func (p *fakeProvider) Generate(ctx context.Context, req llm.Request) (*llm.Response, error) {
	return p.generate(ctx, req)
}

func textProvider(fn func(ctx context.Context, req llm.Request) (string, error)) *fakeProvider {
	return &fakeProvider{generate: func(ctx context.Context, req llm.Request) (*llm.Response, error) {
		text, err := fn(ctx, req)
		if err != nil {
			return nil, err
		}
		return &llm.Response{Text: text, Provider: "fake", Model: "fake-model"}, nil
	}}
}

// --- Fixtures ---

// testResearchConfig keeps retries and polling tight so tests do not sleep.
func testResearchConfig() config.ResearchConfig {
	return config.ResearchConfig{
		BatchSize:            75,
		MaxConcurrentBatches: 4,
		ModelMaxAttempts:     1,
		ModelRateLimit:       1000,
		ModelMaxTokens:       1024,
		FollowingMaxResults:  500,
		ArticleLimit:         15,
		PollInitialSecs:      1,
		PollMaxSecs:          2,
		FetchTimeoutSecs:     2,
		RunTimeoutSecs:       30,
	}
}

func makeFollows(n int) []model.FollowRelation {
	follows := make([]model.FollowRelation, n)
	for i := range follows {
		follows[i] = model.FollowRelation{
			Handle:        fmt.Sprintf("acct_%03d", i),
			DisplayName:   fmt.Sprintf("Account %d", i),
			Bio:           "bio",
			FollowerCount: int64(1000 + i),
		}
	}
	return follows
}
