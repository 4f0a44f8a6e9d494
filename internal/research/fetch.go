package research

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/deepresearch-cli/internal/config"
	"github.com/sells-group/deepresearch-cli/internal/model"
	"github.com/sells-group/deepresearch-cli/pkg/nyne"
)

// fetcher wraps the source client with the submit-then-poll protocol shared
// by the enrichment, following, and article fetches.
type fetcher struct {
	client nyne.Client
	cfg    config.ResearchConfig
}

func newFetcher(client nyne.Client, cfg config.ResearchConfig) *fetcher {
	return &fetcher{client: client, cfg: cfg}
}

// FetchEnrichment retrieves the canonical person profile. Returns (nil, nil)
// when the input carries neither email nor LinkedIn URL: the fetch is
// skipped, not failed.
func (f *fetcher) FetchEnrichment(ctx context.Context, in Input) (*model.Identity, error) {
	if !in.hasEnrichmentInput() {
		return nil, nil
	}

	raw, err := f.run(ctx, nyne.JobSpec{
		Type:           nyne.JobEnrichment,
		Email:          in.Email,
		SocialMediaURL: in.LinkedInURL,
	})
	if err != nil {
		return nil, err
	}

	payload, err := nyne.DecodeEnrichment(raw)
	if err != nil {
		return nil, eris.Wrap(ErrFetchFailed, err.Error())
	}

	return identityFromPayload(payload), nil
}

// FetchFollowing retrieves the following list for a resolved social URL.
// Returns (nil, nil) when no URL could be resolved.
func (f *fetcher) FetchFollowing(ctx context.Context, socialURL string) ([]model.FollowRelation, error) {
	if socialURL == "" {
		return nil, nil
	}

	raw, err := f.run(ctx, nyne.JobSpec{
		Type:           nyne.JobFollowing,
		SocialMediaURL: socialURL,
		MaxResults:     f.cfg.FollowingMaxResults,
	})
	if err != nil {
		return nil, err
	}

	payload, err := nyne.DecodeFollowing(raw)
	if err != nil {
		return nil, eris.Wrap(ErrFetchFailed, err.Error())
	}

	follows := make([]model.FollowRelation, 0, len(payload.Items))
	for _, item := range payload.Items {
		follows = append(follows, model.FollowRelation{
			Handle:        item.Username,
			DisplayName:   item.Name,
			Bio:           item.Description,
			FollowerCount: item.FollowersCount,
			Relationship:  item.Relationship,
		})
	}
	return follows, nil
}

// FetchArticles retrieves press mentions for a resolved name and company.
// Returns (nil, nil) when either is missing.
func (f *fetcher) FetchArticles(ctx context.Context, name, company string) ([]model.Article, error) {
	if name == "" || company == "" {
		return nil, nil
	}

	raw, err := f.run(ctx, nyne.JobSpec{
		Type:    nyne.JobArticleSearch,
		Name:    name,
		Company: company,
		Limit:   f.cfg.ArticleLimit,
	})
	if err != nil {
		return nil, err
	}

	payload, err := nyne.DecodeArticles(raw)
	if err != nil {
		return nil, eris.Wrap(ErrFetchFailed, err.Error())
	}

	articles := make([]model.Article, 0, len(payload.Articles))
	for _, a := range payload.Articles {
		articles = append(articles, model.Article{
			Title:  a.Title,
			URL:    a.URL,
			Source: a.Source,
			Date:   a.Date,
		})
	}
	return articles, nil
}

// run submits one job and polls until completion, provider failure, or the
// fetch deadline. Both failure modes surface as recoverable errors from the
// taxonomy, never anything fatal.
func (f *fetcher) run(ctx context.Context, spec nyne.JobSpec) (json.RawMessage, error) {
	timeout := time.Duration(f.cfg.FetchTimeoutSecs) * time.Second
	if timeout <= 0 {
		timeout = 120 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	requestID, err := f.client.Submit(ctx, spec)
	if err != nil {
		if ctx.Err() != nil {
			return nil, eris.Wrap(ErrFetchTimeout, string(spec.Type))
		}
		return nil, eris.Wrap(ErrFetchFailed, err.Error())
	}

	return f.await(ctx, spec.Type, requestID)
}

// await polls with bounded exponential backoff: the delay starts at
// poll_initial_secs, doubles each round, and is capped at poll_max_secs.
// Transient poll errors keep the loop alive until the deadline.
func (f *fetcher) await(ctx context.Context, jobType nyne.JobType, requestID string) (json.RawMessage, error) {
	delay := time.Duration(f.cfg.PollInitialSecs) * time.Second
	if delay <= 0 {
		delay = time.Second
	}
	maxDelay := time.Duration(f.cfg.PollMaxSecs) * time.Second
	if maxDelay < delay {
		maxDelay = 10 * time.Second
	}

	for {
		status, err := f.client.Poll(ctx, jobType, requestID)
		if err != nil {
			if ctx.Err() != nil {
				return nil, eris.Wrap(ErrFetchTimeout, string(jobType))
			}
			zap.L().Debug("fetch: poll error, will retry",
				zap.String("job_type", string(jobType)),
				zap.String("request_id", requestID),
				zap.Error(err),
			)
		} else {
			switch status.State {
			case nyne.JobDone:
				return status.Result, nil
			case nyne.JobFailed:
				return nil, eris.Wrap(ErrFetchFailed, fmt.Sprintf("%s: %s", jobType, status.Reason))
			}
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, eris.Wrap(ErrFetchTimeout, string(jobType))
		case <-timer.C:
		}

		delay *= 2
		if delay > maxDelay {
			delay = maxDelay
		}
	}
}

func identityFromPayload(p *nyne.EnrichmentPayload) *model.Identity {
	identity := &model.Identity{
		FirstName: p.Firstname,
		LastName:  p.Lastname,
		Headline:  p.Headline,
		Location:  p.Location,
	}

	if len(p.SocialProfiles) > 0 {
		identity.SocialProfiles = make(map[string]string, len(p.SocialProfiles))
		for platform, profile := range p.SocialProfiles {
			if profile.URL != "" {
				identity.SocialProfiles[platform] = profile.URL
			}
		}
	}

	for _, c := range p.CareersInfo {
		identity.Careers = append(identity.Careers, model.CareerEntry{
			Company:   c.CompanyName,
			Title:     c.Title,
			StartDate: c.StartDate,
			EndDate:   c.EndDate,
			Current:   c.IsCurrent,
		})
	}

	for _, e := range p.EducationsInfo {
		identity.Education = append(identity.Education, model.EducationEntry{
			School: e.SchoolName,
			Degree: e.Degree,
			Field:  e.FieldOfStudy,
		})
	}

	for _, post := range p.Posts {
		identity.Posts = append(identity.Posts, model.Post{
			Text:     post.Text,
			URL:      post.URL,
			PostedAt: post.CreatedAt,
		})
	}

	return identity
}
