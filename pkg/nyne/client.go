package nyne

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
)

// Default base URL for the Nyne.ai API.
const defaultBaseURL = "https://api.nyne.ai"

// JobType discriminates the asynchronous job kinds the provider supports.
type JobType string

const (
	JobEnrichment    JobType = "enrichment"
	JobFollowing     JobType = "following"
	JobArticleSearch JobType = "article-search"
)

// endpoint maps a job type to its API path. Submit POSTs to it and Poll GETs
// it with a request_id query parameter.
func (t JobType) endpoint() (string, error) {
	switch t {
	case JobEnrichment:
		return "/person/enrichment", nil
	case JobFollowing:
		return "/person/interactions", nil
	case JobArticleSearch:
		return "/person/articlesearch", nil
	}
	return "", eris.New(fmt.Sprintf("nyne: unknown job type %q", string(t)))
}

// JobSpec describes one job submission. Only the parameters relevant to the
// job type are sent.
type JobSpec struct {
	Type           JobType
	Email          string
	SocialMediaURL string
	Name           string
	Company        string
	MaxResults     int // following jobs
	Limit          int // article-search jobs
}

// JobState is the tri-state poll outcome.
type JobState string

const (
	JobPending JobState = "pending"
	JobDone    JobState = "done"
	JobFailed  JobState = "failed"
)

// JobStatus is the result of polling a submitted job. Result is only set
// when State is JobDone.
type JobStatus struct {
	State  JobState
	Reason string
	Result json.RawMessage
}

// Client defines the Nyne.ai operations used by the research pipeline.
type Client interface {
	Submit(ctx context.Context, spec JobSpec) (string, error)
	Poll(ctx context.Context, jobType JobType, requestID string) (*JobStatus, error)
}

// APIError is returned when Nyne responds with a non-2xx status.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("nyne: HTTP %d: %s", e.StatusCode, e.Body)
}

// envelope is the common response wrapper on every Nyne endpoint.
type envelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Data    struct {
		RequestID string          `json:"request_id,omitempty"`
		Status    string          `json:"status,omitempty"`
		Result    json.RawMessage `json:"result,omitempty"`
	} `json:"data"`
}

// Option configures the httpClient.
type Option func(*httpClient)

// WithBaseURL overrides the default base URL.
func WithBaseURL(u string) Option {
	return func(c *httpClient) {
		c.baseURL = u
	}
}

// WithHTTPClient sets a custom *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

// httpClient implements Client using net/http.
type httpClient struct {
	apiKey    string
	apiSecret string
	baseURL   string
	http      *http.Client
}

// NewClient creates a new Nyne client.
func NewClient(apiKey, apiSecret string, opts ...Option) Client {
	c := &httpClient{
		apiKey:    apiKey,
		apiSecret: apiSecret,
		baseURL:   defaultBaseURL,
		http: &http.Client{
			Timeout: 30 * time.Second,
			Transport: &http.Transport{
				MaxIdleConnsPerHost: 20,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *httpClient) Submit(ctx context.Context, spec JobSpec) (string, error) {
	path, err := spec.Type.endpoint()
	if err != nil {
		return "", err
	}

	var env envelope
	if err := c.post(ctx, path, submitBody(spec), &env); err != nil {
		return "", eris.Wrap(err, fmt.Sprintf("nyne: submit %s", spec.Type))
	}
	if !env.Success || env.Data.RequestID == "" {
		return "", eris.New(fmt.Sprintf("nyne: submit %s rejected: %s", spec.Type, env.Error))
	}

	return env.Data.RequestID, nil
}

func (c *httpClient) Poll(ctx context.Context, jobType JobType, requestID string) (*JobStatus, error) {
	path, err := jobType.endpoint()
	if err != nil {
		return nil, err
	}

	var env envelope
	q := url.Values{"request_id": {requestID}}
	if err := c.get(ctx, path+"?"+q.Encode(), &env); err != nil {
		return nil, eris.Wrap(err, fmt.Sprintf("nyne: poll %s %s", jobType, requestID))
	}

	if !env.Success {
		return &JobStatus{State: JobFailed, Reason: env.Error}, nil
	}

	switch env.Data.Status {
	case "completed":
		return &JobStatus{State: JobDone, Result: env.Data.Result}, nil
	case "failed":
		return &JobStatus{State: JobFailed, Reason: env.Error}, nil
	default:
		return &JobStatus{State: JobPending}, nil
	}
}

// submitBody builds the per-type request payload. Field names follow the
// provider's API; parameters irrelevant to the type are omitted.
func submitBody(spec JobSpec) map[string]any {
	body := map[string]any{}

	switch spec.Type {
	case JobEnrichment:
		body["newsfeed"] = []string{"all"}
		body["ai_enhanced_search"] = true
		if spec.Email != "" {
			body["email"] = spec.Email
		}
		if spec.SocialMediaURL != "" {
			body["social_media_url"] = spec.SocialMediaURL
		}
	case JobFollowing:
		body["type"] = "following"
		body["social_media_url"] = spec.SocialMediaURL
		if spec.MaxResults > 0 {
			body["max_results"] = spec.MaxResults
		}
	case JobArticleSearch:
		body["name"] = spec.Name
		body["company"] = spec.Company
		body["sort"] = "recent"
		if spec.Limit > 0 {
			body["limit"] = spec.Limit
		}
	}

	return body
}

func (c *httpClient) post(ctx context.Context, path string, body any, out any) error {
	buf, err := json.Marshal(body)
	if err != nil {
		return eris.Wrap(err, "marshal request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(buf))
	if err != nil {
		return eris.Wrap(err, "create request")
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req, out)
}

func (c *httpClient) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return eris.Wrap(err, "create request")
	}

	return c.do(req, out)
}

func (c *httpClient) do(req *http.Request, out any) error {
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("X-API-Secret", c.apiSecret)

	resp, err := c.http.Do(req)
	if err != nil {
		return eris.Wrap(err, "execute request")
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return eris.Wrap(err, "read response body")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{
			StatusCode: resp.StatusCode,
			Body:       string(data),
		}
	}

	if err := json.Unmarshal(data, out); err != nil {
		return eris.Wrap(err, "decode response")
	}

	return nil
}
