package nyne

import (
	"encoding/json"

	"github.com/rotisserie/eris"
)

// EnrichmentPayload is the completed-job result shape for enrichment jobs.
type EnrichmentPayload struct {
	Firstname      string                   `json:"firstname"`
	Lastname       string                   `json:"lastname"`
	Headline       string                   `json:"headline"`
	Location       string                   `json:"location"`
	SocialProfiles map[string]SocialProfile `json:"social_profiles"`
	CareersInfo    []CareerInfo             `json:"careers_info"`
	EducationsInfo []EducationInfo          `json:"educations_info"`
	Posts          []PostInfo               `json:"posts"`
}

// SocialProfile is one platform entry under social_profiles.
type SocialProfile struct {
	URL string `json:"url"`
}

// CareerInfo is one entry under careers_info, most recent first.
type CareerInfo struct {
	CompanyName string `json:"company_name"`
	Title       string `json:"title"`
	StartDate   string `json:"start_date"`
	EndDate     string `json:"end_date"`
	IsCurrent   bool   `json:"is_current"`
}

// EducationInfo is one entry under educations_info.
type EducationInfo struct {
	SchoolName   string `json:"school_name"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"field_of_study"`
}

// PostInfo is one recent post attributed to the person.
type PostInfo struct {
	Text      string `json:"text"`
	URL       string `json:"url"`
	CreatedAt string `json:"created_at"`
}

// FollowingPayload is the completed-job result shape for following jobs.
type FollowingPayload struct {
	Items []FollowEntry `json:"items"`
}

// FollowEntry is one account in the following list, in provider order.
type FollowEntry struct {
	Username       string `json:"username"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	FollowersCount int64  `json:"followers_count"`
	Relationship   string `json:"relationship"`
}

// ArticlePayload is the completed-job result shape for article-search jobs.
type ArticlePayload struct {
	Articles []ArticleEntry `json:"articles"`
}

// ArticleEntry is one press/media mention.
type ArticleEntry struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Source string `json:"source"`
	Date   string `json:"date"`
}

// DecodeEnrichment parses an enrichment job result.
func DecodeEnrichment(raw json.RawMessage) (*EnrichmentPayload, error) {
	var p EnrichmentPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, eris.Wrap(err, "nyne: decode enrichment result")
	}
	return &p, nil
}

// DecodeFollowing parses a following job result.
func DecodeFollowing(raw json.RawMessage) (*FollowingPayload, error) {
	var p FollowingPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, eris.Wrap(err, "nyne: decode following result")
	}
	return &p, nil
}

// DecodeArticles parses an article-search job result.
func DecodeArticles(raw json.RawMessage) (*ArticlePayload, error) {
	var p ArticlePayload
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, eris.Wrap(err, "nyne: decode article result")
	}
	return &p, nil
}
