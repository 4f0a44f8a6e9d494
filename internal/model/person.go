package model

import "strings"

// Identity is the canonical person profile produced by the enrichment fetch.
// It is immutable once fetched. Absent fields are legal and carry no error
// semantics; the zero value of any field means "unknown".
type Identity struct {
	FirstName      string            `json:"first_name,omitempty"`
	LastName       string            `json:"last_name,omitempty"`
	Headline       string            `json:"headline,omitempty"`
	Location       string            `json:"location,omitempty"`
	SocialProfiles map[string]string `json:"social_profiles,omitempty"` // platform → profile URL
	Careers        []CareerEntry     `json:"careers,omitempty"`
	Education      []EducationEntry  `json:"education,omitempty"`
	Posts          []Post            `json:"posts,omitempty"`
}

// CareerEntry is a single position in the person's career history.
type CareerEntry struct {
	Company   string `json:"company,omitempty"`
	Title     string `json:"title,omitempty"`
	StartDate string `json:"start_date,omitempty"`
	EndDate   string `json:"end_date,omitempty"`
	Current   bool   `json:"current,omitempty"`
}

// EducationEntry is a single entry in the person's education history.
type EducationEntry struct {
	School string `json:"school,omitempty"`
	Degree string `json:"degree,omitempty"`
	Field  string `json:"field,omitempty"`
}

// Post is a recent social post attributed to the person.
type Post struct {
	Text     string `json:"text,omitempty"`
	URL      string `json:"url,omitempty"`
	PostedAt string `json:"posted_at,omitempty"`
}

// FullName joins first and last name, returning "" when neither is known.
func (i Identity) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(i.FirstName) + " " + strings.TrimSpace(i.LastName))
}

// CurrentCompany returns the company of the most recent career entry.
func (i Identity) CurrentCompany() string {
	if len(i.Careers) == 0 {
		return ""
	}
	return i.Careers[0].Company
}

// TwitterURL returns the person's Twitter/X profile URL, if enrichment found one.
func (i Identity) TwitterURL() string {
	return i.SocialProfiles["twitter"]
}

// FollowRelation is one entry in a person's following list. The sequence
// order as returned by the provider is preserved for deterministic batching,
// though it carries no meaning of its own.
type FollowRelation struct {
	Handle        string `json:"handle"`
	DisplayName   string `json:"display_name,omitempty"`
	Bio           string `json:"bio,omitempty"`
	FollowerCount int64  `json:"follower_count,omitempty"`
	Relationship  string `json:"relationship,omitempty"` // e.g. "following"
}

// Article is a single press/media mention.
type Article struct {
	Title  string `json:"title"`
	URL    string `json:"url,omitempty"`
	Source string `json:"source,omitempty"`
	Date   string `json:"date,omitempty"`
}
