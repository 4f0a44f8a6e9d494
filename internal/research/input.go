package research

import (
	"strings"

	"github.com/sells-group/deepresearch-cli/internal/model"
)

// Input carries the identifying inputs for one research run. At least one
// identifier is required; everything else is optional and auto-resolved from
// enrichment output where possible.
type Input struct {
	Email        string `json:"email,omitempty"`
	LinkedInURL  string `json:"linkedin_url,omitempty"`
	TwitterURL   string `json:"twitter_url,omitempty"`
	InstagramURL string `json:"instagram_url,omitempty"`
	Name         string `json:"name,omitempty"`
	Company      string `json:"company,omitempty"`

	// SkipNarrative disables the terminal dossier composition; raw
	// structured data is still collected.
	SkipNarrative bool `json:"skip_narrative,omitempty"`

	// Provider overrides language-model selection ("gemini", "openai",
	// "anthropic"); empty or "auto" uses the first available provider.
	Provider string `json:"provider,omitempty"`
}

// Validate returns ErrInputInvalid when the run could not possibly produce
// anything: both email and LinkedIn URL absent and no name or handle either.
func (in Input) Validate() error {
	if in.Email == "" && in.LinkedInURL == "" &&
		in.Name == "" && in.TwitterURL == "" && in.InstagramURL == "" {
		return ErrInputInvalid
	}
	return nil
}

// hasEnrichmentInput reports whether the enrichment fetch can run at all.
func (in Input) hasEnrichmentInput() bool {
	return in.Email != "" || in.LinkedInURL != ""
}

// Resolution precedence everywhere: explicit argument > enrichment-derived
// value. identity may be nil.

func (in Input) resolveTwitterURL(identity *model.Identity) string {
	if in.TwitterURL != "" {
		return in.TwitterURL
	}
	if identity != nil {
		return identity.TwitterURL()
	}
	return ""
}

func (in Input) resolveName(identity *model.Identity) string {
	if strings.TrimSpace(in.Name) != "" {
		return strings.TrimSpace(in.Name)
	}
	if identity != nil {
		return identity.FullName()
	}
	return ""
}

func (in Input) resolveCompany(identity *model.Identity) string {
	if strings.TrimSpace(in.Company) != "" {
		return strings.TrimSpace(in.Company)
	}
	if identity != nil {
		return identity.CurrentCompany()
	}
	return ""
}
