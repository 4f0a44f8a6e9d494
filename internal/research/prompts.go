package research

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sells-group/deepresearch-cli/internal/model"
)

// analystSystem is the shared system prompt for all analysis calls.
const analystSystem = "You are an elite intelligence analyst. You only make claims backed by the specific data points provided, and you cite the exact account handles that support each claim."

// batchAnalysisPrompt asks for role-tagged signals from one batch of follow
// records. The model must answer with a single JSON object.
func batchAnalysisPrompt(batch model.Batch) string {
	var b strings.Builder

	b.WriteString("Analyze the accounts this person follows (batch ")
	fmt.Fprintf(&b, "%d, %d accounts).\n\n", batch.Index, len(batch.Follows))

	b.WriteString("Extract signals about the person's interests, values, and relationships. ")
	b.WriteString("Tag every signal with exactly one category from this list:\n")
	for _, cat := range model.ClusterCategories {
		fmt.Fprintf(&b, "- %s (%s)\n", cat, cat.Label())
	}

	b.WriteString(`
Respond with ONLY a JSON object in this shape:
{
  "topics": ["short interest topics"],
  "signals": [{"category": "sports_fitness", "observation": "what the follows suggest", "evidence": ["handle1", "handle2"]}],
  "notable": [{"handle": "handle", "reason": "why this account stands out", "follower_count": 12345}]
}
Evidence arrays must contain only handles from the list below. Do not invent handles.

ACCOUNTS (handle | display name | followers | bio):
`)

	for _, f := range batch.Follows {
		fmt.Fprintf(&b, "%s | %s | %d | %s\n", f.Handle, f.DisplayName, f.FollowerCount, f.Bio)
	}

	return b.String()
}

// clusterPrompt asks for one category's synthesis over the merged batch
// findings.
func clusterPrompt(category model.ClusterCategory, digest string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Synthesize everything the batch findings below reveal about the category %q (%s).\n\n", category, category.Label())
	b.WriteString(`Respond with ONLY a JSON object in this shape:
{
  "summary": "2-4 sentence narrative for this category",
  "claims": [{"text": "one specific claim", "evidence": ["handle1"]}]
}
Every claim must cite at least one handle that appears in the findings. Do not invent handles. If the findings contain nothing for this category, return an empty claims array and an empty summary.

BATCH FINDINGS:
`)
	b.WriteString(digest)

	return b.String()
}

// dossierSections enumerates the fixed narrative sections, in order.
var dossierSections = []string{
	"Identity Snapshot",
	"Personal Life & Hobbies",
	"Career Trajectory",
	"Psychographic Profile",
	"Social Graph Overview",
	"Interest Deep-Dives",
	"Content & Voice",
	"Key Relationships",
	"Conversation Starters",
	"Perception & Recommendations",
	"Sensitivities & Landmines",
	"Cross-Referenced Insights",
	"Approach Strategy",
}

// dossierPrompt asks for the final multi-section narrative over everything
// collected so far.
func dossierPrompt(data string) string {
	var b strings.Builder

	b.WriteString("Create an exhaustive, deeply researched dossier on this person from the data below.\n\n")
	b.WriteString("RULES:\n")
	b.WriteString("1. Every insight must be attributed to a specific data point.\n")
	b.WriteString("2. Be specific: exact quotes, dates, company names, follower counts.\n")
	b.WriteString("3. Reference specific follows, posts, and articles in conversation starters.\n\n")

	b.WriteString("Produce EXACTLY these sections, in this order, as markdown ## headings:\n")
	for i, section := range dossierSections {
		fmt.Fprintf(&b, "## %d. %s\n", i+1, strings.ToUpper(section))
	}

	b.WriteString("\nHERE IS THE DATA:\n")
	b.WriteString(data)
	b.WriteString("\n\nCreate the dossier now:")

	return b.String()
}

// findingsDigest renders the non-empty batch findings as compact JSON for
// synthesis prompts. Degraded batches contribute nothing.
func findingsDigest(findings []model.BatchFinding) string {
	kept := make([]model.BatchFinding, 0, len(findings))
	for _, f := range findings {
		if !f.Empty() {
			kept = append(kept, f)
		}
	}

	data, err := json.Marshal(kept)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// dossierData renders the collected research data for the composer prompt.
func dossierData(identity *model.Identity, articles []model.Article, clusters []model.ClusterFinding) string {
	payload := map[string]any{}
	if identity != nil {
		payload["identity"] = identity
	}
	if len(articles) > 0 {
		payload["articles"] = articles
	}
	if len(clusters) > 0 {
		payload["cluster_findings"] = clusters
	}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "{}"
	}
	return string(data)
}

// stripJSONBlock extracts the outermost JSON object from a model response,
// tolerating markdown code fences and surrounding prose.
func stripJSONBlock(text string) string {
	text = strings.TrimSpace(text)
	if after, found := strings.CutPrefix(text, "```json"); found {
		text = after
	} else if after, found := strings.CutPrefix(text, "```"); found {
		text = after
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return ""
	}
	return text[start : end+1]
}
