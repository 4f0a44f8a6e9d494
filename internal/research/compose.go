package research

import (
	"context"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/deepresearch-cli/internal/config"
	"github.com/sells-group/deepresearch-cli/internal/llm"
	"github.com/sells-group/deepresearch-cli/internal/model"
	"github.com/sells-group/deepresearch-cli/internal/resilience"
)

// narrativeTemperature leaves room for prose in the terminal dossier call.
var narrativeTemperature = 0.7

// Composer produces the final multi-section narrative from whatever subset
// of the research data materialized.
type Composer struct {
	llm *llm.Selector
	cfg config.ResearchConfig
}

// NewComposer creates a Composer.
func NewComposer(selector *llm.Selector, cfg config.ResearchConfig) *Composer {
	return &Composer{llm: selector, cfg: cfg}
}

// Compose issues the single terminal model call. On failure after retries the
// caller keeps the raw structured data and leaves the narrative absent.
func (c *Composer) Compose(ctx context.Context, override string, identity *model.Identity, articles []model.Article, clusters []model.ClusterFinding) (string, error) {
	prompt := dossierPrompt(dossierData(identity, articles, clusters))

	retryCfg := resilience.Config{
		MaxAttempts: c.cfg.ModelMaxAttempts,
		Retryable:   func(error) bool { return true },
		OnRetry:     resilience.Logger("llm", "compose_dossier"),
	}

	narrative, err := resilience.Do(ctx, retryCfg, func(ctx context.Context) (string, error) {
		resp, err := c.llm.Generate(ctx, override, llm.Request{
			System:      analystSystem,
			Prompt:      prompt,
			MaxTokens:   c.cfg.ModelMaxTokens,
			Temperature: &narrativeTemperature,
		})
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(resp.Text) == "" {
			return "", eris.New("compose: empty narrative")
		}
		return resp.Text, nil
	})
	if err != nil {
		return "", eris.Wrap(ErrModelCallFailed, err.Error())
	}

	return narrative, nil
}
