package research

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/deepresearch-cli/internal/config"
	"github.com/sells-group/deepresearch-cli/internal/llm"
	"github.com/sells-group/deepresearch-cli/internal/model"
	"github.com/sells-group/deepresearch-cli/internal/resilience"
)

// Synthesizer runs the fixed category analyses over the merged batch
// findings. Categories run concurrently and independently; the exposed
// sequence is always in canonical category order.
type Synthesizer struct {
	llm *llm.Selector
	cfg config.ResearchConfig
}

// NewSynthesizer creates a Synthesizer.
func NewSynthesizer(selector *llm.Selector, cfg config.ResearchConfig) *Synthesizer {
	return &Synthesizer{llm: selector, cfg: cfg}
}

// Synthesize produces one ClusterFinding per category that yields cited
// evidence. A category that exhausts its retries is simply absent from the
// result; its siblings are unaffected.
func (s *Synthesizer) Synthesize(ctx context.Context, override string, findings []model.BatchFinding, known map[string]struct{}) ([]model.ClusterFinding, []model.Degradation) {
	digest := findingsDigest(findings)

	var mu sync.Mutex
	var clusters []model.ClusterFinding
	var degradations []model.Degradation

	g, gCtx := errgroup.WithContext(ctx)

	for _, category := range model.ClusterCategories {
		g.Go(func() error {
			finding, err := s.synthesizeOne(gCtx, override, category, digest, known)
			if err != nil {
				zap.L().Warn("synthesize: category degraded",
					zap.String("category", string(category)),
					zap.Error(err),
				)
				mu.Lock()
				degradations = append(degradations, model.Degradation{
					Stage:  model.StageSynthesizing,
					Unit:   string(category),
					Reason: err.Error(),
				})
				mu.Unlock()
				return nil
			}
			if finding == nil {
				// Nothing in the findings for this category.
				return nil
			}
			mu.Lock()
			clusters = append(clusters, *finding)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	// Canonical order regardless of completion order.
	sort.Slice(clusters, func(i, j int) bool {
		return model.CategoryRank(clusters[i].Category) < model.CategoryRank(clusters[j].Category)
	})

	return clusters, degradations
}

func (s *Synthesizer) synthesizeOne(ctx context.Context, override string, category model.ClusterCategory, digest string, known map[string]struct{}) (*model.ClusterFinding, error) {
	prompt := clusterPrompt(category, digest)

	retryCfg := resilience.Config{
		MaxAttempts: s.cfg.ModelMaxAttempts,
		Retryable:   func(error) bool { return true },
		OnRetry:     resilience.Logger("llm", fmt.Sprintf("synthesize_%s", category)),
	}

	finding, err := resilience.Do(ctx, retryCfg, func(ctx context.Context) (*model.ClusterFinding, error) {
		resp, err := s.llm.Generate(ctx, override, llm.Request{
			System:      analystSystem,
			Prompt:      prompt,
			MaxTokens:   s.cfg.ModelMaxTokens,
			Temperature: &extractionTemperature,
		})
		if err != nil {
			return nil, err
		}
		return parseClusterFinding(category, resp.Text, known)
	})
	if err != nil {
		return nil, eris.Wrap(ErrModelCallFailed, err.Error())
	}

	return finding, nil
}

// parseClusterFinding decodes one category response and enforces the
// evidence-citation contract: claim citations are intersected with the known
// handle set, and a claim left without a valid citation is dropped. Returns
// (nil, nil) when the category genuinely has nothing.
func parseClusterFinding(category model.ClusterCategory, text string, known map[string]struct{}) (*model.ClusterFinding, error) {
	block := stripJSONBlock(text)
	if block == "" {
		return nil, eris.New("synthesize: response contains no JSON object")
	}

	var wire struct {
		Summary string `json:"summary"`
		Claims  []struct {
			Text     string   `json:"text"`
			Evidence []string `json:"evidence"`
		} `json:"claims"`
	}
	if err := json.Unmarshal([]byte(block), &wire); err != nil {
		return nil, eris.Wrap(err, "synthesize: decode finding")
	}

	finding := &model.ClusterFinding{Category: category, Summary: wire.Summary}

	dropped := 0
	for _, c := range wire.Claims {
		evidence := filterHandles(c.Evidence, known)
		if len(evidence) == 0 {
			dropped++
			continue
		}
		finding.Claims = append(finding.Claims, model.Claim{Text: c.Text, Evidence: evidence})
	}

	if dropped > 0 {
		zap.L().Info("synthesize: dropped uncited claims",
			zap.String("category", string(category)),
			zap.Int("dropped", dropped),
			zap.Int("kept", len(finding.Claims)),
		)
	}

	if finding.Summary == "" && len(finding.Claims) == 0 {
		return nil, nil
	}
	return finding, nil
}
