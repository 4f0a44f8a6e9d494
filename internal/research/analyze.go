package research

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/sells-group/deepresearch-cli/internal/config"
	"github.com/sells-group/deepresearch-cli/internal/llm"
	"github.com/sells-group/deepresearch-cli/internal/model"
	"github.com/sells-group/deepresearch-cli/internal/resilience"
)

// extractionTemperature keeps batch and cluster analysis calls near-greedy.
var extractionTemperature = 0.2

// Analyzer runs one extraction call per batch with bounded concurrency and a
// shared rate limiter across the pool.
type Analyzer struct {
	llm     *llm.Selector
	cfg     config.ResearchConfig
	limiter *rate.Limiter
}

// NewAnalyzer creates an Analyzer.
func NewAnalyzer(selector *llm.Selector, cfg config.ResearchConfig) *Analyzer {
	limit := cfg.ModelRateLimit
	if limit <= 0 {
		limit = 2
	}
	return &Analyzer{
		llm:     selector,
		cfg:     cfg,
		limiter: rate.NewLimiter(rate.Limit(limit), 1),
	}
}

// AnalyzeBatches analyzes all batches concurrently. A batch that exhausts its
// retries yields an empty, degraded finding; it never fails the run or its
// sibling batches. Findings are merged by batch index, not arrival order.
func (a *Analyzer) AnalyzeBatches(ctx context.Context, override string, batches []model.Batch) ([]model.BatchFinding, []model.Degradation) {
	findings := make([]model.BatchFinding, len(batches))

	var mu sync.Mutex
	var degradations []model.Degradation

	g, gCtx := errgroup.WithContext(ctx)
	maxConcurrent := a.cfg.MaxConcurrentBatches
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}
	g.SetLimit(maxConcurrent)

	for _, batch := range batches {
		g.Go(func() error {
			finding, err := a.analyzeOne(gCtx, override, batch)
			if err != nil {
				zap.L().Warn("analyze: batch degraded",
					zap.Int("batch", batch.Index),
					zap.Error(err),
				)
				findings[batch.Index] = model.BatchFinding{BatchIndex: batch.Index, Degraded: true}
				mu.Lock()
				degradations = append(degradations, model.Degradation{
					Stage:  model.StageAnalyzing,
					Unit:   fmt.Sprintf("batch_%d", batch.Index),
					Reason: err.Error(),
				})
				mu.Unlock()
				return nil
			}
			findings[batch.Index] = finding
			return nil
		})
	}
	_ = g.Wait()

	return findings, degradations
}

func (a *Analyzer) analyzeOne(ctx context.Context, override string, batch model.Batch) (model.BatchFinding, error) {
	prompt := batchAnalysisPrompt(batch)
	known := batchHandleSet(batch)

	retryCfg := resilience.Config{
		MaxAttempts: a.cfg.ModelMaxAttempts,
		Retryable:   func(error) bool { return true },
		OnRetry:     resilience.Logger("llm", fmt.Sprintf("analyze_batch_%d", batch.Index)),
	}

	finding, err := resilience.Do(ctx, retryCfg, func(ctx context.Context) (model.BatchFinding, error) {
		if err := a.limiter.Wait(ctx); err != nil {
			return model.BatchFinding{}, err
		}
		resp, err := a.llm.Generate(ctx, override, llm.Request{
			System:      analystSystem,
			Prompt:      prompt,
			MaxTokens:   a.cfg.ModelMaxTokens,
			Temperature: &extractionTemperature,
		})
		if err != nil {
			return model.BatchFinding{}, err
		}
		return parseBatchFinding(resp.Text, known)
	})
	if err != nil {
		return model.BatchFinding{}, eris.Wrap(ErrModelCallFailed, err.Error())
	}

	finding.BatchIndex = batch.Index
	return finding, nil
}

func batchHandleSet(batch model.Batch) map[string]struct{} {
	return HandleSet(batch.Follows)
}

// parseBatchFinding decodes the model response and sanitizes it against the
// batch's handle set: evidence may only reference real input handles, and a
// signal that loses all its evidence is dropped.
func parseBatchFinding(text string, known map[string]struct{}) (model.BatchFinding, error) {
	block := stripJSONBlock(text)
	if block == "" {
		return model.BatchFinding{}, eris.New("analyze: response contains no JSON object")
	}

	var wire struct {
		Topics  []string `json:"topics"`
		Signals []struct {
			Category    string   `json:"category"`
			Observation string   `json:"observation"`
			Evidence    []string `json:"evidence"`
		} `json:"signals"`
		Notable []struct {
			Handle        string `json:"handle"`
			Reason        string `json:"reason"`
			FollowerCount int64  `json:"follower_count"`
		} `json:"notable"`
	}
	if err := json.Unmarshal([]byte(block), &wire); err != nil {
		return model.BatchFinding{}, eris.Wrap(err, "analyze: decode finding")
	}

	finding := model.BatchFinding{Topics: wire.Topics}

	for _, s := range wire.Signals {
		cat := model.ClusterCategory(s.Category)
		if model.CategoryRank(cat) >= len(model.ClusterCategories) {
			continue
		}
		evidence := filterHandles(s.Evidence, known)
		if len(evidence) == 0 {
			continue
		}
		finding.Signals = append(finding.Signals, model.Signal{
			Category:    cat,
			Observation: s.Observation,
			Evidence:    evidence,
		})
	}

	for _, n := range wire.Notable {
		if _, ok := known[n.Handle]; !ok {
			continue
		}
		finding.Notable = append(finding.Notable, model.NotableAccount{
			Handle:        n.Handle,
			Reason:        n.Reason,
			FollowerCount: n.FollowerCount,
		})
	}

	return finding, nil
}

// filterHandles keeps only handles present in the known set, deduplicated,
// preserving citation order.
func filterHandles(handles []string, known map[string]struct{}) []string {
	var kept []string
	seen := make(map[string]struct{}, len(handles))
	for _, h := range handles {
		if _, ok := known[h]; !ok {
			continue
		}
		if _, dup := seen[h]; dup {
			continue
		}
		seen[h] = struct{}{}
		kept = append(kept, h)
	}
	return kept
}
