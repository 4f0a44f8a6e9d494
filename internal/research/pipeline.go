package research

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/deepresearch-cli/internal/config"
	"github.com/sells-group/deepresearch-cli/internal/llm"
	"github.com/sells-group/deepresearch-cli/internal/model"
	"github.com/sells-group/deepresearch-cli/pkg/nyne"
)

// Pipeline orchestrates one research run through the stages
// Fetching → Batching → Analyzing → Synthesizing → Composing → Done.
// Transitions are forward-only; a stage's total failure degrades the result
// but never aborts the run. The only caller-facing error is ErrInputInvalid.
type Pipeline struct {
	cfg    *config.Config
	source nyne.Client
	llm    *llm.Selector
}

// New creates a Pipeline with its external dependencies.
func New(cfg *config.Config, source nyne.Client, selector *llm.Selector) *Pipeline {
	return &Pipeline{cfg: cfg, source: source, llm: selector}
}

// Run executes the full research pipeline. It always returns a
// ResearchResult after input validation, possibly with many absent fields.
func (p *Pipeline) Run(ctx context.Context, in Input) (*model.ResearchResult, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	if secs := p.cfg.Research.RunTimeoutSecs; secs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(secs)*time.Second)
		defer cancel()
	}

	result := &model.ResearchResult{RunID: uuid.NewString()}
	log := zap.L().With(zap.String("run_id", result.RunID))
	log.Info("research: starting run",
		zap.Bool("has_email", in.Email != ""),
		zap.Bool("has_linkedin", in.LinkedInURL != ""),
		zap.Bool("has_twitter", in.TwitterURL != ""),
		zap.Bool("has_name", in.Name != ""),
	)

	// Degradations may be appended from concurrent fetches.
	var degradeMu sync.Mutex
	degrade := func(stage model.Stage, unit string, err error) {
		degradeMu.Lock()
		defer degradeMu.Unlock()
		result.Degradations = append(result.Degradations, model.Degradation{
			Stage:  stage,
			Unit:   unit,
			Reason: err.Error(),
		})
	}

	trackStage := func(stage model.Stage, fn func() (model.StageStatus, string)) {
		start := time.Now()
		status, detail := fn()
		report := model.StageReport{
			Stage:    stage,
			Status:   status,
			Duration: time.Since(start).Milliseconds(),
			Detail:   detail,
		}
		result.Stages = append(result.Stages, report)
		log.Info("research: stage settled",
			zap.String("stage", string(stage)),
			zap.String("status", string(status)),
			zap.Int64("duration_ms", report.Duration),
			zap.String("detail", detail),
		)
	}

	// ===== Fetching =====
	trackStage(model.StageFetching, func() (model.StageStatus, string) {
		if !p.cfg.Nyne.Configured() {
			degrade(model.StageFetching, "source", ErrSourceUnavailable)
			return model.StageStatusDegraded, "data provider not configured"
		}

		f := newFetcher(p.source, p.cfg.Research)
		degradedBefore := len(result.Degradations)

		// Enrichment completes first: following/article inputs may derive
		// from its output.
		identity, err := f.FetchEnrichment(ctx, in)
		if err != nil {
			degrade(model.StageFetching, "enrichment", err)
		} else if identity != nil {
			result.Identity = identity
		}

		socialURL := in.resolveTwitterURL(result.Identity)
		name := in.resolveName(result.Identity)
		company := in.resolveCompany(result.Identity)

		// Following and article fetches are mutually independent.
		var fetchMu sync.Mutex
		g, gCtx := errgroup.WithContext(ctx)
		g.Go(func() error {
			follows, followErr := f.FetchFollowing(gCtx, socialURL)
			if followErr != nil {
				degrade(model.StageFetching, "following", followErr)
				return nil
			}
			fetchMu.Lock()
			result.Following = follows
			fetchMu.Unlock()
			return nil
		})
		g.Go(func() error {
			articles, articleErr := f.FetchArticles(gCtx, name, company)
			if articleErr != nil {
				degrade(model.StageFetching, "articles", articleErr)
				return nil
			}
			fetchMu.Lock()
			result.Articles = articles
			fetchMu.Unlock()
			return nil
		})
		_ = g.Wait()

		detail := fmt.Sprintf("identity=%t follows=%d articles=%d",
			result.Identity != nil, len(result.Following), len(result.Articles))
		if len(result.Degradations) > degradedBefore {
			return model.StageStatusDegraded, detail
		}
		return model.StageStatusComplete, detail
	})

	// ===== Batching =====
	var batches []model.Batch
	trackStage(model.StageBatching, func() (model.StageStatus, string) {
		if len(result.Following) == 0 {
			return model.StageStatusSkipped, "no following list"
		}
		batches = Partition(result.Following, p.cfg.Research.BatchSize)
		return model.StageStatusComplete, fmt.Sprintf("%d batches", len(batches))
	})

	modelsAvailable := p.llm != nil && p.llm.Available()

	// ===== Analyzing =====
	var findings []model.BatchFinding
	trackStage(model.StageAnalyzing, func() (model.StageStatus, string) {
		if len(batches) == 0 {
			return model.StageStatusSkipped, "no batches"
		}
		if !modelsAvailable {
			degrade(model.StageAnalyzing, "model", ErrModelUnavailable)
			return model.StageStatusSkipped, "no model provider"
		}

		analyzer := NewAnalyzer(p.llm, p.cfg.Research)
		var degs []model.Degradation
		findings, degs = analyzer.AnalyzeBatches(ctx, in.Provider, batches)
		result.Degradations = append(result.Degradations, degs...)

		if len(degs) > 0 {
			return model.StageStatusDegraded, fmt.Sprintf("%d/%d batches degraded", len(degs), len(batches))
		}
		return model.StageStatusComplete, fmt.Sprintf("%d batches analyzed", len(batches))
	})

	// ===== Synthesizing =====
	trackStage(model.StageSynthesizing, func() (model.StageStatus, string) {
		usable := false
		for _, f := range findings {
			if !f.Empty() {
				usable = true
				break
			}
		}
		if !usable {
			return model.StageStatusSkipped, "no batch findings"
		}

		synthesizer := NewSynthesizer(p.llm, p.cfg.Research)
		clusters, degs := synthesizer.Synthesize(ctx, in.Provider, findings, HandleSet(result.Following))
		result.Clusters = clusters
		result.Degradations = append(result.Degradations, degs...)

		detail := fmt.Sprintf("%d/%d categories", len(clusters), len(model.ClusterCategories))
		if len(degs) > 0 {
			return model.StageStatusDegraded, detail
		}
		return model.StageStatusComplete, detail
	})

	// ===== Composing =====
	trackStage(model.StageComposing, func() (model.StageStatus, string) {
		if in.SkipNarrative {
			return model.StageStatusSkipped, "narrative disabled"
		}
		if !modelsAvailable {
			return model.StageStatusSkipped, "no model provider"
		}
		if result.Identity == nil && len(result.Articles) == 0 && len(result.Clusters) == 0 {
			return model.StageStatusSkipped, "no data to compose"
		}

		composer := NewComposer(p.llm, p.cfg.Research)
		narrative, err := composer.Compose(ctx, in.Provider, result.Identity, result.Articles, result.Clusters)
		if err != nil {
			degrade(model.StageComposing, "narrative", err)
			return model.StageStatusDegraded, "narrative absent"
		}
		result.Narrative = narrative
		return model.StageStatusComplete, fmt.Sprintf("%d sections", len(dossierSections))
	})

	log.Info("research: run complete",
		zap.Bool("identity", result.Identity != nil),
		zap.Int("following", len(result.Following)),
		zap.Int("articles", len(result.Articles)),
		zap.Int("clusters", len(result.Clusters)),
		zap.Bool("narrative", result.Narrative != ""),
		zap.Int("degradations", len(result.Degradations)),
	)

	return result, nil
}
