package model

// Stage names one step of the research pipeline state machine. Transitions
// are forward-only; StageDone is the only terminal state.
type Stage string

const (
	StageInit         Stage = "init"
	StageFetching     Stage = "fetching"
	StageBatching     Stage = "batching"
	StageAnalyzing    Stage = "analyzing"
	StageSynthesizing Stage = "synthesizing"
	StageComposing    Stage = "composing"
	StageDone         Stage = "done"
)

// StageStatus describes how a stage ended.
type StageStatus string

const (
	StageStatusComplete StageStatus = "complete"
	StageStatusSkipped  StageStatus = "skipped"
	StageStatusDegraded StageStatus = "degraded"
)

// StageReport records one stage's outcome for observability.
type StageReport struct {
	Stage    Stage       `json:"stage"`
	Status   StageStatus `json:"status"`
	Duration int64       `json:"duration_ms"`
	Detail   string      `json:"detail,omitempty"`
}

// Degradation marks a non-fatal failure absorbed at the smallest possible
// scope: one fetch, one batch, or one category. It never aborts sibling work.
type Degradation struct {
	Stage  Stage  `json:"stage"`
	Unit   string `json:"unit"`   // e.g. "enrichment", "batch_2", "causes_politics"
	Reason string `json:"reason"` // taxonomy kind plus detail
}

// ResearchResult is the top-level aggregate for one research run. Every data
// field is independently nullable: absence is a valid terminal state for
// that sub-pipeline, never a reason to fail the whole run.
type ResearchResult struct {
	RunID        string           `json:"run_id"`
	Identity     *Identity        `json:"identity,omitempty"`
	Following    []FollowRelation `json:"following,omitempty"`
	Articles     []Article        `json:"articles,omitempty"`
	Clusters     []ClusterFinding `json:"clusters,omitempty"`
	Narrative    string           `json:"narrative,omitempty"`
	Stages       []StageReport    `json:"stages,omitempty"`
	Degradations []Degradation    `json:"degradations,omitempty"`
}

// Degraded reports whether any unit of work was absorbed as a degradation.
func (r *ResearchResult) Degraded() bool {
	return len(r.Degradations) > 0
}
