package research

import "github.com/rotisserie/eris"

// Error taxonomy for the research pipeline. ErrInputInvalid is the only
// fatal, caller-facing error; every other kind is absorbed at the smallest
// possible scope (one fetch, one batch, one category) and recorded as a
// degradation on the result.
var (
	// ErrInputInvalid means no usable identifying input was supplied.
	ErrInputInvalid = eris.New("research: no usable identifying input")

	// ErrSourceUnavailable means data-provider credentials are missing;
	// the affected fetches degrade to absent.
	ErrSourceUnavailable = eris.New("research: data provider not configured")

	// ErrFetchTimeout means one fetch exceeded its polling deadline.
	ErrFetchTimeout = eris.New("research: fetch timed out")

	// ErrFetchFailed means the provider reported the job failed.
	ErrFetchFailed = eris.New("research: fetch failed")

	// ErrModelUnavailable means no language-model credentials are
	// configured; analysis stages are skipped, raw data is still returned.
	ErrModelUnavailable = eris.New("research: no language-model provider configured")

	// ErrModelCallFailed means one model call exhausted its retries; only
	// that unit degrades, never its siblings.
	ErrModelCallFailed = eris.New("research: model call failed")
)
