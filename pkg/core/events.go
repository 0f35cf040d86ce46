package core

import "fmt"

// RefreshEvent is emitted each time a watched tree is re-inferred.
// Result is nil when the run failed; Err then holds the cause.
type RefreshEvent struct {
	Trigger   string
	Timestamp int64 // Unix timestamp
	Result    *Result
	Err       error
}

func (e RefreshEvent) String() string {
	if e.Err != nil {
		return fmt.Sprintf("refresh(%s) failed: %v", e.Trigger, e.Err)
	}
	if e.Result == nil || e.Result.Schema == nil {
		return fmt.Sprintf("refresh(%s)", e.Trigger)
	}
	return fmt.Sprintf("refresh(%s) run=%s fields=%d suggestions=%d skipped=%d",
		e.Trigger, e.Result.RunID, len(e.Result.Schema.DetectedFields),
		len(e.Result.Schema.Suggestions), len(e.Result.Skipped))
}
