package logger

// Output controls what categories of information are shown at each verbosity level.
//
// Unlike log levels (which filter by severity), output categories control
// WHAT types of information are displayed regardless of severity.
//
// Verbosity Levels:
//
//	0 (default) - User-facing output only: results, errors with hints
//	1 (-v)      - + session join/leave, startup banner, intent summaries
//	2 (-vv)     - + timing, config loaded, transport frame summaries, fan-out decisions
//	3 (-vvv)    - + reconcile steps, materializer walk, internal flow
//	4 (-vvvv)   - + full frame bodies, full graph dumps, classifier trace

// OutputCategory defines a category of output that can be enabled/disabled
type OutputCategory int

const (
	// Level 0 (default) - Always shown
	OutputResults    OutputCategory = iota // Command output
	OutputErrors                           // Errors with hints and resolution steps
	OutputUserStatus                       // Final success/failure status

	// Level 1 (-v) - Informational
	OutputProgress      // Progress indicators (e.g., "materialized 50/200 entries")
	OutputStartup        // Startup banners, config summary
	OutputSessionStatus  // Participant joined/left a session
	OutputIntentSummary  // High-level intent summaries (createNode, addLink, ...)

	// Level 2 (-vv) - Detailed
	OutputTiming          // Operation timing (e.g., "reconcile took 4ms")
	OutputConfig          // Config values loaded/applied
	OutputTransportFrames // Outgoing/incoming frame name and size
	OutputFanOut          // Per-participant fan-out shape (Apply/Confirm/Cancel routing)

	// Level 3 (-vvv) - Debug
	OutputReconcileFlow   // Client-side reconcile branch walking
	OutputMaterializeFlow // Filesystem materializer directory walk steps
	OutputInternalFlow    // Internal operation flow (function entry/exit)

	// Level 4 (-vvvv) - Full dump
	OutputFrameBody     // Full wire frame payload
	OutputGraphDump     // Full node/link/port dump
	OutputClassifyTrace // Classifier decision trace for every intent
)

// categoryLevels maps each output category to its minimum verbosity level
var categoryLevels = map[OutputCategory]int{
	// Level 0 - Always shown
	OutputResults:    VerbosityUser,
	OutputErrors:     VerbosityUser,
	OutputUserStatus: VerbosityUser,

	// Level 1 - Informational
	OutputProgress:      VerbosityInfo,
	OutputStartup:       VerbosityInfo,
	OutputSessionStatus: VerbosityInfo,
	OutputIntentSummary: VerbosityInfo,

	// Level 2 - Detailed
	OutputTiming:          VerbosityDebug,
	OutputConfig:          VerbosityDebug,
	OutputTransportFrames: VerbosityDebug,
	OutputFanOut:          VerbosityDebug,

	// Level 3 - Debug
	OutputReconcileFlow:   VerbosityTrace,
	OutputMaterializeFlow: VerbosityTrace,
	OutputInternalFlow:    VerbosityTrace,

	// Level 4 - Full dump
	OutputFrameBody:     VerbosityAll,
	OutputGraphDump:     VerbosityAll,
	OutputClassifyTrace: VerbosityAll,
}

// ShouldOutput returns true if the given category should be shown at the given verbosity
func ShouldOutput(verbosity int, category OutputCategory) bool {
	minLevel, ok := categoryLevels[category]
	if !ok {
		// Unknown category, default to highest verbosity required
		return verbosity >= VerbosityAll
	}
	return verbosity >= minLevel
}

// categoryNames provides human-readable names for output categories
var categoryNames = map[OutputCategory]string{
	OutputResults:         "results",
	OutputErrors:          "errors",
	OutputUserStatus:      "status",
	OutputProgress:        "progress",
	OutputStartup:         "startup",
	OutputSessionStatus:   "session-status",
	OutputIntentSummary:   "intent-summary",
	OutputTiming:          "timing",
	OutputConfig:          "config",
	OutputTransportFrames: "transport-frames",
	OutputFanOut:          "fan-out",
	OutputReconcileFlow:   "reconcile-flow",
	OutputMaterializeFlow: "materialize-flow",
	OutputInternalFlow:    "internal-flow",
	OutputFrameBody:       "frame-body",
	OutputGraphDump:       "graph-dump",
	OutputClassifyTrace:   "classify-trace",
}

// CategoryName returns the human-readable name for an output category
func CategoryName(category OutputCategory) string {
	if name, ok := categoryNames[category]; ok {
		return name
	}
	return "unknown"
}

// EnabledCategories returns all output categories enabled at the given verbosity
func EnabledCategories(verbosity int) []OutputCategory {
	var enabled []OutputCategory
	for cat, minLevel := range categoryLevels {
		if verbosity >= minLevel {
			enabled = append(enabled, cat)
		}
	}
	return enabled
}

// VerbosityDescription returns a description of what's shown at each level
func VerbosityDescription(verbosity int) string {
	switch verbosity {
	case VerbosityUser:
		return "results and errors only"
	case VerbosityInfo:
		return "above + session join/leave, intent summaries"
	case VerbosityDebug:
		return "above + timing, config, transport frames, fan-out"
	case VerbosityTrace:
		return "above + reconcile/materializer flow, internal flow"
	case VerbosityAll:
		return "above + full frame bodies, graph dumps, classifier trace"
	default:
		if verbosity > VerbosityAll {
			return "maximum verbosity"
		}
		return "unknown verbosity level"
	}
}

// Transport output helpers

// ShouldShowFrameSummary returns true if per-frame name/size logging is enabled.
func ShouldShowFrameSummary(verbosity int) bool {
	return ShouldOutput(verbosity, OutputTransportFrames)
}

// ShouldShowFrameBody returns true if full frame payload logging is enabled.
func ShouldShowFrameBody(verbosity int) bool {
	return ShouldOutput(verbosity, OutputFrameBody)
}

// ShouldShowFanOut returns true if per-participant fan-out routing is logged.
func ShouldShowFanOut(verbosity int) bool {
	return ShouldOutput(verbosity, OutputFanOut)
}

// ShouldShowClassifyTrace returns true if every classifier decision is logged.
func ShouldShowClassifyTrace(verbosity int) bool {
	return ShouldOutput(verbosity, OutputClassifyTrace)
}

// Materializer output helpers

// ShouldShowMaterializeFlow returns true if directory-walk steps are logged.
func ShouldShowMaterializeFlow(verbosity int) bool {
	return ShouldOutput(verbosity, OutputMaterializeFlow)
}

// Timing helpers

// SlowThresholdMS is the threshold in milliseconds above which timing is always shown
const SlowThresholdMS = 100

// ShouldShowTiming returns true if timing info should be displayed.
// Shows if: verbosity >= 2 (-vv) OR operation exceeded slow threshold.
func ShouldShowTiming(verbosity int, durationMS int64) bool {
	if durationMS >= SlowThresholdMS {
		return true // Always show slow operations
	}
	return ShouldOutput(verbosity, OutputTiming)
}

// ShouldShowTimingAlways returns true if timing should always be shown (slow operation)
func ShouldShowTimingAlways(durationMS int64) bool {
	return durationMS >= SlowThresholdMS
}
