package gateway

import "time"

// Action is one named AI capability exposed through the gateway.
type Action string

const (
	ActionGenerateRoutine         Action = "generateRoutine"
	ActionGenerateDiet            Action = "generateDiet"
	ActionCalculateMacros         Action = "calculateMacros"
	ActionAnalyzeProgress         Action = "analyzeProgress"
	ActionVerifyProof             Action = "verifyProof"
	ActionAnalyzeRoutineFromImage Action = "analyzeRoutineFromImage"
)

// ParseAction returns the Action for a wire name, or false if unsupported.
func ParseAction(s string) (Action, bool) {
	a := Action(s)
	if _, ok := builders[a]; !ok {
		return "", false
	}
	return a, true
}

// NeedsVision reports whether the action forwards an image to the provider.
func (a Action) NeedsVision() bool {
	return a == ActionVerifyProof || a == ActionAnalyzeRoutineFromImage
}

// Policy bounds request bursts for one action.
type Policy struct {
	Window      time.Duration
	MaxRequests int
}

// defaultPolicy applies to any action without an explicit entry.
var defaultPolicy = Policy{Window: time.Minute, MaxRequests: 10}

var policies = map[Action]Policy{
	ActionGenerateRoutine:         {Window: time.Minute, MaxRequests: 5},
	ActionGenerateDiet:            {Window: time.Minute, MaxRequests: 5},
	ActionAnalyzeRoutineFromImage: {Window: time.Minute, MaxRequests: 5},
}

// PolicyFor returns the rate-limit policy for an action.
func PolicyFor(a Action) Policy {
	if p, ok := policies[a]; ok {
		return p
	}
	return defaultPolicy
}
