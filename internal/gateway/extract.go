package gateway

import (
	"encoding/json"
	"strings"
)

// fallbackConfidence is the fixed confidence attached to heuristically
// synthesized verification results.
const fallbackConfidence = 0.3

// heuristicActions lists the actions allowed to fall back to keyword guessing
// when no JSON can be parsed. Kept as an explicit allow-list so new actions
// never silently inherit lossy guessing.
var heuristicActions = map[Action]bool{
	ActionVerifyProof: true,
}

// Extraction is the result of recovering structured data from model output.
type Extraction struct {
	Matched bool
	Payload map[string]any
}

// Extract scans rawText for the first '{' through the last '}' and parses the
// slice as JSON. This tolerates models that wrap JSON in prose or code fences.
func Extract(rawText string) Extraction {
	start := strings.Index(rawText, "{")
	end := strings.LastIndex(rawText, "}")
	if start == -1 || end == -1 || end < start {
		return Extraction{}
	}

	var payload map[string]any
	if err := json.Unmarshal([]byte(rawText[start:end+1]), &payload); err != nil {
		return Extraction{}
	}
	return Extraction{Matched: true, Payload: payload}
}

// ExtractForAction applies the primary strategy and, for allow-listed
// verification actions only, a keyword heuristic that synthesizes a
// low-confidence boolean result. Everything else treats extraction failure
// as a hard error: the gateway must never fabricate numeric content.
func ExtractForAction(action Action, rawText string) (map[string]any, error) {
	if res := Extract(rawText); res.Matched {
		return res.Payload, nil
	}

	if !heuristicActions[action] {
		return nil, &ExtractionError{Action: action}
	}

	lower := strings.ToLower(rawText)
	if strings.Contains(lower, "true") || strings.Contains(lower, "verified") {
		return map[string]any{"verified": true, "confidence": fallbackConfidence}, nil
	}
	return map[string]any{"verified": false, "confidence": 0.0}, nil
}
