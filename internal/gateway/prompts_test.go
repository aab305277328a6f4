package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction(t *testing.T) {
	a, ok := ParseAction("generateRoutine")
	require.True(t, ok)
	assert.Equal(t, ActionGenerateRoutine, a)

	_, ok = ParseAction("mineBitcoin")
	assert.False(t, ok)

	// Action names are case-sensitive wire identifiers.
	_, ok = ParseAction("GenerateRoutine")
	assert.False(t, ok)
}

func TestNeedsVision(t *testing.T) {
	assert.True(t, ActionVerifyProof.NeedsVision())
	assert.True(t, ActionAnalyzeRoutineFromImage.NeedsVision())
	assert.False(t, ActionGenerateRoutine.NeedsVision())
	assert.False(t, ActionCalculateMacros.NeedsVision())
}

func TestDispatch_UnknownAction(t *testing.T) {
	_, err := Dispatch(Action("nope"), nil)
	var unknownErr *UnknownActionError
	require.ErrorAs(t, err, &unknownErr)
}

func TestDispatch_NilDataUsesDefaults(t *testing.T) {
	prepared, err := Dispatch(ActionGenerateRoutine, nil)
	require.NoError(t, err)
	assert.Contains(t, prepared.Instruction, "beginner")
	assert.Contains(t, prepared.Instruction, "general fitness")
	assert.Contains(t, prepared.Instruction, "Training days per week: 3")
	assert.Empty(t, prepared.ImageURL)
}

func TestBuildRoutinePrompt_UsesSubmittedFields(t *testing.T) {
	prepared, err := Dispatch(ActionGenerateRoutine, map[string]any{
		"goal":        "hypertrophy",
		"experience":  "advanced",
		"equipment":   "full gym",
		"daysPerWeek": float64(5),
	})
	require.NoError(t, err)
	assert.Contains(t, prepared.Instruction, "hypertrophy")
	assert.Contains(t, prepared.Instruction, "advanced")
	assert.Contains(t, prepared.Instruction, "full gym")
	assert.Contains(t, prepared.Instruction, "Training days per week: 5")
	assert.Contains(t, prepared.Instruction, "single JSON object")
}

func TestBuildRoutinePrompt_FieldAliases(t *testing.T) {
	prepared, err := Dispatch(ActionGenerateRoutine, map[string]any{
		"primaryGoal":     "fat loss",
		"experienceLevel": "intermediate",
	})
	require.NoError(t, err)
	assert.Contains(t, prepared.Instruction, "fat loss")
	assert.Contains(t, prepared.Instruction, "intermediate")
}

func TestWeightKg_ImperialConversion(t *testing.T) {
	kg := weightKg(map[string]any{"weightLbs": float64(200)})
	assert.InDelta(t, 90.72, kg, 0.01)

	// Metric value wins when both are present
	kg = weightKg(map[string]any{"weightKg": float64(80), "weightLbs": float64(200)})
	assert.Equal(t, 80.0, kg)
}

func TestHeightCm_ImperialConversion(t *testing.T) {
	cm := heightCm(map[string]any{"heightFt": float64(6)})
	assert.InDelta(t, 182.88, cm, 0.01)

	cm = heightCm(map[string]any{"heightCm": float64(175)})
	assert.Equal(t, 175.0, cm)
}

func TestBuildMacrosPrompt_IncludesMeasurements(t *testing.T) {
	prepared, err := Dispatch(ActionCalculateMacros, map[string]any{
		"sex":           "female",
		"age":           float64(28),
		"weightKg":      float64(62.5),
		"heightCm":      float64(168),
		"activityLevel": "high",
		"goal":          "muscle gain",
	})
	require.NoError(t, err)
	assert.Contains(t, prepared.Instruction, "Weight: 62.5 kg")
	assert.Contains(t, prepared.Instruction, "Height: 168 cm")
	assert.Contains(t, prepared.Instruction, "Age: 28")
	assert.Contains(t, prepared.System, "Mifflin-St Jeor")
}

func TestBuildProgressPrompt_ForwardsEntriesVerbatim(t *testing.T) {
	prepared, err := Dispatch(ActionAnalyzeProgress, map[string]any{
		"goal": "strength",
		"entries": []any{
			map[string]any{"date": "2026-08-01", "squat": float64(120)},
		},
	})
	require.NoError(t, err)
	assert.Contains(t, prepared.Instruction, `"squat":120`)
	assert.Contains(t, prepared.Instruction, `"strength"`)
}

func TestBuildProofPrompt_CarriesImage(t *testing.T) {
	prepared, err := Dispatch(ActionVerifyProof, map[string]any{
		"claim": "finished a 5k run",
		"image": "data:image/jpeg;base64,AAAA",
	})
	require.NoError(t, err)
	assert.Equal(t, "data:image/jpeg;base64,AAAA", prepared.ImageURL)
	assert.Contains(t, prepared.Instruction, "finished a 5k run")
}

func TestBuildRoutineImagePrompt_ImageAliases(t *testing.T) {
	prepared, err := Dispatch(ActionAnalyzeRoutineFromImage, map[string]any{
		"imageUrl": "https://cdn.example.com/plan.jpg",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/plan.jpg", prepared.ImageURL)
}
