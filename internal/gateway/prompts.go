package gateway

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Unit conversion constants for callers submitting imperial measurements.
const (
	lbsToKg = 0.45359237
	ftToCm  = 30.48
)

// PreparedRequest is the provider-ready payload produced by a prompt builder.
type PreparedRequest struct {
	System      string
	Instruction string
	ImageURL    string // data URL or https URL; empty for text-only actions
}

type builderFunc func(data map[string]any) PreparedRequest

var builders = map[Action]builderFunc{
	ActionGenerateRoutine:         buildRoutinePrompt,
	ActionGenerateDiet:            buildDietPrompt,
	ActionCalculateMacros:         buildMacrosPrompt,
	ActionAnalyzeProgress:         buildProgressPrompt,
	ActionVerifyProof:             buildProofPrompt,
	ActionAnalyzeRoutineFromImage: buildRoutineImagePrompt,
}

// Dispatch resolves the action's builder and renders the provider payload.
func Dispatch(action Action, data map[string]any) (PreparedRequest, error) {
	build, ok := builders[action]
	if !ok {
		return PreparedRequest{}, &UnknownActionError{Action: string(action)}
	}
	if data == nil {
		data = map[string]any{}
	}
	return build(data), nil
}

// strField returns the first non-empty string among keys, else fallback.
func strField(data map[string]any, fallback string, keys ...string) string {
	for _, k := range keys {
		if v, ok := data[k].(string); ok && v != "" {
			return v
		}
	}
	return fallback
}

// numField returns the first numeric value among keys, else fallback.
func numField(data map[string]any, fallback float64, keys ...string) float64 {
	for _, k := range keys {
		switch v := data[k].(type) {
		case float64:
			return v
		case int:
			return float64(v)
		}
	}
	return fallback
}

// weightKg resolves the caller's weight in kilograms, converting from pounds
// when only an imperial value was submitted.
func weightKg(data map[string]any) float64 {
	if kg := numField(data, 0, "weightKg", "weight"); kg > 0 {
		return kg
	}
	if lbs := numField(data, 0, "weightLbs"); lbs > 0 {
		return lbs * lbsToKg
	}
	return 0
}

// heightCm resolves the caller's height in centimeters, converting from feet
// when only an imperial value was submitted.
func heightCm(data map[string]any) float64 {
	if cm := numField(data, 0, "heightCm", "height"); cm > 0 {
		return cm
	}
	if ft := numField(data, 0, "heightFt"); ft > 0 {
		return ft * ftToCm
	}
	return 0
}

func imageField(data map[string]any) string {
	return strField(data, "", "image", "imageUrl", "imageBase64")
}

const jsonOnly = "Respond with a single JSON object and nothing else. No prose, no code fences."

func buildRoutinePrompt(data map[string]any) PreparedRequest {
	goal := strField(data, "general fitness", "goal", "primaryGoal")
	experience := strField(data, "beginner", "experience", "experienceLevel")
	equipment := strField(data, "bodyweight only", "equipment")
	injuries := strField(data, "none", "injuries", "limitations")
	days := int(numField(data, 3, "daysPerWeek", "trainingDays"))

	var b strings.Builder
	fmt.Fprintf(&b, "Create a weekly workout routine for a %s trainee. Goal: %s. Available equipment: %s. Injuries or limitations: %s. Training days per week: %d.\n",
		experience, goal, equipment, injuries, days)
	b.WriteString(`Return JSON with this shape: {"routineName": string, "daysPerWeek": number, "days": [{"day": string, "focus": string, "exercises": [{"name": string, "sets": number, "reps": string, "restSeconds": number}]}]}. `)
	b.WriteString(jsonOnly)

	return PreparedRequest{
		System:      "You are an experienced strength and conditioning coach who designs safe, progressive training programs.",
		Instruction: b.String(),
	}
}

func buildDietPrompt(data map[string]any) PreparedRequest {
	goal := strField(data, "maintenance", "goal", "primaryGoal")
	style := strField(data, "no restrictions", "dietaryStyle", "diet")
	allergies := strField(data, "none", "allergies")
	meals := int(numField(data, 4, "mealsPerDay"))
	kg := weightKg(data)
	cm := heightCm(data)

	var b strings.Builder
	fmt.Fprintf(&b, "Create a one-day meal plan. Goal: %s. Dietary style: %s. Allergies: %s. Meals per day: %d.", goal, style, allergies, meals)
	if kg > 0 {
		fmt.Fprintf(&b, " Body weight: %.1f kg.", kg)
	}
	if cm > 0 {
		fmt.Fprintf(&b, " Height: %.0f cm.", cm)
	}
	b.WriteString(`
Return JSON with this shape: {"dailyCalories": number, "meals": [{"name": string, "foods": [{"item": string, "grams": number, "calories": number}], "calories": number}]}. `)
	b.WriteString(jsonOnly)

	return PreparedRequest{
		System:      "You are a registered sports nutritionist who builds practical, balanced meal plans.",
		Instruction: b.String(),
	}
}

func buildMacrosPrompt(data map[string]any) PreparedRequest {
	goal := strField(data, "maintenance", "goal", "primaryGoal")
	sex := strField(data, "unspecified", "sex", "gender")
	activity := strField(data, "moderate", "activityLevel")
	age := int(numField(data, 30, "age"))
	kg := weightKg(data)
	cm := heightCm(data)

	instruction := fmt.Sprintf(
		"Calculate daily calorie and macronutrient targets. Sex: %s. Age: %d. Weight: %.1f kg. Height: %.0f cm. Activity level: %s. Goal: %s.\n"+
			`Return JSON with this shape: {"calories": number, "proteinGrams": number, "carbsGrams": number, "fatGrams": number}. `+jsonOnly,
		sex, age, kg, cm, activity, goal)

	return PreparedRequest{
		System:      "You are a sports nutritionist. Use the Mifflin-St Jeor equation for basal metabolic rate.",
		Instruction: instruction,
	}
}

func buildProgressPrompt(data map[string]any) PreparedRequest {
	goal := strField(data, "general fitness", "goal", "primaryGoal")

	// The progress log is forwarded verbatim so the model sees raw numbers.
	entries := data["entries"]
	if entries == nil {
		entries = data["history"]
	}
	entriesJSON, err := json.Marshal(entries)
	if err != nil || entries == nil {
		entriesJSON = []byte("[]")
	}

	instruction := fmt.Sprintf(
		"Analyze this training and body-weight log against the goal %q:\n%s\n"+
			`Return JSON with this shape: {"summary": string, "trend": "improving"|"plateau"|"declining", "recommendations": [string]}. `+jsonOnly,
		goal, entriesJSON)

	return PreparedRequest{
		System:      "You are a fitness coach reviewing a client's training history.",
		Instruction: instruction,
	}
}

func buildProofPrompt(data map[string]any) PreparedRequest {
	claim := strField(data, "completed a workout", "claim", "exerciseName")

	instruction := fmt.Sprintf(
		"Look at the attached photo and decide whether it plausibly shows the user %s.\n"+
			`Return JSON with this shape: {"verified": boolean, "confidence": number, "reason": string}. `+jsonOnly,
		claim)

	return PreparedRequest{
		System:      "You verify workout proof photos. Be skeptical but fair; screenshots of fitness apps count as proof.",
		Instruction: instruction,
		ImageURL:    imageField(data),
	}
}

func buildRoutineImagePrompt(data map[string]any) PreparedRequest {
	instruction := "Transcribe the workout routine shown in the attached image into structured data. " +
		`Return JSON with this shape: {"routineName": string, "days": [{"day": string, "exercises": [{"name": string, "sets": number, "reps": string}]}]}. ` +
		jsonOnly

	return PreparedRequest{
		System:      "You digitize handwritten and photographed workout plans accurately, without inventing exercises.",
		Instruction: instruction,
		ImageURL:    imageField(data),
	}
}
