package llm

import (
	"strings"
	"text/template"
)

var funcs = template.FuncMap{
	"join": func(items []string, fallback string) string {
		if len(items) == 0 {
			return fallback
		}
		return strings.Join(items, ", ")
	},
	"inc": func(i int) int { return i + 1 },
}

func parse(name, text string) *template.Template {
	return template.Must(template.New(name).Funcs(funcs).Parse(text))
}

const exerciseSchema = `{
  "name": "Proper Exercise Name",
  "category": "Strength|Cardio|Flexibility|Sports|Functional",
  "equipment": ["Equipment1"],
  "primaryMuscles": ["Muscle1", "Muscle2"],
  "secondaryMuscles": ["Muscle1"],
  "difficulty": "Beginner|Intermediate|Advanced",
  "movementType": "Compound|Isolation",
  "movementPattern": "Push|Pull|Squat|Hinge|Carry|Rotation",
  "targetRegion": ["Upper Body|Lower Body|Core|Full Body"],
  "muscleGroup": "Chest|Back|Shoulders|Arms|Legs|Core|Full Body",
  "gripType": "Standard|Wide|Narrow|Neutral|Overhand|Underhand",
  "rangeOfMotion": "Full|Partial|Static",
  "tempo": "Slow|Moderate|Fast|Explosive"
}`

var exerciseSearchTmpl = parse("exerciseSearch", `You are a professional fitness expert. Analyze the input: "{{.Query}}"

FIRST, decide whether this is a real exercise, muscle group or fitness movement.
Random characters, gibberish and non-fitness terms are not.

IF THE INPUT IS NOT A VALID EXERCISE OR FITNESS TERM return exactly:
{"error": "not_found", "message": "No valid exercise found for this search term"}

OTHERWISE return the exercise in this EXACT format:
`+exerciseSchema+`

RULES:
- Use proper anatomical muscle names.
- Every array must contain at least one item. Use "Bodyweight" when no equipment is needed.
- Enum values must match exactly.
`)

var variationsTmpl = parse("variations", `You are a professional fitness expert. Generate {{.Count}} exercise variations for: "{{.Exercise}}"

Return ONLY a valid JSON array in this EXACT format:
[
`+exerciseSchema+`
]

RULES:
- Target similar muscles with a different technique or equipment.
- Order the variations from easier to harder.
- Every array must contain at least one item. Use ["Bodyweight"] for bodyweight exercises.
- Enum values must match exactly (case-sensitive).
`)

var workoutTmpl = parse("workout", `You are a professional fitness trainer. Create a personalized workout plan.

USER PROFILE:
- Goal: {{.Goal}}
- Fitness Level: {{.FitnessLevel}}
- Duration: {{.Duration}} minutes
- Target Muscle Groups: {{join .TargetMuscles "Not specified"}}
- Available Equipment: {{join .Equipment "Bodyweight only"}}
{{- if .Focus}}

FOCUS: at least 70% of the exercises must directly target {{.Focus}}.
{{- end}}
{{- if .History}}

RECENT WORKOUT HISTORY (last 4 days):
{{- range $i, $h := .History}}
{{inc $i}}. {{$h.Name}} ({{$h.Date}}): {{join $h.Exercises "no exercises logged"}}
{{- end}}
Avoid repeating these exercises unless the goal requires it.
{{- end}}
{{- if or .Overworked .Underworked}}

MUSCLE BALANCE:
{{- if .Overworked}}
- Recently overworked, go light: {{join .Overworked ""}}
{{- end}}
{{- if .Underworked}}
- Recently neglected, prioritise: {{join .Underworked ""}}
{{- end}}
{{- end}}
{{- if .Recommended}}

EXERCISES FROM THE LIBRARY THAT FIT THIS USER: {{join .Recommended ""}}
{{- end}}
{{- if .InjuryTips}}

INJURY PREVENTION:
{{- range .InjuryTips}}
- {{.}}
{{- end}}
{{- end}}

Return ONLY a valid JSON object, no markdown and no text around it:
{
  "name": "Descriptive Workout Name",
  "description": "Brief description of the workout",
  "difficulty": "{{.FitnessLevel}}",
  "estimatedDuration": {{.Duration}},
  "targetMuscleGroups": ["Chest"],
  "exercises": [
    {
      "name": "Push-ups",
      "type": "Strength",
      "equipment": ["Bodyweight"],
      "muscleGroups": ["Chest", "Triceps"],
      "instructions": "Step-by-step form guidance.",
      "sets": [{"reps": 12, "weight": 0}],
      "restTime": 60
    }
  ]
}

GUIDELINES:
1. Design {{.MinExercises}} to {{.MaxExercises}} exercises.
2. Do not include warm-up or cool-down exercises.
3. Every set must have numeric "reps" (positive integer) and "weight" (0 for bodyweight).
4. Rest times: Strength 60-90s, Cardio 30-45s.
`)

var simplifiedWorkoutTmpl = parse("simplifiedWorkout", `Create a {{.Duration}}-minute {{.Goal}} workout for {{.FitnessLevel}} level.
Return only JSON format:
{
  "name": "Workout Name",
  "description": "Description",
  "difficulty": "{{.FitnessLevel}}",
  "estimatedDuration": {{.Duration}},
  "exercises": [
    {
      "name": "Exercise Name",
      "type": "Strength",
      "muscleGroups": ["Chest"],
      "instructions": "How to perform it",
      "sets": [{"reps": 12, "weight": 0}],
      "restTime": 60
    }
  ]
}`)

var replacementTmpl = parse("replacement", `Replace "{{.Exercise}}" with 3 alternatives.
Muscles: {{join .Muscles "same"}}
Equipment: {{join .Equipment "bodyweight"}}
Level: {{if .FitnessLevel}}{{.FitnessLevel}}{{else}}beginner{{end}}
{{- if .Exclude}}
Do not suggest: {{join .Exclude ""}}
{{- end}}

Return JSON array only:
[{
"name":"Exercise Name",
"category":"Strength",
"equipment":["Equipment"],
"primaryMuscles":["Muscle"],
"difficulty":"Beginner",
"muscleGroup":"Chest",
"sets":[{"reps":12,"weight":0}],
"restTime":60
}]

Keep responses minimal.`)

type ExerciseSearchData struct {
	Query string
}

type VariationsData struct {
	Exercise string
	Count    int
}

type HistoryEntry struct {
	Name      string
	Date      string
	Exercises []string
}

type WorkoutData struct {
	Goal          string
	FitnessLevel  string
	Duration      int
	TargetMuscles []string
	Equipment     []string
	Focus         string
	History       []HistoryEntry
	Overworked    []string
	Underworked   []string
	Recommended   []string
	InjuryTips    []string
	MinExercises  int
	MaxExercises  int
}

type SimplifiedWorkoutData struct {
	Goal         string
	FitnessLevel string
	Duration     int
}

type ReplacementData struct {
	Exercise     string
	Muscles      []string
	Equipment    []string
	FitnessLevel string
	Exclude      []string
}

func render(t *template.Template, data any) (string, error) {
	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func ExerciseSearchPrompt(d ExerciseSearchData) (string, error) {
	return render(exerciseSearchTmpl, d)
}

func VariationsPrompt(d VariationsData) (string, error) {
	return render(variationsTmpl, d)
}

func WorkoutPrompt(d WorkoutData) (string, error) {
	return render(workoutTmpl, d)
}

// SimplifiedWorkoutPrompt is the short prompt used when the full one came back
// empty.
func SimplifiedWorkoutPrompt(d SimplifiedWorkoutData) (string, error) {
	return render(simplifiedWorkoutTmpl, d)
}

func ReplacementPrompt(d ReplacementData) (string, error) {
	return render(replacementTmpl, d)
}
