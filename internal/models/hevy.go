package models

// SetTypeNormal is the Hevy set type for a plain working set.
const SetTypeNormal = "normal"

// WorkoutsPage is the envelope returned by GET /v1/workouts.
type WorkoutsPage struct {
	Page      int       `json:"page"`
	PageCount int       `json:"page_count"`
	Workouts  []Workout `json:"workouts"`
}

// Latest returns the most recent workout of the page. Hevy orders
// workouts newest first.
func (p *WorkoutsPage) Latest() (Workout, bool) {
	if p == nil || len(p.Workouts) == 0 {
		return Workout{}, false
	}
	return p.Workouts[0], true
}

// Workout is one completed training session logged in Hevy.
type Workout struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	StartTime   string     `json:"start_time,omitempty"`
	EndTime     string     `json:"end_time,omitempty"`
	Exercises   []Exercise `json:"exercises"`
}

// Exercise is one movement performed during a workout.
type Exercise struct {
	Index int          `json:"index"`
	Title string       `json:"title"`
	Notes string       `json:"notes,omitempty"`
	Sets  []WorkoutSet `json:"sets"`
}

// WorkoutSet is a single set. Weight and RPE are null in the API when
// not recorded (bodyweight movements, no effort rating).
type WorkoutSet struct {
	Index    int      `json:"index"`
	SetType  string   `json:"set_type,omitempty"`
	WeightKg *float64 `json:"weight_kg"`
	Reps     int      `json:"reps"`
	RPE      *float64 `json:"rpe"`
}

// Type returns the set type, defaulting to "normal" when Hevy omits it.
func (s WorkoutSet) Type() string {
	if s.SetType == "" {
		return SetTypeNormal
	}
	return s.SetType
}
