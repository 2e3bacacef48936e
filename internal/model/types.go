package model

// StorageKey namespaces the single persisted state document.
const StorageKey = "hl_app_state_v1"

// SchemaVersion is the document layout written by this build.
const SchemaVersion = 1

const (
	GenderMale  = "male"
	GenderOther = "other"
)

const (
	UnitGrams  = "g"
	UnitCustom = "custom"
)

const (
	SourceManual    = "manual"
	SourceEstimated = "manual/estimated"
	SourceFavorite  = "favorite"
)

const GoalModeMaintain = "maintain"

// MaxFavorites caps the meal bank; the oldest templates are evicted first.
const MaxFavorites = 50

type State struct {
	SchemaVersion int            `json:"schemaVersion"`
	ActiveDate    string         `json:"activeDate,omitempty"`
	User          User           `json:"user"`
	Days          map[string]Day `json:"days"`
	Settings      Settings       `json:"settings"`
}

type User struct {
	Name      string         `json:"name"`
	Profile   *Profile       `json:"profile"`
	GoalMode  string         `json:"goalMode"`
	Modes     Modes          `json:"modes"`
	Favorites []FavoriteMeal `json:"favorites"`
	Weights   []WeightRecord `json:"weights"`
}

type Modes struct {
	EatingOut bool `json:"eatingOut"`
}

type MacroTargets struct {
	ProteinG float64 `json:"proteinG"`
	CarbsG   float64 `json:"carbsG"`
	FatG     float64 `json:"fatG"`
}

type Profile struct {
	Age            float64      `json:"age"`
	Gender         string       `json:"gender"`
	HeightCm       float64      `json:"heightCm"`
	WeightKg       float64      `json:"weightKg"`
	ActivityFactor float64      `json:"activityFactor"`
	TDEE           float64      `json:"tdee"`
	KcalTarget     float64      `json:"kcalTarget"`
	MacroTargets   MacroTargets `json:"macroTargets"`
	WaterGoalMl    float64      `json:"waterGoalMl"`
}

type Day struct {
	Foods       []FoodEntry `json:"foods"`
	WaterMl     float64     `json:"waterMl"`
	LastWaterTs int64       `json:"lastWaterTs"`
	RestDay     bool        `json:"restDay"`
}

type FoodEntry struct {
	ID           string  `json:"id"`
	Ts           int64   `json:"ts"`
	Name         string  `json:"name"`
	Amount       float64 `json:"amount"`
	AmountUnit   string  `json:"amountUnit"`
	AmountText   string  `json:"amountText"`
	Kcal         float64 `json:"kcal"`
	ProteinG     float64 `json:"protein"`
	CarbsG       float64 `json:"carbs"`
	FatG         float64 `json:"fat"`
	FiberG       float64 `json:"fiber"`
	PhotoDataURL string  `json:"photoDataUrl"`
	PhotoNotes   string  `json:"photoNotes"`
	Source       string  `json:"source"`
}

type FavoriteMeal struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Amount     float64 `json:"amount"`
	AmountUnit string  `json:"amountUnit"`
	AmountText string  `json:"amountText"`
	Kcal       float64 `json:"kcal"`
	ProteinG   float64 `json:"protein"`
	CarbsG     float64 `json:"carbs"`
	FatG       float64 `json:"fat"`
	FiberG     float64 `json:"fiber"`
	CreatedTs  int64   `json:"createdTs"`
}

type WeightRecord struct {
	DateISO string  `json:"dateISO"`
	Kg      float64 `json:"kg"`
	Ts      int64   `json:"ts"`
}

type Settings struct {
	SmartWater SmartWater     `json:"smartWater"`
	Lookup     LookupSettings `json:"lookup"`
}

type SmartWater struct {
	Enabled    bool       `json:"enabled"`
	QuietHours QuietHours `json:"quietHours"`
}

// QuietHours is an hour-of-day window [From, To) that may wrap past midnight.
type QuietHours struct {
	From int `json:"from"`
	To   int `json:"to"`
}

type LookupSettings struct {
	OpenFoodFacts bool `json:"openFoodFacts"`
}

// DefaultState is the full skeleton every loaded document is merged over.
func DefaultState() State {
	return State{
		SchemaVersion: SchemaVersion,
		User: User{
			GoalMode:  GoalModeMaintain,
			Favorites: []FavoriteMeal{},
			Weights:   []WeightRecord{},
		},
		Days: map[string]Day{},
		Settings: Settings{
			SmartWater: SmartWater{QuietHours: QuietHours{From: 22, To: 7}},
			Lookup:     LookupSettings{OpenFoodFacts: true},
		},
	}
}
