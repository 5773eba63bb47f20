package targets

// Mode is a training discipline. It selects the spawn-type policy.
type Mode string

const (
	ModeFlick    = Mode("flick")
	ModeTracking = Mode("tracking")
	ModeSwitch   = Mode("switch")
	ModeSpike    = Mode("spike")
)

// Modes lists all valid training modes.
func Modes() []Mode {
	return []Mode{ModeFlick, ModeTracking, ModeSwitch, ModeSpike}
}

func ValidMode(m Mode) bool {
	switch m {
	case ModeFlick, ModeTracking, ModeSwitch, ModeSpike:
		return true
	}
	return false
}

type Difficulty string

const (
	DifficultyEasy    = Difficulty("easy")
	DifficultyMedium  = Difficulty("medium")
	DifficultyHard    = Difficulty("hard")
	DifficultyExtreme = Difficulty("extreme")
)

func Difficulties() []Difficulty {
	return []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyExtreme}
}

func ValidDifficulty(d Difficulty) bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyExtreme:
		return true
	}
	return false
}

// Modifiers scale the global target parameter ranges per difficulty.
type Modifiers struct {
	Speed     float64
	Size      float64
	Lifetime  float64
	SpawnRate float64
}

var difficultyModifiers = map[Difficulty]Modifiers{
	DifficultyEasy:    {Speed: 0.7, Size: 1.3, Lifetime: 1.5, SpawnRate: 0.7},
	DifficultyMedium:  {Speed: 1.0, Size: 1.0, Lifetime: 1.0, SpawnRate: 1.0},
	DifficultyHard:    {Speed: 1.3, Size: 0.8, Lifetime: 0.7, SpawnRate: 1.3},
	DifficultyExtreme: {Speed: 1.7, Size: 0.6, Lifetime: 0.5, SpawnRate: 1.7},
}

// ModifiersFor returns the modifier set for a difficulty, falling back to
// medium for unknown values.
func ModifiersFor(d Difficulty) Modifiers {
	if m, ok := difficultyModifiers[d]; ok {
		return m
	}
	return difficultyModifiers[DifficultyMedium]
}
