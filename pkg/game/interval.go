package game

import "time"

const (
	FrameInterval = 16 * time.Millisecond
	InputInterval = 3 * FrameInterval

	// BaseGravityInterval is the gravity interval at difficulty 0.
	BaseGravityInterval = 62 * FrameInterval
	DifficultyStep      = 4 * FrameInterval
	MinGravityInterval  = 3 * FrameInterval

	FPSInterval = time.Second

	DefaultEscalationInterval = 30 * time.Second
)

// GravityInterval shortens base by one step per difficulty level, never
// going below MinGravityInterval.
func GravityInterval(base time.Duration, difficulty int) time.Duration {
	if difficulty < 0 {
		difficulty = 0
	}

	interval := base - time.Duration(difficulty)*DifficultyStep
	if interval < MinGravityInterval {
		return MinGravityInterval
	}

	return interval
}
