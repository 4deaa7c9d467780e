package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParseDifficulty validates a preset name. The empty string means normal.
func ParseDifficulty(name string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(name); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (use easy, normal, hard or fixed)", name)
	}
}

// ApplyPinballPreset modifies the config based on a difficulty preset.
// Normal and fixed leave the loaded config untouched.
func ApplyPinballPreset(cfg *PinballConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 5
		cfg.Physics.Gravity *= 0.8
		cfg.Flipper.Length *= 1.15
	case DifficultyHard:
		cfg.Gameplay.Lives = 2
		cfg.Physics.Gravity *= 1.25
		cfg.Flipper.RotationSpeed *= 0.8
	}
}

// ScoreBoardID names the high-score board for a preset, so scores from
// different difficulties are ranked separately.
func ScoreBoardID(preset DifficultyPreset) string {
	switch preset {
	case DifficultyEasy, DifficultyHard:
		return "pinball_" + string(preset)
	default:
		return "pinball"
	}
}

// ScoreBoards lists every board ScoreBoardID can return, normal first.
func ScoreBoards() []string {
	return []string{
		ScoreBoardID(DifficultyNormal),
		ScoreBoardID(DifficultyEasy),
		ScoreBoardID(DifficultyHard),
	}
}
