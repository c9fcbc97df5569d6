package rewards

// experiencePerLevel is the flat XP cost of each level.
const experiencePerLevel = 100

// Progression describes an account's position on the leveling curve after
// applying earned points.
type Progression struct {
	Experience       int
	Level            int
	ExperienceToNext int
	ProgressPercent  float64
	LeveledUp        bool
}

// Level derives the level from cumulative experience. Level is never stored
// independently of this rule.
func Level(experience int) int {
	if experience < 0 {
		experience = 0
	}
	return experience/experiencePerLevel + 1
}

// ApplyPoints converts earned points into experience (10% of points, doubled
// for premium accounts) and recomputes the level from the new total. Levels
// may jump by more than one in a single application.
func ApplyPoints(currentExperience, pointsEarned int, premium bool) Progression {
	if currentExperience < 0 {
		currentExperience = 0
	}
	if pointsEarned < 0 {
		pointsEarned = 0
	}

	gain := pointsEarned / 10
	if premium {
		gain *= 2
	}

	exp := currentExperience + gain
	level := Level(exp)

	toNext := level*experiencePerLevel - exp
	if toNext < 0 {
		toNext = 0
	}

	inLevel := exp - (level-1)*experiencePerLevel
	percent := float64(inLevel) / experiencePerLevel * 100
	if percent < 0 {
		percent = 0
	} else if percent > 100 {
		percent = 100
	}

	return Progression{
		Experience:       exp,
		Level:            level,
		ExperienceToNext: toNext,
		ProgressPercent:  percent,
		LeveledUp:        level > Level(currentExperience),
	}
}

// Describe reports the progression for an experience total without applying
// any new points. Used for profile/stats display.
func Describe(experience int) Progression {
	return ApplyPoints(experience, 0, false)
}
