package rewards

// AccountState is the slice of a user account the ledger operates on.
type AccountState struct {
	Points           int
	WeeklyPoints     int
	Experience       int
	Level            int
	TotalTrips       int
	TotalDistanceKm  float64
	TotalTimeMinutes float64
	Premium          bool
}

// Settlement is the result of applying a completed trip to an account.
type Settlement struct {
	Account     AccountState
	Progression Progression
}

// SettleTrip applies a completed trip's deltas to the account: points and
// weekly points grow by pointsEarned, trip counters accumulate, and the
// progression engine folds the earned points into experience and level.
// Pure; callers run it inside their own transaction so the write is atomic.
func SettleTrip(acct AccountState, pointsEarned int, distanceKm, durationMinutes float64) Settlement {
	if pointsEarned < 0 {
		pointsEarned = 0
	}
	if distanceKm < 0 {
		distanceKm = 0
	}
	if durationMinutes < 0 {
		durationMinutes = 0
	}

	acct.Points += pointsEarned
	acct.WeeklyPoints += pointsEarned
	acct.TotalTrips++
	acct.TotalDistanceKm += distanceKm
	acct.TotalTimeMinutes += durationMinutes

	prog := ApplyPoints(acct.Experience, pointsEarned, acct.Premium)
	acct.Experience = prog.Experience
	acct.Level = prog.Level

	return Settlement{Account: acct, Progression: prog}
}
