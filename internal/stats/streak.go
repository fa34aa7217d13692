package stats

import (
	"time"
)

// DayGap is the number of calendar days (UTC) between a and b, regardless of order.
// 23:59 and 00:01 of the following day are 1 day apart.
func DayGap(a, b time.Time) int {
	da := a.UTC().Truncate(24 * time.Hour)
	db := b.UTC().Truncate(24 * time.Hour)
	gap := int(db.Sub(da).Hours() / 24)
	if gap < 0 {
		return -gap
	}
	return gap
}

// AdvanceStreak computes the streak after a new submission made at next.
// previous is the time of the last submission before it, nil if there is none.
func AdvanceStreak(current int, previous *time.Time, next time.Time) int {
	if previous == nil {
		return 1
	}

	switch DayGap(*previous, next) {
	case 0:
		if current < 1 {
			return 1
		}
		return current
	case 1:
		return current + 1
	default:
		return 1
	}
}
