package model

// DateLayout is the calendar-day format used as ledger key.
const DateLayout = "2006-01-02"

type DailyProgress struct {
	Date      string `json:"date"`
	PagesRead int    `json:"pagesRead"`
}

// GoalProgress is the per-goal ledger of pages read per calendar day.
// DailyProgress keeps insertion order and holds at most one entry per date.
type GoalProgress struct {
	GoalID        string          `json:"goalId"`
	DailyProgress []DailyProgress `json:"dailyProgress"`
}

// Day returns the entry for date, or nil.
func (p *GoalProgress) Day(date string) *DailyProgress {
	for i := range p.DailyProgress {
		if p.DailyProgress[i].Date == date {
			return &p.DailyProgress[i]
		}
	}
	return nil
}

type ProgressStats struct {
	Target     int     `json:"target"`
	Current    int     `json:"current"`
	Percentage float64 `json:"percentage"`
}
