package validators

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var clockPattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// Clock is a time of day in minutes resolution.
type Clock struct {
	Hour   int
	Minute int
}

// ParseClock parses a 24-hour HH:MM string.
func ParseClock(s string) (Clock, error) {
	if !clockPattern.MatchString(s) {
		return Clock{}, fmt.Errorf("invalid time of day %q", s)
	}
	t, err := time.Parse("15:04", s)
	if err != nil {
		return Clock{}, err
	}
	return Clock{Hour: t.Hour(), Minute: t.Minute()}, nil
}

func (c Clock) minutes() int {
	return c.Hour*60 + c.Minute
}

// Kitchen renders the clock as e.g. "10:30 AM".
func (c Clock) Kitchen() string {
	return time.Date(2000, 1, 1, c.Hour, c.Minute, 0, 0, time.UTC).Format("3:04 PM")
}

// Schedule describes when the restaurant accepts reservations. Bookings are
// taken between Opens and LastSeating inclusive; Closes is only used in the
// message shown when a booking is too late.
type Schedule struct {
	Location    *time.Location
	Opens       Clock
	LastSeating Clock
	Closes      Clock
	ClosedDays  []time.Weekday
}

func DefaultSchedule() Schedule {
	return Schedule{
		Location:    time.Local,
		Opens:       Clock{Hour: 10, Minute: 30},
		LastSeating: Clock{Hour: 21, Minute: 30},
		Closes:      Clock{Hour: 22, Minute: 30},
		ClosedDays:  []time.Weekday{time.Tuesday},
	}
}

func (s Schedule) location() *time.Location {
	if s.Location == nil {
		return time.Local
	}
	return s.Location
}

// At combines a YYYY-MM-DD date and HH:MM time in the restaurant's zone.
func (s Schedule) At(date, clock string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02 15:04", date+" "+clock, s.location())
}

func (s Schedule) closedOn(day time.Weekday) bool {
	for _, d := range s.ClosedDays {
		if d == day {
			return true
		}
	}
	return false
}

// Check returns every scheduling problem with a booking at the given moment.
func (s Schedule) Check(at, now time.Time) []string {
	var problems []string
	at = at.In(s.location())
	now = now.In(s.location())
	clock := Clock{Hour: at.Hour(), Minute: at.Minute()}

	if clock.minutes() < s.Opens.minutes() {
		problems = append(problems, fmt.Sprintf(
			"The restaurant opens at %s. Please pick a time during when the restaurant will be open", s.Opens.Kitchen()))
	}
	if clock.minutes() > s.LastSeating.minutes() {
		problems = append(problems, fmt.Sprintf(
			"The restaurant closes at %s. The reservation time is too close to the restaurant closing time.", s.Closes.Kitchen()))
	}
	if at.Before(now) {
		unit := "date"
		if at.Format("2006-01-02") == now.Format("2006-01-02") {
			unit = "time"
		}
		problems = append(problems, fmt.Sprintf("The reservation %s is in the past. Please pick a %s in the future", unit, unit))
	}
	if s.closedOn(at.Weekday()) {
		problems = append(problems, fmt.Sprintf("The restaurant is closed on %ss", at.Weekday()))
	}
	return problems
}

// ParseWeekdays reads a comma separated list such as "tuesday,sun".
func ParseWeekdays(list string) ([]time.Weekday, error) {
	var days []time.Weekday
	for _, part := range strings.Split(list, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		day, ok := weekdayByName(name)
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", part)
		}
		days = append(days, day)
	}
	return days, nil
}

func weekdayByName(name string) (time.Weekday, bool) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		full := strings.ToLower(d.String())
		if name == full || name == full[:3] {
			return d, true
		}
	}
	return 0, false
}
