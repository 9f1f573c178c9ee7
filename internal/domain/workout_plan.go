package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Privacy controls who can read a workout plan.
type Privacy string

const (
	PrivacyPrivate Privacy = "Private"
	PrivacyPublic  Privacy = "Public"
)

// Valid reports whether p is one of the known privacy values.
func (p Privacy) Valid() bool {
	return p == PrivacyPrivate || p == PrivacyPublic
}

// Weekday is one of the seven day labels used as keys in a plan's schedule.
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

// Weekdays lists the canonical labels in calendar order, Monday first.
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// Valid reports whether d is a canonical weekday label. Matching is exact.
func (d Weekday) Valid() bool {
	for _, w := range Weekdays {
		if d == w {
			return true
		}
	}
	return false
}

// WeekdayOf maps a time.Time onto the plan's weekday labels.
func WeekdayOf(t time.Time) Weekday {
	// time.Weekday starts the week on Sunday.
	return Weekdays[(int(t.Weekday())+6)%7]
}

// DaySchedule maps a scheduled day to its ordered exercise names.
// A missing key means the day is not part of the plan; a present key with
// an empty slice means scheduled with no exercises yet.
type DaySchedule map[Weekday][]string

// NewWeekSchedule returns a schedule with all seven days present and empty.
func NewWeekSchedule() DaySchedule {
	days := make(DaySchedule, len(Weekdays))
	for _, d := range Weekdays {
		days[d] = []string{}
	}
	return days
}

// Clone returns a deep copy so derived schedules never share backing arrays
// with the original.
func (s DaySchedule) Clone() DaySchedule {
	out := make(DaySchedule, len(s))
	for day, exercises := range s {
		cp := make([]string, len(exercises))
		copy(cp, exercises)
		out[day] = cp
	}
	return out
}

// WithExercise returns a new schedule with exercise appended to day,
// creating the day if it was absent. s is left untouched.
func (s DaySchedule) WithExercise(day Weekday, exercise string) DaySchedule {
	out := s.Clone()
	out[day] = append(out[day], exercise)
	return out
}

// WithoutDay returns a new schedule with day removed entirely.
func (s DaySchedule) WithoutDay(day Weekday) DaySchedule {
	out := s.Clone()
	delete(out, day)
	return out
}

// Has reports whether day is scheduled.
func (s DaySchedule) Has(day Weekday) bool {
	_, ok := s[day]
	return ok
}

// ScheduledDays returns the present keys in calendar order.
func (s DaySchedule) ScheduledDays() []Weekday {
	days := make([]Weekday, 0, len(s))
	for _, d := range Weekdays {
		if s.Has(d) {
			days = append(days, d)
		}
	}
	return days
}

// WorkoutPlan is a weekly schedule of exercises owned by a single user.
type WorkoutPlan struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID   primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	Name      string             `bson:"name" json:"name"`
	Privacy   Privacy            `bson:"privacy" json:"privacy"`
	Days      DaySchedule        `bson:"days" json:"days"`
	Revision  int64              `bson:"revision" json:"revision"` // Bumped on every write; stale writers get a conflict
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// IsPublic reports whether the plan is shared with other users.
func (p *WorkoutPlan) IsPublic() bool {
	return p.Privacy == PrivacyPublic
}

// OwnedBy reports whether userID created the plan.
func (p *WorkoutPlan) OwnedBy(userID primitive.ObjectID) bool {
	return p.OwnerID == userID
}
