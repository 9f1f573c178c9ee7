package service

import (
	"context"
	"time"

	"fittrack/fitness-app/internal/domain"
	"fittrack/fitness-app/internal/repository"
)

// DayProgress is the training time logged on one weekday.
type DayProgress struct {
	Day   domain.Weekday `json:"day"`
	Hours float64        `json:"hours"`
}

// DashboardStats summarises a user's workout log.
type DashboardStats struct {
	TotalWorkouts  int           `json:"totalWorkouts"`
	CaloriesBurned int           `json:"caloriesBurned"`
	ActiveDays     int           `json:"activeDays"`
	WeeklyProgress []DayProgress `json:"weeklyProgress"` // Monday..Sunday of the current week
}

type DashboardService interface {
	GetDashboardStats(ctx context.Context) (*DashboardStats, error)
}

type dashboardService struct {
	logRepo repository.WorkoutLogRepository
	now     func() time.Time
}

// NewDashboardService creates a DashboardService. Calendar days are taken in
// the location of the times returned by now.
func NewDashboardService(logRepo repository.WorkoutLogRepository, now func() time.Time) DashboardService {
	if now == nil {
		now = time.Now
	}
	return &dashboardService{logRepo: logRepo, now: now}
}

func (s *dashboardService) GetDashboardStats(ctx context.Context) (*DashboardStats, error) {
	userID, err := currentUser(ctx)
	if err != nil {
		return nil, err
	}
	logs, err := s.logRepo.GetByUserID(ctx, userID, repository.WorkoutLogFilter{})
	if err != nil {
		return nil, &PersistenceError{Op: "dashboard_stats", Err: err}
	}

	now := s.now()
	loc := now.Location()
	weekStart := startOfWeek(now)
	weekEnd := weekStart.AddDate(0, 0, 7)

	stats := &DashboardStats{
		TotalWorkouts:  len(logs),
		WeeklyProgress: make([]DayProgress, len(domain.Weekdays)),
	}
	for i, d := range domain.Weekdays {
		stats.WeeklyProgress[i].Day = d
	}

	active := make(map[string]struct{})
	for _, l := range logs {
		stats.CaloriesBurned += l.CaloriesBurned
		at := l.CreatedAt.In(loc)
		active[at.Format(time.DateOnly)] = struct{}{}
		if !at.Before(weekStart) && at.Before(weekEnd) {
			stats.WeeklyProgress[(int(at.Weekday())+6)%7].Hours += l.DurationHours
		}
	}
	stats.ActiveDays = len(active)
	return stats, nil
}

// startOfWeek returns midnight of the Monday on or before t.
func startOfWeek(t time.Time) time.Time {
	y, m, d := t.Date()
	midnight := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return midnight.AddDate(0, 0, -((int(t.Weekday()) + 6) % 7))
}
