package services

import (
	"context"
	"math"
	"time"

	"github.com/hexendevelopers/cbpd-admin-sub000/internal/app/models/dto"
)

type statisticsService struct {
	stats StatisticsStore

	// now is swappable in tests
	now func() time.Time
}

// NewStatisticsService creates the statistics aggregation service
func NewStatisticsService(stats StatisticsStore) StatisticsService {
	return &statisticsService{stats: stats, now: time.Now}
}

// GetStudentStatistics assembles the full nested statistics payload. All
// sub-aggregations are independent; the only derived figure is the
// month-over-month growth rate computed from the trend series.
func (s *statisticsService) GetStudentStatistics(ctx context.Context, filter dto.StatisticsFilter) (*dto.StudentStatistics, error) {
	overview, err := s.stats.Overview(ctx, filter)
	if err != nil {
		return nil, err
	}

	result := &dto.StudentStatistics{}
	result.Overview = dto.StatisticsOverview{
		TotalStudents:       overview.Total,
		ActiveStudents:      overview.Active,
		DeactivatedStudents: overview.Total - overview.Active,
		ActivePercentage:    guardedPercentage(overview.Active, overview.Total),
		AverageAge:          roundTo(overview.AverageAge, 1),
		TotalDepartments:    overview.TotalDepartments,
		TotalCourses:        overview.TotalCourses,
		TotalStates:         overview.TotalStates,
	}

	if result.Demographics.ByGender, err = s.stats.GenderCounts(ctx, filter); err != nil {
		return nil, err
	}
	if result.Demographics.ByAgeBucket, err = s.stats.AgeBucketCounts(ctx, filter); err != nil {
		return nil, err
	}
	if result.Academic.ByDepartment, err = s.stats.DepartmentStats(ctx, filter); err != nil {
		return nil, err
	}
	if result.Academic.ByCourse, err = s.stats.CourseStats(ctx, filter); err != nil {
		return nil, err
	}
	if result.Academic.BySemester, err = s.stats.SemesterStats(ctx, filter); err != nil {
		return nil, err
	}
	if result.Geographic.ByState, err = s.stats.StateStats(ctx, filter); err != nil {
		return nil, err
	}

	// Institution rollup only makes sense when not already scoped to one
	if filter.InstitutionID == nil {
		institutions, err := s.stats.InstitutionStats(ctx, filter)
		if err != nil {
			return nil, err
		}
		for i := range institutions {
			if institutions[i].Count > 0 {
				institutions[i].ActivePercentage = roundTo(
					float64(institutions[i].ActiveCount)/float64(institutions[i].Count)*100, 2)
			}
		}
		result.Institutions = institutions
	}

	trends, err := s.stats.MonthlyTrends(ctx, filter)
	if err != nil {
		return nil, err
	}
	result.Trends = trends

	result.Overview.MonthlyGrowthRate = s.growthRate(trends)

	return result, nil
}

// growthRate computes the month-over-month registration growth from the
// trend series. Zero registrations last month yields 0, not a division
// error. The previous month is derived from the first of the current month;
// AddDate on a month-end date would normalize forward and land in the
// current month again.
func (s *statisticsService) growthRate(trends []dto.MonthlyTrend) float64 {
	now := s.now()
	currentYear, currentMonth := now.Year(), int(now.Month())
	last := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -1, 0)
	lastYear, lastMonth := last.Year(), int(last.Month())

	var currentCount, lastCount int64
	for _, t := range trends {
		switch {
		case t.Year == currentYear && t.Month == currentMonth:
			currentCount = t.Count
		case t.Year == lastYear && t.Month == lastMonth:
			lastCount = t.Count
		}
	}

	if lastCount == 0 {
		return 0
	}
	return math.Round(float64(currentCount-lastCount) / float64(lastCount) * 100)
}

// guardedPercentage rounds active/total to a whole percentage, 0 when the
// total is 0
func guardedPercentage(part, total int64) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part) / float64(total) * 100)
}

func roundTo(value float64, decimals int) float64 {
	factor := math.Pow(10, float64(decimals))
	return math.Round(value*factor) / factor
}
