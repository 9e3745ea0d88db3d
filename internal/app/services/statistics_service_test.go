package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexendevelopers/cbpd-admin-sub000/internal/app/models/dto"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/app/repositories"
)

func fixedNow() time.Time {
	return time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
}

func newStatisticsFixture(store *fakeStatisticsStore) StatisticsService {
	svc := NewStatisticsService(store).(*statisticsService)
	svc.now = fixedNow
	return svc
}

func TestStatisticsActivePercentageZeroWhenEmpty(t *testing.T) {
	store := &fakeStatisticsStore{}
	svc := newStatisticsFixture(store)

	stats, err := svc.GetStudentStatistics(context.Background(), dto.StatisticsFilter{})
	require.NoError(t, err)

	assert.Zero(t, stats.Overview.TotalStudents)
	assert.Zero(t, stats.Overview.ActivePercentage)
	assert.Zero(t, stats.Overview.MonthlyGrowthRate)
}

func TestStatisticsOverviewDerivedFields(t *testing.T) {
	store := &fakeStatisticsStore{
		overview: repositories.OverviewCounts{
			Total:            200,
			Active:           150,
			AverageAge:       21.44,
			TotalDepartments: 4,
			TotalCourses:     9,
			TotalStates:      3,
		},
	}
	svc := newStatisticsFixture(store)

	stats, err := svc.GetStudentStatistics(context.Background(), dto.StatisticsFilter{})
	require.NoError(t, err)

	assert.Equal(t, int64(200), stats.Overview.TotalStudents)
	assert.Equal(t, int64(150), stats.Overview.ActiveStudents)
	assert.Equal(t, int64(50), stats.Overview.DeactivatedStudents)
	assert.Equal(t, float64(75), stats.Overview.ActivePercentage)
	assert.Equal(t, 21.4, stats.Overview.AverageAge)
}

func TestStatisticsGrowthRateGuardedAgainstZeroLastMonth(t *testing.T) {
	store := &fakeStatisticsStore{
		overview: repositories.OverviewCounts{Total: 10, Active: 10},
		trends: []dto.MonthlyTrend{
			{Year: 2024, Month: 6, Count: 10, ActiveCount: 10},
		},
	}
	svc := newStatisticsFixture(store)

	stats, err := svc.GetStudentStatistics(context.Background(), dto.StatisticsFilter{})
	require.NoError(t, err)
	assert.Zero(t, stats.Overview.MonthlyGrowthRate)
}

func TestStatisticsGrowthRateComputedFromTrends(t *testing.T) {
	store := &fakeStatisticsStore{
		overview: repositories.OverviewCounts{Total: 30, Active: 30},
		trends: []dto.MonthlyTrend{
			{Year: 2024, Month: 5, Count: 20, ActiveCount: 20},
			{Year: 2024, Month: 6, Count: 25, ActiveCount: 25},
		},
	}
	svc := newStatisticsFixture(store)

	stats, err := svc.GetStudentStatistics(context.Background(), dto.StatisticsFilter{})
	require.NoError(t, err)
	assert.Equal(t, float64(25), stats.Overview.MonthlyGrowthRate)
}

func TestStatisticsGrowthRateOnMonthEndDay(t *testing.T) {
	store := &fakeStatisticsStore{
		overview: repositories.OverviewCounts{Total: 45, Active: 45},
		trends: []dto.MonthlyTrend{
			{Year: 2026, Month: 2, Count: 20, ActiveCount: 20},
			{Year: 2026, Month: 3, Count: 25, ActiveCount: 25},
		},
	}
	svc := NewStatisticsService(store).(*statisticsService)
	// March 31: February has no 31st, so naive date arithmetic would
	// land back in March and miss last month's counts
	svc.now = func() time.Time { return time.Date(2026, 3, 31, 10, 0, 0, 0, time.UTC) }

	stats, err := svc.GetStudentStatistics(context.Background(), dto.StatisticsFilter{})
	require.NoError(t, err)
	assert.Equal(t, float64(25), stats.Overview.MonthlyGrowthRate)
}

func TestStatisticsInstitutionRollupOnlyWhenUnscoped(t *testing.T) {
	store := &fakeStatisticsStore{
		overview: repositories.OverviewCounts{Total: 3, Active: 2},
		institutions: []dto.InstitutionStats{
			{InstitutionID: 1, OrgName: "A", Count: 3, ActiveCount: 2},
		},
	}
	svc := newStatisticsFixture(store)

	stats, err := svc.GetStudentStatistics(context.Background(), dto.StatisticsFilter{})
	require.NoError(t, err)
	require.Len(t, stats.Institutions, 1)
	assert.Equal(t, 66.67, stats.Institutions[0].ActivePercentage)
	assert.Equal(t, 1, store.institutionCalls)

	// Scoped to one institution: rollup suppressed entirely
	scoped := int64(1)
	stats, err = svc.GetStudentStatistics(context.Background(), dto.StatisticsFilter{InstitutionID: &scoped})
	require.NoError(t, err)
	assert.Nil(t, stats.Institutions)
	assert.Equal(t, 1, store.institutionCalls, "no rollup query when scoped")
}

func TestStatisticsIdempotentForUnchangedData(t *testing.T) {
	store := &fakeStatisticsStore{
		overview: repositories.OverviewCounts{Total: 100, Active: 90, AverageAge: 22},
		genders: []dto.GenderCount{
			{Gender: "Female", Count: 55},
			{Gender: "Male", Count: 45},
		},
		trends: []dto.MonthlyTrend{
			{Year: 2024, Month: 5, Count: 10, ActiveCount: 9},
			{Year: 2024, Month: 6, Count: 12, ActiveCount: 12},
		},
	}
	svc := newStatisticsFixture(store)

	first, err := svc.GetStudentStatistics(context.Background(), dto.StatisticsFilter{})
	require.NoError(t, err)
	second, err := svc.GetStudentStatistics(context.Background(), dto.StatisticsFilter{})
	require.NoError(t, err)

	assert.Equal(t, first, second)
}
