package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"

	"github.com/hexendevelopers/cbpd-admin-sub000/internal/app/models/dto"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/db"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/pkg/logger"
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/pkg/validation"
)

// ageYearsExpr computes whole-year age from date_of_birth using 365.25-day
// years (31557600 seconds), matching the in-process bucketing function
const ageYearsExpr = "FLOOR(EXTRACT(EPOCH FROM (NOW() - s.date_of_birth)) / 31557600)"

const topGroupLimit = 10

// StatisticsRepository runs the aggregate queries behind student statistics
type StatisticsRepository struct {
	db *db.PostgresDB
	sb squirrel.StatementBuilderType
}

// NewStatisticsRepository creates a new StatisticsRepository
func NewStatisticsRepository(database *db.PostgresDB) *StatisticsRepository {
	return &StatisticsRepository{
		db: database,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func statisticsConditions(filter dto.StatisticsFilter) squirrel.And {
	where := squirrel.And{}
	if filter.InstitutionID != nil {
		where = append(where, squirrel.Eq{"s.institution_id": *filter.InstitutionID})
	}
	if filter.RegisteredFrom != nil {
		where = append(where, squirrel.GtOrEq{"s.created_at": *filter.RegisteredFrom})
	}
	if filter.RegisteredTo != nil {
		where = append(where, squirrel.LtOrEq{"s.created_at": *filter.RegisteredTo})
	}
	return where
}

// OverviewCounts holds the raw numbers behind the statistics overview
type OverviewCounts struct {
	Total            int64
	Active           int64
	AverageAge       float64
	TotalDepartments int64
	TotalCourses     int64
	TotalStates      int64
}

// Overview computes headline counts, average age and distinct-dimension
// counts in one scan
func (r *StatisticsRepository) Overview(ctx context.Context, filter dto.StatisticsFilter) (*OverviewCounts, error) {
	query, args, err := r.sb.Select(
		"COUNT(*)",
		"COUNT(*) FILTER (WHERE s.status = 'ACTIVE')",
		"COALESCE(AVG("+ageYearsExpr+"), 0)",
		"COUNT(DISTINCT s.department)",
		"COUNT(DISTINCT s.current_course)",
		"COUNT(DISTINCT s.state)").
		From("students s").
		Where(statisticsConditions(filter)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build overview query: %w", err)
	}

	var o OverviewCounts
	err = r.db.Pool.QueryRow(ctx, query, args...).Scan(
		&o.Total, &o.Active, &o.AverageAge,
		&o.TotalDepartments, &o.TotalCourses, &o.TotalStates)
	if err != nil {
		logger.Error().Err(err).Msg("Error computing statistics overview")
		return nil, fmt.Errorf("failed to compute overview: %w", err)
	}

	return &o, nil
}

// GenderCounts groups students by gender
func (r *StatisticsRepository) GenderCounts(ctx context.Context, filter dto.StatisticsFilter) ([]dto.GenderCount, error) {
	query, args, err := r.sb.Select("s.gender", "COUNT(*)").
		From("students s").
		Where(statisticsConditions(filter)).
		GroupBy("s.gender").
		OrderBy("COUNT(*) DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build gender query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error computing gender distribution")
		return nil, fmt.Errorf("failed to compute gender distribution: %w", err)
	}
	defer rows.Close()

	var result []dto.GenderCount
	for rows.Next() {
		var g dto.GenderCount
		if err := rows.Scan(&g.Gender, &g.Count); err != nil {
			return nil, fmt.Errorf("failed to scan gender row: %w", err)
		}
		result = append(result, g)
	}
	return result, rows.Err()
}

// ageBucketCaseExpr builds the CASE expression grouping ages into the shared
// bucket set, so SQL and in-process bucketing always agree
func ageBucketCaseExpr() string {
	var b strings.Builder
	b.WriteString("CASE ")
	for _, r := range validation.AgeBucketRanges {
		if r.MaxAge < 0 {
			fmt.Fprintf(&b, "WHEN %s >= %d THEN '%s' ", ageYearsExpr, r.MinAge, r.Label)
		} else {
			fmt.Fprintf(&b, "WHEN %s BETWEEN %d AND %d THEN '%s' ", ageYearsExpr, r.MinAge, r.MaxAge, r.Label)
		}
	}
	b.WriteString("END")
	return b.String()
}

// AgeBucketCounts groups students by derived age bucket, returned in bucket
// display order
func (r *StatisticsRepository) AgeBucketCounts(ctx context.Context, filter dto.StatisticsFilter) ([]dto.AgeBucketCount, error) {
	bucketExpr := ageBucketCaseExpr()

	query, args, err := r.sb.Select(bucketExpr+" AS bucket", "COUNT(*)").
		From("students s").
		Where(statisticsConditions(filter)).
		GroupBy("bucket").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build age bucket query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error computing age distribution")
		return nil, fmt.Errorf("failed to compute age distribution: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var bucket string
		var count int64
		if err := rows.Scan(&bucket, &count); err != nil {
			return nil, fmt.Errorf("failed to scan age bucket row: %w", err)
		}
		counts[bucket] = count
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Emit buckets in display order, keeping only non-empty ones
	var result []dto.AgeBucketCount
	for _, br := range validation.AgeBucketRanges {
		if count, ok := counts[br.Label]; ok {
			result = append(result, dto.AgeBucketCount{Bucket: br.Label, Count: count})
		}
	}
	return result, nil
}

// DepartmentStats groups students by department with status and gender
// splits, top 10 by count
func (r *StatisticsRepository) DepartmentStats(ctx context.Context, filter dto.StatisticsFilter) ([]dto.DepartmentStats, error) {
	query, args, err := r.sb.Select(
		"s.department",
		"COUNT(*)",
		"COUNT(*) FILTER (WHERE s.status = 'ACTIVE')",
		"COUNT(*) FILTER (WHERE s.gender = 'Male')",
		"COUNT(*) FILTER (WHERE s.gender = 'Female')").
		From("students s").
		Where(statisticsConditions(filter)).
		GroupBy("s.department").
		OrderBy("COUNT(*) DESC").
		Limit(topGroupLimit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build department query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error computing department distribution")
		return nil, fmt.Errorf("failed to compute department distribution: %w", err)
	}
	defer rows.Close()

	var result []dto.DepartmentStats
	for rows.Next() {
		var d dto.DepartmentStats
		if err := rows.Scan(&d.Department, &d.Count, &d.ActiveCount, &d.MaleCount, &d.FemaleCount); err != nil {
			return nil, fmt.Errorf("failed to scan department row: %w", err)
		}
		result = append(result, d)
	}
	return result, rows.Err()
}

// CourseStats groups students by course with the set of departments touching
// each course, top 10 by count
func (r *StatisticsRepository) CourseStats(ctx context.Context, filter dto.StatisticsFilter) ([]dto.CourseStats, error) {
	query, args, err := r.sb.Select(
		"s.current_course",
		"COUNT(*)",
		"ARRAY_AGG(DISTINCT s.department)").
		From("students s").
		Where(statisticsConditions(filter)).
		GroupBy("s.current_course").
		OrderBy("COUNT(*) DESC").
		Limit(topGroupLimit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build course query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error computing course distribution")
		return nil, fmt.Errorf("failed to compute course distribution: %w", err)
	}
	defer rows.Close()

	var result []dto.CourseStats
	for rows.Next() {
		var c dto.CourseStats
		if err := rows.Scan(&c.Course, &c.Count, &c.Departments); err != nil {
			return nil, fmt.Errorf("failed to scan course row: %w", err)
		}
		result = append(result, c)
	}
	return result, rows.Err()
}

// SemesterStats groups students by semester, sorted ascending
func (r *StatisticsRepository) SemesterStats(ctx context.Context, filter dto.StatisticsFilter) ([]dto.SemesterStats, error) {
	query, args, err := r.sb.Select(
		"s.semester",
		"COUNT(*)",
		"COUNT(*) FILTER (WHERE s.status = 'ACTIVE')").
		From("students s").
		Where(statisticsConditions(filter)).
		GroupBy("s.semester").
		OrderBy("s.semester ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build semester query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error computing semester distribution")
		return nil, fmt.Errorf("failed to compute semester distribution: %w", err)
	}
	defer rows.Close()

	var result []dto.SemesterStats
	for rows.Next() {
		var s dto.SemesterStats
		if err := rows.Scan(&s.Semester, &s.Count, &s.ActiveCount); err != nil {
			return nil, fmt.Errorf("failed to scan semester row: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// StateStats groups students by state with distinct districts, top 10 by
// count
func (r *StatisticsRepository) StateStats(ctx context.Context, filter dto.StatisticsFilter) ([]dto.StateStats, error) {
	query, args, err := r.sb.Select(
		"s.state",
		"COUNT(*)",
		"ARRAY_AGG(DISTINCT s.district)").
		From("students s").
		Where(statisticsConditions(filter)).
		GroupBy("s.state").
		OrderBy("COUNT(*) DESC").
		Limit(topGroupLimit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build state query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error computing state distribution")
		return nil, fmt.Errorf("failed to compute state distribution: %w", err)
	}
	defer rows.Close()

	var result []dto.StateStats
	for rows.Next() {
		var s dto.StateStats
		if err := rows.Scan(&s.State, &s.Count, &s.Districts); err != nil {
			return nil, fmt.Errorf("failed to scan state row: %w", err)
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// InstitutionStats rolls counts up per institution, sorted descending by
// count. Only meaningful when the filter is not institution-scoped.
// Institutions with no students matching the filter are omitted from the
// rollup; GET /institutions is the listing that covers every account.
func (r *StatisticsRepository) InstitutionStats(ctx context.Context, filter dto.StatisticsFilter) ([]dto.InstitutionStats, error) {
	query, args, err := r.sb.Select(
		"i.id",
		"i.org_name",
		"COUNT(s.id)",
		"COUNT(s.id) FILTER (WHERE s.status = 'ACTIVE')").
		From("students s").
		Join("institutions i ON s.institution_id = i.id").
		Where(statisticsConditions(filter)).
		GroupBy("i.id", "i.org_name").
		OrderBy("COUNT(s.id) DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build institution rollup query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error computing institution rollup")
		return nil, fmt.Errorf("failed to compute institution rollup: %w", err)
	}
	defer rows.Close()

	var result []dto.InstitutionStats
	for rows.Next() {
		var i dto.InstitutionStats
		if err := rows.Scan(&i.InstitutionID, &i.OrgName, &i.Count, &i.ActiveCount); err != nil {
			return nil, fmt.Errorf("failed to scan institution rollup row: %w", err)
		}
		result = append(result, i)
	}
	return result, rows.Err()
}

// MonthlyTrends returns registration counts for the trailing 12 months
// grouped by (year, month), ascending chronological order. Months without
// registrations are absent from the result.
func (r *StatisticsRepository) MonthlyTrends(ctx context.Context, filter dto.StatisticsFilter) ([]dto.MonthlyTrend, error) {
	where := statisticsConditions(filter)
	where = append(where, squirrel.Expr("s.created_at >= DATE_TRUNC('month', NOW()) - INTERVAL '11 months'"))

	query, args, err := r.sb.Select(
		"EXTRACT(YEAR FROM s.created_at)::int",
		"EXTRACT(MONTH FROM s.created_at)::int",
		"COUNT(*)",
		"COUNT(*) FILTER (WHERE s.status = 'ACTIVE')").
		From("students s").
		Where(where).
		GroupBy("1", "2").
		OrderBy("1 ASC", "2 ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build trends query: %w", err)
	}

	rows, err := r.db.Pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error computing monthly trends")
		return nil, fmt.Errorf("failed to compute monthly trends: %w", err)
	}
	defer rows.Close()

	var result []dto.MonthlyTrend
	for rows.Next() {
		var t dto.MonthlyTrend
		if err := rows.Scan(&t.Year, &t.Month, &t.Count, &t.ActiveCount); err != nil {
			return nil, fmt.Errorf("failed to scan trend row: %w", err)
		}
		result = append(result, t)
	}
	return result, rows.Err()
}
