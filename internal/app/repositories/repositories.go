package repositories

import (
	"github.com/hexendevelopers/cbpd-admin-sub000/internal/db"
)

// Repositories bundles every repository for dependency injection
type Repositories struct {
	Student     *StudentRepository
	Institution *InstitutionRepository
	Statistics  *StatisticsRepository
}

// NewRepositories creates all repositories sharing one connection pool
func NewRepositories(database *db.PostgresDB) *Repositories {
	return &Repositories{
		Student:     NewStudentRepository(database),
		Institution: NewInstitutionRepository(database),
		Statistics:  NewStatisticsRepository(database),
	}
}
