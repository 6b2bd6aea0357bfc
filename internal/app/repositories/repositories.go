package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories is the container for all repository instances
type Repositories struct {
	UserRepository       *UserRepository
	StudentRepository    *StudentRepository
	EventRepository      *EventRepository
	AttendanceRepository *AttendanceRepository
}

// NewRepositories creates all repositories sharing one pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(db),
		StudentRepository:    NewStudentRepository(db),
		EventRepository:      NewEventRepository(db),
		AttendanceRepository: NewAttendanceRepository(db),
	}
}
