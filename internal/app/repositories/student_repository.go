package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/keiji0711/final-final/internal/app/models"
	"github.com/keiji0711/final-final/internal/pkg/dberrors"
)

// Student repository error types
var (
	ErrStudentNotFound  = errors.New("student not found")
	ErrUSNAlreadyExists = errors.New("student USN already exists")
)

// StudentRepository handles database operations for the roster
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
	}
}

// Create inserts a new roster entry
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (usn, name, course, contact)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.db.Exec(ctx, query, student.USN, student.Name, student.Course, student.Contact)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_pkey") {
			return ErrUSNAlreadyExists
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

// GetByUSN retrieves a student by USN, nil when absent
func (r *StudentRepository) GetByUSN(ctx context.Context, usn string) (*models.Student, error) {
	query := `
		SELECT usn, name, course, contact
		FROM students
		WHERE usn = $1
	`

	var student models.Student
	err := r.db.QueryRow(ctx, query, usn).Scan(
		&student.USN,
		&student.Name,
		&student.Course,
		&student.Contact,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return &student, nil
}

// GetAll retrieves the full roster ordered by name
func (r *StudentRepository) GetAll(ctx context.Context) ([]*models.Student, error) {
	query := `
		SELECT usn, name, course, contact
		FROM students
		ORDER BY name ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		var student models.Student
		if err := rows.Scan(
			&student.USN,
			&student.Name,
			&student.Course,
			&student.Contact,
		); err != nil {
			return nil, err
		}
		students = append(students, &student)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// Count returns the roster size
func (r *StudentRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM students`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting students: %w", err)
	}

	return count, nil
}

// Update updates a roster entry; the USN itself never changes
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students
		SET name = $2, course = $3, contact = $4
		WHERE usn = $1
	`

	cmdTag, err := r.db.Exec(ctx, query, student.USN, student.Name, student.Course, student.Contact)
	if err != nil {
		return fmt.Errorf("error updating student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrStudentNotFound
	}

	return nil
}

// Delete removes a roster entry; ledger rows cascade at the schema level
func (r *StudentRepository) Delete(ctx context.Context, usn string) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM students WHERE usn = $1`, usn)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrStudentNotFound
	}

	return nil
}
