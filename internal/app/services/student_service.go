package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/keiji0711/final-final/internal/app/models"
	"github.com/keiji0711/final-final/internal/app/repositories"
	"github.com/keiji0711/final-final/internal/pkg/apperrors"
	"github.com/keiji0711/final-final/internal/pkg/validation"
)

// StudentService manages the student roster
type StudentService struct {
	studentRepo *repositories.StudentRepository
}

// NewStudentService creates a new student service
func NewStudentService(studentRepo *repositories.StudentRepository) *StudentService {
	return &StudentService{studentRepo: studentRepo}
}

// CreateStudent registers a student. The USN doubles as the barcode value on
// the student's ID card, so it must be unique and numeric.
func (s *StudentService) CreateStudent(ctx context.Context, usn, name, course, contact string) (*models.Student, error) {
	usn = strings.TrimSpace(usn)
	name = strings.TrimSpace(name)
	if usn == "" || name == "" || course == "" {
		return nil, apperrors.ErrMissingFields
	}
	if !validation.IsValidUSN(usn) {
		return nil, apperrors.NewValidationError("USN must be a 5-16 digit number")
	}

	student := &models.Student{
		USN:     usn,
		Name:    name,
		Course:  course,
		Contact: contact,
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		if err == repositories.ErrUSNAlreadyExists {
			return nil, apperrors.ErrUSNAlreadyExists
		}
		return nil, fmt.Errorf("error creating student: %w", err)
	}

	return student, nil
}

// GetStudent returns a single student by USN.
func (s *StudentService) GetStudent(ctx context.Context, usn string) (*models.Student, error) {
	student, err := s.studentRepo.GetByUSN(ctx, usn)
	if err != nil {
		return nil, fmt.Errorf("error fetching student: %w", err)
	}
	if student == nil {
		return nil, apperrors.ErrStudentNotFound
	}
	return student, nil
}

// ListStudents returns the full roster ordered by name.
func (s *StudentService) ListStudents(ctx context.Context) ([]*models.Student, error) {
	students, err := s.studentRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	return students, nil
}

// UpdateStudent changes a student's details. The USN itself is immutable
// because attendance rows reference it.
func (s *StudentService) UpdateStudent(ctx context.Context, usn, name, course, contact string) (*models.Student, error) {
	name = strings.TrimSpace(name)
	if name == "" || course == "" {
		return nil, apperrors.ErrMissingFields
	}

	student := &models.Student{
		USN:     usn,
		Name:    name,
		Course:  course,
		Contact: contact,
	}

	if err := s.studentRepo.Update(ctx, student); err != nil {
		if err == repositories.ErrStudentNotFound {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error updating student: %w", err)
	}

	return student, nil
}

// DeleteStudent removes a student and, through the schema cascade, all of
// the student's attendance rows.
func (s *StudentService) DeleteStudent(ctx context.Context, usn string) error {
	if err := s.studentRepo.Delete(ctx, usn); err != nil {
		if err == repositories.ErrStudentNotFound {
			return apperrors.ErrStudentNotFound
		}
		return fmt.Errorf("error deleting student: %w", err)
	}
	return nil
}
