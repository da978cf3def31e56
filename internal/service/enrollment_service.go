package service

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type EnrollmentService struct {
	EnrollmentRepo *repository.EnrollmentRepository
	ProgramEnrRepo *repository.ProgramEnrollmentRepository
	CourseRepo     *repository.CourseRepository
	ProgramRepo    *repository.ProgramRepository
	ActivityRepo   *repository.ActivityRepository
}

func NewEnrollmentService(
	enrollmentRepo *repository.EnrollmentRepository,
	programEnrRepo *repository.ProgramEnrollmentRepository,
	courseRepo *repository.CourseRepository,
	programRepo *repository.ProgramRepository,
	activityRepo *repository.ActivityRepository,
) *EnrollmentService {
	return &EnrollmentService{
		EnrollmentRepo: enrollmentRepo,
		ProgramEnrRepo: programEnrRepo,
		CourseRepo:     courseRepo,
		ProgramRepo:    programRepo,
		ActivityRepo:   activityRepo,
	}
}

func (s *EnrollmentService) Enroll(studentID, courseID uint) (*model.Enrollment, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	if _, err := s.EnrollmentRepo.Find(studentID, courseID); err == nil {
		return nil, util.ErrAlreadyEnrolled
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	enrollment := &model.Enrollment{
		StudentID: studentID,
		CourseID:  courseID,
		Status:    "active",
	}
	if err := s.EnrollmentRepo.Create(enrollment); err != nil {
		return nil, err
	}

	if err := s.ActivityRepo.Log(studentID, model.EventEnroll, course.Title); err != nil {
		logger.Log.Warn("failed to log enrollment event", zap.Error(err))
	}
	return enrollment, nil
}

func (s *EnrollmentService) Unenroll(studentID, courseID uint) error {
	if _, err := s.EnrollmentRepo.Find(studentID, courseID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrEnrollmentNotFound
		}
		return err
	}
	return s.EnrollmentRepo.Delete(studentID, courseID)
}

func (s *EnrollmentService) EnrollProgram(studentID, programID uint) (*model.ProgramEnrollment, error) {
	if _, err := s.ProgramRepo.FindByID(programID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProgramNotFound
		}
		return nil, err
	}

	if _, err := s.ProgramEnrRepo.Find(studentID, programID); err == nil {
		return nil, util.ErrAlreadyEnrolled
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	enrollment := &model.ProgramEnrollment{
		StudentID: studentID,
		ProgramID: programID,
		Status:    "active",
	}
	if err := s.ProgramEnrRepo.Create(enrollment); err != nil {
		return nil, err
	}
	return enrollment, nil
}

func (s *EnrollmentService) ListStudentEnrollments(studentID uint) ([]model.Enrollment, error) {
	return s.EnrollmentRepo.ListByStudent(studentID)
}

func (s *EnrollmentService) ListCourseEnrollments(courseID uint) ([]model.Enrollment, error) {
	return s.EnrollmentRepo.ListByCourse(courseID)
}
