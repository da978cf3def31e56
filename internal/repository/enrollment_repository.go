package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type EnrollmentRepository struct {
	DB *gorm.DB
}

func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{DB: db}
}

func (r *EnrollmentRepository) Create(enrollment *model.Enrollment) error {
	return r.DB.Create(enrollment).Error
}

func (r *EnrollmentRepository) Find(studentID, courseID uint) (*model.Enrollment, error) {
	var enrollment model.Enrollment
	err := r.DB.Where("student_id = ? AND course_id = ?", studentID, courseID).
		First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *EnrollmentRepository) Delete(studentID, courseID uint) error {
	return r.DB.Where("student_id = ? AND course_id = ?", studentID, courseID).
		Delete(&model.Enrollment{}).Error
}

func (r *EnrollmentRepository) ListByStudent(studentID uint) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.DB.Where("student_id = ?", studentID).Find(&enrollments).Error
	return enrollments, err
}

func (r *EnrollmentRepository) ListByCourse(courseID uint) ([]model.Enrollment, error) {
	var enrollments []model.Enrollment
	err := r.DB.Where("course_id = ?", courseID).Find(&enrollments).Error
	return enrollments, err
}

func (r *EnrollmentRepository) CountByCourse(courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Enrollment{}).Where("course_id = ?", courseID).Count(&count).Error
	return count, err
}

type ProgramEnrollmentRepository struct {
	DB *gorm.DB
}

func NewProgramEnrollmentRepository(db *gorm.DB) *ProgramEnrollmentRepository {
	return &ProgramEnrollmentRepository{DB: db}
}

func (r *ProgramEnrollmentRepository) Create(enrollment *model.ProgramEnrollment) error {
	return r.DB.Create(enrollment).Error
}

func (r *ProgramEnrollmentRepository) Find(studentID, programID uint) (*model.ProgramEnrollment, error) {
	var enrollment model.ProgramEnrollment
	err := r.DB.Where("student_id = ? AND program_id = ?", studentID, programID).
		First(&enrollment).Error
	if err != nil {
		return nil, err
	}
	return &enrollment, nil
}

func (r *ProgramEnrollmentRepository) ListByStudent(studentID uint) ([]model.ProgramEnrollment, error) {
	var enrollments []model.ProgramEnrollment
	err := r.DB.Where("student_id = ?", studentID).Find(&enrollments).Error
	return enrollments, err
}
