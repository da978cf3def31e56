package repository

import (
	"time"

	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type CertificateRepository struct {
	DB *gorm.DB
}

func NewCertificateRepository(db *gorm.DB) *CertificateRepository {
	return &CertificateRepository{DB: db}
}

func (r *CertificateRepository) Create(cert *model.Certificate) error {
	return r.DB.Create(cert).Error
}

func (r *CertificateRepository) FindByID(id uint) (*model.Certificate, error) {
	var cert model.Certificate
	if err := r.DB.First(&cert, id).Error; err != nil {
		return nil, err
	}
	return &cert, nil
}

func (r *CertificateRepository) Update(cert *model.Certificate) error {
	return r.DB.Save(cert).Error
}

func (r *CertificateRepository) ListByStudent(studentID uint) ([]model.Certificate, error) {
	var certs []model.Certificate
	err := r.DB.Where("student_id = ?", studentID).Order("issued_at DESC").Find(&certs).Error
	return certs, err
}

func (r *CertificateRepository) CountIssuedInRange(from, to time.Time) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Certificate{}).
		Where("issued_at BETWEEN ? AND ?", from, to).
		Count(&count).Error
	return count, err
}

func (r *CertificateRepository) CountByCourseIDs(courseIDs []uint) (int64, error) {
	if len(courseIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.DB.Model(&model.Certificate{}).
		Where("course_id IN ?", courseIDs).
		Count(&count).Error
	return count, err
}
