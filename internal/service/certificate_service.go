package service

import (
	"errors"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

// CertificateService 证书的人工签发与吊销。证书与成绩记录互不关联，
// 不会因成绩达标而自动生成。
type CertificateService struct {
	CertRepo    *repository.CertificateRepository
	UserRepo    *repository.UserRepository
	CourseRepo  *repository.CourseRepository
	ProgramRepo *repository.ProgramRepository
}

func NewCertificateService(
	certRepo *repository.CertificateRepository,
	userRepo *repository.UserRepository,
	courseRepo *repository.CourseRepository,
	programRepo *repository.ProgramRepository,
) *CertificateService {
	return &CertificateService{
		CertRepo:    certRepo,
		UserRepo:    userRepo,
		CourseRepo:  courseRepo,
		ProgramRepo: programRepo,
	}
}

type CertificateIssueRequest struct {
	StudentID uint  `json:"studentId" binding:"required"`
	CourseID  *uint `json:"courseId"`
	ProgramID *uint `json:"programId"`
}

func (s *CertificateService) Issue(issuerID uint, req CertificateIssueRequest) (*model.Certificate, error) {
	if req.CourseID == nil && req.ProgramID == nil {
		return nil, errors.New("courseId or programId required")
	}
	if _, err := s.UserRepo.FindByID(req.StudentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrUserNotFound
		}
		return nil, err
	}
	if req.CourseID != nil {
		if _, err := s.CourseRepo.FindByID(*req.CourseID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrCourseNotFound
			}
			return nil, err
		}
	}
	if req.ProgramID != nil {
		if _, err := s.ProgramRepo.FindByID(*req.ProgramID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrProgramNotFound
			}
			return nil, err
		}
	}

	cert := &model.Certificate{
		StudentID:    req.StudentID,
		CourseID:     req.CourseID,
		ProgramID:    req.ProgramID,
		SerialNumber: model.GenerateUUID(),
		Status:       model.CertificateActive,
		IssuedBy:     issuerID,
		IssuedAt:     time.Now(),
	}
	if err := s.CertRepo.Create(cert); err != nil {
		return nil, err
	}
	return cert, nil
}

func (s *CertificateService) Revoke(certID uint) (*model.Certificate, error) {
	cert, err := s.CertRepo.FindByID(certID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCertificateNotFound
		}
		return nil, err
	}

	now := time.Now()
	cert.Status = model.CertificateRevoked
	cert.RevokedAt = &now
	if err := s.CertRepo.Update(cert); err != nil {
		return nil, err
	}
	return cert, nil
}

func (s *CertificateService) ListByStudent(studentID uint) ([]model.Certificate, error) {
	return s.CertRepo.ListByStudent(studentID)
}
