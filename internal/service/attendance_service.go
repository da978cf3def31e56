package service

import (
	"errors"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AttendanceService struct {
	SessionRepo    *repository.SessionRepository
	AttendanceRepo *repository.AttendanceRepository
	ActivityRepo   *repository.ActivityRepository
}

func NewAttendanceService(
	sessionRepo *repository.SessionRepository,
	attendanceRepo *repository.AttendanceRepository,
	activityRepo *repository.ActivityRepository,
) *AttendanceService {
	return &AttendanceService{
		SessionRepo:    sessionRepo,
		AttendanceRepo: attendanceRepo,
		ActivityRepo:   activityRepo,
	}
}

// JoinSession 学生进入课堂时自动记 PRESENT，重复进入覆盖为最新时间
func (s *AttendanceService) JoinSession(studentID, sessionID uint) (*model.SessionAttendance, error) {
	if _, err := s.SessionRepo.FindByID(sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSessionNotFound
		}
		return nil, err
	}

	now := time.Now()
	record := &model.SessionAttendance{
		SessionID: sessionID,
		StudentID: studentID,
		Status:    model.AttendancePresent,
		JoinedAt:  &now,
		MarkedBy:  model.MarkedAuto,
	}
	if err := s.AttendanceRepo.Upsert(record); err != nil {
		return nil, err
	}

	if err := s.ActivityRepo.Log(studentID, model.EventJoinClass, ""); err != nil {
		logger.Log.Warn("failed to log session join event", zap.Error(err))
	}
	return record, nil
}

// MarkAttendance 教师手工点名，覆盖该学生已有记录
func (s *AttendanceService) MarkAttendance(sessionID, studentID uint, status model.AttendanceStatus) (*model.SessionAttendance, error) {
	if _, err := s.SessionRepo.FindByID(sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrSessionNotFound
		}
		return nil, err
	}

	record := &model.SessionAttendance{
		SessionID: sessionID,
		StudentID: studentID,
		Status:    status,
		MarkedBy:  model.MarkedByTeacher,
	}
	if err := s.AttendanceRepo.Upsert(record); err != nil {
		return nil, err
	}
	return record, nil
}

type BatchAttendanceItem struct {
	StudentID uint                   `json:"studentId" binding:"required"`
	Status    model.AttendanceStatus `json:"status" binding:"required"`
}

// BatchMark 整堂课批量点名，事务内整体生效
func (s *AttendanceService) BatchMark(sessionID uint, items []BatchAttendanceItem) error {
	if _, err := s.SessionRepo.FindByID(sessionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrSessionNotFound
		}
		return err
	}

	records := make([]model.SessionAttendance, 0, len(items))
	for _, item := range items {
		records = append(records, model.SessionAttendance{
			SessionID: sessionID,
			StudentID: item.StudentID,
			Status:    item.Status,
			MarkedBy:  model.MarkedByTeacher,
		})
	}
	return s.AttendanceRepo.BatchUpsert(records)
}

func (s *AttendanceService) ListSessionAttendance(sessionID uint) ([]model.SessionAttendance, error) {
	return s.AttendanceRepo.ListBySession(sessionID)
}

func (s *AttendanceService) ListStudentAttendance(studentID uint) ([]model.SessionAttendance, error) {
	return s.AttendanceRepo.ListByStudent(studentID)
}
