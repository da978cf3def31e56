package repository

import (
	"time"

	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type SessionRepository struct {
	DB *gorm.DB
}

func NewSessionRepository(db *gorm.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) Create(session *model.ScheduledSession) error {
	return r.DB.Create(session).Error
}

func (r *SessionRepository) FindByID(id uint) (*model.ScheduledSession, error) {
	var session model.ScheduledSession
	if err := r.DB.First(&session, id).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

func (r *SessionRepository) ListByCourse(courseID uint) ([]model.ScheduledSession, error) {
	var sessions []model.ScheduledSession
	err := r.DB.Where("course_id = ?", courseID).Order("date ASC").Find(&sessions).Error
	return sessions, err
}

// CountPastClassSessions 统计某课程截止 now 已经发生过的 CLASS 类型课次
func (r *SessionRepository) CountPastClassSessions(courseID uint, now time.Time) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ScheduledSession{}).
		Where("course_id = ? AND type = ? AND date <= ?", courseID, model.SessionClass, now).
		Count(&count).Error
	return count, err
}

func (r *SessionRepository) CountByCourseIDs(courseIDs []uint) (int64, error) {
	if len(courseIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.DB.Model(&model.ScheduledSession{}).
		Where("course_id IN ?", courseIDs).
		Count(&count).Error
	return count, err
}
