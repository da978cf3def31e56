package repository

import (
	"time"

	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type ActivityRepository struct {
	DB *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{DB: db}
}

func (r *ActivityRepository) Log(userID uint, event model.EventType, detail string) error {
	return r.DB.Create(&model.ActivityLog{
		UserID:    userID,
		EventType: event,
		Detail:    detail,
	}).Error
}

func (r *ActivityRepository) ListRecentByUser(userID uint, limit int) ([]model.ActivityLog, error) {
	var logs []model.ActivityLog
	err := r.DB.Where("user_id = ?", userID).
		Order("created_at DESC").Limit(limit).Find(&logs).Error
	return logs, err
}

// CountDistinctLoginsSince 统计 since 之后有 LOGIN 事件的去重用户数（日活口径）
func (r *ActivityRepository) CountDistinctLoginsSince(since time.Time) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ActivityLog{}).
		Where("event_type = ? AND created_at >= ?", model.EventLogin, since).
		Distinct("user_id").
		Count(&count).Error
	return count, err
}

func (r *ActivityRepository) CountByTypeInRange(from, to time.Time) (map[string]int64, error) {
	type eventCount struct {
		EventType string
		Count     int64
	}
	var rows []eventCount
	err := r.DB.Model(&model.ActivityLog{}).
		Select("event_type, COUNT(*) as count").
		Where("created_at BETWEEN ? AND ?", from, to).
		Group("event_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.EventType] = row.Count
	}
	return counts, nil
}
