package repository

import (
	"time"

	"lms_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttendanceRepository struct {
	DB *gorm.DB
}

func NewAttendanceRepository(db *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{DB: db}
}

// Upsert 以 (session_id, student_id) 为键写入出勤记录，重复打卡覆盖旧值
func (r *AttendanceRepository) Upsert(record *model.SessionAttendance) error {
	return r.upsert(r.DB, record)
}

func (r *AttendanceRepository) upsert(tx *gorm.DB, record *model.SessionAttendance) error {
	return tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "session_id"}, {Name: "student_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "joined_at", "marked_by", "updated_at"}),
	}).Create(record).Error
}

// BatchUpsert 整堂课批量点名，事务内全部成功或全部失败
func (r *AttendanceRepository) BatchUpsert(records []model.SessionAttendance) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		for i := range records {
			if err := r.upsert(tx, &records[i]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *AttendanceRepository) ListBySession(sessionID uint) ([]model.SessionAttendance, error) {
	var records []model.SessionAttendance
	err := r.DB.Where("session_id = ?", sessionID).Find(&records).Error
	return records, err
}

func (r *AttendanceRepository) ListByStudent(studentID uint) ([]model.SessionAttendance, error) {
	var records []model.SessionAttendance
	err := r.DB.Where("student_id = ?", studentID).Order("id DESC").Find(&records).Error
	return records, err
}

// CountPresentInCourse 统计学生在某课程截止 now 的 CLASS 课次中 PRESENT 的次数
func (r *AttendanceRepository) CountPresentInCourse(studentID, courseID uint, now time.Time) (int64, error) {
	var count int64
	err := r.DB.Model(&model.SessionAttendance{}).
		Joins("JOIN scheduled_sessions ON scheduled_sessions.id = session_attendances.session_id").
		Where("session_attendances.student_id = ? AND session_attendances.status = ?", studentID, model.AttendancePresent).
		Where("scheduled_sessions.course_id = ? AND scheduled_sessions.type = ? AND scheduled_sessions.date <= ?",
			courseID, model.SessionClass, now).
		Count(&count).Error
	return count, err
}

func (r *AttendanceRepository) CountByCourse(courseID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.SessionAttendance{}).
		Joins("JOIN scheduled_sessions ON scheduled_sessions.id = session_attendances.session_id").
		Where("scheduled_sessions.course_id = ?", courseID).
		Count(&count).Error
	return count, err
}
