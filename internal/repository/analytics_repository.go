package repository

import (
	"time"

	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type AnalyticsRepository struct {
	DB *gorm.DB
}

func NewAnalyticsRepository(db *gorm.DB) *AnalyticsRepository {
	return &AnalyticsRepository{DB: db}
}

func (r *AnalyticsRepository) CountEnrollments() (total, active int64, err error) {
	if err = r.DB.Model(&model.Enrollment{}).Count(&total).Error; err != nil {
		return
	}
	err = r.DB.Model(&model.Enrollment{}).Where("status = ?", "active").Count(&active).Error
	return
}

// EnrollmentsPerDay 按天分组统计 [from, to) 区间内创建的选课数
func (r *AnalyticsRepository) EnrollmentsPerDay(from, to time.Time) (map[string]int64, error) {
	type dayCount struct {
		Day   string
		Count int64
	}
	var rows []dayCount
	err := r.DB.Model(&model.Enrollment{}).
		Select("DATE_FORMAT(created_at, '%Y-%m-%d') as day, COUNT(*) as count").
		Where("created_at >= ? AND created_at < ?", from, to).
		Group("day").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Day] = row.Count
	}
	return counts, nil
}

// AverageExamScoreByCourse 已提交作答的平均分（无数据时返回 0）
func (r *AnalyticsRepository) AverageExamScoreByCourse(courseID uint) (float64, error) {
	var avg *float64
	err := r.DB.Model(&model.ExamAttempt{}).
		Joins("JOIN exams ON exams.id = exam_attempts.exam_id").
		Where("exams.course_id = ? AND exam_attempts.status = ?", courseID, model.AttemptSubmitted).
		Select("AVG(exam_attempts.score)").
		Scan(&avg).Error
	if err != nil || avg == nil {
		return 0, err
	}
	return *avg, nil
}

type StudentAggregate struct {
	StudentID    uint
	PresentCount int64
	ExamAverage  float64
	ExamCount    int64
}

// PresentCountsByCourse 单条分组查询拿到课程内每个学生的出勤次数，
// 替代逐学生循环查询的 N+1 写法。
func (r *AnalyticsRepository) PresentCountsByCourse(courseID uint, now time.Time) (map[uint]int64, error) {
	type row struct {
		StudentID uint
		Count     int64
	}
	var rows []row
	err := r.DB.Model(&model.SessionAttendance{}).
		Select("session_attendances.student_id, COUNT(*) as count").
		Joins("JOIN scheduled_sessions ON scheduled_sessions.id = session_attendances.session_id").
		Where("session_attendances.status = ?", model.AttendancePresent).
		Where("scheduled_sessions.course_id = ? AND scheduled_sessions.type = ? AND scheduled_sessions.date <= ?",
			courseID, model.SessionClass, now).
		Group("session_attendances.student_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[uint]int64, len(rows))
	for _, v := range rows {
		counts[v.StudentID] = v.Count
	}
	return counts, nil
}

// ExamAveragesByCourse 单条分组查询拿到课程内每个学生的平均考分
func (r *AnalyticsRepository) ExamAveragesByCourse(courseID uint) (map[uint]float64, error) {
	type row struct {
		StudentID uint
		Average   float64
	}
	var rows []row
	err := r.DB.Model(&model.ExamAttempt{}).
		Select("exam_attempts.student_id, AVG(exam_attempts.score) as average").
		Joins("JOIN exams ON exams.id = exam_attempts.exam_id").
		Where("exams.course_id = ? AND exam_attempts.status = ?", courseID, model.AttemptSubmitted).
		Group("exam_attempts.student_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	averages := make(map[uint]float64, len(rows))
	for _, v := range rows {
		averages[v.StudentID] = v.Average
	}
	return averages, nil
}

func (r *AnalyticsRepository) CountEnrollmentsByCourseIDs(courseIDs []uint) (int64, error) {
	if len(courseIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.DB.Model(&model.Enrollment{}).
		Where("course_id IN ?", courseIDs).
		Count(&count).Error
	return count, err
}
