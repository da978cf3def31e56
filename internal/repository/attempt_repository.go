package repository

import (
	"time"

	"lms_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

func (r *AttemptRepository) Create(attempt *model.ExamAttempt) error {
	return r.DB.Create(attempt).Error
}

func (r *AttemptRepository) FindByID(id uint) (*model.ExamAttempt, error) {
	var attempt model.ExamAttempt
	if err := r.DB.First(&attempt, id).Error; err != nil {
		return nil, err
	}
	return &attempt, nil
}

// FindByKey 按 (exam, student, session) 上下文查找已有作答
func (r *AttemptRepository) FindByKey(examID, studentID, sessionID uint) (*model.ExamAttempt, error) {
	var attempt model.ExamAttempt
	err := r.DB.Where("exam_id = ? AND student_id = ? AND session_id = ?", examID, studentID, sessionID).
		First(&attempt).Error
	if err != nil {
		return nil, err
	}
	return &attempt, nil
}

func (r *AttemptRepository) CountByExamStudent(examID, studentID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ExamAttempt{}).
		Where("exam_id = ? AND student_id = ?", examID, studentID).
		Count(&count).Error
	return count, err
}

func (r *AttemptRepository) Update(attempt *model.ExamAttempt) error {
	return r.DB.Save(attempt).Error
}

// UpsertAnswer 以 (attempt_id, question_id) 为键记录答案，重答覆盖旧答案及其快照
func (r *AttemptRepository) UpsertAnswer(answer *model.ExamAnswer) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "attempt_id"}, {Name: "question_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"choice_id", "is_correct", "updated_at"}),
	}).Create(answer).Error
}

func (r *AttemptRepository) ListAnswers(attemptID uint) ([]model.ExamAnswer, error) {
	var answers []model.ExamAnswer
	err := r.DB.Where("attempt_id = ?", attemptID).Find(&answers).Error
	return answers, err
}

// SubmitIfOpen 条件更新：仅当尚未 SUBMITTED 时写入分数与状态。
// 返回 false 表示状态竞争中已被提交，调用方应返回冲突。
func (r *AttemptRepository) SubmitIfOpen(attemptID uint, score int, submittedAt time.Time) (bool, error) {
	result := r.DB.Model(&model.ExamAttempt{}).
		Where("id = ? AND status <> ?", attemptID, model.AttemptSubmitted).
		Updates(map[string]interface{}{
			"status":       model.AttemptSubmitted,
			"score":        score,
			"submitted_at": submittedAt,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ScoresByExams 返回学生在给定考卷集合中已提交作答的分数列表
func (r *AttemptRepository) ScoresByExams(studentID uint, examIDs []uint) ([]int, error) {
	if len(examIDs) == 0 {
		return nil, nil
	}
	var scores []int
	err := r.DB.Model(&model.ExamAttempt{}).
		Where("student_id = ? AND exam_id IN ? AND status = ?", studentID, examIDs, model.AttemptSubmitted).
		Pluck("score", &scores).Error
	return scores, err
}
