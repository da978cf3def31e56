package model

import "time"

type AttemptStatus string

const (
	AttemptInProgress AttemptStatus = "IN_PROGRESS"
	AttemptSubmitted  AttemptStatus = "SUBMITTED"
	AttemptFlagged    AttemptStatus = "FLAGGED"
)

// ExamAttempt 一次考试作答。(exam_id, student_id, session_id) 唯一，
// 同一上下文里同时至多一条 IN_PROGRESS 记录。
// swagger:model ExamAttempt
type ExamAttempt struct {
	BaseModel
	ExamID         uint          `gorm:"uniqueIndex:uniq_exam_student_session;type:bigint unsigned" json:"examId"`
	StudentID      uint          `gorm:"uniqueIndex:uniq_exam_student_session;type:bigint unsigned" json:"studentId"`
	SessionID      uint          `gorm:"uniqueIndex:uniq_exam_student_session;type:bigint unsigned;default:0" json:"sessionId"`
	AttemptNumber  int           `gorm:"default:1" json:"attemptNumber"`
	Status         AttemptStatus `gorm:"type:enum('IN_PROGRESS','SUBMITTED','FLAGGED');default:'IN_PROGRESS'" json:"status"`
	TabSwitchCount int           `gorm:"default:0" json:"tabSwitchCount"`
	Score          *int          `json:"score,omitempty"` // 提交前为空
	StartedAt      time.Time     `json:"startedAt"`
	SubmittedAt    *time.Time    `json:"submittedAt,omitempty"`
}

func (ExamAttempt) TableName() string {
	return "exam_attempts"
}

// ExamAnswer 作答记录，(attempt_id, question_id) 唯一；IsCorrect 是答题时刻的快照
type ExamAnswer struct {
	BaseModel
	AttemptID  uint `gorm:"uniqueIndex:uniq_attempt_question;type:bigint unsigned" json:"attemptId"`
	QuestionID uint `gorm:"uniqueIndex:uniq_attempt_question;type:bigint unsigned" json:"questionId"`
	ChoiceID   uint `gorm:"type:bigint unsigned" json:"choiceId"`
	IsCorrect  bool `gorm:"default:false" json:"isCorrect"`
}

func (ExamAnswer) TableName() string {
	return "exam_answers"
}
