package model

import "time"

type SessionType string

const (
	SessionClass  SessionType = "CLASS"
	SessionExam   SessionType = "EXAM"
	SessionReview SessionType = "REVIEW"
)

// swagger:model ScheduledSession
type ScheduledSession struct {
	BaseModel
	CourseID uint        `gorm:"index;type:bigint unsigned" json:"courseId"`
	Title    string      `gorm:"size:200" json:"title"`
	Date     time.Time   `gorm:"index" json:"date"`
	Type     SessionType `gorm:"type:enum('CLASS','EXAM','REVIEW');default:'CLASS'" json:"type"`
	LessonID *uint       `gorm:"type:bigint unsigned" json:"lessonId,omitempty"`
	ExamID   *uint       `gorm:"type:bigint unsigned" json:"examId,omitempty"`
}

func (ScheduledSession) TableName() string {
	return "scheduled_sessions"
}
