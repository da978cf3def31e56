package model

type EventType string

const (
	EventLogin      EventType = "LOGIN"
	EventEnroll     EventType = "ENROLLMENT"
	EventExamSubmit EventType = "EXAM_SUBMIT"
	EventJoinClass  EventType = "SESSION_JOIN"
)

// ActivityLog 用户行为事件，供日活与事件统计使用
type ActivityLog struct {
	BaseModel
	UserID    uint      `gorm:"index;type:bigint unsigned" json:"userId"`
	EventType EventType `gorm:"size:30;index" json:"eventType"`
	Detail    string    `gorm:"size:255" json:"detail"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}
