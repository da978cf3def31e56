package model

import "time"

type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "PRESENT"
	AttendanceAbsent  AttendanceStatus = "ABSENT"
)

type AttendanceMarker string

const (
	MarkedAuto      AttendanceMarker = "AUTO"
	MarkedByTeacher AttendanceMarker = "TEACHER"
)

// SessionAttendance 单次课堂的出勤记录，(session_id, student_id) 唯一，写入走 upsert
type SessionAttendance struct {
	BaseModel
	SessionID uint             `gorm:"uniqueIndex:uniq_session_student;type:bigint unsigned" json:"sessionId"`
	StudentID uint             `gorm:"uniqueIndex:uniq_session_student;type:bigint unsigned" json:"studentId"`
	Status    AttendanceStatus `gorm:"type:enum('PRESENT','ABSENT');default:'ABSENT'" json:"status"`
	JoinedAt  *time.Time       `json:"joinedAt,omitempty"`
	MarkedBy  AttendanceMarker `gorm:"type:enum('AUTO','TEACHER');default:'AUTO'" json:"markedBy"`
}

func (SessionAttendance) TableName() string {
	return "session_attendances"
}
