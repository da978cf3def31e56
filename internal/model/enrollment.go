package model

// Enrollment 学生与课程的选课关系，(student_id, course_id) 唯一
type Enrollment struct {
	BaseModel
	StudentID uint   `gorm:"uniqueIndex:uniq_student_course;type:bigint unsigned" json:"studentId"`
	CourseID  uint   `gorm:"uniqueIndex:uniq_student_course;type:bigint unsigned" json:"courseId"`
	Status    string `gorm:"size:20;default:'active'" json:"status"` // active, completed, dropped
}

func (Enrollment) TableName() string {
	return "enrollments"
}

// ProgramEnrollment 学生与培养项目的关系，(student_id, program_id) 唯一
type ProgramEnrollment struct {
	BaseModel
	StudentID uint   `gorm:"uniqueIndex:uniq_student_program;type:bigint unsigned" json:"studentId"`
	ProgramID uint   `gorm:"uniqueIndex:uniq_student_program;type:bigint unsigned" json:"programId"`
	Status    string `gorm:"size:20;default:'active'" json:"status"`
}

func (ProgramEnrollment) TableName() string {
	return "program_enrollments"
}
