package model

// GradeCalculation 派生成绩记录，可随时由考试与出勤数据整体重算，
// (student_id, course_id) 或 (student_id, program_id) 唯一。
// swagger:model GradeCalculation
type GradeCalculation struct {
	BaseModel
	StudentID       uint    `gorm:"index:idx_grade_student;uniqueIndex:uniq_student_course;uniqueIndex:uniq_student_program;type:bigint unsigned" json:"studentId"`
	CourseID        *uint   `gorm:"uniqueIndex:uniq_student_course;type:bigint unsigned" json:"courseId,omitempty"`
	ProgramID       *uint   `gorm:"uniqueIndex:uniq_student_program;type:bigint unsigned" json:"programId,omitempty"`
	ExamScore       float64 `json:"examScore"`
	AttendanceScore float64 `json:"attendanceScore"`
	FinalGrade      float64 `json:"finalGrade"`
	LetterGrade     string  `gorm:"size:4" json:"letterGrade"`
	GPA             float64 `json:"gpa"`
}

func (GradeCalculation) TableName() string {
	return "grade_calculations"
}
