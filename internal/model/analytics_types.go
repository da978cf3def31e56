package model

import "time"

// 以下为分析汇总接口的返回结构，不落库

type EnrollmentTrendPoint struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

type SystemAnalytics struct {
	UsersByRole        map[string]int64       `json:"usersByRole"`
	TotalEnrollments   int64                  `json:"totalEnrollments"`
	ActiveEnrollments  int64                  `json:"activeEnrollments"`
	CertificatesIssued int64                  `json:"certificatesIssued"`
	EventCounts        map[string]int64       `json:"eventCounts"`
	DailyActiveUsers   int64                  `json:"dailyActiveUsers"`
	EnrollmentTrends   []EnrollmentTrendPoint `json:"enrollmentTrends"`
	GeneratedAt        time.Time              `json:"generatedAt"`
}

type LetterDistribution struct {
	LetterGrade string `json:"letterGrade"`
	Count       int64  `json:"count"`
}

type AtRiskStudent struct {
	StudentID         uint    `json:"studentId"`
	Name              string  `json:"name"`
	AttendancePercent float64 `json:"attendancePercent"`
	ExamAverage       float64 `json:"examAverage"`
}

type CourseAnalytics struct {
	CourseID        uint                 `json:"courseId"`
	EnrollmentCount int64                `json:"enrollmentCount"`
	SessionCount    int64                `json:"sessionCount"`
	AttendanceRate  float64              `json:"attendanceRate"`
	AverageExam     float64              `json:"averageExamScore"`
	GradeBreakdown  []LetterDistribution `json:"gradeBreakdown"`
	CompletionRate  float64              `json:"completionRate"`
	AtRiskStudents  []AtRiskStudent      `json:"atRiskStudents"`
}

type CourseProgress struct {
	CourseID    uint    `json:"courseId"`
	CourseTitle string  `json:"courseTitle"`
	FinalGrade  float64 `json:"finalGrade"`
	LetterGrade string  `json:"letterGrade"`
	GPA         float64 `json:"gpa"`
}

type StudentAnalytics struct {
	StudentID      uint             `json:"studentId"`
	OverallGPA     float64          `json:"overallGpa"`
	Courses        []CourseProgress `json:"courses"`
	RecentActivity []ActivityLog    `json:"recentActivity"`
}

type TeacherAnalytics struct {
	TeacherID          uint  `json:"teacherId"`
	CourseCount        int64 `json:"courseCount"`
	ProgramCount       int64 `json:"programCount"`
	EnrollmentCount    int64 `json:"enrollmentCount"`
	SessionCount       int64 `json:"sessionCount"`
	CertificatesIssued int64 `json:"certificatesIssued"`
}
