package service

import (
	"math"
	"time"

	"lms_backend/internal/config"
	"lms_backend/internal/model"
	"lms_backend/internal/repository"
)

// GradeBand 字母等级区间：finalGrade >= Min 即命中
type GradeBand struct {
	Min    float64
	Letter string
	GPA    float64
}

// GradeConfig 成绩计算的权重与等级表。作为不可变配置注入计算器，
// 便于测试时替换备用量表。
type GradeConfig struct {
	ExamWeight       float64
	AttendanceWeight float64
	Scale            []GradeBand
}

// DefaultGradeConfig 默认 7:3 加权与标准等级表
func DefaultGradeConfig() GradeConfig {
	return GradeConfig{
		ExamWeight:       0.7,
		AttendanceWeight: 0.3,
		Scale: []GradeBand{
			{Min: 93, Letter: "A", GPA: 4.0},
			{Min: 90, Letter: "A-", GPA: 3.7},
			{Min: 87, Letter: "B+", GPA: 3.3},
			{Min: 83, Letter: "B", GPA: 3.0},
			{Min: 80, Letter: "B-", GPA: 2.7},
			{Min: 77, Letter: "C+", GPA: 2.3},
			{Min: 73, Letter: "C", GPA: 2.0},
			{Min: 70, Letter: "C-", GPA: 1.7},
			{Min: 60, Letter: "D", GPA: 1.0},
			{Min: 0, Letter: "F", GPA: 0.0},
		},
	}
}

// GradeConfigFromSettings 允许通过配置文件覆盖权重，等级表保持默认
func GradeConfigFromSettings(settings config.GradingConfig) GradeConfig {
	cfg := DefaultGradeConfig()
	if settings.ExamWeight > 0 && settings.AttendanceWeight > 0 {
		cfg.ExamWeight = settings.ExamWeight
		cfg.AttendanceWeight = settings.AttendanceWeight
	}
	return cfg
}

// Letter 将综合成绩映射到字母等级与绩点
func (c GradeConfig) Letter(finalGrade float64) (string, float64) {
	for _, band := range c.Scale {
		if finalGrade >= band.Min {
			return band.Letter, band.GPA
		}
	}
	return "F", 0.0
}

// Compose 按权重合成综合成绩
func (c GradeConfig) Compose(examAverage, attendancePercent float64) float64 {
	return examAverage*c.ExamWeight + attendancePercent*c.AttendanceWeight
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func meanOfScores(scores []int) float64 {
	if len(scores) == 0 {
		return 0
	}
	sum := 0
	for _, s := range scores {
		sum += s
	}
	return float64(sum) / float64(len(scores))
}

type GradeService struct {
	GradeRepo      *repository.GradeRepository
	ExamRepo       *repository.ExamRepository
	AttemptRepo    *repository.AttemptRepository
	SessionRepo    *repository.SessionRepository
	AttendanceRepo *repository.AttendanceRepository
	EnrollmentRepo *repository.EnrollmentRepository
	ProgramEnrRepo *repository.ProgramEnrollmentRepository
	Config         GradeConfig
}

func NewGradeService(
	gradeRepo *repository.GradeRepository,
	examRepo *repository.ExamRepository,
	attemptRepo *repository.AttemptRepository,
	sessionRepo *repository.SessionRepository,
	attendanceRepo *repository.AttendanceRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	programEnrRepo *repository.ProgramEnrollmentRepository,
	cfg GradeConfig,
) *GradeService {
	return &GradeService{
		GradeRepo:      gradeRepo,
		ExamRepo:       examRepo,
		AttemptRepo:    attemptRepo,
		SessionRepo:    sessionRepo,
		AttendanceRepo: attendanceRepo,
		EnrollmentRepo: enrollmentRepo,
		ProgramEnrRepo: programEnrRepo,
		Config:         cfg,
	}
}

// CalculateCourseGrade 幂等地整体重算某学生某课程的成绩并覆盖入库。
// 成绩记录不是事实来源，随时可由考试与出勤数据重新推出。
func (s *GradeService) CalculateCourseGrade(studentID, courseID uint) (*model.GradeCalculation, error) {
	exams, err := s.ExamRepo.ListByCourse(courseID)
	if err != nil {
		return nil, err
	}
	examIDs := make([]uint, 0, len(exams))
	for _, e := range exams {
		examIDs = append(examIDs, e.ID)
	}
	scores, err := s.AttemptRepo.ScoresByExams(studentID, examIDs)
	if err != nil {
		return nil, err
	}
	examAverage := meanOfScores(scores)

	now := time.Now()
	totalSessions, err := s.SessionRepo.CountPastClassSessions(courseID, now)
	if err != nil {
		return nil, err
	}
	attendancePercent := 0.0
	if totalSessions > 0 {
		present, err := s.AttendanceRepo.CountPresentInCourse(studentID, courseID, now)
		if err != nil {
			return nil, err
		}
		attendancePercent = float64(present) / float64(totalSessions) * 100
	}

	finalGrade := round2(s.Config.Compose(examAverage, attendancePercent))
	letter, gpa := s.Config.Letter(finalGrade)

	cid := courseID
	grade := &model.GradeCalculation{
		StudentID:       studentID,
		CourseID:        &cid,
		ExamScore:       round2(examAverage),
		AttendanceScore: round2(attendancePercent),
		FinalGrade:      finalGrade,
		LetterGrade:     letter,
		GPA:             gpa,
	}
	if err := s.GradeRepo.UpsertCourseGrade(grade); err != nil {
		return nil, err
	}
	return grade, nil
}

// CalculateProgramGrade 项目维度的重算。项目没有课堂课次，出勤分按 0 计。
func (s *GradeService) CalculateProgramGrade(studentID, programID uint) (*model.GradeCalculation, error) {
	exams, err := s.ExamRepo.ListByProgram(programID)
	if err != nil {
		return nil, err
	}
	examIDs := make([]uint, 0, len(exams))
	for _, e := range exams {
		examIDs = append(examIDs, e.ID)
	}
	scores, err := s.AttemptRepo.ScoresByExams(studentID, examIDs)
	if err != nil {
		return nil, err
	}
	examAverage := meanOfScores(scores)

	finalGrade := round2(s.Config.Compose(examAverage, 0))
	letter, gpa := s.Config.Letter(finalGrade)

	pid := programID
	grade := &model.GradeCalculation{
		StudentID:   studentID,
		ProgramID:   &pid,
		ExamScore:   round2(examAverage),
		FinalGrade:  finalGrade,
		LetterGrade: letter,
		GPA:         gpa,
	}
	if err := s.GradeRepo.UpsertProgramGrade(grade); err != nil {
		return nil, err
	}
	return grade, nil
}

// CalculateAllStudentGrades 对学生的每个选课与项目逐一重算，可安全重复执行
func (s *GradeService) CalculateAllStudentGrades(studentID uint) ([]model.GradeCalculation, error) {
	enrollments, err := s.EnrollmentRepo.ListByStudent(studentID)
	if err != nil {
		return nil, err
	}
	programEnrollments, err := s.ProgramEnrRepo.ListByStudent(studentID)
	if err != nil {
		return nil, err
	}

	var grades []model.GradeCalculation
	for _, e := range enrollments {
		grade, err := s.CalculateCourseGrade(studentID, e.CourseID)
		if err != nil {
			return nil, err
		}
		grades = append(grades, *grade)
	}
	for _, e := range programEnrollments {
		grade, err := s.CalculateProgramGrade(studentID, e.ProgramID)
		if err != nil {
			return nil, err
		}
		grades = append(grades, *grade)
	}
	return grades, nil
}

func (s *GradeService) GetStudentGrades(studentID uint) ([]model.GradeCalculation, error) {
	return s.GradeRepo.ListByStudent(studentID)
}

type ProgramGradeView struct {
	ProgramID   uint    `json:"programId"`
	ExamCount   int     `json:"examCount"`
	ScoredExams int     `json:"scoredExams"`
	ExamAverage float64 `json:"examAverage"`
	LetterGrade string  `json:"letterGrade"`
	GPA         float64 `json:"gpa"`
}

// GetProgramGradeView 项目内考试成绩的聚合视图（不落库）
func (s *GradeService) GetProgramGradeView(studentID, programID uint) (*ProgramGradeView, error) {
	exams, err := s.ExamRepo.ListByProgram(programID)
	if err != nil {
		return nil, err
	}
	examIDs := make([]uint, 0, len(exams))
	for _, e := range exams {
		examIDs = append(examIDs, e.ID)
	}
	scores, err := s.AttemptRepo.ScoresByExams(studentID, examIDs)
	if err != nil {
		return nil, err
	}
	average := round2(meanOfScores(scores))
	letter, gpa := s.Config.Letter(average)

	return &ProgramGradeView{
		ProgramID:   programID,
		ExamCount:   len(exams),
		ScoredExams: len(scores),
		ExamAverage: average,
		LetterGrade: letter,
		GPA:         gpa,
	}, nil
}
