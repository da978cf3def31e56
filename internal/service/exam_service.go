package service

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

// ExamService 教师端的试卷管理
type ExamService struct {
	ExamRepo    *repository.ExamRepository
	CourseRepo  *repository.CourseRepository
	ProgramRepo *repository.ProgramRepository
}

func NewExamService(
	examRepo *repository.ExamRepository,
	courseRepo *repository.CourseRepository,
	programRepo *repository.ProgramRepository,
) *ExamService {
	return &ExamService{
		ExamRepo:    examRepo,
		CourseRepo:  courseRepo,
		ProgramRepo: programRepo,
	}
}

type ExamChoiceRequest struct {
	Text      string `json:"text" binding:"required"`
	IsCorrect bool   `json:"isCorrect"`
}

type ExamQuestionRequest struct {
	Text    string              `json:"text" binding:"required"`
	Points  int                 `json:"points"`
	Choices []ExamChoiceRequest `json:"choices" binding:"required"`
}

type ExamCreateRequest struct {
	Title        string                `json:"title" binding:"required"`
	Description  string                `json:"description"`
	CourseID     *uint                 `json:"courseId"`
	ProgramID    *uint                 `json:"programId"`
	TimeLimit    int                   `json:"timeLimit"`
	MaxTabSwitch int                   `json:"maxTabSwitch"`
	IsPublished  bool                  `json:"isPublished"`
	Questions    []ExamQuestionRequest `json:"questions"`
}

func (s *ExamService) CreateExam(req ExamCreateRequest) (*model.Exam, error) {
	if req.CourseID == nil && req.ProgramID == nil {
		return nil, errors.New("courseId or programId required")
	}
	if req.CourseID != nil {
		if _, err := s.CourseRepo.FindByID(*req.CourseID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrCourseNotFound
			}
			return nil, err
		}
	}
	if req.ProgramID != nil {
		if _, err := s.ProgramRepo.FindByID(*req.ProgramID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, util.ErrProgramNotFound
			}
			return nil, err
		}
	}

	maxTabSwitch := req.MaxTabSwitch
	if maxTabSwitch <= 0 {
		maxTabSwitch = 3
	}

	exam := &model.Exam{
		Title:        req.Title,
		Description:  req.Description,
		CourseID:     req.CourseID,
		ProgramID:    req.ProgramID,
		TimeLimit:    req.TimeLimit,
		MaxTabSwitch: maxTabSwitch,
		IsPublished:  req.IsPublished,
	}
	for _, q := range req.Questions {
		question := model.ExamQuestion{
			Text:   q.Text,
			Points: q.Points,
		}
		for _, ch := range q.Choices {
			question.Choices = append(question.Choices, model.ExamChoice{
				Text:      ch.Text,
				IsCorrect: ch.IsCorrect,
			})
		}
		exam.Questions = append(exam.Questions, question)
	}

	if err := s.ExamRepo.CreateWithQuestions(exam); err != nil {
		return nil, err
	}
	return exam, nil
}

func (s *ExamService) GetExam(id uint) (*model.Exam, error) {
	exam, err := s.ExamRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}
	return exam, nil
}

func (s *ExamService) PublishExam(id uint, publish bool) (*model.Exam, error) {
	exam, err := s.GetExam(id)
	if err != nil {
		return nil, err
	}
	exam.IsPublished = publish
	if err := s.ExamRepo.Update(exam); err != nil {
		return nil, err
	}
	return exam, nil
}

func (s *ExamService) ListCourseExams(courseID uint) ([]model.Exam, error) {
	return s.ExamRepo.ListByCourse(courseID)
}

func (s *ExamService) ListProgramExams(programID uint) ([]model.Exam, error) {
	return s.ExamRepo.ListByProgram(programID)
}
