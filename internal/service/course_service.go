package service

import (
	"errors"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"

	"gorm.io/gorm"
)

type CourseService struct {
	CourseRepo  *repository.CourseRepository
	ProgramRepo *repository.ProgramRepository
	SessionRepo *repository.SessionRepository
}

func NewCourseService(
	courseRepo *repository.CourseRepository,
	programRepo *repository.ProgramRepository,
	sessionRepo *repository.SessionRepository,
) *CourseService {
	return &CourseService{
		CourseRepo:  courseRepo,
		ProgramRepo: programRepo,
		SessionRepo: sessionRepo,
	}
}

type CourseCreateRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Semester    string `json:"semester"`
	IsPublished bool   `json:"isPublished"`
}

func (s *CourseService) CreateCourse(teacherID uint, req CourseCreateRequest) (*model.Course, error) {
	course := &model.Course{
		Title:       req.Title,
		Description: req.Description,
		Semester:    req.Semester,
		TeacherID:   teacherID,
		IsPublished: req.IsPublished,
	}
	if err := s.CourseRepo.Create(course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) GetCourse(id uint) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

func (s *CourseService) ListCourses(page, limit int) ([]model.Course, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.CourseRepo.List(page, limit)
}

func (s *CourseService) GetProgram(id uint) (*model.Program, error) {
	program, err := s.ProgramRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrProgramNotFound
		}
		return nil, err
	}
	return program, nil
}

func (s *CourseService) ListPrograms() ([]model.Program, error) {
	return s.ProgramRepo.List()
}

type SessionCreateRequest struct {
	Title    string            `json:"title"`
	Date     string            `json:"date" binding:"required"` // RFC3339
	Type     model.SessionType `json:"type"`
	LessonID *uint             `json:"lessonId"`
	ExamID   *uint             `json:"examId"`
}

func (s *CourseService) CreateSession(courseID uint, session *model.ScheduledSession) (*model.ScheduledSession, error) {
	if _, err := s.GetCourse(courseID); err != nil {
		return nil, err
	}
	session.CourseID = courseID
	if session.Type == "" {
		session.Type = model.SessionClass
	}
	if err := s.SessionRepo.Create(session); err != nil {
		return nil, err
	}
	return session, nil
}

func (s *CourseService) ListSessions(courseID uint) ([]model.ScheduledSession, error) {
	if _, err := s.GetCourse(courseID); err != nil {
		return nil, err
	}
	return s.SessionRepo.ListByCourse(courseID)
}
