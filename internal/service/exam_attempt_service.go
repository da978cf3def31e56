package service

import (
	"errors"
	"math"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DefaultPassPercent 固定及格线：得分率达到 75% 视为通过
const DefaultPassPercent = 75.0

type ExamAttemptService struct {
	ExamRepo     *repository.ExamRepository
	AttemptRepo  *repository.AttemptRepository
	ActivityRepo *repository.ActivityRepository
	DB           *gorm.DB
	PassPercent  float64
}

func NewExamAttemptService(
	examRepo *repository.ExamRepository,
	attemptRepo *repository.AttemptRepository,
	activityRepo *repository.ActivityRepository,
	db *gorm.DB,
	passPercent float64,
) *ExamAttemptService {
	if passPercent <= 0 {
		passPercent = DefaultPassPercent
	}
	return &ExamAttemptService{
		ExamRepo:     examRepo,
		AttemptRepo:  attemptRepo,
		ActivityRepo: activityRepo,
		DB:           db,
		PassPercent:  passPercent,
	}
}

type ChoiceView struct {
	ID    uint   `json:"id"`
	Text  string `json:"text"`
	Order int    `json:"order"`
}

type QuestionView struct {
	ID      uint         `json:"id"`
	Text    string       `json:"text"`
	Points  int          `json:"points"`
	Order   int          `json:"order"`
	Choices []ChoiceView `json:"choices"`
}

// ExamView 发给考生的试卷内容，不携带正确选项标记
type ExamView struct {
	ID           uint           `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	TotalPoints  int            `json:"totalPoints"`
	TimeLimit    int            `json:"timeLimit"`
	MaxTabSwitch int            `json:"maxTabSwitch"`
	Questions    []QuestionView `json:"questions"`
}

type StartAttemptResult struct {
	AttemptID      uint      `json:"attemptId"`
	AttemptNumber  int       `json:"attemptNumber"`
	Status         string    `json:"status"`
	StartedAt      time.Time `json:"startedAt"`
	TabSwitchCount int       `json:"tabSwitchCount"`
	Exam           ExamView  `json:"exam"`
}

type TabSwitchResult struct {
	TabSwitchCount int  `json:"tabSwitchCount"`
	MaxTabSwitch   int  `json:"maxTabSwitch"`
	Flagged        bool `json:"flagged"`
}

type SubmitResult struct {
	Score       int     `json:"score"`
	TotalPoints int     `json:"totalPoints"`
	Percentage  float64 `json:"percentage"`
}

type QuestionResult struct {
	QuestionID   uint   `json:"questionId"`
	Text         string `json:"text"`
	Points       int    `json:"points"`
	ChoiceID     uint   `json:"choiceId,omitempty"`
	Answered     bool   `json:"answered"`
	IsCorrect    bool   `json:"isCorrect"`
	EarnedPoints int    `json:"earnedPoints"`
}

type AttemptResult struct {
	AttemptID   uint             `json:"attemptId"`
	Status      string           `json:"status"`
	Score       *int             `json:"score,omitempty"`
	TotalPoints int              `json:"totalPoints"`
	Percentage  float64          `json:"percentage"`
	Passed      bool             `json:"passed"`
	SubmittedAt *time.Time       `json:"submittedAt,omitempty"`
	Questions   []QuestionResult `json:"questions"`
}

func sanitizeExam(exam *model.Exam) ExamView {
	view := ExamView{
		ID:           exam.ID,
		Title:        exam.Title,
		Description:  exam.Description,
		TotalPoints:  exam.TotalPoints,
		TimeLimit:    exam.TimeLimit,
		MaxTabSwitch: exam.MaxTabSwitch,
	}
	for _, q := range exam.Questions {
		qv := QuestionView{
			ID:     q.ID,
			Text:   q.Text,
			Points: q.Points,
			Order:  q.Order,
		}
		for _, ch := range q.Choices {
			qv.Choices = append(qv.Choices, ChoiceView{ID: ch.ID, Text: ch.Text, Order: ch.Order})
		}
		view.Questions = append(view.Questions, qv)
	}
	return view
}

// scoreAttempt 按答题时刻的正确性快照累加得分，未作答的题计 0 分
func scoreAttempt(pointsByQuestion map[uint]int, answers []model.ExamAnswer) int {
	total := 0
	for _, a := range answers {
		if !a.IsCorrect {
			continue
		}
		total += pointsByQuestion[a.QuestionID]
	}
	return total
}

// percentOf 计算得分率；总分为 0 时返回 0 而不是 NaN
func percentOf(score, totalPoints int) float64 {
	if totalPoints <= 0 {
		return 0
	}
	return math.Round(float64(score)/float64(totalPoints)*100*100) / 100
}

// nextTabSwitchState 切屏一次后的新状态：计数 +1，达到阈值置为 FLAGGED。
// 已经 FLAGGED 的保持 FLAGGED（单调），不会回退。
func nextTabSwitchState(status model.AttemptStatus, count, maxTabSwitch int) (model.AttemptStatus, int) {
	count++
	if status == model.AttemptFlagged {
		return model.AttemptFlagged, count
	}
	if maxTabSwitch > 0 && count >= maxTabSwitch {
		return model.AttemptFlagged, count
	}
	return status, count
}

// Start 开始一次作答。同一 (exam, student, session) 上下文中已有 IN_PROGRESS
// 或 FLAGGED 作答时原样返回（幂等续考）；已提交则报冲突。
func (s *ExamAttemptService) Start(studentID, examID, sessionID uint) (*StartAttemptResult, error) {
	exam, err := s.ExamRepo.FindByID(examID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrExamNotFound
		}
		return nil, err
	}
	if !exam.IsPublished {
		return nil, util.ErrExamNotFound
	}

	attempt, err := s.AttemptRepo.FindByKey(examID, studentID, sessionID)
	if err == nil {
		if attempt.Status == model.AttemptSubmitted {
			return nil, util.ErrAttemptAlreadySubmitted
		}
		return s.startResult(attempt, exam), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	count, err := s.AttemptRepo.CountByExamStudent(examID, studentID)
	if err != nil {
		return nil, err
	}

	attempt = &model.ExamAttempt{
		ExamID:        examID,
		StudentID:     studentID,
		SessionID:     sessionID,
		AttemptNumber: int(count) + 1,
		Status:        model.AttemptInProgress,
		StartedAt:     time.Now(),
	}
	if err := s.AttemptRepo.Create(attempt); err != nil {
		// 并发首考撞唯一键 (exam, student, session)：改查赢家的作答并续考
		if existing, ferr := s.AttemptRepo.FindByKey(examID, studentID, sessionID); ferr == nil {
			if existing.Status == model.AttemptSubmitted {
				return nil, util.ErrAttemptAlreadySubmitted
			}
			return s.startResult(existing, exam), nil
		}
		return nil, err
	}
	return s.startResult(attempt, exam), nil
}

func (s *ExamAttemptService) startResult(attempt *model.ExamAttempt, exam *model.Exam) *StartAttemptResult {
	return &StartAttemptResult{
		AttemptID:      attempt.ID,
		AttemptNumber:  attempt.AttemptNumber,
		Status:         string(attempt.Status),
		StartedAt:      attempt.StartedAt,
		TabSwitchCount: attempt.TabSwitchCount,
		Exam:           sanitizeExam(exam),
	}
}

func (s *ExamAttemptService) loadOwnedAttempt(studentID, attemptID uint) (*model.ExamAttempt, error) {
	attempt, err := s.AttemptRepo.FindByID(attemptID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrAttemptNotFound
		}
		return nil, err
	}
	if attempt.StudentID != studentID {
		return nil, util.ErrAttemptNotFound
	}
	return attempt, nil
}

// RecordAnswer 记录或覆盖某题的作答。正确性在答题时刻判定并入库快照；
// 之后试卷内容变动不会回溯改写已有快照。FLAGGED 的作答仍可继续答题。
func (s *ExamAttemptService) RecordAnswer(studentID, attemptID, questionID, choiceID uint) error {
	attempt, err := s.loadOwnedAttempt(studentID, attemptID)
	if err != nil {
		return err
	}
	if attempt.Status == model.AttemptSubmitted {
		return util.ErrAttemptNotInProgress
	}

	exam, err := s.ExamRepo.FindByID(attempt.ExamID)
	if err != nil {
		return err
	}

	var question *model.ExamQuestion
	for i := range exam.Questions {
		if exam.Questions[i].ID == questionID {
			question = &exam.Questions[i]
			break
		}
	}
	if question == nil {
		return util.ErrQuestionNotFound
	}

	var choice *model.ExamChoice
	for i := range question.Choices {
		if question.Choices[i].ID == choiceID {
			choice = &question.Choices[i]
			break
		}
	}
	if choice == nil {
		return util.ErrChoiceNotFound
	}

	return s.AttemptRepo.UpsertAnswer(&model.ExamAnswer{
		AttemptID:  attemptID,
		QuestionID: questionID,
		ChoiceID:   choiceID,
		IsCorrect:  choice.IsCorrect,
	})
}

// RecordTabSwitch 记录一次切屏。达到阈值后置为 FLAGGED，但不拦截继续答题或交卷，
// 仅供前端提示与教师复核。
func (s *ExamAttemptService) RecordTabSwitch(studentID, attemptID uint) (*TabSwitchResult, error) {
	attempt, err := s.loadOwnedAttempt(studentID, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.Status == model.AttemptSubmitted {
		return nil, util.ErrAttemptNotInProgress
	}

	exam, err := s.ExamRepo.FindByID(attempt.ExamID)
	if err != nil {
		return nil, err
	}

	var updated model.ExamAttempt
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&updated, attemptID).Error; err != nil {
			return err
		}
		status, count := nextTabSwitchState(updated.Status, updated.TabSwitchCount, exam.MaxTabSwitch)
		updated.Status = status
		updated.TabSwitchCount = count
		return tx.Save(&updated).Error
	})
	if err != nil {
		return nil, err
	}

	return &TabSwitchResult{
		TabSwitchCount: updated.TabSwitchCount,
		MaxTabSwitch:   exam.MaxTabSwitch,
		Flagged:        updated.Status == model.AttemptFlagged,
	}, nil
}

// Submit 交卷并计分。FLAGGED 的作答允许交卷；重复交卷报冲突。
// 状态更新走条件 UPDATE，两个并发交卷只有一个生效。
func (s *ExamAttemptService) Submit(studentID, attemptID uint) (*SubmitResult, error) {
	attempt, err := s.loadOwnedAttempt(studentID, attemptID)
	if err != nil {
		return nil, err
	}
	if attempt.Status == model.AttemptSubmitted {
		return nil, util.ErrAttemptAlreadySubmitted
	}

	exam, err := s.ExamRepo.FindByID(attempt.ExamID)
	if err != nil {
		return nil, err
	}
	answers, err := s.AttemptRepo.ListAnswers(attemptID)
	if err != nil {
		return nil, err
	}

	points := make(map[uint]int, len(exam.Questions))
	for _, q := range exam.Questions {
		points[q.ID] = q.Points
	}
	score := scoreAttempt(points, answers)

	ok, err := s.AttemptRepo.SubmitIfOpen(attemptID, score, time.Now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, util.ErrAttemptAlreadySubmitted
	}

	if err := s.ActivityRepo.Log(studentID, model.EventExamSubmit, exam.Title); err != nil {
		logger.Log.Warn("failed to log exam submit event", zap.Error(err))
	}

	return &SubmitResult{
		Score:       score,
		TotalPoints: exam.TotalPoints,
		Percentage:  percentOf(score, exam.TotalPoints),
	}, nil
}

// GetResult 重建每道题的作答与得分明细，任何状态的本人作答都可查看；
// 交卷前 Score 为空。
func (s *ExamAttemptService) GetResult(studentID, attemptID uint) (*AttemptResult, error) {
	attempt, err := s.loadOwnedAttempt(studentID, attemptID)
	if err != nil {
		return nil, err
	}

	exam, err := s.ExamRepo.FindByID(attempt.ExamID)
	if err != nil {
		return nil, err
	}
	answers, err := s.AttemptRepo.ListAnswers(attemptID)
	if err != nil {
		return nil, err
	}

	answerByQuestion := make(map[uint]model.ExamAnswer, len(answers))
	for _, a := range answers {
		answerByQuestion[a.QuestionID] = a
	}

	result := &AttemptResult{
		AttemptID:   attempt.ID,
		Status:      string(attempt.Status),
		Score:       attempt.Score,
		TotalPoints: exam.TotalPoints,
		SubmittedAt: attempt.SubmittedAt,
	}
	for _, q := range exam.Questions {
		qr := QuestionResult{
			QuestionID: q.ID,
			Text:       q.Text,
			Points:     q.Points,
		}
		if a, ok := answerByQuestion[q.ID]; ok {
			qr.Answered = true
			qr.ChoiceID = a.ChoiceID
			qr.IsCorrect = a.IsCorrect
			if a.IsCorrect {
				qr.EarnedPoints = q.Points
			}
		}
		result.Questions = append(result.Questions, qr)
	}

	if attempt.Score != nil {
		result.Percentage = percentOf(*attempt.Score, exam.TotalPoints)
		result.Passed = result.Percentage >= s.PassPercent
	}
	return result, nil
}
