package service

import (
	"errors"
	"os"
	"sync"
	"testing"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// attemptTestDB 连接 LMS_TEST_DSN 指向的 MySQL，未设置时跳过测试。
// 例：LMS_TEST_DSN="root:root@tcp(127.0.0.1:3306)/lms_test?charset=utf8mb4&parseTime=true&loc=Local"
func attemptTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("LMS_TEST_DSN")
	if dsn == "" {
		t.Skip("LMS_TEST_DSN not set, skipping database integration test")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	if err := db.AutoMigrate(
		&model.Exam{},
		&model.ExamQuestion{},
		&model.ExamChoice{},
		&model.ExamAttempt{},
		&model.ExamAnswer{},
		&model.ActivityLog{},
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	if logger.Log == nil {
		logger.Log = zap.NewNop()
	}

	t.Cleanup(func() {
		db.Exec("DELETE FROM activity_logs")
		db.Exec("DELETE FROM exam_answers")
		db.Exec("DELETE FROM exam_attempts")
		db.Exec("DELETE FROM exam_choices")
		db.Exec("DELETE FROM exam_questions")
		db.Exec("DELETE FROM exams")
	})
	return db
}

func newAttemptService(db *gorm.DB) *ExamAttemptService {
	return NewExamAttemptService(
		repository.NewExamRepository(db),
		repository.NewAttemptRepository(db),
		repository.NewActivityRepository(db),
		db,
		DefaultPassPercent,
	)
}

func seedPublishedExam(t *testing.T, db *gorm.DB) *model.Exam {
	t.Helper()

	exam := &model.Exam{
		Title:        "单元小测",
		MaxTabSwitch: 3,
		IsPublished:  true,
		Questions: []model.ExamQuestion{
			{
				Text:   "2+2=?",
				Points: 5,
				Choices: []model.ExamChoice{
					{Text: "3", IsCorrect: false},
					{Text: "4", IsCorrect: true},
				},
			},
		},
	}
	if err := repository.NewExamRepository(db).CreateWithQuestions(exam); err != nil {
		t.Fatalf("seed exam: %v", err)
	}
	return exam
}

func TestStartResumeAndConflictAfterSubmit(t *testing.T) {
	db := attemptTestDB(t)
	svc := newAttemptService(db)
	exam := seedPublishedExam(t, db)
	const studentID = 11

	first, err := svc.Start(studentID, exam.ID, 0)
	if err != nil {
		t.Fatalf("first start: %v", err)
	}
	if first.AttemptNumber != 1 {
		t.Errorf("attemptNumber = %d, want 1", first.AttemptNumber)
	}

	// 进行中再次开始：幂等续考，返回同一次作答
	second, err := svc.Start(studentID, exam.ID, 0)
	if err != nil {
		t.Fatalf("resume start: %v", err)
	}
	if second.AttemptID != first.AttemptID {
		t.Fatalf("resume returned attempt %d, want %d", second.AttemptID, first.AttemptID)
	}
	if second.AttemptNumber != first.AttemptNumber {
		t.Errorf("resume attemptNumber = %d, want %d", second.AttemptNumber, first.AttemptNumber)
	}

	if _, err := svc.Submit(studentID, first.AttemptID); err != nil {
		t.Fatalf("submit: %v", err)
	}

	// 交卷后再开始同一上下文：冲突
	if _, err := svc.Start(studentID, exam.ID, 0); !errors.Is(err, util.ErrAttemptAlreadySubmitted) {
		t.Fatalf("start after submit: err = %v, want ErrAttemptAlreadySubmitted", err)
	}
}

func TestStartConcurrentFirstAttempt(t *testing.T) {
	db := attemptTestDB(t)
	svc := newAttemptService(db)
	exam := seedPublishedExam(t, db)
	const studentID = 12

	// 并发首考：所有请求都应成功并拿到同一次作答
	const workers = 4
	results := make([]*StartAttemptResult, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = svc.Start(studentID, exam.ID, 0)
		}(i)
	}
	wg.Wait()

	for i := 0; i < workers; i++ {
		if errs[i] != nil {
			t.Fatalf("worker %d: %v", i, errs[i])
		}
		if results[i].AttemptID != results[0].AttemptID {
			t.Fatalf("worker %d got attempt %d, want %d", i, results[i].AttemptID, results[0].AttemptID)
		}
	}

	var count int64
	if err := db.Model(&model.ExamAttempt{}).
		Where("exam_id = ? AND student_id = ?", exam.ID, studentID).
		Count(&count).Error; err != nil {
		t.Fatalf("count attempts: %v", err)
	}
	if count != 1 {
		t.Errorf("attempts = %d, want 1", count)
	}
}
