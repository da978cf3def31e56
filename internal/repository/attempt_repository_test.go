package repository

import (
	"os"
	"testing"
	"time"

	"lms_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// testDB 连接 LMS_TEST_DSN 指向的 MySQL，未设置时跳过测试。
// 例：LMS_TEST_DSN="root:root@tcp(127.0.0.1:3306)/lms_test?charset=utf8mb4&parseTime=true&loc=Local"
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("LMS_TEST_DSN")
	if dsn == "" {
		t.Skip("LMS_TEST_DSN not set, skipping database integration test")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
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
	); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	t.Cleanup(func() {
		db.Exec("DELETE FROM exam_answers")
		db.Exec("DELETE FROM exam_attempts")
		db.Exec("DELETE FROM exam_choices")
		db.Exec("DELETE FROM exam_questions")
		db.Exec("DELETE FROM exams")
	})
	return db
}

func TestSubmitIfOpenRace(t *testing.T) {
	db := testDB(t)
	repo := NewAttemptRepository(db)

	attempt := &model.ExamAttempt{
		ExamID:    1,
		StudentID: 1,
		SessionID: 0,
		Status:    model.AttemptInProgress,
	}
	if err := repo.Create(attempt); err != nil {
		t.Fatalf("create attempt: %v", err)
	}

	ok, err := repo.SubmitIfOpen(attempt.ID, 80, time.Now())
	if err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if !ok {
		t.Fatal("first submit should win")
	}

	// 第二次提交必须输掉条件更新
	ok, err = repo.SubmitIfOpen(attempt.ID, 90, time.Now())
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if ok {
		t.Fatal("second submit should lose")
	}

	got, err := repo.FindByID(attempt.ID)
	if err != nil {
		t.Fatalf("reload attempt: %v", err)
	}
	if got.Status != model.AttemptSubmitted {
		t.Errorf("status = %s, want SUBMITTED", got.Status)
	}
	if got.Score == nil || *got.Score != 80 {
		t.Errorf("score = %v, want 80 (first submit wins)", got.Score)
	}
}

func TestUpsertAnswerOverwrites(t *testing.T) {
	db := testDB(t)
	repo := NewAttemptRepository(db)

	attempt := &model.ExamAttempt{
		ExamID:    2,
		StudentID: 2,
		SessionID: 0,
		Status:    model.AttemptInProgress,
	}
	if err := repo.Create(attempt); err != nil {
		t.Fatalf("create attempt: %v", err)
	}

	first := &model.ExamAnswer{
		AttemptID:  attempt.ID,
		QuestionID: 10,
		ChoiceID:   100,
		IsCorrect:  false,
	}
	if err := repo.UpsertAnswer(first); err != nil {
		t.Fatalf("first answer: %v", err)
	}

	// 重答同一题：覆盖选项与正确性快照，不产生第二行
	second := &model.ExamAnswer{
		AttemptID:  attempt.ID,
		QuestionID: 10,
		ChoiceID:   101,
		IsCorrect:  true,
	}
	if err := repo.UpsertAnswer(second); err != nil {
		t.Fatalf("second answer: %v", err)
	}

	answers, err := repo.ListAnswers(attempt.ID)
	if err != nil {
		t.Fatalf("list answers: %v", err)
	}
	if len(answers) != 1 {
		t.Fatalf("answers = %d, want 1", len(answers))
	}
	if answers[0].ChoiceID != 101 || !answers[0].IsCorrect {
		t.Errorf("answer = %+v, want choice 101 correct", answers[0])
	}
}

func TestScoresByExamsOnlySubmitted(t *testing.T) {
	db := testDB(t)
	repo := NewAttemptRepository(db)

	score := 70
	submitted := &model.ExamAttempt{
		ExamID:    3,
		StudentID: 3,
		SessionID: 0,
		Status:    model.AttemptSubmitted,
		Score:     &score,
	}
	if err := repo.Create(submitted); err != nil {
		t.Fatalf("create submitted attempt: %v", err)
	}
	open := &model.ExamAttempt{
		ExamID:    4,
		StudentID: 3,
		SessionID: 0,
		Status:    model.AttemptInProgress,
	}
	if err := repo.Create(open); err != nil {
		t.Fatalf("create open attempt: %v", err)
	}

	scores, err := repo.ScoresByExams(3, []uint{3, 4})
	if err != nil {
		t.Fatalf("scores: %v", err)
	}
	if len(scores) != 1 || scores[0] != 70 {
		t.Errorf("scores = %v, want [70]", scores)
	}

	// 空考卷集合直接返回空，不发 SQL
	scores, err = repo.ScoresByExams(3, nil)
	if err != nil || scores != nil {
		t.Errorf("empty exam set: scores = %v, err = %v", scores, err)
	}
}
