package service

import (
	"testing"

	"lms_backend/internal/model"
)

func TestScoreAttempt(t *testing.T) {
	points := map[uint]int{1: 5, 2: 5, 3: 5}

	tests := []struct {
		name    string
		answers []model.ExamAnswer
		want    int
	}{
		{
			name: "one correct of three",
			answers: []model.ExamAnswer{
				{QuestionID: 1, IsCorrect: true},
				{QuestionID: 2, IsCorrect: false},
				{QuestionID: 3, IsCorrect: false},
			},
			want: 5,
		},
		{
			name: "all correct",
			answers: []model.ExamAnswer{
				{QuestionID: 1, IsCorrect: true},
				{QuestionID: 2, IsCorrect: true},
				{QuestionID: 3, IsCorrect: true},
			},
			want: 15,
		},
		{
			name:    "no answers scores zero",
			answers: nil,
			want:    0,
		},
		{
			name: "unanswered questions count as zero",
			answers: []model.ExamAnswer{
				{QuestionID: 2, IsCorrect: true},
			},
			want: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scoreAttempt(points, tt.answers)
			if got != tt.want {
				t.Errorf("scoreAttempt() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPercentOf(t *testing.T) {
	tests := []struct {
		score, total int
		want         float64
	}{
		{5, 15, 33.33},
		{15, 15, 100},
		{0, 15, 0},
		{0, 0, 0},  // 空试卷不产生 NaN
		{10, -1, 0},
		{1, 3, 33.33},
	}

	for _, tt := range tests {
		if got := percentOf(tt.score, tt.total); got != tt.want {
			t.Errorf("percentOf(%d, %d) = %v, want %v", tt.score, tt.total, got, tt.want)
		}
	}
}

func TestNextTabSwitchState(t *testing.T) {
	// 阈值 3：第 3 次切屏被标记
	status, count := nextTabSwitchState(model.AttemptInProgress, 0, 3)
	if status != model.AttemptInProgress || count != 1 {
		t.Fatalf("first switch: got (%s, %d), want (IN_PROGRESS, 1)", status, count)
	}

	status, count = nextTabSwitchState(status, count, 3)
	if status != model.AttemptInProgress || count != 2 {
		t.Fatalf("second switch: got (%s, %d), want (IN_PROGRESS, 2)", status, count)
	}

	status, count = nextTabSwitchState(status, count, 3)
	if status != model.AttemptFlagged || count != 3 {
		t.Fatalf("third switch: got (%s, %d), want (FLAGGED, 3)", status, count)
	}

	// FLAGGED 单调：继续切屏只涨计数不回退状态
	status, count = nextTabSwitchState(status, count, 3)
	if status != model.AttemptFlagged || count != 4 {
		t.Fatalf("fourth switch: got (%s, %d), want (FLAGGED, 4)", status, count)
	}
}

func TestNextTabSwitchStateZeroThreshold(t *testing.T) {
	// 阈值为 0 时不做标记，只计数
	status, count := nextTabSwitchState(model.AttemptInProgress, 99, 0)
	if status != model.AttemptInProgress || count != 100 {
		t.Fatalf("got (%s, %d), want (IN_PROGRESS, 100)", status, count)
	}
}

func TestSanitizeExamHidesAnswers(t *testing.T) {
	exam := &model.Exam{
		Title:        "期中测验",
		TotalPoints:  10,
		MaxTabSwitch: 3,
		Questions: []model.ExamQuestion{
			{
				Text:   "1+1=?",
				Points: 10,
				Order:  1,
				Choices: []model.ExamChoice{
					{Text: "1", IsCorrect: false, Order: 1},
					{Text: "2", IsCorrect: true, Order: 2},
				},
			},
		},
	}

	view := sanitizeExam(exam)
	if len(view.Questions) != 1 {
		t.Fatalf("questions = %d, want 1", len(view.Questions))
	}
	if len(view.Questions[0].Choices) != 2 {
		t.Fatalf("choices = %d, want 2", len(view.Questions[0].Choices))
	}
	// ChoiceView 里没有 IsCorrect 字段，这里只验证选项内容与顺序完整
	if view.Questions[0].Choices[1].Text != "2" || view.Questions[0].Choices[1].Order != 2 {
		t.Errorf("unexpected choice view: %+v", view.Questions[0].Choices[1])
	}
	if view.TotalPoints != 10 || view.MaxTabSwitch != 3 {
		t.Errorf("unexpected exam view: %+v", view)
	}
}
