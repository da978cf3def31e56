package service

import (
	"testing"

	"lms_backend/internal/config"
)

func TestLetterScale(t *testing.T) {
	cfg := DefaultGradeConfig()

	tests := []struct {
		final      float64
		wantLetter string
		wantGPA    float64
	}{
		{100, "A", 4.0},
		{93, "A", 4.0},
		{92.99, "A-", 3.7},
		{90, "A-", 3.7},
		{87, "B+", 3.3},
		{83, "B", 3.0},
		{80, "B-", 2.7},
		{77, "C+", 2.3},
		{73, "C", 2.0},
		{70, "C-", 1.7},
		{60, "D", 1.0},
		{59.99, "F", 0.0},
		{0, "F", 0.0},
	}

	for _, tt := range tests {
		letter, gpa := cfg.Letter(tt.final)
		if letter != tt.wantLetter || gpa != tt.wantGPA {
			t.Errorf("Letter(%v) = (%s, %v), want (%s, %v)", tt.final, letter, gpa, tt.wantLetter, tt.wantGPA)
		}
	}
}

func TestCompose(t *testing.T) {
	cfg := DefaultGradeConfig()

	// 考试均分 80、出勤率 70% → 80*0.7 + 70*0.3 = 77 → C+
	final := cfg.Compose(80, 70)
	if final != 77 {
		t.Fatalf("Compose(80, 70) = %v, want 77", final)
	}
	letter, gpa := cfg.Letter(final)
	if letter != "C+" || gpa != 2.3 {
		t.Errorf("Letter(77) = (%s, %v), want (C+, 2.3)", letter, gpa)
	}
}

func TestComposeBounds(t *testing.T) {
	cfg := DefaultGradeConfig()

	// 输入在 [0,100] 时合成结果也在 [0,100]
	for exam := 0.0; exam <= 100; exam += 25 {
		for attend := 0.0; attend <= 100; attend += 25 {
			final := cfg.Compose(exam, attend)
			if final < 0 || final > 100 {
				t.Errorf("Compose(%v, %v) = %v out of range", exam, attend, final)
			}
		}
	}
}

func TestMeanOfScores(t *testing.T) {
	if got := meanOfScores(nil); got != 0 {
		t.Errorf("meanOfScores(nil) = %v, want 0", got)
	}
	if got := meanOfScores([]int{80, 90}); got != 85 {
		t.Errorf("meanOfScores([80 90]) = %v, want 85", got)
	}
	if got := meanOfScores([]int{70}); got != 70 {
		t.Errorf("meanOfScores([70]) = %v, want 70", got)
	}
}

func TestRound2(t *testing.T) {
	if got := round2(33.333333); got != 33.33 {
		t.Errorf("round2(33.333333) = %v, want 33.33", got)
	}
	if got := round2(66.666666); got != 66.67 {
		t.Errorf("round2(66.666666) = %v, want 66.67", got)
	}
}

func TestGradeConfigFromSettings(t *testing.T) {
	// 未配置时用默认权重
	cfg := GradeConfigFromSettings(config.GradingConfig{})
	if cfg.ExamWeight != 0.7 || cfg.AttendanceWeight != 0.3 {
		t.Errorf("default weights = (%v, %v), want (0.7, 0.3)", cfg.ExamWeight, cfg.AttendanceWeight)
	}

	// 配置覆盖权重，等级表保持默认
	cfg = GradeConfigFromSettings(config.GradingConfig{ExamWeight: 0.6, AttendanceWeight: 0.4})
	if cfg.ExamWeight != 0.6 || cfg.AttendanceWeight != 0.4 {
		t.Errorf("overridden weights = (%v, %v), want (0.6, 0.4)", cfg.ExamWeight, cfg.AttendanceWeight)
	}
	if len(cfg.Scale) != 10 {
		t.Errorf("scale length = %d, want 10", len(cfg.Scale))
	}
}
