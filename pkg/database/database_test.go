package database

import "testing"

func TestShouldMigrate(t *testing.T) {
	tests := []struct {
		mode  string
		force bool
		want  bool
	}{
		{"debug", false, true},
		{"debug", true, true},
		{"release", false, false}, // 线上默认不迁移
		{"release", true, true},   // -migrate 显式放行
		{"", false, true},
	}

	for _, tt := range tests {
		if got := ShouldMigrate(tt.mode, tt.force); got != tt.want {
			t.Errorf("ShouldMigrate(%q, %v) = %v, want %v", tt.mode, tt.force, got, tt.want)
		}
	}
}
