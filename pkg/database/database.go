package database

import (
	"fmt"
	"log"

	"lms_backend/internal/config"
	"lms_backend/internal/model"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ShouldMigrate release 模式默认跳过自动迁移，由 -migrate / -migrate-only 显式触发；
// 其他模式启动即迁移
func ShouldMigrate(mode string, force bool) bool {
	if force {
		return true
	}
	return mode != "release"
}

func InitDB(cfg *config.DatabaseConfig, runMigrations bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
		cfg.User,
		cfg.Password,
		cfg.Host,
		cfg.Port,
		cfg.DBName,
		cfg.Charset,
		cfg.ParseTime,
	)

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if !runMigrations {
		return db, nil
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Course{},
		&model.Program{},
		&model.Enrollment{},
		&model.ProgramEnrollment{},
		&model.ScheduledSession{},
		&model.SessionAttendance{},
		&model.Exam{},
		&model.ExamQuestion{},
		&model.ExamChoice{},
		&model.ExamAttempt{},
		&model.ExamAnswer{},
		&model.GradeCalculation{},
		&model.Certificate{},
		&model.ActivityLog{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	return db, nil
}
