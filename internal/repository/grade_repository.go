package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GradeRepository struct {
	DB *gorm.DB
}

func NewGradeRepository(db *gorm.DB) *GradeRepository {
	return &GradeRepository{DB: db}
}

// UpsertCourseGrade 以 (student_id, course_id) 为键整体覆盖成绩记录
func (r *GradeRepository) UpsertCourseGrade(grade *model.GradeCalculation) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "course_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"exam_score", "attendance_score", "final_grade", "letter_grade", "gpa", "updated_at"}),
	}).Create(grade).Error
}

// UpsertProgramGrade 以 (student_id, program_id) 为键整体覆盖成绩记录
func (r *GradeRepository) UpsertProgramGrade(grade *model.GradeCalculation) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "student_id"}, {Name: "program_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"exam_score", "attendance_score", "final_grade", "letter_grade", "gpa", "updated_at"}),
	}).Create(grade).Error
}

func (r *GradeRepository) ListByStudent(studentID uint) ([]model.GradeCalculation, error) {
	var grades []model.GradeCalculation
	err := r.DB.Where("student_id = ?", studentID).Find(&grades).Error
	return grades, err
}

func (r *GradeRepository) FindCourseGrade(studentID, courseID uint) (*model.GradeCalculation, error) {
	var grade model.GradeCalculation
	err := r.DB.Where("student_id = ? AND course_id = ?", studentID, courseID).
		First(&grade).Error
	if err != nil {
		return nil, err
	}
	return &grade, nil
}

// LetterDistributionByCourse 按字母等级分组统计课程成绩分布
func (r *GradeRepository) LetterDistributionByCourse(courseID uint) ([]model.LetterDistribution, error) {
	var rows []model.LetterDistribution
	err := r.DB.Model(&model.GradeCalculation{}).
		Select("letter_grade, COUNT(*) as count").
		Where("course_id = ?", courseID).
		Group("letter_grade").
		Scan(&rows).Error
	return rows, err
}
