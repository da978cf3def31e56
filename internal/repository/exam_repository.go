package repository

import (
	"lms_backend/internal/model"

	"gorm.io/gorm"
)

type ExamRepository struct {
	DB *gorm.DB
}

func NewExamRepository(db *gorm.DB) *ExamRepository {
	return &ExamRepository{DB: db}
}

// CreateWithQuestions 事务内创建考卷、题目与选项，并汇总 TotalPoints
func (r *ExamRepository) CreateWithQuestions(exam *model.Exam) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		total := 0
		for i := range exam.Questions {
			exam.Questions[i].Order = i + 1
			total += exam.Questions[i].Points
			for j := range exam.Questions[i].Choices {
				exam.Questions[i].Choices[j].Order = j + 1
			}
		}
		exam.TotalPoints = total
		return tx.Create(exam).Error
	})
}

func (r *ExamRepository) FindByID(id uint) (*model.Exam, error) {
	var exam model.Exam
	err := r.DB.Preload("Questions", func(db *gorm.DB) *gorm.DB {
		return db.Order("`order` ASC")
	}).Preload("Questions.Choices", func(db *gorm.DB) *gorm.DB {
		return db.Order("`order` ASC")
	}).First(&exam, id).Error
	if err != nil {
		return nil, err
	}
	return &exam, nil
}

func (r *ExamRepository) Update(exam *model.Exam) error {
	return r.DB.Save(exam).Error
}

func (r *ExamRepository) ListByCourse(courseID uint) ([]model.Exam, error) {
	var exams []model.Exam
	err := r.DB.Where("course_id = ?", courseID).Find(&exams).Error
	return exams, err
}

func (r *ExamRepository) ListByProgram(programID uint) ([]model.Exam, error) {
	var exams []model.Exam
	err := r.DB.Where("program_id = ?", programID).Find(&exams).Error
	return exams, err
}
