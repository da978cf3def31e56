package model

// swagger:model Exam
type Exam struct {
	BaseModel
	Title        string         `gorm:"size:200;not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	CourseID     *uint          `gorm:"index;type:bigint unsigned" json:"courseId,omitempty"`
	ProgramID    *uint          `gorm:"index;type:bigint unsigned" json:"programId,omitempty"`
	TotalPoints  int            `gorm:"default:0" json:"totalPoints"`
	TimeLimit    int            `gorm:"default:0" json:"timeLimit"` // 分钟，0 表示不限时；服务端不做超时自动交卷
	MaxTabSwitch int            `gorm:"default:3" json:"maxTabSwitch"`
	IsPublished  bool           `gorm:"default:false" json:"isPublished"`
	Questions    []ExamQuestion `gorm:"foreignKey:ExamID" json:"questions,omitempty"`
}

func (Exam) TableName() string {
	return "exams"
}

// swagger:model ExamQuestion
type ExamQuestion struct {
	BaseModel
	ExamID  uint         `gorm:"index;type:bigint unsigned" json:"examId"`
	Text    string       `gorm:"type:text" json:"text"`
	Points  int          `gorm:"default:0" json:"points"`
	Order   int          `gorm:"default:0" json:"order"`
	Choices []ExamChoice `gorm:"foreignKey:QuestionID" json:"choices,omitempty"`
}

func (ExamQuestion) TableName() string {
	return "exam_questions"
}

// ExamChoice 选项，每题业务上恰有一个 IsCorrect=true（数据库不强制）
type ExamChoice struct {
	BaseModel
	QuestionID uint   `gorm:"index;type:bigint unsigned" json:"questionId"`
	Text       string `gorm:"type:text" json:"text"`
	IsCorrect  bool   `gorm:"default:false" json:"-"`
	Order      int    `gorm:"default:0" json:"order"`
}

func (ExamChoice) TableName() string {
	return "exam_choices"
}
