package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExamController struct {
	ExamService *service.ExamService
}

func NewExamController(examService *service.ExamService) *ExamController {
	return &ExamController{ExamService: examService}
}

// @Summary 创建试卷（含题目与选项，总分自动累加）
// @Tags 考试管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.ExamCreateRequest true "试卷内容"
// @Success 201 {object} util.Response
// @Router /api/teacher/exams [post]
func (c *ExamController) Create(ctx *gin.Context) {
	var req service.ExamCreateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	exam, err := c.ExamService.CreateExam(req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, exam)
}

// @Summary 查看试卷（教师视角，含正确答案）
// @Tags 考试管理
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "考卷ID"
// @Success 200 {object} util.Response
// @Router /api/teacher/exams/{id} [get]
func (c *ExamController) Get(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid exam id")
		return
	}

	exam, err := c.ExamService.GetExam(id)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, exam)
}

// @Summary 发布或撤回试卷
// @Tags 考试管理
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "考卷ID"
// @Param body body object true "{publish}"
// @Success 200 {object} util.Response
// @Router /api/teacher/exams/{id}/publish [post]
func (c *ExamController) Publish(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid exam id")
		return
	}

	var body struct {
		Publish *bool `json:"publish" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	exam, err := c.ExamService.PublishExam(id, *body.Publish)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, exam)
}

// @Summary 课程下的试卷列表
// @Tags 考试管理
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/courses/{courseId}/exams [get]
func (c *ExamController) ListByCourse(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("id"))
	if courseID == 0 {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	exams, err := c.ExamService.ListCourseExams(courseID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, exams)
}

// @Summary 项目下的试卷列表
// @Tags 考试管理
// @Produce json
// @Security ApiKeyAuth
// @Param programId path int true "项目ID"
// @Success 200 {object} util.Response
// @Router /api/programs/{programId}/exams [get]
func (c *ExamController) ListByProgram(ctx *gin.Context) {
	programID := util.MustParseUint(ctx.Param("id"))
	if programID == 0 {
		util.BadRequest(ctx, "invalid program id")
		return
	}

	exams, err := c.ExamService.ListProgramExams(programID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, exams)
}
