package controller

import (
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExamAttemptController struct {
	AttemptService *service.ExamAttemptService
	GradeService   *service.GradeService
}

func NewExamAttemptController(attemptService *service.ExamAttemptService, gradeService *service.GradeService) *ExamAttemptController {
	return &ExamAttemptController{
		AttemptService: attemptService,
		GradeService:   gradeService,
	}
}

// @Summary 开始作答（已有进行中的作答时幂等返回）
// @Tags 考试
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param examId path int true "考卷ID"
// @Param body body object false "{sessionId}"
// @Success 200 {object} util.Response
// @Router /api/student-programs/exams/{examId}/start [post]
func (c *ExamAttemptController) Start(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	examID := util.MustParseUint(ctx.Param("examId"))
	if examID == 0 {
		util.BadRequest(ctx, "invalid exam id")
		return
	}

	var body struct {
		SessionID uint `json:"sessionId"`
	}
	// sessionId 可省略（自习场景），绑定失败按 0 处理
	_ = ctx.ShouldBindJSON(&body)

	result, err := c.AttemptService.Start(user.UserID, examID, body.SessionID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary 记录某题作答（重答覆盖）
// @Tags 考试
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param attemptId path int true "作答ID"
// @Param body body object true "{questionId, choiceId}"
// @Success 200 {object} util.Response
// @Router /api/student-programs/exams/attempt/{attemptId}/answer [post]
func (c *ExamAttemptController) Answer(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	attemptID := util.MustParseUint(ctx.Param("attemptId"))
	if attemptID == 0 {
		util.BadRequest(ctx, "invalid attempt id")
		return
	}

	var body struct {
		QuestionID uint `json:"questionId" binding:"required"`
		ChoiceID   uint `json:"choiceId" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.AttemptService.RecordAnswer(user.UserID, attemptID, body.QuestionID, body.ChoiceID); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"success": true})
}

// @Summary 上报切屏事件（达到阈值标记 FLAGGED，不阻断作答）
// @Tags 考试
// @Produce json
// @Security ApiKeyAuth
// @Param attemptId path int true "作答ID"
// @Success 200 {object} util.Response
// @Router /api/student-programs/exams/attempt/{attemptId}/tab-switch [post]
func (c *ExamAttemptController) TabSwitch(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	attemptID := util.MustParseUint(ctx.Param("attemptId"))
	if attemptID == 0 {
		util.BadRequest(ctx, "invalid attempt id")
		return
	}

	result, err := c.AttemptService.RecordTabSwitch(user.UserID, attemptID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary 交卷计分
// @Tags 考试
// @Produce json
// @Security ApiKeyAuth
// @Param attemptId path int true "作答ID"
// @Success 200 {object} util.Response
// @Router /api/student-programs/exams/attempt/{attemptId}/submit [post]
func (c *ExamAttemptController) Submit(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	attemptID := util.MustParseUint(ctx.Param("attemptId"))
	if attemptID == 0 {
		util.BadRequest(ctx, "invalid attempt id")
		return
	}

	result, err := c.AttemptService.Submit(user.UserID, attemptID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary 查看作答结果明细
// @Tags 考试
// @Produce json
// @Security ApiKeyAuth
// @Param attemptId path int true "作答ID"
// @Success 200 {object} util.Response
// @Router /api/student-programs/exams/attempt/{attemptId}/result [get]
func (c *ExamAttemptController) Result(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	attemptID := util.MustParseUint(ctx.Param("attemptId"))
	if attemptID == 0 {
		util.BadRequest(ctx, "invalid attempt id")
		return
	}

	result, err := c.AttemptService.GetResult(user.UserID, attemptID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary 查看项目内考试成绩聚合
// @Tags 考试
// @Produce json
// @Security ApiKeyAuth
// @Param programId path int true "项目ID"
// @Success 200 {object} util.Response
// @Router /api/student-programs/{programId}/grade [get]
func (c *ExamAttemptController) ProgramGrade(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	programID := util.MustParseUint(ctx.Param("programId"))
	if programID == 0 {
		util.BadRequest(ctx, "invalid program id")
		return
	}

	view, err := c.GradeService.GetProgramGradeView(user.UserID, programID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, view)
}
