package controller

import (
	"lms_backend/internal/model"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type GradeController struct {
	GradeService *service.GradeService
}

func NewGradeController(gradeService *service.GradeService) *GradeController {
	return &GradeController{GradeService: gradeService}
}

// @Summary 查询学生全部成绩记录
// @Tags 成绩
// @Produce json
// @Security ApiKeyAuth
// @Param studentId path int true "学生ID"
// @Success 200 {object} util.Response
// @Router /api/grades/student/{studentId} [get]
func (c *GradeController) StudentGrades(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	studentID := util.MustParseUint(ctx.Param("studentId"))
	if studentID == 0 {
		util.BadRequest(ctx, "invalid student id")
		return
	}
	// 学生只能查自己的成绩
	if user.Role == model.Student && user.UserID != studentID {
		util.Forbidden(ctx)
		return
	}

	grades, err := c.GradeService.GetStudentGrades(studentID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, grades)
}

// @Summary 重算某学生某课程成绩（幂等覆盖）
// @Tags 成绩
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "课程ID"
// @Param body body object true "{studentId}"
// @Success 200 {object} util.Response
// @Router /api/grades/calculate/course/{courseId} [post]
func (c *GradeController) CalculateCourse(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("courseId"))
	if courseID == 0 {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	var body struct {
		StudentID uint `json:"studentId" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	grade, err := c.GradeService.CalculateCourseGrade(body.StudentID, courseID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, grade)
}

// @Summary 重算某学生某项目成绩（幂等覆盖）
// @Tags 成绩
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param programId path int true "项目ID"
// @Param body body object true "{studentId}"
// @Success 200 {object} util.Response
// @Router /api/grades/calculate/program/{programId} [post]
func (c *GradeController) CalculateProgram(ctx *gin.Context) {
	programID := util.MustParseUint(ctx.Param("programId"))
	if programID == 0 {
		util.BadRequest(ctx, "invalid program id")
		return
	}

	var body struct {
		StudentID uint `json:"studentId" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	grade, err := c.GradeService.CalculateProgramGrade(body.StudentID, programID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, grade)
}

// @Summary 重算某学生的全部选课与项目成绩
// @Tags 成绩
// @Produce json
// @Security ApiKeyAuth
// @Param studentId path int true "学生ID"
// @Success 200 {object} util.Response
// @Router /api/grades/calculate/all/{studentId} [post]
func (c *GradeController) CalculateAll(ctx *gin.Context) {
	studentID := util.MustParseUint(ctx.Param("studentId"))
	if studentID == 0 {
		util.BadRequest(ctx, "invalid student id")
		return
	}

	grades, err := c.GradeService.CalculateAllStudentGrades(studentID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, grades)
}
