package controller

import (
	"lms_backend/internal/model"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AttendanceController struct {
	AttendanceService *service.AttendanceService
}

func NewAttendanceController(attendanceService *service.AttendanceService) *AttendanceController {
	return &AttendanceController{AttendanceService: attendanceService}
}

// @Summary 学生进入课堂，自动记出勤
// @Tags 出勤
// @Produce json
// @Security ApiKeyAuth
// @Param sessionId path int true "课次ID"
// @Success 200 {object} util.Response
// @Router /api/sessions/{sessionId}/join [post]
func (c *AttendanceController) Join(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	sessionID := util.MustParseUint(ctx.Param("sessionId"))
	if sessionID == 0 {
		util.BadRequest(ctx, "invalid session id")
		return
	}

	record, err := c.AttendanceService.JoinSession(user.UserID, sessionID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, record)
}

// @Summary 教师单个点名（覆盖已有记录）
// @Tags 出勤
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param sessionId path int true "课次ID"
// @Param body body object true "{studentId, status}"
// @Success 200 {object} util.Response
// @Router /api/sessions/{sessionId}/attendance [post]
func (c *AttendanceController) Mark(ctx *gin.Context) {
	sessionID := util.MustParseUint(ctx.Param("sessionId"))
	if sessionID == 0 {
		util.BadRequest(ctx, "invalid session id")
		return
	}

	var body struct {
		StudentID uint                   `json:"studentId" binding:"required"`
		Status    model.AttendanceStatus `json:"status" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	if body.Status != model.AttendancePresent && body.Status != model.AttendanceAbsent {
		util.BadRequest(ctx, "status must be PRESENT or ABSENT")
		return
	}

	record, err := c.AttendanceService.MarkAttendance(sessionID, body.StudentID, body.Status)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, record)
}

// @Summary 教师批量点名（事务内整体生效）
// @Tags 出勤
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param sessionId path int true "课次ID"
// @Param body body object true "{items: [{studentId, status}]}"
// @Success 200 {object} util.Response
// @Router /api/sessions/{sessionId}/attendance/batch [post]
func (c *AttendanceController) BatchMark(ctx *gin.Context) {
	sessionID := util.MustParseUint(ctx.Param("sessionId"))
	if sessionID == 0 {
		util.BadRequest(ctx, "invalid session id")
		return
	}

	var body struct {
		Items []service.BatchAttendanceItem `json:"items" binding:"required,dive"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	for _, item := range body.Items {
		if item.Status != model.AttendancePresent && item.Status != model.AttendanceAbsent {
			util.BadRequest(ctx, "status must be PRESENT or ABSENT")
			return
		}
	}

	if err := c.AttendanceService.BatchMark(sessionID, body.Items); err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, gin.H{"marked": len(body.Items)})
}

// @Summary 查询课次的出勤记录
// @Tags 出勤
// @Produce json
// @Security ApiKeyAuth
// @Param sessionId path int true "课次ID"
// @Success 200 {object} util.Response
// @Router /api/sessions/{sessionId}/attendance [get]
func (c *AttendanceController) ListBySession(ctx *gin.Context) {
	sessionID := util.MustParseUint(ctx.Param("sessionId"))
	if sessionID == 0 {
		util.BadRequest(ctx, "invalid session id")
		return
	}

	records, err := c.AttendanceService.ListSessionAttendance(sessionID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, records)
}

// @Summary 查询学生的出勤记录
// @Tags 出勤
// @Produce json
// @Security ApiKeyAuth
// @Param studentId path int true "学生ID"
// @Success 200 {object} util.Response
// @Router /api/attendance/student/{studentId} [get]
func (c *AttendanceController) ListByStudent(ctx *gin.Context) {
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
	if user.Role == model.Student && user.UserID != studentID {
		util.Forbidden(ctx)
		return
	}

	records, err := c.AttendanceService.ListStudentAttendance(studentID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, records)
}
