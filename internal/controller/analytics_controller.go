package controller

import (
	"fmt"
	"net/http"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	AnalyticsService *service.AnalyticsService
}

func NewAnalyticsController(analyticsService *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{AnalyticsService: analyticsService}
}

// parseRange 解析 from/to 查询参数，缺省为最近 30 天
func parseRange(ctx *gin.Context) (time.Time, time.Time, error) {
	now := time.Now()
	from := now.AddDate(0, 0, -30)
	to := now

	if v := ctx.Query("from"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return from, to, fmt.Errorf("invalid from date: %w", err)
		}
		from = parsed
	}
	if v := ctx.Query("to"); v != "" {
		parsed, err := time.Parse("2006-01-02", v)
		if err != nil {
			return from, to, fmt.Errorf("invalid to date: %w", err)
		}
		to = parsed.AddDate(0, 0, 1)
	}
	return from, to, nil
}

// @Summary 全站运营汇总（缓存 60 秒）
// @Tags 统计
// @Produce json
// @Security ApiKeyAuth
// @Param from query string false "起始日期 YYYY-MM-DD"
// @Param to query string false "截止日期 YYYY-MM-DD"
// @Success 200 {object} util.Response
// @Router /api/analytics/overview [get]
func (c *AnalyticsController) Overview(ctx *gin.Context) {
	from, to, err := parseRange(ctx)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	overview, err := c.AnalyticsService.GetSystemOverview(ctx.Request.Context(), from, to)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, overview)
}

// @Summary 单课程统计：出勤率、分数分布、风险学生
// @Tags 统计
// @Produce json
// @Security ApiKeyAuth
// @Param courseId path int true "课程ID"
// @Success 200 {object} util.Response
// @Router /api/analytics/course/{courseId} [get]
func (c *AnalyticsController) Course(ctx *gin.Context) {
	courseID := util.MustParseUint(ctx.Param("courseId"))
	if courseID == 0 {
		util.BadRequest(ctx, "invalid course id")
		return
	}

	analytics, err := c.AnalyticsService.GetCourseAnalytics(courseID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, analytics)
}

// @Summary 学生个人学情：GPA、各课程进度、近期动态
// @Tags 统计
// @Produce json
// @Security ApiKeyAuth
// @Param studentId path int true "学生ID"
// @Success 200 {object} util.Response
// @Router /api/analytics/student/{studentId} [get]
func (c *AnalyticsController) Student(ctx *gin.Context) {
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

	analytics, err := c.AnalyticsService.GetStudentAnalytics(studentID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, analytics)
}

// @Summary 教师名下课程与项目的汇总
// @Tags 统计
// @Produce json
// @Security ApiKeyAuth
// @Param teacherId path int true "教师ID"
// @Success 200 {object} util.Response
// @Router /api/analytics/teacher/{teacherId} [get]
func (c *AnalyticsController) Teacher(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}
	teacherID := util.MustParseUint(ctx.Param("teacherId"))
	if teacherID == 0 {
		util.BadRequest(ctx, "invalid teacher id")
		return
	}
	if user.Role == model.Teacher && user.UserID != teacherID {
		util.Forbidden(ctx)
		return
	}

	analytics, err := c.AnalyticsService.GetTeacherAnalytics(teacherID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, analytics)
}

// @Summary 导出 CSV（type=overview 或 type=course）
// @Tags 统计
// @Produce text/csv
// @Security ApiKeyAuth
// @Param type query string true "导出类型"
// @Param courseId query int false "课程ID（type=course 时必填）"
// @Success 200 {string} string "CSV 内容"
// @Router /api/analytics/export [get]
func (c *AnalyticsController) Export(ctx *gin.Context) {
	if format := ctx.DefaultQuery("format", "csv"); format != "csv" {
		util.BadRequest(ctx, "only csv export is supported")
		return
	}
	exportType := ctx.Query("type")
	courseID := util.MustParseUint(ctx.DefaultQuery("courseId", "0"))
	from, to, err := parseRange(ctx)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	data, err := c.AnalyticsService.ExportCSV(ctx.Request.Context(), exportType, courseID, from, to)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}

	filename := fmt.Sprintf("analytics_%s_%s.csv", exportType, time.Now().Format("20060102"))
	ctx.Header("Content-Disposition", "attachment; filename="+filename)
	ctx.Data(http.StatusOK, "text/csv", data)
}
