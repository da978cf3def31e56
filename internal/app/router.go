package app

import (
	"lms_backend/docs"
	"lms_backend/internal/config"
	"lms_backend/internal/middleware"
	"lms_backend/internal/model"
	"lms_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerTeacherRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.Health)
		public.POST("/auth/register", c.auth.Register)
		public.POST("/auth/login", c.auth.Login)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/auth/me", c.auth.Me)
	rg.PUT("/users/profile", c.user.UpdateProfile)

	// 课程与项目浏览
	rg.GET("/courses", c.course.List)
	rg.GET("/courses/:id", c.course.Get)
	rg.GET("/courses/:id/sessions", c.course.ListSessions)
	rg.GET("/courses/:id/exams", c.exam.ListByCourse)
	rg.GET("/programs", c.course.ListPrograms)
	rg.GET("/programs/:id", c.course.GetProgram)
	rg.GET("/programs/:id/exams", c.exam.ListByProgram)

	// 选课
	rg.POST("/enrollments", c.enrollment.Enroll)
	rg.DELETE("/enrollments/:courseId", c.enrollment.Unenroll)
	rg.POST("/enrollments/programs", c.enrollment.EnrollProgram)
	rg.GET("/enrollments/student/:studentId", c.enrollment.ListByStudent)

	// 在线考试
	exams := rg.Group("/student-programs")
	{
		exams.POST("/exams/:examId/start", c.attempt.Start)
		exams.POST("/exams/attempt/:attemptId/answer", c.attempt.Answer)
		exams.POST("/exams/attempt/:attemptId/tab-switch", c.attempt.TabSwitch)
		exams.POST("/exams/attempt/:attemptId/submit", c.attempt.Submit)
		exams.GET("/exams/attempt/:attemptId/result", c.attempt.Result)
		exams.GET("/:programId/grade", c.attempt.ProgramGrade)
	}

	// 出勤
	rg.POST("/sessions/:sessionId/join", c.attendance.Join)
	rg.GET("/attendance/student/:studentId", c.attendance.ListByStudent)

	// 成绩与学情
	rg.GET("/grades/student/:studentId", c.grade.StudentGrades)
	rg.GET("/analytics/student/:studentId", c.analytics.Student)

	// 证书
	rg.GET("/certificates/student/:studentId", c.certificate.ListByStudent)
}

func (a *App) registerTeacherRoutes(rg *gin.RouterGroup, c *controllers) {
	teacher := rg.Group("")
	teacher.Use(middleware.RoleMiddleware(model.Teacher))
	{
		teacher.POST("/courses", c.course.Create)
		teacher.POST("/courses/:id/sessions", c.course.CreateSession)
		teacher.GET("/enrollments/course/:courseId", c.enrollment.ListByCourse)

		// 试卷管理
		teacher.POST("/teacher/exams", c.exam.Create)
		teacher.GET("/teacher/exams/:id", c.exam.Get)
		teacher.POST("/teacher/exams/:id/publish", c.exam.Publish)

		// 点名
		teacher.POST("/sessions/:sessionId/attendance", c.attendance.Mark)
		teacher.POST("/sessions/:sessionId/attendance/batch", c.attendance.BatchMark)
		teacher.GET("/sessions/:sessionId/attendance", c.attendance.ListBySession)

		// 成绩重算
		teacher.POST("/grades/calculate/course/:courseId", c.grade.CalculateCourse)
		teacher.POST("/grades/calculate/program/:programId", c.grade.CalculateProgram)
		teacher.POST("/grades/calculate/all/:studentId", c.grade.CalculateAll)

		// 统计
		teacher.GET("/analytics/course/:courseId", c.analytics.Course)
		teacher.GET("/analytics/teacher/:teacherId", c.analytics.Teacher)

		// 证书签发
		teacher.POST("/certificates", c.certificate.Issue)
		teacher.POST("/certificates/:id/revoke", c.certificate.Revoke)
	}
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	admin := rg.Group("")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/users", c.user.List)
		admin.GET("/users/:id", c.user.Get)

		admin.GET("/analytics/overview", c.analytics.Overview)
		admin.GET("/analytics/export", c.analytics.Export)
	}
}
