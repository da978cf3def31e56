package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"time"

	"lms_backend/internal/model"
	"lms_backend/internal/repository"
	"lms_backend/internal/util"
	"lms_backend/pkg/logger"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	overviewCachePrefix = "analytics:overview"
	overviewCacheTTL    = 60 * time.Second
	trendDays           = 7
	atRiskAttendance    = 60.0 // 出勤率低于 60% 视为风险学生
	atRiskExam          = 60.0 // 平均考分低于 60 视为风险学生
)

// overviewCacheKey 缓存键带上统计区间，不同区间的结果互不串用
func overviewCacheKey(from, to time.Time) string {
	return fmt.Sprintf("%s:%s:%s", overviewCachePrefix, from.Format("2006-01-02"), to.Format("2006-01-02"))
}

type AnalyticsService struct {
	AnalyticsRepo  *repository.AnalyticsRepository
	UserRepo       *repository.UserRepository
	EnrollmentRepo *repository.EnrollmentRepository
	SessionRepo    *repository.SessionRepository
	AttendanceRepo *repository.AttendanceRepository
	GradeRepo      *repository.GradeRepository
	CertRepo       *repository.CertificateRepository
	ActivityRepo   *repository.ActivityRepository
	CourseRepo     *repository.CourseRepository
	ProgramRepo    *repository.ProgramRepository
	Redis          *redis.Client
}

func NewAnalyticsService(
	analyticsRepo *repository.AnalyticsRepository,
	userRepo *repository.UserRepository,
	enrollmentRepo *repository.EnrollmentRepository,
	sessionRepo *repository.SessionRepository,
	attendanceRepo *repository.AttendanceRepository,
	gradeRepo *repository.GradeRepository,
	certRepo *repository.CertificateRepository,
	activityRepo *repository.ActivityRepository,
	courseRepo *repository.CourseRepository,
	programRepo *repository.ProgramRepository,
	rdb *redis.Client,
) *AnalyticsService {
	return &AnalyticsService{
		AnalyticsRepo:  analyticsRepo,
		UserRepo:       userRepo,
		EnrollmentRepo: enrollmentRepo,
		SessionRepo:    sessionRepo,
		AttendanceRepo: attendanceRepo,
		GradeRepo:      gradeRepo,
		CertRepo:       certRepo,
		ActivityRepo:   activityRepo,
		CourseRepo:     courseRepo,
		ProgramRepo:    programRepo,
		Redis:          rdb,
	}
}

// buildEnrollmentTrend 生成最近 days 天的逐日选课趋势，缺数据的日期补 0，
// 顺序从最早到最近
func buildEnrollmentTrend(days int, perDay map[string]int64, now time.Time) []model.EnrollmentTrendPoint {
	trend := make([]model.EnrollmentTrendPoint, 0, days)
	for i := days - 1; i >= 0; i-- {
		day := now.AddDate(0, 0, -i).Format("2006-01-02")
		trend = append(trend, model.EnrollmentTrendPoint{
			Date:  day,
			Count: perDay[day],
		})
	}
	return trend
}

// GetSystemOverview 全站汇总。结果缓存 60 秒，缓存不可用时直接落库查询。
func (s *AnalyticsService) GetSystemOverview(ctx context.Context, from, to time.Time) (*model.SystemAnalytics, error) {
	cacheKey := overviewCacheKey(from, to)
	if s.Redis != nil {
		if cached, err := s.Redis.Get(ctx, cacheKey).Bytes(); err == nil {
			var overview model.SystemAnalytics
			if err := json.Unmarshal(cached, &overview); err == nil {
				return &overview, nil
			}
		}
	}

	usersByRole, err := s.UserRepo.CountByRole()
	if err != nil {
		return nil, err
	}
	total, active, err := s.AnalyticsRepo.CountEnrollments()
	if err != nil {
		return nil, err
	}
	certs, err := s.CertRepo.CountIssuedInRange(from, to)
	if err != nil {
		return nil, err
	}
	events, err := s.ActivityRepo.CountByTypeInRange(from, to)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	dau, err := s.ActivityRepo.CountDistinctLoginsSince(now.Add(-24 * time.Hour))
	if err != nil {
		return nil, err
	}
	perDay, err := s.AnalyticsRepo.EnrollmentsPerDay(now.AddDate(0, 0, -trendDays), now.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	overview := &model.SystemAnalytics{
		UsersByRole:        usersByRole,
		TotalEnrollments:   total,
		ActiveEnrollments:  active,
		CertificatesIssued: certs,
		EventCounts:        events,
		DailyActiveUsers:   dau,
		EnrollmentTrends:   buildEnrollmentTrend(trendDays, perDay, now),
		GeneratedAt:        now,
	}

	if s.Redis != nil {
		if data, err := json.Marshal(overview); err == nil {
			if err := s.Redis.Set(ctx, cacheKey, data, overviewCacheTTL).Err(); err != nil {
				logger.Log.Warn("failed to cache analytics overview", zap.Error(err))
			}
		}
	}
	return overview, nil
}

// GetCourseAnalytics 单课程汇总。风险名单用分组聚合一次查出每个学生的
// 出勤与考分，不做逐学生循环查询。
func (s *AnalyticsService) GetCourseAnalytics(courseID uint) (*model.CourseAnalytics, error) {
	enrollments, err := s.EnrollmentRepo.ListByCourse(courseID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	sessionCount, err := s.SessionRepo.CountPastClassSessions(courseID, now)
	if err != nil {
		return nil, err
	}
	attendanceCount, err := s.AttendanceRepo.CountByCourse(courseID)
	if err != nil {
		return nil, err
	}
	avgExam, err := s.AnalyticsRepo.AverageExamScoreByCourse(courseID)
	if err != nil {
		return nil, err
	}
	distribution, err := s.GradeRepo.LetterDistributionByCourse(courseID)
	if err != nil {
		return nil, err
	}

	attendanceRate := 0.0
	if sessionCount > 0 && len(enrollments) > 0 {
		attendanceRate = round2(float64(attendanceCount) / float64(sessionCount*int64(len(enrollments))) * 100)
	}

	var graded, nonF int64
	for _, d := range distribution {
		graded += d.Count
		if d.LetterGrade != "F" {
			nonF += d.Count
		}
	}
	completionRate := 0.0
	if graded > 0 {
		completionRate = round2(float64(nonF) / float64(graded) * 100)
	}

	presentCounts, err := s.AnalyticsRepo.PresentCountsByCourse(courseID, now)
	if err != nil {
		return nil, err
	}
	examAverages, err := s.AnalyticsRepo.ExamAveragesByCourse(courseID)
	if err != nil {
		return nil, err
	}

	var atRisk []model.AtRiskStudent
	for _, e := range enrollments {
		attendancePercent := 0.0
		if sessionCount > 0 {
			attendancePercent = round2(float64(presentCounts[e.StudentID]) / float64(sessionCount) * 100)
		}
		examAverage := round2(examAverages[e.StudentID])
		if attendancePercent >= atRiskAttendance && examAverage >= atRiskExam {
			continue
		}
		student, err := s.UserRepo.FindByID(e.StudentID)
		if err != nil {
			return nil, err
		}
		atRisk = append(atRisk, model.AtRiskStudent{
			StudentID:         e.StudentID,
			Name:              student.Name,
			AttendancePercent: attendancePercent,
			ExamAverage:       examAverage,
		})
	}

	return &model.CourseAnalytics{
		CourseID:        courseID,
		EnrollmentCount: int64(len(enrollments)),
		SessionCount:    sessionCount,
		AttendanceRate:  attendanceRate,
		AverageExam:     round2(avgExam),
		GradeBreakdown:  distribution,
		CompletionRate:  completionRate,
		AtRiskStudents:  atRisk,
	}, nil
}

func (s *AnalyticsService) GetStudentAnalytics(studentID uint) (*model.StudentAnalytics, error) {
	grades, err := s.GradeRepo.ListByStudent(studentID)
	if err != nil {
		return nil, err
	}

	var gpaSum float64
	var courses []model.CourseProgress
	for _, g := range grades {
		gpaSum += g.GPA
		if g.CourseID == nil {
			continue
		}
		course, err := s.CourseRepo.FindByID(*g.CourseID)
		if err != nil {
			return nil, err
		}
		courses = append(courses, model.CourseProgress{
			CourseID:    course.ID,
			CourseTitle: course.Title,
			FinalGrade:  g.FinalGrade,
			LetterGrade: g.LetterGrade,
			GPA:         g.GPA,
		})
	}
	overallGPA := 0.0
	if len(grades) > 0 {
		overallGPA = round2(gpaSum / float64(len(grades)))
	}

	activity, err := s.ActivityRepo.ListRecentByUser(studentID, 20)
	if err != nil {
		return nil, err
	}

	return &model.StudentAnalytics{
		StudentID:      studentID,
		OverallGPA:     overallGPA,
		Courses:        courses,
		RecentActivity: activity,
	}, nil
}

func (s *AnalyticsService) GetTeacherAnalytics(teacherID uint) (*model.TeacherAnalytics, error) {
	courses, err := s.CourseRepo.ListByTeacher(teacherID)
	if err != nil {
		return nil, err
	}
	programs, err := s.ProgramRepo.ListByTeacher(teacherID)
	if err != nil {
		return nil, err
	}

	courseIDs := make([]uint, 0, len(courses))
	for _, c := range courses {
		courseIDs = append(courseIDs, c.ID)
	}
	enrollmentCount, err := s.AnalyticsRepo.CountEnrollmentsByCourseIDs(courseIDs)
	if err != nil {
		return nil, err
	}
	sessionCount, err := s.SessionRepo.CountByCourseIDs(courseIDs)
	if err != nil {
		return nil, err
	}
	certCount, err := s.CertRepo.CountByCourseIDs(courseIDs)
	if err != nil {
		return nil, err
	}

	return &model.TeacherAnalytics{
		TeacherID:          teacherID,
		CourseCount:        int64(len(courses)),
		ProgramCount:       int64(len(programs)),
		EnrollmentCount:    enrollmentCount,
		SessionCount:       sessionCount,
		CertificatesIssued: certCount,
	}, nil
}

// ExportCSV 导出汇总数据。type=overview 导出全站指标，type=course 导出
// 指定课程的成绩分布与风险名单。
func (s *AnalyticsService) ExportCSV(ctx context.Context, exportType string, courseID uint, from, to time.Time) ([]byte, error) {
	var records [][]string

	switch exportType {
	case "overview":
		overview, err := s.GetSystemOverview(ctx, from, to)
		if err != nil {
			return nil, err
		}
		records = append(records, []string{"metric", "value"})
		for role, count := range overview.UsersByRole {
			records = append(records, []string{"users_" + role, fmt.Sprintf("%d", count)})
		}
		records = append(records,
			[]string{"total_enrollments", fmt.Sprintf("%d", overview.TotalEnrollments)},
			[]string{"active_enrollments", fmt.Sprintf("%d", overview.ActiveEnrollments)},
			[]string{"certificates_issued", fmt.Sprintf("%d", overview.CertificatesIssued)},
			[]string{"daily_active_users", fmt.Sprintf("%d", overview.DailyActiveUsers)},
		)
		for _, point := range overview.EnrollmentTrends {
			records = append(records, []string{"enrollments_" + point.Date, fmt.Sprintf("%d", point.Count)})
		}
	case "course":
		analytics, err := s.GetCourseAnalytics(courseID)
		if err != nil {
			return nil, err
		}
		records = append(records, []string{"studentId", "name", "attendancePercent", "examAverage"})
		for _, student := range analytics.AtRiskStudents {
			records = append(records, []string{
				fmt.Sprintf("%d", student.StudentID),
				student.Name,
				fmt.Sprintf("%.2f", student.AttendancePercent),
				fmt.Sprintf("%.2f", student.ExamAverage),
			})
		}
	default:
		return nil, util.ErrInvalidExportType
	}

	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)
	if err := writer.WriteAll(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
