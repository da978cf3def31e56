package controller

import (
	"lms_backend/internal/model"
	"lms_backend/internal/service"
	"lms_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CertificateController struct {
	CertificateService *service.CertificateService
}

func NewCertificateController(certificateService *service.CertificateService) *CertificateController {
	return &CertificateController{CertificateService: certificateService}
}

// @Summary 签发证书（人工操作，与成绩无自动关联）
// @Tags 证书
// @Accept json
// @Produce json
// @Security ApiKeyAuth
// @Param body body service.CertificateIssueRequest true "签发信息"
// @Success 201 {object} util.Response
// @Router /api/certificates [post]
func (c *CertificateController) Issue(ctx *gin.Context) {
	user := util.GetUserFromContext(ctx)
	if user == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CertificateIssueRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	cert, err := c.CertificateService.Issue(user.UserID, req)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Created(ctx, cert)
}

// @Summary 吊销证书
// @Tags 证书
// @Produce json
// @Security ApiKeyAuth
// @Param id path int true "证书ID"
// @Success 200 {object} util.Response
// @Router /api/certificates/{id}/revoke [post]
func (c *CertificateController) Revoke(ctx *gin.Context) {
	id := util.MustParseUint(ctx.Param("id"))
	if id == 0 {
		util.BadRequest(ctx, "invalid certificate id")
		return
	}

	cert, err := c.CertificateService.Revoke(id)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, cert)
}

// @Summary 学生的证书列表
// @Tags 证书
// @Produce json
// @Security ApiKeyAuth
// @Param studentId path int true "学生ID"
// @Success 200 {object} util.Response
// @Router /api/certificates/student/{studentId} [get]
func (c *CertificateController) ListByStudent(ctx *gin.Context) {
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

	certs, err := c.CertificateService.ListByStudent(studentID)
	if err != nil {
		handleServiceError(ctx, err)
		return
	}
	util.Success(ctx, certs)
}
