package controller

import (
	"errors"

	"word_duel_backend/internal/service"
	"word_duel_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ReportController struct {
	ReportService *service.ReportService
}

func NewReportController(reportService *service.ReportService) *ReportController {
	return &ReportController{ReportService: reportService}
}

// Leaderboard godoc
// @Summary 好友圈积分榜
// @Description 统计自己和好友的累计得分排名
// @Tags 战绩
// @Produce  json
// @Security BearerAuth
// @Param   period query string false "统计周期 daily/weekly/all" default(weekly)
// @Param   limit query int false "榜单长度" default(20)
// @Success 200 {object} util.Response{data=[]service.LeaderboardEntry}
// @Router /api/leaderboard [get]
func (c *ReportController) Leaderboard(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	period := ctx.DefaultQuery("period", "weekly")
	limit := util.ParseIntOr(ctx.Query("limit"), 20)

	entries, err := c.ReportService.Leaderboard(claims.UserID, period, limit)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, entries)
}

// Weekly godoc
// @Summary 个人学习周报
// @Description 近七天作答量、正确率、得分和掌握单词数，可指定对照对象
// @Tags 战绩
// @Produce  json
// @Security BearerAuth
// @Param   partner query string false "对照用户名"
// @Success 200 {object} util.Response{data=service.WeeklyReport}
// @Failure 404 {object} util.Response "对照用户不存在"
// @Router /api/reports/weekly [get]
func (c *ReportController) Weekly(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	report, err := c.ReportService.Weekly(claims.UserID, ctx.Query("partner"))
	if err != nil {
		if errors.Is(err, util.ErrUserNotFound) {
			util.NotFound(ctx, "用户不存在")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, report)
}
