package controller

import (
	"errors"

	"word_duel_backend/internal/service"
	"word_duel_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SessionController struct {
	QuizService   *service.QuizService
	ReportService *service.ReportService
}

func NewSessionController(quizService *service.QuizService, reportService *service.ReportService) *SessionController {
	return &SessionController{
		QuizService:   quizService,
		ReportService: reportService,
	}
}

func sessionError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrSessionNotFound):
		util.NotFound(ctx, "会话不存在")
	case errors.Is(err, util.ErrNotParticipant):
		// 非参与者按不存在处理，不暴露会话存在性
		util.NotFound(ctx, "会话不存在")
	case errors.Is(err, util.ErrCannotDuelSelf):
		util.BadRequest(ctx, "不能和自己对战")
	case errors.Is(err, util.ErrEmptyWordPool):
		util.BadRequest(ctx, "练习池为空，无题可抽")
	case errors.Is(err, util.ErrWordNotFound):
		util.NotFound(ctx, "单词不存在")
	case errors.Is(err, util.ErrUserNotFound):
		util.NotFound(ctx, "对手不存在")
	case errors.Is(err, util.ErrWordlistNotFound):
		util.NotFound(ctx, "词表不存在")
	default:
		util.LogInternalError(ctx, err)
	}
}

// Create godoc
// @Summary 创建对战会话
// @Description 邀请对手创建异步对战，可配置中译英比例和练习比例
// @Tags 会话
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.CreateSessionInput true "会话配置"
// @Success 201 {object} util.Response{data=model.StudySession}
// @Failure 400 {object} util.Response "不能和自己对战"
// @Failure 404 {object} util.Response "对手或词表不存在"
// @Router /api/sessions [post]
func (c *SessionController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.CreateSessionInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	session, err := c.QuizService.CreateSession(claims.UserID, req)
	if err != nil {
		sessionError(ctx, err)
		return
	}
	util.Created(ctx, session)
}

// Get godoc
// @Summary 会话详情
// @Tags 会话
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "会话ID"
// @Success 200 {object} util.Response{data=model.StudySession}
// @Failure 404 {object} util.Response "会话不存在或非参与者"
// @Router /api/sessions/{id} [get]
func (c *SessionController) Get(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	session, err := c.QuizService.GetSession(util.MustParseUint(ctx.Param("id")), claims.UserID)
	if err != nil {
		sessionError(ctx, err)
		return
	}
	util.Success(ctx, session)
}

// NextWord godoc
// @Summary 抽下一题
// @Description 在练习池内随机抽一个单词并按比例决定方向
// @Tags 会话
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "会话ID"
// @Param   direction query string false "显式方向 zh2en/en2zh"
// @Success 200 {object} util.Response{data=service.NextWordOutput}
// @Failure 400 {object} util.Response "练习池为空"
// @Router /api/sessions/{id}/next_word [get]
func (c *SessionController) NextWord(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	out, err := c.QuizService.NextWord(util.MustParseUint(ctx.Param("id")), claims.UserID, ctx.Query("direction"))
	if err != nil {
		sessionError(ctx, err)
		return
	}
	util.Success(ctx, out)
}

// SubmitAttempt godoc
// @Summary 提交作答
// @Description 判题并记分，返回判题结果和判题器使用详情
// @Tags 会话
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "会话ID"
// @Param   body body service.SubmitAttemptInput true "作答内容"
// @Success 200 {object} util.Response{data=service.AttemptOutput}
// @Failure 404 {object} util.Response "单词不存在"
// @Router /api/sessions/{id}/attempts [post]
func (c *SessionController) SubmitAttempt(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.SubmitAttemptInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	out, err := c.QuizService.SubmitAttempt(ctx.Request.Context(), util.MustParseUint(ctx.Param("id")), claims.UserID, req)
	if err != nil {
		sessionError(ctx, err)
		return
	}
	util.Success(ctx, out)
}

// Scoreboard godoc
// @Summary 会话记分牌
// @Tags 会话
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "会话ID"
// @Success 200 {object} util.Response{data=service.Scoreboard}
// @Router /api/sessions/{id}/scoreboard [get]
func (c *SessionController) Scoreboard(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	board, err := c.ReportService.SessionScoreboard(util.MustParseUint(ctx.Param("id")), claims.UserID)
	if err != nil {
		sessionError(ctx, err)
		return
	}
	util.Success(ctx, board)
}

// Progress godoc
// @Summary 会话进度
// @Tags 会话
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "会话ID"
// @Success 200 {object} util.Response{data=service.Progress}
// @Router /api/sessions/{id}/progress [get]
func (c *SessionController) Progress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	progress, err := c.ReportService.SessionProgress(util.MustParseUint(ctx.Param("id")), claims.UserID)
	if err != nil {
		sessionError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

// Wrongbook godoc
// @Summary 会话错词本
// @Description 按单词聚合错误作答，附带错过它的用户集合
// @Tags 会话
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "会话ID"
// @Success 200 {object} util.Response{data=[]service.WrongbookEntry}
// @Router /api/sessions/{id}/wrongbook [get]
func (c *SessionController) Wrongbook(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	book, err := c.ReportService.SessionWrongbook(util.MustParseUint(ctx.Param("id")), claims.UserID)
	if err != nil {
		sessionError(ctx, err)
		return
	}
	util.Success(ctx, book)
}
