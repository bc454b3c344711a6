package controller

import (
	"errors"
	"io"

	"word_duel_backend/internal/service"
	"word_duel_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type WordlistController struct {
	WordlistService *service.WordlistService
}

func NewWordlistController(wordlistService *service.WordlistService) *WordlistController {
	return &WordlistController{WordlistService: wordlistService}
}

// Create godoc
// @Summary 创建词表
// @Description 创建词表，可随请求附带初始单词
// @Tags 词表
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.CreateWordlistInput true "词表信息"
// @Success 201 {object} util.Response{data=model.WordList}
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/wordlists [post]
func (c *WordlistController) Create(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	var req service.CreateWordlistInput
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	list, err := c.WordlistService.CreateList(claims.UserID, req)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Created(ctx, list)
}

// List godoc
// @Summary 我的词表列表
// @Tags 词表
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=[]model.WordList}
// @Router /api/wordlists [get]
func (c *WordlistController) List(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	lists, err := c.WordlistService.ListByOwner(claims.UserID)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	util.Success(ctx, lists)
}

// Words godoc
// @Summary 词表单词（分页）
// @Tags 词表
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "词表ID"
// @Param   page query int false "页码"
// @Param   page_size query int false "每页条数"
// @Success 200 {object} util.PageResponse
// @Failure 404 {object} util.Response "词表不存在"
// @Router /api/wordlists/{id}/words [get]
func (c *WordlistController) Words(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	listID := util.MustParseUint(ctx.Param("id"))
	page := util.ParseIntOr(ctx.Query("page"), 1)
	pageSize := util.ParseIntOr(ctx.Query("page_size"), 50)

	words, total, err := c.WordlistService.ListWords(listID, claims.UserID, page, pageSize)
	if err != nil {
		util.NotFound(ctx, "词表不存在")
		return
	}
	util.SuccessPage(ctx, words, total, page, pageSize)
}

type AppendWordsRequest struct {
	Words []util.WordRow `json:"words" binding:"required"`
}

// AppendWords godoc
// @Summary 追加单词
// @Description 向词表追加单词，图片识别确认后也走这里入库
// @Tags 词表
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "词表ID"
// @Param   body body AppendWordsRequest true "单词列表"
// @Success 200 {object} util.Response{data=object}
// @Failure 404 {object} util.Response "词表不存在"
// @Router /api/wordlists/{id}/words [post]
func (c *WordlistController) AppendWords(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	listID := util.MustParseUint(ctx.Param("id"))

	var req AppendWordsRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	count, err := c.WordlistService.AppendWords(listID, claims.UserID, req.Words)
	if err != nil {
		if errors.Is(err, util.ErrWordlistNotFound) {
			util.NotFound(ctx, "词表不存在")
		} else {
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, gin.H{"added": count})
}

// Preview godoc
// @Summary 预览导入文件
// @Description 解析 CSV/JSON 文件但不入库，供导入前确认
// @Tags 词表
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   file formData file true "CSV/JSON 文件"
// @Success 200 {object} util.Response{data=[]util.WordRow}
// @Failure 400 {object} util.Response "文件解析失败"
// @Router /api/wordlists/preview [post]
func (c *WordlistController) Preview(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "缺少上传文件")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	rows, err := c.WordlistService.PreviewFile(data, fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}
	util.Success(ctx, gin.H{"words": rows, "count": len(rows)})
}

// Import godoc
// @Summary 文件导入单词
// @Description 上传 CSV 或 JSON 文件批量导入，返回导入摘要和预览
// @Tags 词表
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "词表ID"
// @Param   file formData file true "CSV/JSON 文件"
// @Success 200 {object} util.Response{data=service.ImportResult}
// @Failure 400 {object} util.Response "文件解析失败"
// @Failure 404 {object} util.Response "词表不存在"
// @Router /api/wordlists/{id}/import [post]
func (c *WordlistController) Import(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	listID := util.MustParseUint(ctx.Param("id"))

	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		util.BadRequest(ctx, "缺少上传文件")
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	result, err := c.WordlistService.ImportFile(listID, claims.UserID, data, fileHeader.Filename, fileHeader.Header.Get("Content-Type"))
	if err != nil {
		if errors.Is(err, util.ErrWordlistNotFound) {
			util.NotFound(ctx, "词表不存在")
		} else {
			util.BadRequest(ctx, err.Error())
		}
		return
	}
	util.Success(ctx, result)
}
