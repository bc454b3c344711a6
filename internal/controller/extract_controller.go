package controller

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"

	"word_duel_backend/internal/service"
	"word_duel_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ExtractController struct {
	VisionService  *service.VisionService
	TaskService    *service.ExtractTaskService
	StorageService *service.StorageService
}

func NewExtractController(visionService *service.VisionService, taskService *service.ExtractTaskService, storageService *service.StorageService) *ExtractController {
	return &ExtractController{
		VisionService:  visionService,
		TaskService:    taskService,
		StorageService: storageService,
	}
}

// readImage 读入上传图片。MIME 类型按文件内容嗅探，
// 不信任客户端声明的 Content-Type。
func readImage(fileHeader *multipart.FileHeader) (*service.ImageInput, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	mimeType, err := util.ValidateMimeType(bytes.NewReader(data), []string{util.MimeImage})
	if err != nil {
		return nil, fmt.Errorf("不支持的图片类型: %s", mimeType)
	}
	return &service.ImageInput{
		Filename: fileHeader.Filename,
		MimeType: mimeType,
		Data:     data,
	}, nil
}

// ExtractImage godoc
// @Summary 单图识别单词
// @Description 识别一张词汇表图片，同步返回提取出的单词，不入库
// @Tags 图片提取
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   image formData file true "图片文件"
// @Success 200 {object} util.Response{data=object}
// @Failure 400 {object} util.Response "图片缺失或类型不支持"
// @Failure 503 {object} util.Response "识别服务未配置"
// @Router /api/extract/image [post]
func (c *ExtractController) ExtractImage(ctx *gin.Context) {
	fileHeader, err := ctx.FormFile("image")
	if err != nil {
		util.BadRequest(ctx, "缺少图片文件")
		return
	}
	img, err := readImage(fileHeader)
	if err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	// 原图归档，识别失败也保留现场
	objectName := "extract/" + uuid.New().String() + "_" + img.Filename
	if _, err := c.StorageService.Upload(ctx.Request.Context(), objectName, bytes.NewReader(img.Data), int64(len(img.Data)), img.MimeType); err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	words, err := c.VisionService.ExtractWords(ctx.Request.Context(), img.Data, img.MimeType)
	if err != nil {
		if errors.Is(err, util.ErrVisionUnconfigured) {
			util.Error(ctx, 503, "图片识别服务未配置")
		} else {
			util.Error(ctx, 502, "图片识别失败: "+err.Error())
		}
		return
	}
	util.Success(ctx, gin.H{"words": words, "image_url": c.StorageService.GetURL(objectName)})
}

// ExtractBatch godoc
// @Summary 批量图片识别
// @Description 提交多张图片创建后台识别任务，立即返回任务 ID 供轮询
// @Tags 图片提取
// @Accept  multipart/form-data
// @Produce  json
// @Security BearerAuth
// @Param   images formData file true "图片文件（可多个）"
// @Success 202 {object} util.Response{data=object}
// @Failure 400 {object} util.Response "图片缺失或超出数量上限"
// @Router /api/extract/batch [post]
func (c *ExtractController) ExtractBatch(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	form, err := ctx.MultipartForm()
	if err != nil {
		util.BadRequest(ctx, "缺少上传表单")
		return
	}
	files := form.File["images"]
	if len(files) == 0 {
		util.BadRequest(ctx, "缺少图片文件")
		return
	}
	if len(files) > util.MaxBatchImages {
		util.BadRequest(ctx, fmt.Sprintf("单次最多上传 %d 张图片", util.MaxBatchImages))
		return
	}

	images := make([]service.ImageInput, 0, len(files))
	for _, fh := range files {
		img, err := readImage(fh)
		if err != nil {
			util.BadRequest(ctx, err.Error())
			return
		}
		images = append(images, *img)
	}

	task, err := c.TaskService.StartBatch(claims.UserID, images)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	ctx.JSON(202, util.Response{
		Code:    202,
		Message: "accepted",
		Data:    gin.H{"task_id": task.ID, "total": task.Total},
	})
}

// TaskStatus godoc
// @Summary 批量任务进度
// @Description 轮询批量识别任务，完成后附带全部识别结果
// @Tags 图片提取
// @Produce  json
// @Security BearerAuth
// @Param   id path string true "任务ID"
// @Success 200 {object} util.Response{data=service.TaskStatusOutput}
// @Failure 403 {object} util.Response "不是任务创建者"
// @Failure 404 {object} util.Response "任务不存在"
// @Router /api/extract/tasks/{id} [get]
func (c *ExtractController) TaskStatus(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	out, err := c.TaskService.GetTask(ctx.Param("id"), claims.UserID)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrTaskNotFound):
			util.NotFound(ctx, "任务不存在")
		case errors.Is(err, util.ErrTaskAccessDenied):
			util.Forbidden(ctx)
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}
	util.Success(ctx, out)
}
