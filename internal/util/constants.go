package util

// DateFormat 周报等日期字段的序列化格式
const DateFormat = "2006-01-02"

// 文件上传相关常量
const (
	MimeImage       = "image/"
	MimeCSV         = "text/csv"
	MimeJSON        = "application/json"
	MimeOctetStream = "application/octet-stream"
)

// 批量图片提取上限
const MaxBatchImages = 20
