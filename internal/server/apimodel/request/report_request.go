package request

// CreateReportRequest 创建报告请求
type CreateReportRequest struct {
	Tool     string `json:"tool" binding:"required"`
	FileName string `json:"file_name"`
	CSVData  string `json:"csv_data" binding:"required"`
}
