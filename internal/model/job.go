package model

// Job 标准 Job 结构（apiserver 发布、worker 消费的统一信封）
type Job struct {
	Payload *JobPayload `json:"payload"`
}

// JobPayload Job 负载
type JobPayload struct {
	Data *JobPayloadData `json:"data"`
}

// JobPayloadData Job 数据
type JobPayloadData struct {
	// 元信息
	RequestID  string `json:"request_id"`  // 请求 ID（TraceID）
	OrgID      string `json:"org_id"`      // 组织 ID
	ActionType string `json:"action_type"` // 动作类型（路由键，即工具名）
	ID         string `json:"id"`          // 业务 ID（报告 ID）

	// 业务数据
	Data interface{} `json:"data"`

	// 扩展
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// Meta 元数据
type Meta struct {
	RequestID  string // 请求 ID
	OrgID      string // 组织 ID
	ActionType string // 动作类型
	ID         string // 业务 ID
}

// ReportJobData 报告任务业务数据
// CSV 全文随 payload 传输，worker 不读数据库
type ReportJobData struct {
	ReportID string `json:"report_id"`
	Tool     string `json:"tool"`
	FileName string `json:"file_name"`
	CSVData  string `json:"csv_data"`
}
