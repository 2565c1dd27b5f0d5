package listing

import (
	"errors"
	"strconv"
	"strings"

	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/pipeline"
)

// ToolName HandlerMap 路由键
const ToolName = "listing_quality"

// 加权评分项，总分 100
const (
	titleMinLen    = 80
	descMinLen     = 1000
	bulletMinCount = 5
	imageMinCount  = 5

	titleWeight   = 25
	descWeight    = 25
	bulletWeight  = 20
	imageWeight   = 20
	keywordWeight = 10
)

// 等级下限
const (
	gradeABound = 80
	gradeBBound = 60
	gradeCBound = 40
)

// Row 单个 listing 的质量评分结果
type Row struct {
	Product string `json:"product"`

	TitleLength       int `json:"title_length"`
	DescriptionLength int `json:"description_length"`
	BulletCount       int `json:"bullet_count"`
	ImageCount        int `json:"image_count"`
	KeywordCount      int `json:"keyword_count"`

	Score  int      `json:"score"`
	Grade  string   `json:"grade"`
	Issues []string `json:"issues"`
}

const noIssueSentinel = "Listing meets all quality checks."

// Tool listing 质量评分工具
type Tool struct{}

// New 创建 listing 质量工具
func New() *Tool {
	return &Tool{}
}

// Name 工具名
func (t *Tool) Name() string {
	return ToolName
}

// RequiredColumns 必需列
func (t *Tool) RequiredColumns() []string {
	return []string{"product", "title", "description", "bullet_points", "images", "keywords"}
}

// ExportHeader 导出列序
func (t *Tool) ExportHeader() []string {
	return []string{
		"product",
		"title_length", "description_length", "bullet_count", "image_count", "keyword_count",
		"score", "grade", "issues",
	}
}

// Process 校验 → 逐项打分 → 定级
func (t *Tool) Process(rec pipeline.RawRecord) (pipeline.Row, error) {
	product := rec.Text("product")
	if product == "" {
		return nil, errors.New("Invalid or missing product name")
	}

	row := &Row{
		Product:           product,
		TitleLength:       len([]rune(rec.Text("title"))),
		DescriptionLength: len([]rune(rec.Text("description"))),
		BulletCount:       countList(rec.Text("bullet_points")),
		ImageCount:        countList(rec.Text("images")),
		KeywordCount:      countList(rec.Text("keywords")),
		Issues:            make([]string, 0, 5),
	}

	t.score(row)
	return row, nil
}

// score 逐项加权评分，失败项记 issue
func (t *Tool) score(r *Row) {
	if r.TitleLength >= titleMinLen {
		r.Score += titleWeight
	} else {
		r.Issues = append(r.Issues,
			"Title too short: aim for at least 80 characters with primary keywords")
	}

	if r.DescriptionLength >= descMinLen {
		r.Score += descWeight
	} else {
		r.Issues = append(r.Issues,
			"Description too short: aim for at least 1000 characters")
	}

	if r.BulletCount >= bulletMinCount {
		r.Score += bulletWeight
	} else {
		r.Issues = append(r.Issues,
			"Too few bullet points: provide at least 5 benefit-focused bullets")
	}

	if r.ImageCount >= imageMinCount {
		r.Score += imageWeight
	} else {
		r.Issues = append(r.Issues,
			"Too few images: provide at least 5 high-resolution images")
	}

	if r.KeywordCount > 0 {
		r.Score += keywordWeight
	} else {
		r.Issues = append(r.Issues,
			"No backend keywords: fill the search terms field")
	}

	r.Grade = grade(r.Score)
	if len(r.Issues) == 0 {
		r.Issues = append(r.Issues, noIssueSentinel)
	}
}

// grade 分数定级
func grade(score int) string {
	switch {
	case score >= gradeABound:
		return "A"
	case score >= gradeBBound:
		return "B"
	case score >= gradeCBound:
		return "C"
	default:
		return "D"
	}
}

// countList 统计分号/逗号分隔列表的非空项数
func countList(raw string) int {
	if raw == "" {
		return 0
	}
	sep := ","
	if strings.Contains(raw, ";") {
		sep = ";"
	}
	n := 0
	for _, item := range strings.Split(raw, sep) {
		if strings.TrimSpace(item) != "" {
			n++
		}
	}
	return n
}

// ExportRow 实现 pipeline.Row
func (r *Row) ExportRow() []string {
	return []string{
		r.Product,
		strconv.Itoa(r.TitleLength),
		strconv.Itoa(r.DescriptionLength),
		strconv.Itoa(r.BulletCount),
		strconv.Itoa(r.ImageCount),
		strconv.Itoa(r.KeywordCount),
		strconv.Itoa(r.Score),
		r.Grade,
		pipeline.JoinList(r.Issues),
	}
}
