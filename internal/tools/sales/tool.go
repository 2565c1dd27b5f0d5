package sales

import (
	"errors"
	"hash/fnv"
	"math"
	"math/rand"
	"strconv"
	"strings"

	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/numeric"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/pipeline"
)

// ToolName HandlerMap 路由键
const ToolName = "sales_estimate"

// 类目基准月销量
var categoryBaseVolume = map[string]float64{
	"electronics":  450,
	"home":         320,
	"kitchen":      320,
	"toys":         280,
	"sports":       240,
	"beauty":       380,
	"health":       360,
	"clothing":     300,
	"books":        200,
	"office":       180,
	"pet supplies": 260,
	"garden":       160,
	"automotive":   140,
	"grocery":      340,
	"baby":         300,
}

const defaultBaseVolume = 220.0

// Row 单个商品的销量估算结果
type Row struct {
	Product  string  `json:"product"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Rating   float64 `json:"rating"`
	Reviews  int     `json:"reviews"`

	EstimatedMonthlySales   int           `json:"estimated_monthly_sales"`
	EstimatedMonthlyRevenue float64       `json:"estimated_monthly_revenue"`
	Confidence              numeric.Ratio `json:"confidence"` // 百分比，随输入完整度提升
}

// Tool 销量估算工具
type Tool struct{}

// New 创建销量估算工具
func New() *Tool {
	return &Tool{}
}

// Name 工具名
func (t *Tool) Name() string {
	return ToolName
}

// RequiredColumns 必需列（rating/reviews 可选）
func (t *Tool) RequiredColumns() []string {
	return []string{"product", "category", "price"}
}

// ExportHeader 导出列序
func (t *Tool) ExportHeader() []string {
	return []string{
		"product", "category", "price", "rating", "reviews",
		"estimated_monthly_sales", "estimated_monthly_revenue", "confidence",
	}
}

// Process 校验 → 确定性估算
// 同一输入行永远产生同一估算值，波动因子由商品名哈希播种
func (t *Tool) Process(rec pipeline.RawRecord) (pipeline.Row, error) {
	product := rec.Text("product")
	if product == "" {
		return nil, errors.New("Invalid or missing product name")
	}

	category := rec.Text("category")
	if category == "" {
		return nil, errors.New("Invalid or missing category value")
	}

	price, err := rec.Number("price")
	if err != nil {
		return nil, errors.New("Invalid or missing price value")
	}
	if price <= 0 {
		return nil, errors.New("Invalid price value: must be greater than zero")
	}

	row := &Row{
		Product:  product,
		Category: category,
		Price:    price,
	}

	// 可选列：缺失或非法时按 0 处理，不拒行
	if rating, err := rec.Number("rating"); err == nil && rating >= 0 && rating <= 5 {
		row.Rating = rating
	}
	if reviews, err := rec.Number("reviews"); err == nil && reviews >= 0 {
		row.Reviews = int(reviews)
	}

	t.estimate(row)
	return row, nil
}

// estimate 估算月销量与营收
func (t *Tool) estimate(r *Row) {
	base := defaultBaseVolume
	if v, ok := categoryBaseVolume[strings.ToLower(strings.TrimSpace(r.Category))]; ok {
		base = v
	}

	volume := base * priceBandFactor(r.Price) * ratingFactor(r.Rating) * reviewFactor(r.Reviews)

	// ±10% 确定性波动，种子取自商品名哈希
	rng := rand.New(rand.NewSource(hashSeed(r.Product)))
	volume *= 0.9 + rng.Float64()*0.2

	r.EstimatedMonthlySales = int(math.Round(volume))
	r.EstimatedMonthlyRevenue = numeric.Round2(float64(r.EstimatedMonthlySales) * r.Price)
	r.Confidence = confidence(r)
}

// priceBandFactor 价格带调整：低价走量，高价走利
func priceBandFactor(price float64) float64 {
	switch {
	case price < 15:
		return 1.4
	case price < 30:
		return 1.2
	case price < 60:
		return 1.0
	case price < 120:
		return 0.7
	default:
		return 0.4
	}
}

// ratingFactor 评分调整，无评分按中性 1.0
func ratingFactor(rating float64) float64 {
	if rating <= 0 {
		return 1.0
	}
	switch {
	case rating >= 4.5:
		return 1.3
	case rating >= 4.0:
		return 1.15
	case rating >= 3.5:
		return 1.0
	case rating >= 3.0:
		return 0.8
	default:
		return 0.6
	}
}

// reviewFactor 评论量调整（对数增长，封顶 1.5）
func reviewFactor(reviews int) float64 {
	if reviews <= 0 {
		return 1.0
	}
	f := 1.0 + math.Log10(float64(reviews)+1)/8
	return math.Min(f, 1.5)
}

// confidence 输入越完整置信度越高
func confidence(r *Row) numeric.Ratio {
	c := 50.0
	if _, ok := categoryBaseVolume[strings.ToLower(strings.TrimSpace(r.Category))]; ok {
		c += 20
	}
	if r.Rating > 0 {
		c += 15
	}
	if r.Reviews > 0 {
		c += 15
	}
	return numeric.Ratio(c)
}

// hashSeed 商品名哈希种子，保证估算幂等
func hashSeed(s string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return int64(h.Sum64())
}

// ExportRow 实现 pipeline.Row
func (r *Row) ExportRow() []string {
	return []string{
		r.Product,
		r.Category,
		strconv.FormatFloat(r.Price, 'f', 2, 64),
		strconv.FormatFloat(r.Rating, 'f', 1, 64),
		strconv.Itoa(r.Reviews),
		strconv.Itoa(r.EstimatedMonthlySales),
		strconv.FormatFloat(r.EstimatedMonthlyRevenue, 'f', 2, 64),
		r.Confidence.String(),
	}
}
