package numeric

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Ratio 比率类型（ACoS/ROAS/CTR 等派生指标）
// 约定：有限值保留两位小数；分母为零时按分子符号取 ±Inf 或 0，绝不产生 NaN。
// JSON 与 CSV 统一将非有限值渲染为字面量 "Infinity" / "-Infinity"。
type Ratio float64

// Round2 四舍五入到两位小数
func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// RatioOf 计算 num/den
// den=0 时：num>0 → +Inf，num<0 → -Inf，num=0 → 0（0/0 定义为 0）
func RatioOf(num, den float64) Ratio {
	if den == 0 {
		switch {
		case num > 0:
			return Ratio(math.Inf(1))
		case num < 0:
			return Ratio(math.Inf(-1))
		default:
			return 0
		}
	}
	return Ratio(Round2(num / den))
}

// PercentOf 计算 num/den×100，零分母策略同 RatioOf
func PercentOf(num, den float64) Ratio {
	if den == 0 {
		return RatioOf(num, den)
	}
	return Ratio(Round2(num / den * 100))
}

// ZeroPercentOf 计算 num/den×100，但分母为零时恒为 0（CTR 策略）
func ZeroPercentOf(num, den float64) Ratio {
	if den == 0 {
		return 0
	}
	return Ratio(Round2(num / den * 100))
}

// IsFinite 是否为有限值
func (r Ratio) IsFinite() bool {
	return !math.IsInf(float64(r), 0)
}

// String 渲染为导出字符串：有限值两位小数，非有限值为 "Infinity"/"-Infinity"
func (r Ratio) String() string {
	f := float64(r)
	if math.IsInf(f, 1) {
		return "Infinity"
	}
	if math.IsInf(f, -1) {
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'f', 2, 64)
}

// MarshalJSON 有限值输出数字，非有限值输出字符串字面量
func (r Ratio) MarshalJSON() ([]byte, error) {
	f := float64(r)
	if math.IsInf(f, 1) {
		return []byte(`"Infinity"`), nil
	}
	if math.IsInf(f, -1) {
		return []byte(`"-Infinity"`), nil
	}
	return []byte(strconv.FormatFloat(f, 'f', -1, 64)), nil
}

// UnmarshalJSON 接受数字或 "Infinity"/"-Infinity" 字符串
func (r *Ratio) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	switch s {
	case "Infinity", "+Infinity":
		*r = Ratio(math.Inf(1))
		return nil
	case "-Infinity":
		*r = Ratio(math.Inf(-1))
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("invalid ratio value %q: %w", s, err)
	}
	// ParseFloat 也接受 "NaN"/"Inf" 字面量，非有限值只承认上面两个 Infinity 写法
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("invalid ratio value %q: must be finite", s)
	}
	*r = Ratio(f)
	return nil
}
