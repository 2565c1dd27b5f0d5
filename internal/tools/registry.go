package tools

import (
	"fmt"
	"sort"

	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/pipeline"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/tools/acos"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/tools/fba"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/tools/keyword"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/tools/listing"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/tools/ppc"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/tools/sales"
)

// Options 各工具的运行参数（来自配置或调用方默认值）
type Options struct {
	PPC ppc.Thresholds
}

// DefaultOptions 文档默认阈值
func DefaultOptions() Options {
	return Options{
		PPC: ppc.DefaultThresholds(),
	}
}

// Factory 工具构造函数类型
type Factory func(opts Options) pipeline.Tool

// registry 路由表（工具名 → 构造函数映射）
var registry = map[string]Factory{
	ppc.ToolName:  func(o Options) pipeline.Tool { return ppc.New(o.PPC) },
	acos.ToolName: func(o Options) pipeline.Tool { return acos.New() },

	// 批量 CSV 允许 cost/price 为 0，严格策略仅用于同步定价接口
	fba.ToolName: func(o Options) pipeline.Tool { return fba.New(fba.Policy{}) },

	keyword.ToolName: func(o Options) pipeline.Tool { return keyword.New() },
	listing.ToolName: func(o Options) pipeline.Tool { return listing.New() },
	sales.ToolName:   func(o Options) pipeline.Tool { return sales.New() },
}

// New 按工具名创建工具实例
func New(name string, opts Options) (pipeline.Tool, error) {
	factory, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("unknown tool: %s", name)
	}
	return factory(opts), nil
}

// Names 已注册工具名（字典序）
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
