package domains

import (
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/domains/common"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/domains/handlers/report"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/tools/acos"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/tools/fba"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/tools/keyword"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/tools/listing"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/tools/ppc"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/tools/sales"
)

// HandlerMap 路由表（ActionType → Handler 映射）
// 六种报告共用 report.NewHandler，具体工具由 action_type 决定
var HandlerMap = map[string]common.HandlerServProc{
	ppc.ToolName:     report.NewHandler,
	acos.ToolName:    report.NewHandler,
	fba.ToolName:     report.NewHandler,
	keyword.ToolName: report.NewHandler,
	listing.ToolName: report.NewHandler,
	sales.ToolName:   report.NewHandler,
}
