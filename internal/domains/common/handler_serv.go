package common

import (
	"context"

	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/domains/common/response"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/model"
)

// HandlerServProc Handler 构造函数类型
type HandlerServProc func(ctx context.Context, meta *model.Meta, payload interface{}) (HandlerServ, error)

// HandlerServ Handler 接口
type HandlerServ interface {
	GetProcess() *response.Response
}
