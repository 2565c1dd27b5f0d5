package svreport

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/entity"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/internal/model"
	"github.com/johnwesleyquintero/sellsmart-hub-sub000/pkg/infra/redis"
)

type fakeRepo struct{}

func (fakeRepo) Create(ctx context.Context, report *entity.Report) error { return nil }
func (fakeRepo) GetByID(ctx context.Context, reportID string) (*entity.Report, error) {
	return nil, nil
}
func (fakeRepo) UpdateResult(ctx context.Context, reportID string, result *model.ReportResultData, status string, errorMsg string) error {
	return nil
}
func (fakeRepo) List(ctx context.Context, tool string, page, limit int) ([]*entity.Report, int64, error) {
	return nil, 0, nil
}

type nopLogger struct{}

func (nopLogger) Debugf(ctx context.Context, format string, args ...interface{}) {}
func (nopLogger) Infof(ctx context.Context, format string, args ...interface{})  {}
func (nopLogger) Warnf(ctx context.Context, format string, args ...interface{})  {}
func (nopLogger) Errorf(ctx context.Context, format string, args ...interface{}) {}
func (nopLogger) Sync() error                                                    { return nil }

type fakeSub struct {
	payload chan string
}

func (s *fakeSub) Wait(ctx context.Context, timeout time.Duration) (string, error) {
	select {
	case p := <-s.payload:
		return p, nil
	case <-time.After(timeout):
		return "", context.DeadlineExceeded
	}
}

func (s *fakeSub) Close() error { return nil }

type fakeBus struct {
	order *[]string
	sub   *fakeSub
}

func (b *fakeBus) Subscribe(ctx context.Context, channel string) (redis.Subscription, error) {
	*b.order = append(*b.order, "subscribe")
	return b.sub, nil
}

// fakeQueue 模拟发布瞬间即完成的 worker：结果通知在 Publish 返回前就已推送。
// 只有先建立订阅的调用方才能收到这条通知。
type fakeQueue struct {
	order *[]string
	sub   *fakeSub
}

func (q *fakeQueue) Publish(queue string, data []byte, ttl, delay uint32) error {
	*q.order = append(*q.order, "publish")

	var job model.Job
	if err := json.Unmarshal(data, &job); err != nil {
		return err
	}

	cb := model.ReportCallback{
		ReportID: job.Payload.Data.ID,
		Tool:     job.Payload.Data.ActionType,
		Status:   model.CallbackStatusSuccess,
	}
	payload, err := json.Marshal(cb)
	if err != nil {
		return err
	}

	q.sub.payload <- string(payload)
	return nil
}

func TestCreateReport_SubscribesBeforePublish(t *testing.T) {
	order := make([]string, 0, 2)
	sub := &fakeSub{payload: make(chan string, 1)}

	svc := NewReportService(
		fakeRepo{},
		&fakeQueue{order: &order, sub: sub},
		&fakeBus{order: &order, sub: sub},
		"report_jobs",
		nopLogger{},
	)

	report, callback, err := svc.CreateReport(
		context.Background(),
		"acos_report",
		"campaigns.csv",
		"campaign,ad_spend,sales\nC1,10,100\n",
		1,
	)
	if err != nil {
		t.Fatalf("create report: %v", err)
	}

	// 订阅必须先于发布，否则秒级完成的 worker 会把通知发到无人订阅的频道
	if len(order) != 2 || order[0] != "subscribe" || order[1] != "publish" {
		t.Fatalf("order: got %v, want [subscribe publish]", order)
	}

	// 通知在发布瞬间推送，Smart Wait 仍应拿到终态回调而非退化为轮询
	if callback == nil {
		t.Fatal("expected callback from smart wait, got nil")
	}
	if callback.ReportID != report.ID {
		t.Fatalf("callback report_id: got %q, want %q", callback.ReportID, report.ID)
	}
	if callback.Status != model.CallbackStatusSuccess {
		t.Fatalf("callback status: got %q, want %q", callback.Status, model.CallbackStatusSuccess)
	}
}

func TestCreateReport_NoWaitSkipsSubscription(t *testing.T) {
	order := make([]string, 0, 2)
	sub := &fakeSub{payload: make(chan string, 1)}

	svc := NewReportService(
		fakeRepo{},
		&fakeQueue{order: &order, sub: sub},
		&fakeBus{order: &order, sub: sub},
		"report_jobs",
		nopLogger{},
	)

	_, callback, err := svc.CreateReport(
		context.Background(),
		"acos_report",
		"campaigns.csv",
		"campaign,ad_spend,sales\nC1,10,100\n",
		0,
	)
	if err != nil {
		t.Fatalf("create report: %v", err)
	}

	if callback != nil {
		t.Fatalf("no-wait call should not return a callback, got %+v", callback)
	}
	if len(order) != 1 || order[0] != "publish" {
		t.Fatalf("order: got %v, want [publish]", order)
	}
}
