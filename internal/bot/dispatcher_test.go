package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jiangdengke/qq-bot/internal/core"
	"github.com/jiangdengke/qq-bot/internal/services"
	"github.com/jiangdengke/qq-bot/internal/storage"
	"github.com/jiangdengke/qq-bot/internal/storage/memory"
)

var today = core.NewDate(2025, time.August, 24)

type fakeRenderer struct {
	fail bool
}

func (f *fakeRenderer) RenderMonthDailyBar(_ context.Context, userID int64, _ core.Summary) (string, error) {
	if f.fail {
		return "", errors.New("renderer down")
	}
	return fmt.Sprintf("/charts/month-daily-%d.png", userID), nil
}

func (f *fakeRenderer) RenderMonthTypePie(_ context.Context, userID int64, _ core.Summary) (string, error) {
	if f.fail {
		return "", errors.New("renderer down")
	}
	return fmt.Sprintf("/charts/month-type-%d.png", userID), nil
}

type fakeTranslator struct{}

func (fakeTranslator) Define(_ context.Context, word string) (string, error) {
	if word == "hello" {
		return "你好", nil
	}
	return "", errors.New("no definition")
}

type fakeCities struct{}

func (fakeCities) FindCityCodes(_ context.Context, name string) (storage.CityCodes, bool, error) {
	if strings.Contains("杭州市", name) {
		return storage.CityCodes{AdCode: "330100", CityCode: "0571"}, true, nil
	}
	return storage.CityCodes{}, false, nil
}

func newTestDispatcher(renderer Renderer) *Dispatcher {
	svc := services.NewOvertimeService(memory.New(), services.FixedClock{Day: today})
	return NewDispatcher(svc, renderer, fakeTranslator{}, fakeCities{})
}

func TestDispatchIgnoresPlainChat(t *testing.T) {
	d := newTestDispatcher(&fakeRenderer{})
	if got := d.Dispatch(context.Background(), 1001, "大家早上好"); got != nil {
		t.Fatalf("expected silence, got %v", got)
	}
}

func TestDispatchAdd(t *testing.T) {
	d := newTestDispatcher(&fakeRenderer{})
	ctx := context.Background()

	got := d.Dispatch(ctx, 1001, "overtime 2.5")
	if len(got) != 1 || !strings.Contains(got[0].Text, "G1") || !strings.Contains(got[0].Text, "2.5") {
		t.Fatalf("replies = %v", got)
	}

	got = d.Dispatch(ctx, 1001, "overtime g2 1.0")
	if len(got) != 1 || !strings.Contains(got[0].Text, "G2") || !strings.Contains(got[0].Text, "1 小时") {
		t.Fatalf("replies = %v", got)
	}
}

func TestDispatchSetAndDelete(t *testing.T) {
	d := newTestDispatcher(&fakeRenderer{})
	ctx := context.Background()

	got := d.Dispatch(ctx, 1001, "overtime set G2 250824 1.5")
	if len(got) != 1 || !strings.Contains(got[0].Text, "2025-08-24") || !strings.Contains(got[0].Text, "G2") {
		t.Fatalf("set replies = %v", got)
	}

	got = d.Dispatch(ctx, 1001, "overtime del 250824")
	if len(got) != 1 || !strings.Contains(got[0].Text, "1 条") {
		t.Fatalf("delete replies = %v", got)
	}

	// Deleting again reports that nothing was there.
	got = d.Dispatch(ctx, 1001, "overtime del 250824")
	if len(got) != 1 || !strings.Contains(got[0].Text, "无加班记录") {
		t.Fatalf("second delete replies = %v", got)
	}
}

func TestDispatchSetBadDate(t *testing.T) {
	d := newTestDispatcher(&fakeRenderer{})

	got := d.Dispatch(context.Background(), 1001, "overtime set 250231 1.5")
	if len(got) != 1 || !strings.Contains(got[0].Text, "❌") {
		t.Fatalf("replies = %v", got)
	}
}

func TestDispatchQuery(t *testing.T) {
	d := newTestDispatcher(&fakeRenderer{})
	ctx := context.Background()

	_ = d.Dispatch(ctx, 1001, "overtime 2.5")
	_ = d.Dispatch(ctx, 1001, "overtime g2 1.0")

	got := d.Dispatch(ctx, 1001, "overtime query")
	if len(got) != 3 {
		t.Fatalf("expected text + 2 images, got %v", got)
	}
	text := got[0].Text
	if !strings.Contains(text, "本月合计：3.5h") {
		t.Fatalf("summary text = %q", text)
	}
	if !strings.Contains(text, "G1=2.5h") || !strings.Contains(text, "G2=1h") || !strings.Contains(text, "G3=0h") {
		t.Fatalf("summary text = %q", text)
	}
	if !strings.Contains(text, "08-24 3.5h") {
		t.Fatalf("summary text missing daily line: %q", text)
	}
	if got[1].ImagePath != "/charts/month-daily-1001.png" || got[2].ImagePath != "/charts/month-type-1001.png" {
		t.Fatalf("image replies = %v", got[1:])
	}
}

func TestDispatchQueryEmptyMonth(t *testing.T) {
	d := newTestDispatcher(&fakeRenderer{})

	got := d.Dispatch(context.Background(), 1001, "overtime query")
	if len(got) != 3 {
		t.Fatalf("expected 3 replies, got %v", got)
	}
	if !strings.Contains(got[0].Text, "本月暂无记录") {
		t.Fatalf("summary text = %q", got[0].Text)
	}
}

func TestDispatchQueryRenderFailure(t *testing.T) {
	d := newTestDispatcher(&fakeRenderer{fail: true})
	ctx := context.Background()

	_ = d.Dispatch(ctx, 1001, "overtime 2.5")
	got := d.Dispatch(ctx, 1001, "overtime query")

	// The text summary stays valid; the failure becomes a warning reply.
	if len(got) != 2 {
		t.Fatalf("expected summary + warning, got %v", got)
	}
	if !strings.Contains(got[0].Text, "本月合计") {
		t.Fatalf("summary text = %q", got[0].Text)
	}
	if !strings.Contains(got[1].Text, "生成图表失败") {
		t.Fatalf("warning = %q", got[1].Text)
	}
}

func TestDispatchHelpAndUsage(t *testing.T) {
	d := newTestDispatcher(&fakeRenderer{})
	ctx := context.Background()

	got := d.Dispatch(ctx, 1001, "overtime help")
	if len(got) != 1 || !strings.Contains(got[0].Text, "Overtime 使用帮助") {
		t.Fatalf("help replies = %v", got)
	}

	got = d.Dispatch(ctx, 1001, "overtime wat")
	if len(got) != 1 || !strings.Contains(got[0].Text, "用法") {
		t.Fatalf("usage replies = %v", got)
	}
}

func TestDispatchTranslate(t *testing.T) {
	d := newTestDispatcher(&fakeRenderer{})
	ctx := context.Background()

	got := d.Dispatch(ctx, 1001, "fy hello")
	if len(got) != 1 || got[0].Text != "你好" {
		t.Fatalf("replies = %v", got)
	}

	got = d.Dispatch(ctx, 1001, "fy nosuchword")
	if len(got) != 1 || !strings.Contains(got[0].Text, "查询失败") {
		t.Fatalf("replies = %v", got)
	}
}

func TestDispatchCityCode(t *testing.T) {
	d := newTestDispatcher(&fakeRenderer{})
	ctx := context.Background()

	got := d.Dispatch(ctx, 1001, "query杭州")
	if len(got) != 1 || !strings.Contains(got[0].Text, "330100") || !strings.Contains(got[0].Text, "0571") {
		t.Fatalf("replies = %v", got)
	}

	got = d.Dispatch(ctx, 1001, "query亚特兰蒂斯")
	if len(got) != 1 || got[0].Text != "未找到相关信息" {
		t.Fatalf("replies = %v", got)
	}
}
