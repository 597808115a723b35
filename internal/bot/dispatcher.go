package bot

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jiangdengke/qq-bot/internal/core"
	"github.com/jiangdengke/qq-bot/internal/log"
	"github.com/jiangdengke/qq-bot/internal/services"
	"github.com/jiangdengke/qq-bot/internal/storage"
)

// Reply is one outgoing message: either text or a rendered chart image.
type Reply struct {
	Text      string `json:"text,omitempty"`
	ImagePath string `json:"imagePath,omitempty"`
}

func textReply(format string, args ...any) Reply {
	return Reply{Text: fmt.Sprintf(format, args...)}
}

// Renderer is the chart rendering capability the query command needs.
// The HTTP echarts client satisfies it; tests use a fake.
type Renderer interface {
	RenderMonthDailyBar(ctx context.Context, userID int64, s core.Summary) (string, error)
	RenderMonthTypePie(ctx context.Context, userID int64, s core.Summary) (string, error)
}

// Translator backs the fy command.
type Translator interface {
	Define(ctx context.Context, word string) (string, error)
}

// CityCodeFinder backs the query<name> command.
type CityCodeFinder interface {
	FindCityCodes(ctx context.Context, nameZh string) (storage.CityCodes, bool, error)
}

// Dispatcher routes parsed commands to the overtime service and the
// external collaborators and words the replies.
type Dispatcher struct {
	overtime   *services.OvertimeService
	renderer   Renderer
	translator Translator
	cities     CityCodeFinder
	logger     *log.Logger
}

func NewDispatcher(overtime *services.OvertimeService, renderer Renderer, translator Translator, cities CityCodeFinder) *Dispatcher {
	return &Dispatcher{
		overtime:   overtime,
		renderer:   renderer,
		translator: translator,
		cities:     cities,
		logger:     log.Default(log.ComponentBot),
	}
}

// Dispatch handles one chat message and returns the replies to send, in
// order. Nil means the text was not a command and the bot stays silent.
func (d *Dispatcher) Dispatch(ctx context.Context, userID int64, text string) []Reply {
	cmd, ok := Parse(text)
	if !ok {
		return nil
	}

	d.logger.InfoContext(ctx, "Handling command", log.FieldUserID, userID, log.FieldKind, cmd.Kind)

	switch cmd.Kind {
	case KindHelp:
		return []Reply{{Text: helpText}}
	case KindUsage:
		return []Reply{{Text: usageText}}
	case KindAdd:
		return d.handleAdd(ctx, userID, cmd)
	case KindSet:
		return d.handleSet(ctx, userID, cmd)
	case KindDelete:
		return d.handleDelete(ctx, userID, cmd)
	case KindQuery:
		return d.handleQuery(ctx, userID)
	case KindTranslate:
		return d.handleTranslate(ctx, cmd.Arg)
	case KindCityCode:
		return d.handleCityCode(ctx, cmd.Arg)
	default:
		return nil
	}
}

func (d *Dispatcher) handleAdd(ctx context.Context, userID int64, cmd Command) []Reply {
	hours, err := core.ParseHours(cmd.Hours)
	if err != nil {
		return []Reply{textReply("❌ 失败：%v", err)}
	}
	e, err := d.overtime.Add(ctx, userID, hours, cmd.Category, "")
	if err != nil {
		return []Reply{textReply("❌ 失败：%v", err)}
	}
	return []Reply{textReply("✅ 已记录今天 %s 加班 %s 小时", e.Category, e.Hours.Format())}
}

func (d *Dispatcher) handleSet(ctx context.Context, userID int64, cmd Command) []Reply {
	day, err := core.ParseYYMMDD(cmd.Date)
	if err != nil {
		return []Reply{textReply("❌ 失败：%v", err)}
	}
	hours, err := core.ParseHours(cmd.Hours)
	if err != nil {
		return []Reply{textReply("❌ 失败：%v", err)}
	}
	e, err := d.overtime.SetForDate(ctx, userID, day, hours, cmd.Category)
	if err != nil {
		return []Reply{textReply("❌ 失败：%v", err)}
	}
	return []Reply{textReply("✅ 已将 %s 的加班设为 %s %s 小时", e.WorkDate, e.Category, e.Hours.Format())}
}

func (d *Dispatcher) handleDelete(ctx context.Context, userID int64, cmd Command) []Reply {
	day, err := core.ParseYYMMDD(cmd.Date)
	if err != nil {
		return []Reply{textReply("❌ 失败：%v", err)}
	}
	n, err := d.overtime.DeleteForDate(ctx, userID, day)
	if err != nil {
		return []Reply{textReply("❌ 失败：%v", err)}
	}
	if n == 0 {
		return []Reply{textReply("ℹ️ %s 无加班记录，无需删除", day)}
	}
	return []Reply{textReply("🗑️ 已删除 %s 的加班记录（%d 条）", day, n)}
}

func (d *Dispatcher) handleQuery(ctx context.Context, userID int64) []Reply {
	s, err := d.overtime.MonthSummary(ctx, userID)
	if err != nil {
		return []Reply{textReply("❌ 失败：%v", err)}
	}

	replies := []Reply{{Text: summaryText(s)}}

	// Both charts render concurrently. A render failure keeps the text
	// summary valid; the user just gets a warning instead of pictures.
	var barPath, piePath string
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		barPath, err = d.renderer.RenderMonthDailyBar(gctx, userID, s)
		return err
	})
	g.Go(func() error {
		var err error
		piePath, err = d.renderer.RenderMonthTypePie(gctx, userID, s)
		return err
	})
	if err := g.Wait(); err != nil {
		d.logger.ErrorContext(ctx, "Chart rendering failed", log.FieldUserID, userID, log.FieldError, err)
		return append(replies, textReply("⚠️ 生成图表失败：%v", err))
	}

	return append(replies,
		Reply{ImagePath: barPath},
		Reply{ImagePath: piePath})
}

func summaryText(s core.Summary) string {
	var daily strings.Builder
	if len(s.DailyTotals) == 0 {
		daily.WriteString("（本月暂无记录）")
	} else {
		for _, dt := range s.DailyTotals {
			daily.WriteString(dt.Date.MonthDay())
			daily.WriteString(" ")
			daily.WriteString(dt.Hours.Format())
			daily.WriteString("h\n")
		}
	}

	return fmt.Sprintf("📊 本月合计：%sh（G1=%sh, G2=%sh, G3=%sh）\n🗓️ 今天：%sh\n—— 每日 ——\n%s",
		s.MonthTotal.Format(),
		s.MonthByType[core.G1].Format(),
		s.MonthByType[core.G2].Format(),
		s.MonthByType[core.G3].Format(),
		s.TodayTotal.Format(),
		strings.TrimRight(daily.String(), "\n"))
}

func (d *Dispatcher) handleTranslate(ctx context.Context, word string) []Reply {
	text, err := d.translator.Define(ctx, word)
	if err != nil {
		d.logger.WarnContext(ctx, "Translation lookup failed", log.FieldWord, word, log.FieldError, err)
		return []Reply{textReply("⚠️ 查询失败：%v", err)}
	}
	return []Reply{{Text: text}}
}

func (d *Dispatcher) handleCityCode(ctx context.Context, name string) []Reply {
	if d.cities == nil {
		return []Reply{{Text: "未找到相关信息"}}
	}
	codes, found, err := d.cities.FindCityCodes(ctx, name)
	if err != nil {
		d.logger.ErrorContext(ctx, "City code lookup failed", log.FieldCity, name, log.FieldError, err)
		return []Reply{textReply("⚠️ 查询失败：%v", err)}
	}
	if !found {
		return []Reply{{Text: "未找到相关信息"}}
	}
	return []Reply{textReply("查询结果:\nadCode: %s\ncityCode: %s", codes.AdCode, codes.CityCode)}
}
