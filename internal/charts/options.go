// Package charts builds declarative ECharts options from a monthly summary.
// Builders are pure: no clock, no I/O, same summary in means same option out.
package charts

import (
	"fmt"

	"github.com/jiangdengke/qq-bot/internal/core"
)

// Option is an ECharts option tree, ready for JSON serialization.
type Option map[string]any

var palette = []string{"#FFD1DC", "#BDE0FE", "#CDEAC0", "#FFE8A3", "#E0BBE4", "#FFDFD3"}

// vGrad is a top-to-bottom linear gradient in ECharts' gradient object form.
func vGrad(c1, c2 string) map[string]any {
	return map[string]any{
		"type": "linear",
		"x":    0, "y": 0, "x2": 0, "y2": 1,
		"colorStops": []map[string]any{
			{"offset": 0, "color": c1},
			{"offset": 1, "color": c2},
		},
	}
}

// DailyBar describes the month's per-day bar chart: one bar per day that
// has entries, labels as "MM-DD", ascending. An empty month produces an
// option with empty series data; the renderer copes with that.
func DailyBar(s core.Summary) Option {
	labels := make([]string, 0, len(s.DailyTotals))
	data := make([]float64, 0, len(s.DailyTotals))
	for _, dt := range s.DailyTotals {
		labels = append(labels, dt.Date.MonthDay())
		data = append(data, dt.Hours.Float())
	}

	bars := map[string]any{
		"type":           "bar",
		"data":           data,
		"barWidth":       18,
		"barCategoryGap": "32%",
		"showBackground": true,
		"backgroundStyle": map[string]any{
			"color":       "rgba(255,255,255,0.55)",
			"shadowBlur":  18,
			"shadowColor": "rgba(160,160,210,0.25)",
		},
		"itemStyle": map[string]any{
			"borderRadius": []int{12, 12, 8, 8},
			"shadowBlur":   16,
			"shadowColor":  "rgba(165,155,255,0.28)",
			"color":        vGrad("rgba(255,209,220,0.96)", "rgba(196,164,255,0.88)"),
		},
	}

	return Option{
		"backgroundColor": "transparent",
		"color":           palette,
		"title": map[string]any{
			"text": "本月每日加班（小时）",
			"left": "center",
			"textStyle": map[string]any{
				"color": "#556", "fontSize": 20, "fontWeight": 700,
			},
		},
		"grid": map[string]any{"left": 56, "right": 30, "top": 70, "bottom": 52},
		"xAxis": map[string]any{
			"type":     "category",
			"data":     labels,
			"axisTick": map[string]any{"show": false},
			"axisLine": map[string]any{
				"lineStyle": map[string]any{"color": "#d8dbe8"},
			},
			"axisLabel": map[string]any{"color": "#667", "fontWeight": 500},
		},
		"yAxis": map[string]any{
			"type": "value",
			"min":  0,
			"splitLine": map[string]any{
				"lineStyle": map[string]any{"color": "rgba(0,0,0,0.06)"},
			},
			"axisLabel": map[string]any{"color": "#667"},
		},
		"tooltip": map[string]any{
			"trigger":     "axis",
			"axisPointer": map[string]any{"type": "shadow"},
			"formatter":   "{b}<br/>{c} 小时",
		},
		"series": []map[string]any{bars},
	}
}

// placeholderName shows up as the single pie slice when the month is empty.
const placeholderName = "无记录"

// TypePie describes the month's per-category donut in the fixed order
// G1, G2, G3. An all-zero month substitutes one placeholder slice of
// value 1 so the chart never renders as an empty ring.
func TypePie(s core.Summary) Option {
	var data []map[string]any
	var total core.Hours
	for _, c := range core.Categories() {
		total += s.MonthByType[c]
	}
	if total == 0 {
		data = []map[string]any{{"name": placeholderName, "value": 1}}
	} else {
		for _, c := range core.Categories() {
			data = append(data, map[string]any{
				"name":  string(c),
				"value": s.MonthByType[c].Float(),
			})
		}
	}

	main := map[string]any{
		"type":              "pie",
		"radius":            []string{"38%", "66%"},
		"center":            []string{"50%", "54%"},
		"avoidLabelOverlap": true,
		"itemStyle": map[string]any{
			"borderRadius": 10,
			"shadowBlur":   18,
			"shadowColor":  "rgba(0,0,0,0.12)",
			"borderColor":  "#fff",
			"borderWidth":  2,
		},
		"label": map[string]any{
			"formatter": "{b}  {d}%",
			"color":     "#445",
		},
		"labelLine": map[string]any{"length": 12, "length2": 10, "smooth": true},
		"data":      data,
	}

	centerText := map[string]any{
		"type":   "text",
		"silent": true,
		"z":      10,
		"left":   "center",
		"top":    "46%",
		"style": map[string]any{
			"text":       fmt.Sprintf("%s h", s.MonthTotal.Format()),
			"fontSize":   22,
			"fontWeight": 700,
			"fill":       "#556",
			"align":      "center",
		},
	}

	return Option{
		"backgroundColor": "transparent",
		"color":           palette,
		"title": map[string]any{
			"text": "本月加班类型占比",
			"left": "center",
			"textStyle": map[string]any{
				"color": "#556", "fontSize": 20, "fontWeight": 700,
			},
		},
		"tooltip": map[string]any{
			"trigger":   "item",
			"formatter": "{b}<br/>{c} 小时（{d}%）",
		},
		"legend": map[string]any{
			"bottom":     6,
			"icon":       "roundRect",
			"itemWidth":  12,
			"itemHeight": 8,
			"textStyle":  map[string]any{"color": "#556"},
		},
		"graphic": []map[string]any{centerText},
		"series":  []map[string]any{main},
	}
}
