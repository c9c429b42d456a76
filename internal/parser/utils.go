package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/dhaniamnd/co2-reporter/internal/model"
)

var (
	reNonNumeric   = regexp.MustCompile(`[^0-9.\-]`)
	reNonAlnum     = regexp.MustCompile(`[^a-z0-9]+`)
	reCO2          = regexp.MustCompile(`co₂|co2`)
	reExactYear    = regexp.MustCompile(`^\d{4}$`)
	reFilenameYear = regexp.MustCompile(`(?:^|\D)((?:19|20)\d{2})(?:\D|$)`)
)

var monthAbbr = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// ToNumber 将单元格转为数值
// 数值原样返回；文本去掉除数字、'.'、'-' 以外的字符后解析；空/日期视为非数值
func ToNumber(c model.Cell) (float64, bool) {
	switch c.Kind {
	case model.CellNumber:
		return c.Number, true
	case model.CellText:
		s := reNonNumeric.ReplaceAllString(c.Str, "")
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// NormalizeLabel 规范化表头文本，仅用于表头比较
// 小写、CO₂ 统一为 co2、去除所有非字母数字字符
func NormalizeLabel(s string) string {
	s = strings.ToLower(s)
	s = reCO2.ReplaceAllString(s, "co2")
	// NFKC 会把全角字符、下标 ₂ 等折叠为 ASCII
	s = norm.NFKC.String(s)
	return reNonAlnum.ReplaceAllString(s, "")
}

// MonthAbbreviation 月份缩写（1-12），与本地化无关
func MonthAbbreviation(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthAbbr[month-1]
}

// GuessYearFromFilename 从文件名中提取年份，如 "produksi_2023.xlsx"
func GuessYearFromFilename(name string) (int, bool) {
	m := reFilenameYear.FindStringSubmatch(name)
	if len(m) < 2 {
		return 0, false
	}
	y, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return y, true
}

// IsBareYear 文本是否恰好是 4 位年份
func IsBareYear(s string) (int, bool) {
	s = strings.TrimSpace(s)
	if !reExactYear.MatchString(s) {
		return 0, false
	}
	y, _ := strconv.Atoi(s)
	return y, true
}

// YearEnd 当年 12 月 31 日
func YearEnd(year int) time.Time {
	return time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)
}

// 文本日期支持的格式，按顺序尝试；斜杠格式按 月/日/年 解释
var textDateLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02",
	"2006/1/2",
	"2006-1-2",
	"2006-01",
	"1/2/2006",
	"01/02/2006",
	"2 January 2006",
	"02 January 2006",
	"2 Jan 2006",
	"02-Jan-2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"January 2006",
	"Jan 2006",
}

// ParseDateText 解析文本日期，返回 UTC 零点
func ParseDateText(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range textDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return dateOnly(t), true
		}
	}
	return time.Time{}, false
}

// 单元格显示格式（excelize 按数字格式渲染后的文本），用于判断数值单元格是否为日期
var formattedDateLayouts = []string{
	"01-02-06",
	"1-2-06",
	"01/02/06",
	"1/2/06",
	"01/02/2006",
	"1/2/2006",
	"2006-01-02",
	"2006/01/02",
	"02-Jan-06",
	"2-Jan-06",
	"Jan-06",
	"January-06",
	"2006-01-02 15:04:05",
	"01-02-06 15:04",
	"1/2/06 15:04",
	"1/2/2006 15:04",
}

func looksLikeDate(formatted string) bool {
	formatted = strings.TrimSpace(formatted)
	for _, layout := range formattedDateLayouts {
		if _, err := time.Parse(layout, formatted); err == nil {
			return true
		}
	}
	return false
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ContainsAny 检查字符串是否包含任意一个关键词
func ContainsAny(text string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
