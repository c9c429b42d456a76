package parser

import "github.com/dhaniamnd/co2-reporter/internal/model"

// matrixClinkerLabels 矩阵版式中熟料行标签（包含匹配）
var matrixClinkerLabels = []string{"clinker", "klinker"}

// Recognition 版式识别结果
type Recognition struct {
	// 逐行版式
	Headers HeaderMap
	Tidy    bool

	// 矩阵版式
	Matrix     bool
	ClinkerRow int
	YearRow    int
	HeaderRow  int
}

// Strategies 按尝试顺序返回可用的策略
func (r Recognition) Strategies() []model.Strategy {
	var out []model.Strategy
	if r.Tidy {
		out = append(out, model.StrategyTidy)
	}
	if r.Matrix {
		out = append(out, model.StrategyMatrix)
	}
	return out
}

// SheetRecognizer 版式识别器
type SheetRecognizer struct{}

// NewSheetRecognizer 创建识别器
func NewSheetRecognizer() *SheetRecognizer {
	return &SheetRecognizer{}
}

// Recognize 识别网格可用的版式
// 逐行版式：第一行表头同时包含 工厂、日期、熟料
// 矩阵版式：第 0 列存在熟料行
func (r *SheetRecognizer) Recognize(grid Grid) Recognition {
	res := Recognition{ClinkerRow: -1, YearRow: -1}
	if len(grid) == 0 {
		return res
	}

	res.Headers = MapHeaders(grid.Headers(0))
	res.Tidy = res.Headers.TidyEligible()

	for i := range grid {
		label := NormalizeLabel(grid.At(i, 0).Text())
		if label == "" {
			continue
		}
		if res.ClinkerRow < 0 && ContainsAny(label, matrixClinkerLabels) {
			res.ClinkerRow = i
		}
		if res.YearRow < 0 && isYearRowLabel(label) {
			res.YearRow = i
		}
	}
	if res.ClinkerRow >= 0 {
		res.Matrix = true
		res.HeaderRow = max(res.ClinkerRow-1, 0)
	}
	return res
}

func isYearRowLabel(label string) bool {
	for _, l := range yearRowLabels {
		if label == l {
			return true
		}
	}
	return false
}
