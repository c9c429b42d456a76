package parser

// Field 语义字段
type Field string

const (
	FieldPlant       Field = "plant"
	FieldDate        Field = "date"
	FieldClinker     Field = "clinker"
	FieldFuel        Field = "fuel"
	FieldElectricity Field = "electricity"
)

// FieldSynonyms 语义字段及其候选表头（已规范化），包含印尼语同义词
// 顺序即匹配优先级
var FieldSynonyms = []struct {
	Field      Field
	Candidates []string
}{
	{FieldPlant, []string{"plant", "factory", "pabrik", "company", "perusahaan", "name", "nama"}},
	{FieldDate, []string{"date", "tanggal", "period", "periode", "year", "tahun", "month", "bulan"}},
	{FieldClinker, []string{"clinker", "klinker", "clinkerproduction", "produksiklinker"}},
	{FieldFuel, []string{"kilnfuel", "fuelgj", "fuel", "energi", "energy", "gj"}},
	{FieldElectricity, []string{"electricity", "listrik", "mwh"}},
}

// yearRowLabels 矩阵版式中年份行的标签（完全相等）
var yearRowLabels = []string{"year", "tahun"}

// CandidatesFor 获取字段的候选表头
func CandidatesFor(field Field) []string {
	for _, s := range FieldSynonyms {
		if s.Field == field {
			return s.Candidates
		}
	}
	return nil
}

// FindField 在表头中查找匹配候选词的第一个键
// 按表头原始顺序遍历，规范化后包含任一候选词即命中；先出现的列优先，而非先出现的候选词
func FindField(keys []string, candidates []string) (string, bool) {
	idx := findFieldIndex(keys, candidates)
	if idx < 0 {
		return "", false
	}
	return keys[idx], true
}

func findFieldIndex(keys []string, candidates []string) int {
	for i, k := range keys {
		nk := NormalizeLabel(k)
		if nk == "" {
			continue
		}
		if ContainsAny(nk, candidates) {
			return i
		}
	}
	return -1
}

// HeaderMap 语义字段 → 列索引（-1 表示缺失）
type HeaderMap map[Field]int

// MapHeaders 映射整行表头
func MapHeaders(headers []string) HeaderMap {
	m := make(HeaderMap, len(FieldSynonyms))
	for _, s := range FieldSynonyms {
		m[s.Field] = findFieldIndex(headers, s.Candidates)
	}
	return m
}

// Column 字段对应的列索引
func (m HeaderMap) Column(f Field) int {
	idx, ok := m[f]
	if !ok {
		return -1
	}
	return idx
}

// Has 字段是否存在
func (m HeaderMap) Has(f Field) bool {
	return m.Column(f) >= 0
}

// TidyEligible 逐行版式要求 工厂、日期、熟料 三个字段齐全
func (m HeaderMap) TidyEligible() bool {
	return m.Has(FieldPlant) && m.Has(FieldDate) && m.Has(FieldClinker)
}
