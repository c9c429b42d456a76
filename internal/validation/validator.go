package validation

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"

	"github.com/dhaniamnd/co2-reporter/internal/model"
)

// Validator 输入记录校验器，基于结构体 tag
type Validator struct {
	validate *validator.Validate
}

// New 创建校验器并注册自定义规则
func New() *Validator {
	v := validator.New()
	_ = v.RegisterValidation("finite", isFinite)
	_ = v.RegisterValidation("notblank", validators.NotBlank)

	// 错误信息使用 JSON 字段名
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// Engine 暴露底层实例，供 HTTP 绑定复用同一套规则
func (v *Validator) Engine() *validator.Validate {
	return v.validate
}

// Check 校验单条记录；通过返回 nil，否则返回第一条失败原因
func (v *Validator) Check(rec model.InputRecord) *model.Rejection {
	err := v.validate.Struct(rec)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return &model.Rejection{Reason: model.RejectNonFinite, Detail: err.Error()}
	}

	fe := verrs[0]
	return &model.Rejection{
		Reason: reasonFor(fe),
		Detail: fmt.Sprintf("%s failed %q", fe.Field(), fe.Tag()),
	}
}

// Filter 逐条校验，返回通过的记录与被丢弃的记录，保持原顺序
// rows 用于给 rejection 标注来源行号（矩阵版式为列号）
func (v *Validator) Filter(records []model.InputRecord, rows []int) ([]model.InputRecord, []model.Rejection) {
	accepted := make([]model.InputRecord, 0, len(records))
	var rejected []model.Rejection
	for i, rec := range records {
		if rej := v.Check(rec); rej != nil {
			if i < len(rows) {
				rej.Row = rows[i]
			}
			rejected = append(rejected, *rej)
			continue
		}
		accepted = append(accepted, rec)
	}
	return accepted, rejected
}

func reasonFor(fe validator.FieldError) model.RejectReason {
	switch fe.StructField() {
	case "Plant":
		return model.RejectMissingPlant
	case "Date":
		return model.RejectMissingDate
	}
	if fe.Tag() == "finite" {
		return model.RejectNonFinite
	}
	return model.RejectNegativeValue
}

func isFinite(fl validator.FieldLevel) bool {
	switch fl.Field().Kind() {
	case reflect.Float32, reflect.Float64:
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	default:
		return true
	}
}
