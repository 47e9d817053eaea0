// Package content 콘텐츠 과금 정보를 표현하는 데이터 타입을 제공합니다.
//
// Price는 JSON으로 주고받는 데이터 형태일 뿐이며, 디코딩 시점에는 어떠한 불변식도 강제하지 않습니다.
// 값의 정합성 확인이 필요한 경우 호출자가 Validate를 명시적으로 호출해야 합니다.
package content

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	apperrors "github.com/darkkaiser/contenthub-server/internal/pkg/errors"
	"github.com/go-playground/validator/v10"
	"golang.org/x/text/currency"
)

// PricingType 콘텐츠의 과금 방식입니다.
type PricingType string

const (
	PricingFree         PricingType = "free"
	PricingSubscription PricingType = "subscription"
	PricingToken        PricingType = "token"
	PricingHybrid       PricingType = "hybrid"
)

// Valid 정의된 과금 방식인지 여부를 반환합니다.
func (t PricingType) Valid() bool {
	switch t {
	case PricingFree, PricingSubscription, PricingToken, PricingHybrid:
		return true
	}
	return false
}

func (t PricingType) String() string {
	return string(t)
}

// ParsePricingType 문자열을 PricingType으로 변환합니다. 대소문자와 앞뒤 공백은 무시합니다.
func ParsePricingType(s string) (PricingType, error) {
	t := PricingType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", apperrors.Newf(apperrors.InvalidInput, "지원하지 않는 과금 방식입니다: '%s' (free, subscription, token, hybrid 중 하나)", s)
	}
	return t, nil
}

// Price 콘텐츠 과금 정보
//
// 선택 항목과 price는 포인터로 표현하여 "값 없음"과 "0"을 구분합니다.
// DiscountForSubscribers의 의미(비율/금액)는 정의되어 있지 않으므로 값을 그대로 전달만 합니다.
type Price struct {
	Price                  *float64     `json:"price" validate:"required,gte=0"`
	Currency               string       `json:"currency" validate:"required,iso_currency"`
	TokenPrice             *float64     `json:"tokenPrice,omitempty" validate:"omitempty,gte=0"`
	RequiredTier           *string      `json:"requiredTier,omitempty" validate:"omitempty,min=1"`
	DiscountForSubscribers *float64     `json:"discountForSubscribers,omitempty" validate:"omitempty,gte=0"`
	Type                   *PricingType `json:"type,omitempty" validate:"omitempty,pricing_type"`
}

var (
	priceValidatorOnce sync.Once
	priceValidator     *validator.Validate
)

func getValidator() *validator.Validate {
	priceValidatorOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			return strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		})
		if err := v.RegisterValidation("iso_currency", func(fl validator.FieldLevel) bool {
			_, err := currency.ParseISO(fl.Field().String())
			return err == nil
		}); err != nil {
			panic(fmt.Sprintf("초기화 치명적 오류: 'iso_currency' 커스텀 유효성 검사 함수 등록에 실패했습니다: %v", err))
		}
		if err := v.RegisterValidation("pricing_type", func(fl validator.FieldLevel) bool {
			return PricingType(fl.Field().String()).Valid()
		}); err != nil {
			panic(fmt.Sprintf("초기화 치명적 오류: 'pricing_type' 커스텀 유효성 검사 함수 등록에 실패했습니다: %v", err))
		}
		priceValidator = v
	})
	return priceValidator
}

// Validate 과금 정보의 정합성을 검사합니다.
//
// price는 필수이며 0 이상, currency는 ISO 4217 통화 코드여야 하며, 선택 항목은 값이 있는 경우에만 검사합니다.
func (p *Price) Validate() error {
	err := getValidator().Struct(p)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
		return apperrors.Wrap(err, apperrors.InvalidInput, "과금 정보 유효성 검증에 실패했습니다")
	}

	fe := validationErrors[0]
	switch fe.Tag() {
	case "iso_currency":
		return apperrors.Newf(apperrors.InvalidInput, "통화 코드(currency)가 ISO 4217 형식이 아닙니다: '%v'", fe.Value())
	case "pricing_type":
		return apperrors.Newf(apperrors.InvalidInput, "지원하지 않는 과금 방식(type)입니다: '%v'", fe.Value())
	case "required":
		return apperrors.Newf(apperrors.InvalidInput, "과금 정보의 필수 항목(%s)이 누락되었습니다", fe.Field())
	case "gte":
		return apperrors.Newf(apperrors.InvalidInput, "과금 정보의 %s 값은 0 이상이어야 합니다: '%v'", fe.Field(), fe.Value())
	}

	return apperrors.Newf(apperrors.InvalidInput, "과금 정보의 %s 값이 올바르지 않습니다 (조건: %s)", fe.Field(), fe.Tag())
}
