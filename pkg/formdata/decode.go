package formdata

import (
	"mime/multipart"
	"reflect"
	"strconv"
	"strings"

	apperrors "github.com/darkkaiser/contenthub-server/internal/pkg/errors"
)

const tagName = "form"

var (
	fileHeaderType      = reflect.TypeOf((*multipart.FileHeader)(nil))
	fileHeaderSliceType = reflect.TypeOf([]*multipart.FileHeader(nil))
	stringSliceType     = reflect.TypeOf([]string(nil))
)

// Decode Bag의 항목을 구조체 필드에 바인딩합니다.
//
// 필드 이름은 `form:"name"` 태그로 지정하며, 태그가 없으면 Go 필드명을 그대로 사용합니다.
// `form:"-"`는 무시되고, `form:"name,required"`는 항목이 없을 때 에러를 반환합니다.
// 지원 타입: string, []string, bool, 정수, 실수, 이들의 포인터, *multipart.FileHeader, []*multipart.FileHeader
//
// 폼에 존재하지 않는 필드는 기존 값을 유지하며, 바인딩되지 않은 나머지 키는 Bag을 통해 계속 조회할 수 있습니다.
func Decode(b *Bag, dst any) error {
	if b == nil {
		return apperrors.New(apperrors.InvalidInput, "바인딩할 폼 데이터(Bag)가 nil입니다")
	}

	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Pointer || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return apperrors.Newf(apperrors.InvalidInput, "바인딩 대상은 nil이 아닌 구조체 포인터여야 합니다: %T", dst)
	}

	rv = rv.Elem()
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		name, required := parseTag(sf)
		if name == "-" {
			continue
		}

		if err := decodeField(b, rv.Field(i), name); err != nil {
			if apperrors.Is(err, apperrors.NotFound) {
				if required {
					return apperrors.Newf(apperrors.InvalidInput, "필수 폼 필드('%s')가 누락되었습니다", name)
				}
				continue
			}
			return apperrors.Wrapf(err, apperrors.ParsingFailed, "폼 필드('%s')를 %s 필드에 바인딩할 수 없습니다", name, sf.Name)
		}
	}

	return nil
}

func parseTag(sf reflect.StructField) (name string, required bool) {
	tag, ok := sf.Tag.Lookup(tagName)
	if !ok {
		return sf.Name, false
	}

	parts := strings.Split(tag, ",")
	name = parts[0]
	if name == "" {
		name = sf.Name
	}
	for _, opt := range parts[1:] {
		if opt == "required" {
			required = true
		}
	}
	return name, required
}

var errFieldNotFound = apperrors.New(apperrors.NotFound, "폼 필드 없음")

func decodeField(b *Bag, fv reflect.Value, name string) error {
	switch fv.Type() {
	case fileHeaderType:
		fh, ok := b.File(name)
		if !ok {
			return errFieldNotFound
		}
		fv.Set(reflect.ValueOf(fh))
		return nil

	case fileHeaderSliceType:
		fhs := b.Files(name)
		if len(fhs) == 0 {
			return errFieldNotFound
		}
		fv.Set(reflect.ValueOf(fhs))
		return nil

	case stringSliceType:
		vs := b.Values(name)
		if len(vs) == 0 {
			return errFieldNotFound
		}
		fv.Set(reflect.ValueOf(vs))
		return nil
	}

	s, ok := b.Value(name)
	if !ok {
		return errFieldNotFound
	}

	if fv.Kind() == reflect.Pointer {
		elem := reflect.New(fv.Type().Elem())
		if err := setScalar(elem.Elem(), s); err != nil {
			return err
		}
		fv.Set(elem)
		return nil
	}

	return setScalar(fv, s)
}

func setScalar(fv reflect.Value, s string) error {
	switch fv.Kind() {
	case reflect.String:
		fv.SetString(s)

	case reflect.Bool:
		// HTML 체크박스는 기본적으로 "on"을 전송합니다.
		if strings.EqualFold(s, "on") {
			fv.SetBool(true)
			return nil
		}
		v, err := strconv.ParseBool(s)
		if err != nil {
			return err
		}
		fv.SetBool(v)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := strconv.ParseInt(strings.TrimSpace(s), 10, fv.Type().Bits())
		if err != nil {
			return err
		}
		fv.SetInt(v)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := strconv.ParseUint(strings.TrimSpace(s), 10, fv.Type().Bits())
		if err != nil {
			return err
		}
		fv.SetUint(v)

	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(strings.TrimSpace(s), fv.Type().Bits())
		if err != nil {
			return err
		}
		fv.SetFloat(v)

	default:
		return apperrors.Newf(apperrors.InvalidInput, "지원하지 않는 필드 타입입니다: %s", fv.Type())
	}

	return nil
}
