// Package formdata multipart/form-data 요청 본문에 대한 키 기반 접근을 제공합니다.
//
// 알려진 필드는 Decode로 구조체에 바인딩하고, 구조가 정해지지 않은 필드는 Bag의 조회 함수로 접근합니다.
// 키 조회는 정확히 일치하는 키를 먼저 찾고, 없으면 표기법을 무시한 일치(mediaFile ≡ media_file)를 시도합니다.
package formdata

import (
	"errors"
	"maps"
	"mime/multipart"
	"net/http"
	"slices"

	apperrors "github.com/darkkaiser/contenthub-server/internal/pkg/errors"
	"github.com/iancoleman/strcase"
)

// Bag 파싱된 multipart 폼의 값과 파일을 담는 읽기 전용 컨테이너입니다.
type Bag struct {
	form    *multipart.Form
	values  map[string][]string
	charset string
}

// New 파싱된 multipart 폼으로 Bag을 생성합니다.
//
// 폼에 _charset_ 필드가 있고 UTF-8이 아닌 인코딩을 가리키면 모든 텍스트 값을 UTF-8로 변환합니다.
// 원본 폼은 변경되지 않습니다.
func New(form *multipart.Form) (*Bag, error) {
	if form == nil {
		form = &multipart.Form{}
	}

	var label string
	if cs := form.Value[CharsetField]; len(cs) > 0 {
		label = cs[0]
	}

	dec, name, err := lookupDecoder(label)
	if err != nil {
		return nil, err
	}

	values := make(map[string][]string, len(form.Value))
	for k, vs := range form.Value {
		if dec == nil || k == CharsetField {
			values[k] = slices.Clone(vs)
			continue
		}

		decoded, err := decodeValues(dec, vs)
		if err != nil {
			return nil, apperrors.Wrapf(err, apperrors.ParsingFailed, "폼 필드('%s') 디코딩에 실패했습니다", k)
		}
		values[k] = decoded
	}

	return &Bag{
		form:    form,
		values:  values,
		charset: name,
	}, nil
}

// Parse 요청 본문을 multipart 폼으로 파싱하여 Bag을 생성합니다.
// maxMemory를 초과하는 파일 데이터는 임시 파일에 저장되며, 사용이 끝나면 RemoveAll을 호출해야 합니다.
func Parse(r *http.Request, maxMemory int64) (*Bag, error) {
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		if errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingBoundary) {
			return nil, apperrors.Wrap(err, apperrors.InvalidInput, "요청 본문이 multipart/form-data 형식이 아닙니다")
		}
		return nil, apperrors.Wrap(err, apperrors.ParsingFailed, "multipart 폼 파싱에 실패했습니다")
	}

	return New(r.MultipartForm)
}

// Charset 텍스트 값의 원본 문자 인코딩 이름을 반환합니다. (예: utf-8, euc-kr)
func (b *Bag) Charset() string {
	return b.charset
}

// Has 키에 해당하는 값 또는 파일이 존재하는지 여부를 반환합니다.
func (b *Bag) Has(key string) bool {
	_, ok := resolveKey(b.values, key)
	if ok {
		return true
	}
	_, ok = resolveKey(b.form.File, key)
	return ok
}

// Value 키에 해당하는 첫 번째 텍스트 값을 반환합니다.
func (b *Bag) Value(key string) (string, bool) {
	vs := b.Values(key)
	if len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

// Values 키에 해당하는 모든 텍스트 값을 반환합니다.
func (b *Bag) Values(key string) []string {
	k, ok := resolveKey(b.values, key)
	if !ok {
		return nil
	}
	return slices.Clone(b.values[k])
}

// File 키에 해당하는 첫 번째 업로드 파일을 반환합니다.
func (b *Bag) File(key string) (*multipart.FileHeader, bool) {
	fhs := b.Files(key)
	if len(fhs) == 0 {
		return nil, false
	}
	return fhs[0], true
}

// Files 키에 해당하는 모든 업로드 파일을 반환합니다.
func (b *Bag) Files(key string) []*multipart.FileHeader {
	k, ok := resolveKey(b.form.File, key)
	if !ok {
		return nil
	}
	return slices.Clone(b.form.File[k])
}

// Lookup 키에 해당하는 항목을 타입을 정하지 않고 반환합니다.
//
// 파일이 우선하며, 항목이 하나면 *multipart.FileHeader 또는 string을,
// 여러 개면 []*multipart.FileHeader 또는 []string을 반환합니다.
func (b *Bag) Lookup(key string) (any, bool) {
	if fhs := b.Files(key); len(fhs) > 0 {
		if len(fhs) == 1 {
			return fhs[0], true
		}
		return fhs, true
	}

	if vs := b.Values(key); len(vs) > 0 {
		if len(vs) == 1 {
			return vs[0], true
		}
		return vs, true
	}

	return nil, false
}

// Keys 폼에 포함된 모든 키를 정렬하여 반환합니다. _charset_ 필드는 제외됩니다.
func (b *Bag) Keys() []string {
	keys := make(map[string]struct{}, len(b.values)+len(b.form.File))
	for k := range b.values {
		keys[k] = struct{}{}
	}
	for k := range b.form.File {
		keys[k] = struct{}{}
	}
	delete(keys, CharsetField)

	return slices.Sorted(maps.Keys(keys))
}

// RemoveAll 파싱 과정에서 생성된 임시 파일을 삭제합니다.
func (b *Bag) RemoveAll() error {
	return b.form.RemoveAll()
}

// resolveKey 정확히 일치하는 키를 먼저 찾고, 없으면 snake_case로 정규화한 키가 일치하는 항목을 찾습니다.
// 정규화 결과가 같은 키가 여럿이면 사전순으로 가장 앞선 키를 사용합니다.
func resolveKey[V any](m map[string]V, key string) (string, bool) {
	if _, ok := m[key]; ok {
		return key, true
	}

	want := strcase.ToSnake(key)
	if want == "" {
		return "", false
	}

	var found string
	for k := range m {
		if strcase.ToSnake(k) != want {
			continue
		}
		if found == "" || k < found {
			found = k
		}
	}

	return found, found != ""
}
