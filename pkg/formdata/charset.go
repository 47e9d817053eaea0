package formdata

import (
	"strings"

	apperrors "github.com/darkkaiser/contenthub-server/internal/pkg/errors"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
)

// CharsetField 브라우저가 폼 전송에 사용한 문자 인코딩을 알려주는 HTML 예약 필드명입니다.
const CharsetField = "_charset_"

// lookupDecoder 인코딩 레이블에 해당하는 디코더와 정규화된 인코딩 이름을 반환합니다.
// 레이블이 비어있거나 UTF-8인 경우 디코더는 nil입니다.
func lookupDecoder(label string) (*encoding.Decoder, string, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return nil, "utf-8", nil
	}

	e, name := charset.Lookup(label)
	if e == nil {
		return nil, "", apperrors.Newf(apperrors.InvalidInput, "지원하지 않는 문자 인코딩입니다: '%s'", label)
	}
	if name == "utf-8" {
		return nil, name, nil
	}

	return e.NewDecoder(), name, nil
}

// decodeValues 값 목록을 UTF-8로 변환한 새 슬라이스를 반환합니다.
func decodeValues(dec *encoding.Decoder, values []string) ([]string, error) {
	decoded := make([]string, len(values))
	for i, v := range values {
		s, err := dec.String(v)
		if err != nil {
			return nil, apperrors.Wrap(err, apperrors.ParsingFailed, "폼 데이터 값을 UTF-8로 변환하는데 실패했습니다")
		}
		decoded[i] = s
	}
	return decoded, nil
}
