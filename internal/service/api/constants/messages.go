package constants

// 클라이언트에게 반환되는 에러 메시지 상수입니다.
const (
	ErrMsgNotFound           = "요청한 리소스를 찾을 수 없습니다"
	ErrMsgRequestTooLarge    = "요청 본문이 허용된 크기를 초과했습니다"
	ErrMsgTooManyRequests    = "요청이 너무 많습니다. 잠시 후 다시 시도해주세요"
	ErrMsgInternalServer     = "내부 서버 오류가 발생했습니다"
	ErrMsgServiceUnavailable = "요청 처리 시간이 초과되었습니다. 잠시 후 다시 시도해주세요"
)
