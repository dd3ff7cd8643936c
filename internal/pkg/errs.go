package pkg

import (
	"errors"
	"fmt"
	"net/http"
)

// 业务错误分类：所有操作在边界处转成 HTTP 响应，不向上 panic
var (
	// ErrNotFound 行不存在，或当前用户无权看到该行（两者刻意不区分）
	ErrNotFound = errors.New("not found")
	// ErrForbidden 行存在，但身份/角色校验未通过
	ErrForbidden = errors.New("forbidden")
	// ErrConflict 唯一约束冲突，状态已存在；调用方按幂等成功处理
	ErrConflict = errors.New("already exists")
	// ErrValidation 入参不合法
	ErrValidation = errors.New("invalid input")
	// ErrUpstream 外部依赖（审核服务）失败；内容一律拒绝，失败关闭
	ErrUpstream = errors.New("upstream unavailable")
)

func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}

// HTTPStatus 把业务错误映射为状态码，未识别的错误一律 500
func HTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrConflict):
		return http.StatusConflict
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
