package console

import (
	"errors"
	"fmt"
)

// Kind 控制台领域错误的种类，集合是封闭的
type Kind int

const (
	// KindInvalidConsoleType 控制台类型缺失或不被支持，客户端错误，不可重试
	KindInvalidConsoleType Kind = iota + 1
	// KindInstanceNotFound 实例不存在
	KindInstanceNotFound
	// KindInstanceNotReady 实例存在但暂时无法连接控制台，可稍后重试
	KindInstanceNotReady
)

func (k Kind) String() string {
	switch k {
	case KindInvalidConsoleType:
		return "InvalidConsoleType"
	case KindInstanceNotFound:
		return "InstanceNotFound"
	case KindInstanceNotReady:
		return "InstanceNotReady"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error 控制台领域错误
// Cause 只用于日志，不会出现在响应中
type Error struct {
	Kind        Kind
	InstanceID  string
	ConsoleType string
	Cause       error
}

// 用于 errors.Is 的哨兵错误，只比较 Kind
var (
	ErrInvalidConsoleType = &Error{Kind: KindInvalidConsoleType}
	ErrInstanceNotFound   = &Error{Kind: KindInstanceNotFound}
	ErrInstanceNotReady   = &Error{Kind: KindInstanceNotReady}
)

// InvalidConsoleType 创建控制台类型无效的错误
func InvalidConsoleType(consoleType string) *Error {
	return &Error{Kind: KindInvalidConsoleType, ConsoleType: consoleType}
}

// InstanceNotFound 创建实例不存在的错误
func InstanceNotFound(instanceID string, cause error) *Error {
	return &Error{Kind: KindInstanceNotFound, InstanceID: instanceID, Cause: cause}
}

// InstanceNotReady 创建实例未就绪的错误
func InstanceNotReady(instanceID string, cause error) *Error {
	return &Error{Kind: KindInstanceNotReady, InstanceID: instanceID, Cause: cause}
}

// Message 返回可以展示给调用方的描述
func (e *Error) Message() string {
	switch e.Kind {
	case KindInvalidConsoleType:
		if e.ConsoleType == "" {
			return "Missing console type"
		}
		return fmt.Sprintf("Invalid console type %q", e.ConsoleType)
	case KindInstanceNotFound:
		return fmt.Sprintf("Instance %s could not be found", e.InstanceID)
	case KindInstanceNotReady:
		return fmt.Sprintf("Instance %s is not ready", e.InstanceID)
	default:
		return e.Kind.String()
	}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message(), e.Cause)
	}
	return e.Message()
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is 按 Kind 比较，errors.Is(err, console.ErrInstanceNotReady)
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Kind == t.Kind
}

// AsError 从错误链中取出 *Error
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}
