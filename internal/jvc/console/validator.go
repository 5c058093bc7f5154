package console

import (
	"fmt"
	"strings"
)

// ConsoleType 从 action 内层对象中取出 type 字段
// 只检查存在且为非空字符串，支持哪些类型由 AccessProvider 决定
func ConsoleType(body map[string]any) (string, error) {
	raw, ok := body["type"]
	if !ok || raw == nil {
		return "", InvalidConsoleType("")
	}
	consoleType, ok := raw.(string)
	if !ok {
		return "", InvalidConsoleType(fmt.Sprint(raw))
	}
	if strings.TrimSpace(consoleType) == "" {
		return "", InvalidConsoleType(consoleType)
	}
	return consoleType, nil
}
