package code

import (
	"fmt"
	"sync/atomic"
)

// lang holds the English and Chinese text of a message
// lang 保存一条消息的英文和中文文本
type lang struct {
	en    string
	zh_cn string
}

const FallbackLang = "en"

var supportedLangs = []string{"en", "zh_cn"}

// current is read while the package-level codes in common.go are built, before any
// init func runs, so an empty value means FallbackLang
var current atomic.Value

// GetMessage returns the message in the global language, falling back to English
// GetMessage 按全局语言返回消息，缺失时回退到英文
func (l lang) GetMessage() string {
	return l.In(GetGlobalDefaultLang())
}

// In returns the message in the given language
func (l lang) In(language string) string {
	if language == "zh_cn" && l.zh_cn != "" {
		return l.zh_cn
	}
	if l.en != "" {
		return l.en
	}
	return fmt.Sprintf("No message available for language: %s", language)
}

// GetSupportedLanguages 返回支持的语言
func GetSupportedLanguages() []string {
	return append([]string(nil), supportedLangs...)
}

// SetGlobalDefaultLang sets the process-wide message language
// 设置全局默认语言
func SetGlobalDefaultLang(language string) error {
	for _, l := range supportedLangs {
		if l == language {
			current.Store(language)
			return nil
		}
	}
	current.Store(FallbackLang)
	return fmt.Errorf("unsupported language %q, defaulting to %s", language, FallbackLang)
}

// GetGlobalDefaultLang 返回全局默认语言
func GetGlobalDefaultLang() string {
	if v, ok := current.Load().(string); ok {
		return v
	}
	return FallbackLang
}
