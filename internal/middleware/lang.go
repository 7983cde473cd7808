package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

// LangWithTranslator picks the validation translator from the "lang" query or header
// LangWithTranslator 根据 lang 参数或请求头选择验证信息的翻译器
func LangWithTranslator(uni *ut.UniversalTranslator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if uni == nil {
			c.Next()
			return
		}

		lang := c.Query("lang")
		if lang == "" {
			lang = c.GetHeader("lang")
		}
		lang = strings.ToLower(strings.ReplaceAll(lang, "-", "_"))
		// zh_cn maps onto the zh locale
		lang, _, _ = strings.Cut(lang, "_")

		trans, found := uni.GetTranslator(lang)
		if !found {
			trans, _ = uni.GetTranslator("en")
		}
		c.Set("trans", trans)
		c.Next()
	}
}
