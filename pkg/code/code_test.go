package code

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPackageCodesBuiltWithFallbackLang(t *testing.T) {
	// the package-level codes are created before any init func has run
	assert.Equal(t, FallbackLang, GetGlobalDefaultLang())
	assert.Equal(t, "Success", sussCodes[Success.Code()])
	assert.Equal(t, "History entry not found", codes[ErrorHistoryNotFound.Code()])
}

func TestGlobalLang(t *testing.T) {
	t.Cleanup(func() { _ = SetGlobalDefaultLang(FallbackLang) })

	require.NoError(t, SetGlobalDefaultLang("zh_cn"))
	assert.Equal(t, "zh_cn", GetGlobalDefaultLang())
	assert.Equal(t, "成功", Success.Msg())

	err := SetGlobalDefaultLang("fr")
	assert.Error(t, err)
	assert.Equal(t, FallbackLang, GetGlobalDefaultLang())
	assert.Equal(t, "Success", Success.Msg())

	assert.Equal(t, []string{"en", "zh_cn"}, GetSupportedLanguages())
}

func TestLangIn(t *testing.T) {
	l := lang{en: "Hello", zh_cn: "你好"}
	assert.Equal(t, "你好", l.In("zh_cn"))
	assert.Equal(t, "Hello", l.In("en"))
	assert.Equal(t, "Hello", l.In("de"))
	assert.Equal(t, "Hello", lang{en: "Hello"}.In("zh_cn"))
	assert.Contains(t, lang{}.In("en"), "No message available")
}

func TestCodeClones(t *testing.T) {
	c := ErrorInvalidParams.WithDetails("a").WithData(map[string]string{"k": "v"})
	assert.True(t, c.HaveDetails())
	assert.True(t, c.HaveData())
	assert.Equal(t, []string{"a"}, c.Details())

	// the shared value is never modified
	assert.False(t, ErrorInvalidParams.HaveDetails())
	assert.False(t, ErrorInvalidParams.HaveData())

	assert.True(t, errors.Is(c, ErrorInvalidParams))
	assert.False(t, errors.Is(c, ErrorNotFoundAPI))
	assert.False(t, errors.Is(errors.New("x"), ErrorInvalidParams))
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusOK, Success.StatusCode())
	assert.True(t, Success.Status())
	assert.Equal(t, http.StatusNotFound, ErrorHistoryNotFound.StatusCode())
	assert.False(t, ErrorHistoryNotFound.Status())
	assert.Equal(t, http.StatusInternalServerError, ErrorHistorySerialize.StatusCode())
	assert.Equal(t, http.StatusOK, (&Code{}).StatusCode())
}

func TestDuplicateCodePanics(t *testing.T) {
	assert.Panics(t, func() { NewError(ErrorDBQuery.Code(), http.StatusInternalServerError, lang{en: "dup"}) })
	assert.Panics(t, func() { NewSuss(Success.Code(), lang{en: "dup"}) })
}
