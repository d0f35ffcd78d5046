package httputil

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

// Message keys shared by handlers and middlewares.
const (
	MsgAuthorized      = "api.response.authorized"
	MsgUnauthorized    = "api.response.unauthorized"
	MsgForbidden       = "api.response.forbidden"
	MsgJWTExpired      = "api.response.jwt.expired"
	MsgJWTInvalid      = "api.response.jwt.invalid"
	MsgBadRequest      = "api.response.bad.request"
	MsgInvalidInput    = "api.response.invalid.input"
	MsgNotFound        = "api.response.not.found"
	MsgConflict        = "api.response.conflict"
	MsgTooManyRequests = "api.response.too.many.requests"
	MsgError           = "api.response.error"
	MsgCreated         = "api.response.created"
	MsgSuccess         = "api.response.success"
)

// LangQueryParam overrides Accept-Language when present.
const LangQueryParam = "lang"

var catalogs = map[language.Tag]map[string]string{
	language.Korean: {
		MsgAuthorized:      "인증에 성공했습니다.",
		MsgUnauthorized:    "인증에 실패했습니다.",
		MsgForbidden:       "권한이 없습니다.",
		MsgJWTExpired:      "토큰이 만료되었습니다.",
		MsgJWTInvalid:      "유효하지 않은 토큰입니다.",
		MsgBadRequest:      "잘못된 요청입니다.",
		MsgInvalidInput:    "입력값이 올바르지 않습니다.",
		MsgNotFound:        "요청하신 리소스를 찾을 수 없습니다.",
		MsgConflict:        "이미 존재하는 리소스입니다.",
		MsgTooManyRequests: "요청이 너무 많습니다. 잠시 후 다시 시도해 주세요.",
		MsgError:           "서버 내부 오류가 발생했습니다.",
		MsgCreated:         "리소스가 생성되었습니다.",
		MsgSuccess:         "요청에 성공했습니다.",
	},
	language.English: {
		MsgAuthorized:      "Authentication succeeded.",
		MsgUnauthorized:    "Authentication failed.",
		MsgForbidden:       "Access is denied.",
		MsgJWTExpired:      "The token has expired.",
		MsgJWTInvalid:      "The token is invalid.",
		MsgBadRequest:      "Invalid request parameter.",
		MsgInvalidInput:    "The input is invalid.",
		MsgNotFound:        "The requested resource was not found.",
		MsgConflict:        "The resource already exists.",
		MsgTooManyRequests: "Too many requests. Please retry later.",
		MsgError:           "Server error occurred.",
		MsgCreated:         "The resource was created.",
		MsgSuccess:         "The request succeeded.",
	},
}

// Messages resolves message keys to localized text. Korean is the default
// locale; English is selected through Accept-Language or the lang query parameter.
type Messages struct {
	supported []language.Tag
	matcher   language.Matcher
}

// NewMessages creates the message catalog.
func NewMessages() *Messages {
	supported := []language.Tag{language.Korean, language.English}
	return &Messages{
		supported: supported,
		matcher:   language.NewMatcher(supported),
	}
}

// Resolve picks the supported locale for a lang override and an Accept-Language value.
func (m *Messages) Resolve(lang, acceptLanguage string) language.Tag {
	var preferred []language.Tag
	if lang != "" {
		if tag, err := language.Parse(lang); err == nil {
			preferred = append(preferred, tag)
		}
	}
	if tags, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil {
		preferred = append(preferred, tags...)
	}

	_, index, confidence := m.matcher.Match(preferred...)
	if confidence == language.No {
		return m.supported[0]
	}
	return m.supported[index]
}

// Get returns the text for key in tag's catalog. Unknown keys are returned as is.
func (m *Messages) Get(tag language.Tag, key string) string {
	if text, ok := catalogs[tag][key]; ok {
		return text
	}
	return key
}

// Localize resolves key for the locale requested by c.
func (m *Messages) Localize(c *gin.Context, key string) string {
	tag := m.Resolve(c.Query(LangQueryParam), c.GetHeader("Accept-Language"))
	return m.Get(tag, key)
}
