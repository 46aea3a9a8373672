package handler

import (
	"net/http"

	"golang.org/x/text/language"
)

type messageKey int

const (
	msgTokenRequired messageKey = iota
	msgTokenExpired
	msgTokenInvalid
	msgTokenMalformed
	msgUpstream
	msgInternal
	msgValidation
	msgUnknownManager
)

// первый язык используется по умолчанию
var supportedLanguages = []language.Tag{language.Vietnamese, language.English}

var languageMatcher = language.NewMatcher(supportedLanguages)

var catalog = map[language.Tag]map[messageKey]string{
	language.Vietnamese: {
		msgTokenRequired:  "Thiếu mã truy cập",
		msgTokenExpired:   "Link hết hiệu lực truy cập",
		msgTokenInvalid:   "Mã truy cập không hợp lệ",
		msgTokenMalformed: "Mã truy cập sai cú pháp",
		msgUpstream:       "Không thể tải dữ liệu phòng ban",
		msgInternal:       "Lỗi hệ thống",
		msgValidation:     "Tham số không hợp lệ",
		msgUnknownManager: "Không xác định",
	},
	language.English: {
		msgTokenRequired:  "Access token is missing",
		msgTokenExpired:   "The access link has expired",
		msgTokenInvalid:   "The access token is invalid",
		msgTokenMalformed: "The access token is malformed",
		msgUpstream:       "Could not load department data",
		msgInternal:       "Internal server error",
		msgValidation:     "Invalid request parameters",
		msgUnknownManager: "Unknown",
	},
}

// localeFromRequest выбирает язык по заголовку Accept-Language
func localeFromRequest(r *http.Request) language.Tag {
	tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	if err != nil || len(tags) == 0 {
		return supportedLanguages[0]
	}
	_, idx, _ := languageMatcher.Match(tags...)
	return supportedLanguages[idx]
}

func translate(locale language.Tag, key messageKey) string {
	if msg, ok := catalog[locale][key]; ok {
		return msg
	}
	return catalog[supportedLanguages[0]][key]
}
