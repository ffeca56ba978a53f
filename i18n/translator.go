package i18n

import "sync"

// Translator retrieves localized messages for Issue codes.
// data provides optional metadata to embed in the message (for example,
// "param").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	param := data["param"]
	switch t.lang {
	case "ja":
		switch code {
		case "missing_required":
			if param != "" {
				return "必須引数 " + param + " が指定されていません"
			}
			return "必須引数が指定されていません"
		case "duplicate_argument":
			if param != "" {
				return "引数 " + param + " が重複しています"
			}
			return "引数が重複しています"
		case "unknown_argument":
			if param != "" {
				return "未知の引数 " + param + " です"
			}
			return "未知の引数です"
		case "invalid_type":
			return "型が不正です"
		case "invalid_schema":
			return "スキーマ定義が不正です"
		case "parse_error":
			return "解析エラー"
		case "signature_mismatch":
			return "関数シグネチャがスキーマと一致しません"
		}
	default: // "en"
		switch code {
		case "missing_required":
			if param != "" {
				return "missing required argument " + param
			}
			return "missing required argument"
		case "duplicate_argument":
			if param != "" {
				return "argument " + param + " supplied more than once"
			}
			return "argument supplied more than once"
		case "unknown_argument":
			if param != "" {
				return "unknown argument " + param
			}
			return "unknown argument"
		case "invalid_type":
			return "invalid type"
		case "invalid_schema":
			return "invalid schema declaration"
		case "parse_error":
			return "parse error"
		case "signature_mismatch":
			return "function signature does not match schema"
		}
	}
	return code
}

var (
	mu                sync.RWMutex
	currentTranslator Translator = dictTranslator{lang: "en"}
)

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	mu.Lock()
	currentTranslator = dictTranslator{lang: lang}
	mu.Unlock()
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		tr = dictTranslator{lang: "en"}
	}
	mu.Lock()
	currentTranslator = tr
	mu.Unlock()
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string {
	mu.RLock()
	tr := currentTranslator
	mu.RUnlock()
	return tr.Message(code, data)
}
