package namedargs

import "github.com/reoring/namedargs/i18n"

// IssueAt creates an Issue at the given path with provided code, a localized
// message and params map.
func IssueAt(p PathRef, code string, params map[string]any) Issue {
	return Issue{Path: p.Pointer(), Code: code, Message: i18n.T(code, stringParams(params)), Params: params}
}

func stringParams(params map[string]any) map[string]string {
	if len(params) == 0 {
		return nil
	}
	out := make(map[string]string, len(params))
	for k, v := range params {
		if s, ok := v.(string); ok {
			out[k] = s
		}
	}
	return out
}
