package homework

import (
	"fmt"

	"github.com/spf13/cast"
)

const (
	keyHomeworks   = "homeworks"
	keyCurrentDate = "current_date"
)

// ValidateResponse checks that a decoded API response is an object with a
// "homeworks" list and returns that list. Elements are not inspected here.
func ValidateResponse(v interface{}) ([]interface{}, error) {
	body, ok := v.(map[string]interface{})
	if !ok {
		return nil, &ShapeError{Reason: ReasonTopLevelType, Detail: fmt.Sprintf("%T", v)}
	}

	raw, ok := body[keyHomeworks]
	if !ok {
		return nil, &ShapeError{Reason: ReasonMissingKey, Detail: keyHomeworks}
	}

	homeworks, ok := raw.([]interface{})
	if !ok {
		return nil, &ShapeError{Reason: ReasonFieldType, Detail: fmt.Sprintf("%q is %T, not a list", keyHomeworks, raw)}
	}
	return homeworks, nil
}

// CurrentDate returns the server timestamp carried in the response, if any.
func CurrentDate(v interface{}) (int64, bool) {
	body, ok := v.(map[string]interface{})
	if !ok {
		return 0, false
	}
	raw, ok := body[keyCurrentDate]
	if !ok || raw == nil {
		return 0, false
	}
	ts, err := cast.ToInt64E(raw)
	if err != nil || ts <= 0 {
		return 0, false
	}
	return ts, true
}
