package homework

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

const (
	fieldName   = "homework_name"
	fieldStatus = "status"
)

// Decode extracts the name and status code from one element of the "homeworks" list.
func Decode(record interface{}) (Homework, error) {
	fields, ok := record.(map[string]interface{})
	if !ok {
		return Homework{}, &ShapeError{Reason: ReasonRecordType, Detail: fmt.Sprintf("%T", record)}
	}

	var hw Homework
	if err := decodeField(fields, fieldName, &hw.Name); err != nil {
		return Homework{}, err
	}
	if err := decodeField(fields, fieldStatus, &hw.Status); err != nil {
		return Homework{}, err
	}
	return hw, nil
}

func decodeField(fields map[string]interface{}, name string, out interface{}) error {
	raw, ok := fields[name]
	if !ok {
		return &FieldError{Field: name}
	}
	if raw == nil {
		return &FieldError{Field: name, Err: fmt.Errorf("value is null")}
	}
	if err := mapstructure.WeakDecode(raw, out); err != nil {
		return &FieldError{Field: name, Err: err}
	}
	return nil
}

// ParseStatus renders the notification text for a homework record.
func ParseStatus(record interface{}) (string, error) {
	hw, err := Decode(record)
	if err != nil {
		return "", err
	}

	verdict, ok := Verdict(hw.Status)
	if !ok {
		return "", &StatusError{Status: hw.Status}
	}
	return StatusMessage(hw.Name, verdict), nil
}
