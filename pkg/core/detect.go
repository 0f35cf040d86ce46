package core

import "strings"

// textareaThreshold is the string length above which a value is edited as a textarea.
const textareaThreshold = 100

// DetectFieldType maps a parsed value to exactly one FieldType.
//
// Rules are ordered and the first match wins: dates (or strings carrying an
// ISO date prefix), arrays, booleans, numbers, then strings, which split into
// textarea (longer than 100 characters), url, email and text.
func DetectFieldType(v Value) FieldType {
	switch {
	case v.Kind == KindDate, v.Kind == KindString && HasDatePrefix(v.Str):
		return FieldDate
	case v.Kind == KindArray:
		return FieldArray
	case v.Kind == KindBool:
		return FieldBoolean
	case v.Kind == KindNumber:
		return FieldNumber
	case v.Kind == KindString:
		return detectStringType(v.Str)
	}
	return FieldText
}

func detectStringType(s string) FieldType {
	// Length counts UTF-16 code units.
	if utf16Len(s) > textareaThreshold {
		return FieldTextarea
	}
	if strings.Contains(s, "http://") || strings.Contains(s, "https://") {
		return FieldURL
	}
	if strings.Contains(s, "@") {
		return FieldEmail
	}
	return FieldText
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}
