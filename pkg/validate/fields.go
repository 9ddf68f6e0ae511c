// Package validate は加入者ドキュメントの検証機能を提供する。
// フィールド単位の検証関数と、ドキュメント全体を走査する構造検証器からなる。
package validate

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/asaskevich/govalidator"

	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/catalog"
)

// StripSpaces は文字列中の空白文字をすべて取り除く。
func StripSpaces(value string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, value)
}

// Hex は16進文字列と長さを検証する。
// minLen/maxLen が0以下の場合はその側の長さ制限を行わない。
func Hex(value string, minLen, maxLen int) (string, error) {
	n := utf8.RuneCountInString(value)
	if (minLen > 0 && n < minLen) || (maxLen > 0 && n > maxLen) {
		return "", fieldErrorf(KindHexFormat, "must be %s hex characters", lengthText(minLen, maxLen))
	}
	if !govalidator.IsHexadecimal(value) {
		return "", fieldErrorf(KindHexFormat, "must contain only hex characters [0-9A-Fa-f]")
	}
	return value, nil
}

// Digits は数字のみの文字列かを検証する。
func Digits(value string) (string, error) {
	if value == "" || !govalidator.IsNumeric(value) {
		return "", fieldErrorf(KindDigitFormat, "must contain only digits")
	}
	return value, nil
}

// Length は文字数が [minLen, maxLen] に収まるかを検証する。
func Length(value string, minLen, maxLen int, field string) (string, error) {
	n := utf8.RuneCountInString(value)
	if n < minLen || n > maxLen {
		return "", fieldErrorf(KindOutOfRange, "%s must be %s characters", field, lengthText(minLen, maxLen))
	}
	return value, nil
}

// Enum はコードが列挙定義に含まれるかを検証する。
func Enum(code int, set *catalog.ChoiceSet, field string) (int, error) {
	if !set.Contains(code) {
		return 0, fieldErrorf(KindInvalidChoice, "%s must be one of %s", field, set)
	}
	return code, nil
}

// EnumLabel はラベルを列挙定義で解決し、コードを返す。
func EnumLabel(label string, set *catalog.ChoiceSet, field string) (int, error) {
	code, ok := set.Resolve(label)
	if !ok {
		return 0, fieldErrorf(KindInvalidChoice, "%s must be one of %s", field, set)
	}
	return code, nil
}

// Range は値が [lo, hi] に収まるかを検証する。
func Range(value, lo, hi int64, field string) (int64, error) {
	if value < lo || value > hi {
		return 0, fieldErrorf(KindOutOfRange, "%s must be between %d and %d", field, lo, hi)
	}
	return value, nil
}

// UniqueSet は一覧に重複がないかを検証する。
func UniqueSet(list []string) ([]string, error) {
	seen := make(map[string]struct{}, len(list))
	for _, v := range list {
		if _, ok := seen[v]; ok {
			return nil, fieldErrorf(KindDuplicate, "duplicate value %q", v)
		}
		seen[v] = struct{}{}
	}
	return list, nil
}

// Cardinality は件数がカタログの範囲に収まるかを検証する。
func Cardinality(n int, r catalog.Range, field string) error {
	if !r.Contains(int64(n)) {
		return fieldErrorf(KindCardinality, "%s must have between %d and %d items, got %d", field, r.Min, r.Max, n)
	}
	return nil
}

// IPv4 はIPv4アドレス表記を検証する。
func IPv4(value string) (string, error) {
	if !govalidator.IsIPv4(value) {
		return "", fieldErrorf(KindIPFormat, "must be a valid IPv4 address")
	}
	return value, nil
}

// IPv6 はIPv6アドレス表記を検証する。
func IPv6(value string) (string, error) {
	if !govalidator.IsIPv6(value) {
		return "", fieldErrorf(KindIPFormat, "must be a valid IPv6 address")
	}
	return value, nil
}

func lengthText(minLen, maxLen int) string {
	switch {
	case minLen > 0 && minLen == maxLen:
		return strconv.Itoa(minLen)
	case minLen > 0 && maxLen > 0:
		return strconv.Itoa(minLen) + " to " + strconv.Itoa(maxLen)
	case maxLen > 0:
		return "at most " + strconv.Itoa(maxLen)
	default:
		return "at least " + strconv.Itoa(minLen)
	}
}
