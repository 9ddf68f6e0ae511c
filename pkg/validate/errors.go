package validate

import (
	"errors"
	"fmt"
	"strings"
)

// Kind は違反の種別を表す。
type Kind string

// 違反種別
const (
	KindMalformedInput    Kind = "malformed_input"
	KindHexFormat         Kind = "hex_format"
	KindDigitFormat       Kind = "digit_format"
	KindInvalidChoice     Kind = "invalid_choice"
	KindOutOfRange        Kind = "out_of_range"
	KindDuplicate         Kind = "duplicate"
	KindMutualExclusivity Kind = "mutual_exclusivity"
	KindCardinality       Kind = "cardinality"
	KindRequired          Kind = "required"
	KindIPFormat          Kind = "ip_format"
	KindImmutable         Kind = "immutable"
)

// 違反種別ごとのセンチネルエラー
var (
	ErrMalformedInput    = errors.New("malformed input")
	ErrHexFormat         = errors.New("invalid hex format")
	ErrDigitFormat       = errors.New("invalid digit format")
	ErrInvalidChoice     = errors.New("invalid choice")
	ErrOutOfRange        = errors.New("out of range")
	ErrDuplicate         = errors.New("duplicate")
	ErrMutualExclusivity = errors.New("mutual exclusivity")
	ErrCardinality       = errors.New("cardinality")
	ErrRequired          = errors.New("required")
	ErrIPFormat          = errors.New("invalid IP address format")
	ErrImmutable         = errors.New("immutable")
)

var kindSentinels = map[Kind]error{
	KindMalformedInput:    ErrMalformedInput,
	KindHexFormat:         ErrHexFormat,
	KindDigitFormat:       ErrDigitFormat,
	KindInvalidChoice:     ErrInvalidChoice,
	KindOutOfRange:        ErrOutOfRange,
	KindDuplicate:         ErrDuplicate,
	KindMutualExclusivity: ErrMutualExclusivity,
	KindCardinality:       ErrCardinality,
	KindRequired:          ErrRequired,
	KindIPFormat:          ErrIPFormat,
	KindImmutable:         ErrImmutable,
}

// Sentinel は種別に対応するセンチネルエラーを返す。
func (k Kind) Sentinel() error {
	return kindSentinels[k]
}

// FieldError は単一フィールドの検証エラー。
// errors.Is で種別のセンチネルと比較できる。
type FieldError struct {
	Kind    Kind
	Message string
}

// Error はerrorインターフェースを実装する。
func (e *FieldError) Error() string {
	return e.Message
}

// Is は種別のセンチネルエラーとの比較を可能にする。
func (e *FieldError) Is(target error) bool {
	s := e.Kind.Sentinel()
	return s != nil && target == s
}

func fieldErrorf(kind Kind, format string, args ...any) *FieldError {
	return &FieldError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Violation は違反1件を表す。
// FieldPath はスラッシュ区切り（例: slices/1/sessions/0/qos/arp/priority_level）。
type Violation struct {
	FieldPath string `json:"field_path"`
	ErrorKind Kind   `json:"error_kind"`
	Message   string `json:"message"`
}

// String は "path: message (kind)" 形式を返す。
func (v Violation) String() string {
	path := v.FieldPath
	if path == "" {
		path = "(root)"
	}
	return fmt.Sprintf("%s: %s (%s)", path, v.Message, v.ErrorKind)
}

// Violations は検出順の違反一覧。error を実装する。
type Violations []Violation

// Error はerrorインターフェースを実装する。
func (vs Violations) Error() string {
	switch len(vs) {
	case 0:
		return "no violations"
	case 1:
		return "1 violation: " + vs[0].String()
	}
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = v.String()
	}
	return fmt.Sprintf("%d violations: %s", len(vs), strings.Join(parts, "; "))
}

// Is はいずれかの違反の種別がtargetに一致するかを返す。
func (vs Violations) Is(target error) bool {
	for _, v := range vs {
		if s := v.ErrorKind.Sentinel(); s != nil && s == target {
			return true
		}
	}
	return false
}

// ByPath は指定パスの違反を返す。
func (vs Violations) ByPath(path string) []Violation {
	var out []Violation
	for _, v := range vs {
		if v.FieldPath == path {
			out = append(out, v)
		}
	}
	return out
}

// ByKind は指定種別の違反を返す。
func (vs Violations) ByKind(kind Kind) []Violation {
	var out []Violation
	for _, v := range vs {
		if v.ErrorKind == kind {
			out = append(out, v)
		}
	}
	return out
}

// AsViolations はerrから違反一覧を取り出す。
func AsViolations(err error) (Violations, bool) {
	var vs Violations
	if errors.As(err, &vs) {
		return vs, true
	}
	return nil, false
}
