package validate

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
)

// keySet は1つのノードで受け付けるキーの集合。
type keySet map[string]struct{}

func newKeySet(keys ...string) keySet {
	s := make(keySet, len(keys))
	for _, k := range keys {
		s[k] = struct{}{}
	}
	return s
}

// unknownKeys は宣言外のキーを昇順に形式違反として報告する。
// 1件でも報告した場合はfalseを返す。
func (w *walker) unknownKeys(m map[string]any, p fieldPath, allowed keySet) bool {
	var extra []string
	for k := range m {
		if _, ok := allowed[k]; !ok {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	for _, k := range extra {
		w.add(p.child(k), KindMalformedInput, "unknown field %q", k)
	}
	return len(extra) == 0
}

func (w *walker) add(p fieldPath, kind Kind, format string, args ...any) {
	w.violations = append(w.violations, Violation{
		FieldPath: p.String(),
		ErrorKind: kind,
		Message:   fmt.Sprintf(format, args...),
	})
}

func (w *walker) addErr(p fieldPath, err error) {
	var fe *FieldError
	if errors.As(err, &fe) {
		w.violations = append(w.violations, Violation{
			FieldPath: p.String(),
			ErrorKind: fe.Kind,
			Message:   fe.Message,
		})
		return
	}
	w.add(p, KindMalformedInput, "%v", err)
}

func (w *walker) object(v any, p fieldPath) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		w.add(p, KindMalformedInput, "must be an object, got %s", typeName(v))
		return nil, false
	}
	return m, true
}

func (w *walker) list(v any, p fieldPath) ([]any, bool) {
	l, ok := v.([]any)
	if !ok {
		w.add(p, KindMalformedInput, "must be an array, got %s", typeName(v))
		return nil, false
	}
	return l, true
}

func (w *walker) str(v any, p fieldPath) (string, bool) {
	s, ok := v.(string)
	if !ok {
		w.add(p, KindMalformedInput, "must be a string, got %s", typeName(v))
		return "", false
	}
	return s, true
}

func (w *walker) requiredObject(m map[string]any, key string, p fieldPath) (map[string]any, bool) {
	fp := p.child(key)
	raw, present := m[key]
	if !present || raw == nil {
		w.add(fp, KindRequired, "%s is required", key)
		return nil, false
	}
	return w.object(raw, fp)
}

func (w *walker) requiredList(m map[string]any, key string, p fieldPath) ([]any, bool) {
	fp := p.child(key)
	raw, present := m[key]
	if !present || raw == nil {
		w.add(fp, KindRequired, "%s is required", key)
		return nil, false
	}
	return w.list(raw, fp)
}

// boolField は未設定をfalseとして扱う。第2戻り値は形式が正しいかどうか。
func (w *walker) boolField(m map[string]any, key string, p fieldPath) (bool, bool) {
	raw, present := m[key]
	if !present || raw == nil {
		return false, true
	}
	b, ok := raw.(bool)
	if !ok {
		w.add(p.child(key), KindMalformedInput, "must be a boolean, got %s", typeName(raw))
		return false, false
	}
	return b, true
}

func (w *walker) rangeField(m map[string]any, key string, p fieldPath, limit string, required bool) int64 {
	fp := p.child(key)
	raw, present := m[key]
	if !present || raw == nil {
		if required {
			w.add(fp, KindRequired, "%s is required", key)
		}
		return 0
	}
	n, ok := w.integer(raw, fp)
	if !ok {
		return 0
	}
	r := w.cat.MustLimit(limit)
	if _, err := Range(n, r.Min, r.Max, key); err != nil {
		w.addErr(fp, err)
		return 0
	}
	return n
}

// enumField は整数コードとラベル文字列のどちらも受け付け、コードを返す。
func (w *walker) enumField(m map[string]any, key string, p fieldPath, enum string, required bool) int {
	fp := p.child(key)
	raw, present := m[key]
	if !present || raw == nil {
		if required {
			w.add(fp, KindRequired, "%s is required", key)
		}
		return 0
	}

	set := w.cat.MustChoices(enum)
	if label, ok := raw.(string); ok {
		code, err := EnumLabel(label, set, key)
		if err != nil {
			w.addErr(fp, err)
			return 0
		}
		return code
	}

	n, ok := w.integer(raw, fp)
	if !ok {
		return 0
	}
	if n < math.MinInt32 || n > math.MaxInt32 {
		w.add(fp, KindInvalidChoice, "%s must be one of %s", key, set)
		return 0
	}
	code, err := Enum(int(n), set, key)
	if err != nil {
		w.addErr(fp, err)
		return 0
	}
	return code
}

// integer は整数値を取り出す。小数部を持つ数値は形式違反とする。
func (w *walker) integer(v any, p fieldPath) (int64, bool) {
	switch t := v.(type) {
	case json.Number:
		if n, err := t.Int64(); err == nil {
			return n, true
		}
		// 範囲外の指数表記はFloat64が±Infとエラーを返す
		f, err := t.Float64()
		if err != nil && !math.IsInf(f, 0) {
			w.add(p, KindMalformedInput, "must be an integer, got %q", t.String())
			return 0, false
		}
		return w.integralFloat(f, p)
	case float64:
		return w.integralFloat(t, p)
	case float32:
		return w.integralFloat(float64(t), p)
	case int:
		return int64(t), true
	case int8:
		return int64(t), true
	case int16:
		return int64(t), true
	case int32:
		return int64(t), true
	case int64:
		return t, true
	case uint8:
		return int64(t), true
	case uint16:
		return int64(t), true
	case uint32:
		return int64(t), true
	case uint:
		if uint64(t) > math.MaxInt64 {
			w.add(p, KindOutOfRange, "must fit in a signed 64-bit integer")
			return 0, false
		}
		return int64(t), true
	case uint64:
		if t > math.MaxInt64 {
			w.add(p, KindOutOfRange, "must fit in a signed 64-bit integer")
			return 0, false
		}
		return int64(t), true
	}
	w.add(p, KindMalformedInput, "must be an integer, got %s", typeName(v))
	return 0, false
}

func (w *walker) integralFloat(f float64, p fieldPath) (int64, bool) {
	if math.IsNaN(f) || (!math.IsInf(f, 0) && f != math.Trunc(f)) {
		w.add(p, KindMalformedInput, "must be an integer, got %v", f)
		return 0, false
	}
	if math.IsInf(f, 0) || f < math.MinInt64 || f >= math.MaxInt64 {
		w.add(p, KindOutOfRange, "must fit in a signed 64-bit integer")
		return 0, false
	}
	return int64(f), true
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case map[string]any:
		return "object"
	case []any:
		return "array"
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, float64, float32, int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64:
		return "number"
	default:
		return fmt.Sprintf("%T", v)
	}
}

// plainValue はjson.Numberをfloat64に置き換えたコピーを返す。
// encoding/jsonで再読込したときと同じ表現にそろえる。
func plainValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = plainValue(e)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = plainValue(e)
		}
		return out
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	default:
		return v
	}
}
