package validate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/catalog"
	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/model"
)

// Options は検証時の前提条件を表す。
type Options struct {
	// IsUpdate は既存加入者の更新かどうか。
	// 更新時はIMSIを変更できず、sqnとflowは入力から読み取らない。
	IsUpdate bool
	// CurrentIMSI は更新対象の保存済みIMSI。
	CurrentIMSI string
}

// Validator は加入者ドキュメントの構造検証器。
// 状態を持たないため、複数のgoroutineから同時に利用できる。
type Validator struct {
	cat *catalog.Catalog
}

// New は新しいValidatorを生成する。catがnilの場合は共通カタログを使う。
func New(cat *catalog.Catalog) *Validator {
	if cat == nil {
		cat = catalog.Default()
	}
	return &Validator{cat: cat}
}

// Catalog は検証に使うカタログを返す。
func (v *Validator) Catalog() *catalog.Catalog {
	return v.cat
}

// ValidateJSON はJSONドキュメントを復元して検証する。
func (v *Validator) ValidateJSON(data []byte, opts Options) (*model.Subscriber, error) {
	doc, err := DecodeJSON(data)
	if err != nil {
		return nil, Violations{{ErrorKind: KindMalformedInput, Message: err.Error()}}
	}
	return v.Validate(doc, opts)
}

// Validate は汎用ツリー（map[string]any / []any）のドキュメントを検証する。
// 違反があれば最初の1件で止めずにすべてをViolationsとして返す。
func (v *Validator) Validate(doc any, opts Options) (*model.Subscriber, error) {
	w := &walker{cat: v.cat, opts: opts}
	sub := w.subscriber(doc)
	if len(w.violations) > 0 {
		return nil, w.violations
	}
	return sub, nil
}

// DecodeJSON はJSONを数値表現を保ったまま汎用ツリーへ復元する。
func DecodeJSON(data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("invalid JSON: unexpected data after document")
	}
	return doc, nil
}

// walker は1回の検証呼び出しに閉じた走査状態。
type walker struct {
	cat        *catalog.Catalog
	opts       Options
	violations Violations
}

func (w *walker) subscriber(doc any) *model.Subscriber {
	var root fieldPath
	m, ok := w.object(doc, root)
	if !ok {
		return nil
	}

	w.unknownKeys(m, root, subscriberKeys)

	sub := &model.Subscriber{}
	sub.IMSI = w.imsi(m)
	sub.MSISDN = w.msisdn(m)
	sub.SubscriberStatus = w.enumField(m, "subscriber_status", root, catalog.EnumSubscriberStatus, false)
	sub.OperatorDeterminedBarring = w.enumField(m, "operator_determined_barring", root, catalog.EnumOperatorDeterminedBarring, false)

	if sec, ok := w.requiredObject(m, "security", root); ok {
		sub.Security = w.security(sec, root.child("security"))
	}
	if a, ok := w.requiredObject(m, "ambr", root); ok {
		sub.AMBR = w.ambr(a, root.child("ambr"))
	}
	sub.Slices = w.slices(m)
	return sub
}

func (w *walker) slices(m map[string]any) []model.Slice {
	p := fieldPath{"slices"}
	items, ok := w.requiredList(m, "slices", nil)
	if !ok {
		return nil
	}
	if err := Cardinality(len(items), w.cat.MustLimit(catalog.LimitSliceCount), "slices"); err != nil {
		w.addErr(p, err)
	}

	out := make([]model.Slice, 0, len(items))
	hasDefault := false
	// 形の崩れたスライスがあると既定スライスの有無を判定できない
	shapeOK := true
	for i, item := range items {
		sp := p.index(i)
		sm, ok := w.object(item, sp)
		if !ok {
			shapeOK = false
			continue
		}
		s, ok := w.slice(sm, sp)
		if !ok {
			shapeOK = false
		}
		if s.DefaultIndicator {
			hasDefault = true
		}
		out = append(out, s)
	}

	if shapeOK && !hasDefault {
		w.add(p, KindDuplicate, "at least one slice must have default_indicator set")
	}
	return out
}

// slice の第2戻り値はキー集合とdefault_indicatorの形が正しいかどうか。
func (w *walker) slice(m map[string]any, p fieldPath) (model.Slice, bool) {
	keysOK := w.unknownKeys(m, p, sliceKeys)

	s := model.Slice{ID: w.id(m, p)}
	s.SST = int(w.rangeField(m, "sst", p, catalog.LimitSST, true))
	s.SD = w.sd(m, p)
	var indicatorOK bool
	s.DefaultIndicator, indicatorOK = w.boolField(m, "default_indicator", p)
	s.Sessions = w.sessions(m, p)
	return s, keysOK && indicatorOK
}

func (w *walker) sd(m map[string]any, p fieldPath) string {
	raw, present := m["sd"]
	if !present || raw == nil {
		return ""
	}
	fp := p.child("sd")
	s, ok := w.str(raw, fp)
	if !ok {
		return ""
	}
	s = StripSpaces(s)
	if s == "" {
		return ""
	}
	r := w.cat.MustLimit(catalog.LimitSDLength)
	if _, err := Hex(s, int(r.Min), int(r.Max)); err != nil {
		w.addErr(fp, err)
		return ""
	}
	return s
}

func (w *walker) sessions(m map[string]any, p fieldPath) []model.Session {
	items, ok := w.requiredList(m, "sessions", p)
	if !ok {
		return nil
	}
	lp := p.child("sessions")
	if err := Cardinality(len(items), w.cat.MustLimit(catalog.LimitSessionCount), "sessions"); err != nil {
		w.addErr(lp, err)
	}

	out := make([]model.Session, 0, len(items))
	for i, item := range items {
		sp := lp.index(i)
		sm, ok := w.object(item, sp)
		if !ok {
			continue
		}
		out = append(out, w.session(sm, sp))
	}
	return out
}

func (w *walker) session(m map[string]any, p fieldPath) model.Session {
	w.unknownKeys(m, p, sessionKeys)

	s := model.Session{ID: w.id(m, p)}
	s.Name = w.sessionName(m, p)
	s.Type = w.enumField(m, "type", p, catalog.EnumSessionType, true)
	if q, ok := w.requiredObject(m, "qos", p); ok {
		s.QoS = w.qos(q, p.child("qos"), false)
	}
	s.AMBR = w.optionalAMBR(m, "ambr", p)
	s.UE = w.ipConfig(m, "ue", p)
	s.SMF = w.ipConfig(m, "smf", p)
	s.PCCRules = w.pccRules(m, p)
	return s
}

func (w *walker) sessionName(m map[string]any, p fieldPath) string {
	fp := p.child("name")
	raw, present := m["name"]
	if !present || raw == nil {
		w.add(fp, KindRequired, "name is required")
		return ""
	}
	s, ok := w.str(raw, fp)
	if !ok {
		return ""
	}
	r := w.cat.MustLimit(catalog.LimitSessionName)
	if _, err := Length(s, int(r.Min), int(r.Max), "name"); err != nil {
		w.addErr(fp, err)
		return ""
	}
	return s
}

func (w *walker) pccRules(m map[string]any, p fieldPath) []model.PCCRule {
	raw, present := m["pcc_rules"]
	if !present || raw == nil {
		return nil
	}
	lp := p.child("pcc_rules")
	items, ok := w.list(raw, lp)
	if !ok {
		return nil
	}
	if err := Cardinality(len(items), w.cat.MustLimit(catalog.LimitPCCRuleCount), "pcc_rules"); err != nil {
		w.addErr(lp, err)
	}

	out := make([]model.PCCRule, 0, len(items))
	for i, item := range items {
		rp := lp.index(i)
		rm, ok := w.object(item, rp)
		if !ok {
			continue
		}
		out = append(out, w.pccRule(rm, rp))
	}
	return out
}

func (w *walker) pccRule(m map[string]any, p fieldPath) model.PCCRule {
	w.unknownKeys(m, p, pccRuleKeys)

	r := model.PCCRule{ID: w.id(m, p)}
	if q, ok := w.requiredObject(m, "qos", p); ok {
		r.QoS = w.qos(q, p.child("qos"), true)
	}
	// 更新時のflowは保存済みの値を引き継ぐため読み取らない
	if !w.opts.IsUpdate {
		r.Flow = w.flows(m, p)
	}
	return r
}

func (w *walker) flows(m map[string]any, p fieldPath) []model.Flow {
	raw, present := m["flow"]
	if !present || raw == nil {
		return nil
	}
	fp := p.child("flow")
	items, ok := w.list(raw, fp)
	if !ok {
		return nil
	}
	out := make([]model.Flow, 0, len(items))
	for i, item := range items {
		fm, ok := w.object(item, fp.index(i))
		if !ok {
			continue
		}
		out = append(out, model.Flow(plainValue(fm).(map[string]any)))
	}
	return out
}
