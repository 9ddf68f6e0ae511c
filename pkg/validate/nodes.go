package validate

import (
	"strings"

	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/catalog"
	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/model"
)

// 各ノードで受け付けるキー。created_atとupdated_atはサーバ管理のため読み取らない。
var (
	subscriberKeys = newKeySet("imsi", "msisdn", "security", "ambr", "subscriber_status", "operator_determined_barring", "slices", "created_at", "updated_at")
	securityKeys   = newKeySet("k", "amf", "op", "opc", "sqn")
	ambrKeys       = newKeySet("downlink", "uplink")
	bitRateKeys    = newKeySet("value", "unit")
	qosKeys        = newKeySet("index", "arp", "mbr", "gbr")
	arpKeys        = newKeySet("priority_level", "pre_emption_capability", "pre_emption_vulnerability")
	ipConfigKeys   = newKeySet("ipv4", "ipv6")
	sliceKeys      = newKeySet("_id", "sst", "sd", "default_indicator", "sessions")
	sessionKeys    = newKeySet("_id", "name", "type", "qos", "ambr", "ue", "smf", "pcc_rules")
	pccRuleKeys    = newKeySet("_id", "qos", "flow")
)

func (w *walker) imsi(m map[string]any) string {
	p := fieldPath{"imsi"}
	raw, present := m["imsi"]
	if !present || raw == nil {
		// 更新時は省略を許し、保存済みの値を使う
		if w.opts.IsUpdate && w.opts.CurrentIMSI != "" {
			return w.opts.CurrentIMSI
		}
		w.add(p, KindRequired, "imsi is required")
		return ""
	}
	s, ok := w.str(raw, p)
	if !ok {
		return ""
	}
	s = strings.TrimSpace(s)
	if s == "" {
		w.add(p, KindRequired, "imsi is required")
		return ""
	}

	valid := true
	if _, err := Digits(s); err != nil {
		w.addErr(p, err)
		valid = false
	}
	r := w.cat.MustLimit(catalog.LimitIMSILength)
	if _, err := Length(s, int(r.Min), int(r.Max), "imsi"); err != nil {
		w.addErr(p, err)
		valid = false
	}
	if valid && w.opts.IsUpdate && w.opts.CurrentIMSI != "" && s != w.opts.CurrentIMSI {
		w.add(p, KindImmutable, "imsi cannot be changed after creation")
	}
	return s
}

func (w *walker) msisdn(m map[string]any) []string {
	p := fieldPath{"msisdn"}
	raw, present := m["msisdn"]
	if !present || raw == nil {
		return nil
	}
	items, ok := w.list(raw, p)
	if !ok {
		return nil
	}
	if err := Cardinality(len(items), w.cat.MustLimit(catalog.LimitMSISDNCount), "msisdn"); err != nil {
		w.addErr(p, err)
	}

	r := w.cat.MustLimit(catalog.LimitMSISDNLength)
	out := make([]string, 0, len(items))
	for i, item := range items {
		ip := p.index(i)
		s, ok := w.str(item, ip)
		if !ok {
			continue
		}
		s = strings.TrimSpace(s)
		valid := true
		if _, err := Digits(s); err != nil {
			w.addErr(ip, err)
			valid = false
		}
		if _, err := Length(s, int(r.Min), int(r.Max), "msisdn"); err != nil {
			w.addErr(ip, err)
			valid = false
		}
		if valid {
			out = append(out, s)
		}
	}

	if _, err := UniqueSet(out); err != nil {
		w.addErr(p, err)
	}
	return out
}

func (w *walker) security(m map[string]any, p fieldPath) model.Security {
	w.unknownKeys(m, p, securityKeys)
	hexLimit := w.cat.MustLimit(catalog.LimitHexLength)

	var sec model.Security
	sec.K = w.hexField(m, "k", p, hexLimit)
	sec.AMF = w.hexField(m, "amf", p, hexLimit)

	var opSet, opcSet bool
	sec.OP, opSet = w.optionalHex(m, "op", p, hexLimit)
	sec.OPc, opcSet = w.optionalHex(m, "opc", p, hexLimit)
	switch {
	case opSet && opcSet:
		w.add(p, KindMutualExclusivity, "only one of op or opc may be set")
	case !opSet && !opcSet:
		w.add(p, KindMutualExclusivity, "one of op or opc must be set")
	}

	if !w.opts.IsUpdate {
		sec.SQN = w.sqn(m, p)
	}
	return sec
}

func (w *walker) hexField(m map[string]any, key string, p fieldPath, r catalog.Range) string {
	fp := p.child(key)
	raw, present := m[key]
	if !present || raw == nil {
		w.add(fp, KindRequired, "%s is required", key)
		return ""
	}
	s, ok := w.str(raw, fp)
	if !ok {
		return ""
	}
	s, err := Hex(StripSpaces(s), int(r.Min), int(r.Max))
	if err != nil {
		w.addErr(fp, err)
		return ""
	}
	return s
}

// optionalHex は空文字を未設定として扱う。
// 第2戻り値は形式の正否にかかわらず値が与えられたかどうか。
func (w *walker) optionalHex(m map[string]any, key string, p fieldPath, r catalog.Range) (*string, bool) {
	raw, present := m[key]
	if !present || raw == nil {
		return nil, false
	}
	fp := p.child(key)
	s, ok := w.str(raw, fp)
	if !ok {
		return nil, true
	}
	s = StripSpaces(s)
	if s == "" {
		return nil, false
	}
	if _, err := Hex(s, int(r.Min), int(r.Max)); err != nil {
		w.addErr(fp, err)
		return nil, true
	}
	return &s, true
}

func (w *walker) sqn(m map[string]any, p fieldPath) *int64 {
	raw, present := m["sqn"]
	if !present || raw == nil {
		return nil
	}
	fp := p.child("sqn")
	n, ok := w.integer(raw, fp)
	if !ok {
		return nil
	}
	r := w.cat.MustLimit(catalog.LimitSQN)
	if _, err := Range(n, r.Min, r.Max, "sqn"); err != nil {
		w.addErr(fp, err)
		return nil
	}
	return &n
}

func (w *walker) ambr(m map[string]any, p fieldPath) model.AMBR {
	w.unknownKeys(m, p, ambrKeys)

	var a model.AMBR
	if d, ok := w.requiredObject(m, "downlink", p); ok {
		a.Downlink = w.bitRate(d, p.child("downlink"))
	}
	if u, ok := w.requiredObject(m, "uplink", p); ok {
		a.Uplink = w.bitRate(u, p.child("uplink"))
	}
	return a
}

func (w *walker) optionalAMBR(m map[string]any, key string, p fieldPath) *model.AMBR {
	raw, present := m[key]
	if !present || raw == nil {
		return nil
	}
	fp := p.child(key)
	am, ok := w.object(raw, fp)
	if !ok {
		return nil
	}
	a := w.ambr(am, fp)
	return &a
}

func (w *walker) bitRate(m map[string]any, p fieldPath) model.BitRate {
	w.unknownKeys(m, p, bitRateKeys)
	return model.BitRate{
		Value: w.rangeField(m, "value", p, catalog.LimitBitRateValue, true),
		Unit:  w.enumField(m, "unit", p, catalog.EnumUnit, true),
	}
}

// qos はwithBitRatesがtrueのときMBR/GBRを必須とする（PCCルール配下）。
func (w *walker) qos(m map[string]any, p fieldPath, withBitRates bool) model.QoS {
	w.unknownKeys(m, p, qosKeys)

	var q model.QoS
	q.Index = w.enumField(m, "index", p, catalog.EnumQoSIndex, true)
	if a, ok := w.requiredObject(m, "arp", p); ok {
		q.ARP = w.arp(a, p.child("arp"))
	}

	if !withBitRates {
		q.MBR = w.optionalAMBR(m, "mbr", p)
		q.GBR = w.optionalAMBR(m, "gbr", p)
		return q
	}
	if mbr, ok := w.requiredObject(m, "mbr", p); ok {
		a := w.ambr(mbr, p.child("mbr"))
		q.MBR = &a
	}
	if gbr, ok := w.requiredObject(m, "gbr", p); ok {
		a := w.ambr(gbr, p.child("gbr"))
		q.GBR = &a
	}
	return q
}

func (w *walker) arp(m map[string]any, p fieldPath) model.ARP {
	w.unknownKeys(m, p, arpKeys)
	return model.ARP{
		PriorityLevel:           int(w.rangeField(m, "priority_level", p, catalog.LimitPriorityLevel, true)),
		PreEmptionCapability:    w.enumField(m, "pre_emption_capability", p, catalog.EnumPreEmption, true),
		PreEmptionVulnerability: w.enumField(m, "pre_emption_vulnerability", p, catalog.EnumPreEmption, true),
	}
}

// ipConfig は空の下位フィールドをそのまま空として返す。取り除くのは正規化側。
func (w *walker) ipConfig(m map[string]any, key string, p fieldPath) *model.IPConfig {
	raw, present := m[key]
	if !present || raw == nil {
		return nil
	}
	fp := p.child(key)
	cm, ok := w.object(raw, fp)
	if !ok {
		return nil
	}

	w.unknownKeys(cm, fp, ipConfigKeys)
	return &model.IPConfig{
		IPv4: w.address(cm, "ipv4", fp, IPv4),
		IPv6: w.address(cm, "ipv6", fp, IPv6),
	}
}

func (w *walker) address(m map[string]any, key string, p fieldPath, check func(string) (string, error)) string {
	raw, present := m[key]
	if !present || raw == nil {
		return ""
	}
	fp := p.child(key)
	s, ok := w.str(raw, fp)
	if !ok {
		return ""
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if _, err := check(s); err != nil {
		w.addErr(fp, err)
		return ""
	}
	return s
}

// id は識別子をそのまま受け取る。形式の補正は正規化側で行う。
func (w *walker) id(m map[string]any, p fieldPath) string {
	raw, present := m["_id"]
	if !present || raw == nil {
		return ""
	}
	s, ok := w.str(raw, p.child("_id"))
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}
