// Package catalog は加入者ドキュメントのスキーマカタログを提供する。
// 範囲・列挙値・件数上限・デフォルト値の唯一の定義元であり、
// 生成後は読み取り専用として扱う。
package catalog

import (
	"math"
	"sort"
)

// 範囲定義名
const (
	LimitIMSILength    = "imsi.length"
	LimitMSISDNLength  = "msisdn.length"
	LimitMSISDNCount   = "msisdn.count"
	LimitHexLength     = "security.hex.length"
	LimitSQN           = "security.sqn"
	LimitSST           = "slice.sst"
	LimitSDLength      = "slice.sd.length"
	LimitSliceCount    = "slices.count"
	LimitSessionCount  = "sessions.count"
	LimitPCCRuleCount  = "pcc_rules.count"
	LimitSessionName   = "session.name.length"
	LimitPriorityLevel = "arp.priority_level"
	LimitBitRateValue  = "bitrate.value"
)

// 列挙定義名
const (
	EnumUnit                      = "unit"
	EnumPreEmption                = "pre_emption"
	EnumSessionType               = "session_type"
	EnumQoSIndex                  = "qos_index"
	EnumSubscriberStatus          = "subscriber_status"
	EnumOperatorDeterminedBarring = "operator_determined_barring"
)

// デフォルト値定義名
const (
	DefaultAMF              = "security.amf"
	DefaultSST              = "slice.sst"
	DefaultSessionName      = "session.name"
	DefaultSessionType      = "session.type"
	DefaultQoSIndex         = "session.qos.index"
	DefaultPriorityLevel    = "session.qos.arp.priority_level"
	DefaultPCCQoSIndex      = "pcc_rule.qos.index"
	DefaultPCCPriorityLevel = "pcc_rule.qos.arp.priority_level"
	DefaultPreEmption       = "arp.pre_emption"
	DefaultUnit             = "bitrate.unit"
	DefaultBitRateValue     = "bitrate.value"
)

// MaxSQN はSQN（48bit）の最大値。
const MaxSQN = 1<<48 - 1

// Range は閉区間 [Min, Max] を表す。
type Range struct {
	Min int64
	Max int64
}

// Contains は値が範囲内かどうかを返す。
func (r Range) Contains(v int64) bool {
	return v >= r.Min && v <= r.Max
}

// Catalog はスキーマカタログ本体。
type Catalog struct {
	limits   map[string]Range
	enums    map[string]*ChoiceSet
	defaults map[string]any
}

var defaultCatalog = New()

// Default はプロセス共通のカタログを返す。
func Default() *Catalog {
	return defaultCatalog
}

// New は新しいCatalogを生成する。
func New() *Catalog {
	return &Catalog{
		limits: map[string]Range{
			LimitIMSILength:    {Min: 1, Max: 15},
			LimitMSISDNLength:  {Min: 1, Max: 15},
			LimitMSISDNCount:   {Min: 0, Max: 2},
			LimitHexLength:     {Min: 1, Max: 32},
			LimitSQN:           {Min: 0, Max: MaxSQN},
			LimitSST:           {Min: 1, Max: 4},
			LimitSDLength:      {Min: 6, Max: 6},
			LimitSliceCount:    {Min: 1, Max: 8},
			LimitSessionCount:  {Min: 1, Max: 4},
			LimitPCCRuleCount:  {Min: 0, Max: 8},
			LimitSessionName:   {Min: 1, Max: 128},
			LimitPriorityLevel: {Min: 1, Max: 15},
			LimitBitRateValue:  {Min: 0, Max: math.MaxInt64},
		},
		enums: map[string]*ChoiceSet{
			EnumUnit:                      unitChoices(),
			EnumPreEmption:                preEmptionChoices(),
			EnumSessionType:               sessionTypeChoices(),
			EnumQoSIndex:                  qosIndexChoices(),
			EnumSubscriberStatus:          subscriberStatusChoices(),
			EnumOperatorDeterminedBarring: operatorDeterminedBarringChoices(),
		},
		defaults: map[string]any{
			DefaultAMF:              "8000",
			DefaultSST:              1,
			DefaultSessionName:      "internet",
			DefaultSessionType:      SessionTypeIPv4v6,
			DefaultQoSIndex:         9,
			DefaultPriorityLevel:    8,
			DefaultPCCQoSIndex:      1,
			DefaultPCCPriorityLevel: 2,
			DefaultPreEmption:       PreEmptionEnabled,
			DefaultUnit:             UnitGbps,
			DefaultBitRateValue:     1,
		},
	}
}

// Limit は名前に対応する範囲を返す。
func (c *Catalog) Limit(name string) (Range, bool) {
	r, ok := c.limits[name]
	return r, ok
}

// MustLimit は名前に対応する範囲を返す。
// 未定義の場合はパニックする。
func (c *Catalog) MustLimit(name string) Range {
	r, ok := c.limits[name]
	if !ok {
		panic("catalog: unknown limit " + name)
	}
	return r
}

// Choices は名前に対応する列挙定義を返す。
func (c *Catalog) Choices(name string) (*ChoiceSet, bool) {
	s, ok := c.enums[name]
	return s, ok
}

// MustChoices は名前に対応する列挙定義を返す。
// 未定義の場合はパニックする。
func (c *Catalog) MustChoices(name string) *ChoiceSet {
	s, ok := c.enums[name]
	if !ok {
		panic("catalog: unknown enum " + name)
	}
	return s
}

// Default は名前に対応するデフォルト値を返す。
func (c *Catalog) Default(name string) (any, bool) {
	v, ok := c.defaults[name]
	return v, ok
}

// LimitNames は定義済み範囲名を昇順で返す。
func (c *Catalog) LimitNames() []string {
	return sortedKeys(c.limits)
}

// EnumNames は定義済み列挙名を昇順で返す。
func (c *Catalog) EnumNames() []string {
	return sortedKeys(c.enums)
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (c *Catalog) defaultInt(name string) int {
	v, _ := c.defaults[name].(int)
	return v
}

func (c *Catalog) defaultString(name string) string {
	v, _ := c.defaults[name].(string)
	return v
}
