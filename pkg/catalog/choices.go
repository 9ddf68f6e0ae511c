package catalog

import (
	"strconv"
	"strings"
)

// 単位コード
const (
	UnitBps  = 0
	UnitKbps = 1
	UnitMbps = 2
	UnitGbps = 3
	UnitTbps = 4
)

// Pre-emptionコード
const (
	PreEmptionDisabled = 0
	PreEmptionEnabled  = 1
)

// セッション種別コード
const (
	SessionTypeIPv4   = 1
	SessionTypeIPv6   = 2
	SessionTypeIPv4v6 = 3
)

// 加入者ステータスコード
const (
	SubscriberStatusServiceGranted            = 0
	SubscriberStatusOperatorDeterminedBarring = 1
)

// Choice は列挙値1件（コードとラベル）を表す。
type Choice struct {
	Code  int
	Label string
}

// ChoiceSet は順序付きの列挙値集合。
type ChoiceSet struct {
	name    string
	choices []Choice
	byLabel map[string]int
}

func newChoiceSet(name string, choices ...Choice) *ChoiceSet {
	s := &ChoiceSet{
		name:    name,
		choices: choices,
		byLabel: make(map[string]int, len(choices)),
	}
	for _, c := range choices {
		s.byLabel[strings.ToLower(c.Label)] = c.Code
	}
	return s
}

// Name は列挙名を返す。
func (s *ChoiceSet) Name() string {
	return s.name
}

// Choices は列挙値のコピーを返す。
func (s *ChoiceSet) Choices() []Choice {
	out := make([]Choice, len(s.choices))
	copy(out, s.choices)
	return out
}

// Codes はコード一覧を定義順で返す。
func (s *ChoiceSet) Codes() []int {
	out := make([]int, len(s.choices))
	for i, c := range s.choices {
		out[i] = c.Code
	}
	return out
}

// Contains はコードが集合に含まれるかどうかを返す。
func (s *ChoiceSet) Contains(code int) bool {
	for _, c := range s.choices {
		if c.Code == code {
			return true
		}
	}
	return false
}

// Resolve はラベル（大文字小文字を区別しない）からコードを引く。
func (s *ChoiceSet) Resolve(label string) (int, bool) {
	code, ok := s.byLabel[strings.ToLower(strings.TrimSpace(label))]
	return code, ok
}

// Label はコードに対応するラベルを返す。
func (s *ChoiceSet) Label(code int) (string, bool) {
	for _, c := range s.choices {
		if c.Code == code {
			return c.Label, true
		}
	}
	return "", false
}

// String は "0 (bps), 1 (Kbps)" 形式の一覧を返す。
func (s *ChoiceSet) String() string {
	parts := make([]string, len(s.choices))
	for i, c := range s.choices {
		parts[i] = strconv.Itoa(c.Code) + " (" + c.Label + ")"
	}
	return strings.Join(parts, ", ")
}

func unitChoices() *ChoiceSet {
	return newChoiceSet(EnumUnit,
		Choice{UnitBps, "bps"},
		Choice{UnitKbps, "Kbps"},
		Choice{UnitMbps, "Mbps"},
		Choice{UnitGbps, "Gbps"},
		Choice{UnitTbps, "Tbps"},
	)
}

func preEmptionChoices() *ChoiceSet {
	return newChoiceSet(EnumPreEmption,
		Choice{PreEmptionDisabled, "Disabled"},
		Choice{PreEmptionEnabled, "Enabled"},
	)
}

func sessionTypeChoices() *ChoiceSet {
	return newChoiceSet(EnumSessionType,
		Choice{SessionTypeIPv4, "IPv4"},
		Choice{SessionTypeIPv6, "IPv6"},
		Choice{SessionTypeIPv4v6, "IPv4v6"},
	)
}

// qosIndexChoices は標準化された5QI/QCI値。
func qosIndexChoices() *ChoiceSet {
	codes := []int{
		1, 2, 3, 4, 5, 6, 7, 8, 9,
		65, 66, 67, 69, 70, 71, 72, 73, 74, 75, 76,
		79, 80, 82, 83, 84, 85, 86,
	}
	choices := make([]Choice, len(codes))
	for i, code := range codes {
		choices[i] = Choice{Code: code, Label: strconv.Itoa(code)}
	}
	return newChoiceSet(EnumQoSIndex, choices...)
}

func subscriberStatusChoices() *ChoiceSet {
	return newChoiceSet(EnumSubscriberStatus,
		Choice{SubscriberStatusServiceGranted, "SERVICE GRANTED"},
		Choice{SubscriberStatusOperatorDeterminedBarring, "OPERATOR DETERMINED BARRING"},
	)
}

func operatorDeterminedBarringChoices() *ChoiceSet {
	return newChoiceSet(EnumOperatorDeterminedBarring,
		Choice{0, "All Packet Oriented Services Barred"},
		Choice{1, "Roamer Access HPLMN-AP Barred"},
		Choice{2, "Roamer Access to VPLMN-AP Barred"},
		Choice{3, "Barring of all outgoing calls"},
		Choice{4, "Barring of all outgoing international calls"},
		Choice{5, "Barring of all outgoing international calls except those directed to the home PLMN country"},
		Choice{6, "Barring of all outgoing inter-zonal calls"},
		Choice{7, "Barring of all outgoing inter-zonal calls except those directed to the home PLMN country"},
		Choice{8, "Barring of all outgoing international calls except those directed to the home PLMN country and Barring of all outgoing inter-zonal calls"},
	)
}
