// Package model は共通データ構造体を提供する。
package model

// Subscriber は加入者ドキュメントを表す。
// Valkeyキー: sub:{IMSI}
type Subscriber struct {
	IMSI                      string   `json:"imsi"`                        // 国際移動体加入者識別番号（最大15桁）
	MSISDN                    []string `json:"msisdn"`                      // 電話番号（最大2件）
	Security                  Security `json:"security"`                    // 認証情報
	AMBR                      AMBR     `json:"ambr"`                        // 加入者単位のAMBR
	SubscriberStatus          int      `json:"subscriber_status"`           // 加入者ステータスコード
	OperatorDeterminedBarring int      `json:"operator_determined_barring"` // ODBコード
	Slices                    []Slice  `json:"slices"`                      // スライス一覧
	CreatedAt                 string   `json:"created_at,omitempty"`        // 作成日時（RFC3339形式）
	UpdatedAt                 string   `json:"updated_at,omitempty"`        // 更新日時（RFC3339形式）
}

// Security は認証情報を表す。
// OPとOPcはどちらか一方のみが設定される。
type Security struct {
	K   string  `json:"k"`
	AMF string  `json:"amf"`
	OP  *string `json:"op"`
	OPc *string `json:"opc"`
	SQN *int64  `json:"sqn,omitempty"` // サーバ管理
}

// BitRate はビットレート値と単位コードの組。
type BitRate struct {
	Value int64 `json:"value"`
	Unit  int   `json:"unit"`
}

// AMBR は下り・上りのビットレート組。
// QoSのMBR/GBRも同じ形を使う。
type AMBR struct {
	Downlink BitRate `json:"downlink"`
	Uplink   BitRate `json:"uplink"`
}

// ARP はAllocation and Retention Priorityを表す。
type ARP struct {
	PriorityLevel           int `json:"priority_level"`
	PreEmptionCapability    int `json:"pre_emption_capability"`
	PreEmptionVulnerability int `json:"pre_emption_vulnerability"`
}

// QoS はQoS設定を表す。
// MBR/GBRはPCCルール配下でのみ必須。
type QoS struct {
	Index int   `json:"index"`
	ARP   ARP   `json:"arp"`
	MBR   *AMBR `json:"mbr,omitempty"`
	GBR   *AMBR `json:"gbr,omitempty"`
}

// IPConfig はUE/SMFのIPアドレス設定。
type IPConfig struct {
	IPv4 string `json:"ipv4,omitempty"`
	IPv6 string `json:"ipv6,omitempty"`
}

// IsEmpty はどちらのアドレスも未設定かどうかを返す。
func (c *IPConfig) IsEmpty() bool {
	return c == nil || (c.IPv4 == "" && c.IPv6 == "")
}

// Flow はフロー記述1件。内容はサーバ側で管理され、検証しない。
type Flow map[string]any

// PCCRule はPCCルールを表す。
type PCCRule struct {
	ID   string `json:"_id,omitempty"`
	QoS  QoS    `json:"qos"`
	Flow []Flow `json:"flow"` // サーバ管理
}

// Session はPDUセッション（APN/DNN）を表す。
type Session struct {
	ID       string    `json:"_id,omitempty"`
	Name     string    `json:"name"`
	Type     int       `json:"type"`
	QoS      QoS       `json:"qos"`
	AMBR     *AMBR     `json:"ambr,omitempty"`
	UE       *IPConfig `json:"ue,omitempty"`
	SMF      *IPConfig `json:"smf,omitempty"`
	PCCRules []PCCRule `json:"pcc_rules"`
}

// Slice はネットワークスライス（S-NSSAI）を表す。
type Slice struct {
	ID               string    `json:"_id,omitempty"`
	SST              int       `json:"sst"`
	SD               string    `json:"sd,omitempty"`
	DefaultIndicator bool      `json:"default_indicator"`
	Sessions         []Session `json:"sessions"`
}

// IDs はスライス・セッション・PCCルールの識別子を木の走査順で返す。
// 未設定の識別子は空文字として含まれる。
func (s *Subscriber) IDs() []string {
	var ids []string
	for _, slice := range s.Slices {
		ids = append(ids, slice.ID)
		for _, sess := range slice.Sessions {
			ids = append(ids, sess.ID)
			for _, rule := range sess.PCCRules {
				ids = append(ids, rule.ID)
			}
		}
	}
	return ids
}

// FindPCCRule は識別子に一致するPCCルールを返す。
func (s *Subscriber) FindPCCRule(id string) (*PCCRule, bool) {
	if id == "" {
		return nil, false
	}
	for i := range s.Slices {
		for j := range s.Slices[i].Sessions {
			rules := s.Slices[i].Sessions[j].PCCRules
			for k := range rules {
				if rules[k].ID == id {
					return &rules[k], true
				}
			}
		}
	}
	return nil, false
}

// SessionCount はセッション総数を返す。
func (s *Subscriber) SessionCount() int {
	n := 0
	for _, slice := range s.Slices {
		n += len(slice.Sessions)
	}
	return n
}
