package catalog

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"strings"
)

// keyBytes はKの既定長（128bit）。
const keyBytes = 16

// Template は新規加入者ドキュメントの雛形を返す。
// Kは乱数で生成し、IMSIとOPcは空文字のまま返す。
func (c *Catalog) Template() (map[string]any, error) {
	k, err := RandomKey()
	if err != nil {
		return nil, err
	}

	return map[string]any{
		"imsi":   "",
		"msisdn": []any{},
		"security": map[string]any{
			"k":   k,
			"amf": c.defaultString(DefaultAMF),
			"op":  nil,
			"opc": "",
		},
		"ambr":                        c.templateAMBR(),
		"subscriber_status":           SubscriberStatusServiceGranted,
		"operator_determined_barring": 0,
		"slices": []any{
			map[string]any{
				"sst":               c.defaultInt(DefaultSST),
				"default_indicator": true,
				"sessions": []any{
					map[string]any{
						"name": c.defaultString(DefaultSessionName),
						"type": c.defaultInt(DefaultSessionType),
						"qos": map[string]any{
							"index": c.defaultInt(DefaultQoSIndex),
							"arp":   c.templateARP(c.defaultInt(DefaultPriorityLevel)),
						},
						"ambr":      c.templateAMBR(),
						"pcc_rules": []any{},
					},
				},
			},
		},
	}, nil
}

// RandomKey は128bitの乱数Kを大文字16進文字列で返す。
func RandomKey() (string, error) {
	buf := make([]byte, keyBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate random key: %w", err)
	}
	return strings.ToUpper(hex.EncodeToString(buf)), nil
}

func (c *Catalog) templateAMBR() map[string]any {
	br := func() map[string]any {
		return map[string]any{
			"value": c.defaultInt(DefaultBitRateValue),
			"unit":  c.defaultInt(DefaultUnit),
		}
	}
	return map[string]any{"downlink": br(), "uplink": br()}
}

func (c *Catalog) templateARP(priority int) map[string]any {
	def := c.defaultInt(DefaultPreEmption)
	return map[string]any{
		"priority_level":            priority,
		"pre_emption_capability":   def,
		"pre_emption_vulnerability": def,
	}
}
