package catalog

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

// SchemaDraft は生成するJSON Schemaのドラフト。
const SchemaDraft = "http://json-schema.org/draft-07/schema#"

const objectIDPattern = "^[0-9a-fA-F]{24}$"

// JSONSchema はカタログから加入者ドキュメントのJSON Schemaを生成する。
// 列挙値は正規形（整数コード）で表現する。
func (c *Catalog) JSONSchema() map[string]any {
	imsi := c.MustLimit(LimitIMSILength)
	msisdn := c.MustLimit(LimitMSISDNLength)
	msisdnCount := c.MustLimit(LimitMSISDNCount)
	slices := c.MustLimit(LimitSliceCount)

	return map[string]any{
		"$schema":              SchemaDraft,
		"title":                "open5gs subscriber",
		"type":                 "object",
		"required":             []string{"imsi", "security", "ambr", "slices"},
		"additionalProperties": false,
		"properties":           map[string]any{
			"imsi": map[string]any{
				"type":      "string",
				"pattern":   "^[0-9]+$",
				"minLength": imsi.Min,
				"maxLength": imsi.Max,
			},
			"msisdn": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type":      "string",
					"pattern":   "^[0-9]+$",
					"minLength": msisdn.Min,
					"maxLength": msisdn.Max,
				},
				"minItems":    msisdnCount.Min,
				"maxItems":    msisdnCount.Max,
				"uniqueItems": true,
			},
			"security":                    c.securitySchema(),
			"ambr":                        c.ambrSchema(),
			"subscriber_status":           c.enumSchema(EnumSubscriberStatus, SubscriberStatusServiceGranted),
			"operator_determined_barring": c.enumSchema(EnumOperatorDeterminedBarring, 0),
			"slices": map[string]any{
				"type":     "array",
				"items":    c.sliceSchema(),
				"minItems": slices.Min,
				"maxItems": slices.Max,
			},
			"created_at": timestampSchema(),
			"updated_at": timestampSchema(),
		},
	}
}

// CompileSchema はJSONSchemaの結果をgojsonschemaでコンパイルする。
func (c *Catalog) CompileSchema() (*gojsonschema.Schema, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(c.JSONSchema()))
	if err != nil {
		return nil, fmt.Errorf("compile subscriber schema: %w", err)
	}
	return schema, nil
}

func (c *Catalog) hexSchema() map[string]any {
	r := c.MustLimit(LimitHexLength)
	return map[string]any{
		"type":      "string",
		"pattern":   "^[0-9a-fA-F]+$",
		"minLength": r.Min,
		"maxLength": r.Max,
	}
}

func (c *Catalog) nullableHexSchema() map[string]any {
	s := c.hexSchema()
	s["type"] = []string{"string", "null"}
	return s
}

func (c *Catalog) securitySchema() map[string]any {
	sqn := c.MustLimit(LimitSQN)
	amf := c.hexSchema()
	amf["default"] = c.defaultString(DefaultAMF)
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"k", "amf"},
		"properties":           map[string]any{
			"k":   c.hexSchema(),
			"amf": amf,
			"op":  c.nullableHexSchema(),
			"opc": c.nullableHexSchema(),
			"sqn": map[string]any{
				"type":    "integer",
				"minimum": sqn.Min,
				"maximum": sqn.Max,
			},
		},
		"oneOf": []any{
			map[string]any{
				"required":   []string{"op"},
				"properties": map[string]any{"op": map[string]any{"type": "string"}},
			},
			map[string]any{
				"required":   []string{"opc"},
				"properties": map[string]any{"opc": map[string]any{"type": "string"}},
			},
		},
	}
}

func (c *Catalog) enumSchema(name string, def int) map[string]any {
	return map[string]any{
		"type":    "integer",
		"enum":    c.MustChoices(name).Codes(),
		"default": def,
	}
}

func (c *Catalog) bitRateSchema() map[string]any {
	r := c.MustLimit(LimitBitRateValue)
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"value", "unit"},
		"properties":           map[string]any{
			"value": map[string]any{
				"type":    "integer",
				"minimum": r.Min,
				"default": c.defaultInt(DefaultBitRateValue),
			},
			"unit": c.enumSchema(EnumUnit, c.defaultInt(DefaultUnit)),
		},
	}
}

func (c *Catalog) ambrSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"downlink", "uplink"},
		"properties":           map[string]any{
			"downlink": c.bitRateSchema(),
			"uplink":   c.bitRateSchema(),
		},
	}
}

func (c *Catalog) arpSchema(defPriority int) map[string]any {
	r := c.MustLimit(LimitPriorityLevel)
	def := c.defaultInt(DefaultPreEmption)
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"priority_level", "pre_emption_capability", "pre_emption_vulnerability"},
		"properties":           map[string]any{
			"priority_level": map[string]any{
				"type":    "integer",
				"minimum": r.Min,
				"maximum": r.Max,
				"default": defPriority,
			},
			"pre_emption_capability":   c.enumSchema(EnumPreEmption, def),
			"pre_emption_vulnerability": c.enumSchema(EnumPreEmption, def),
		},
	}
}

func (c *Catalog) qosSchema(withBitRates bool) map[string]any {
	index := c.defaultInt(DefaultQoSIndex)
	priority := c.defaultInt(DefaultPriorityLevel)
	if withBitRates {
		index = c.defaultInt(DefaultPCCQoSIndex)
		priority = c.defaultInt(DefaultPCCPriorityLevel)
	}
	s := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"index", "arp"},
		"properties":           map[string]any{
			"index": c.enumSchema(EnumQoSIndex, index),
			"arp":   c.arpSchema(priority),
			"mbr":   c.ambrSchema(),
			"gbr":   c.ambrSchema(),
		},
	}
	if withBitRates {
		s["required"] = []string{"index", "arp", "mbr", "gbr"}
	}
	return s
}

func ipConfigSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           map[string]any{
			"ipv4": map[string]any{"type": "string", "format": "ipv4"},
			"ipv6": map[string]any{"type": "string", "format": "ipv6"},
		},
	}
}

func timestampSchema() map[string]any {
	return map[string]any{
		"type":     "string",
		"format":   "date-time",
		"readOnly": true,
	}
}

func idSchema() map[string]any {
	return map[string]any{
		"type":     "string",
		"pattern":  objectIDPattern,
		"readOnly": true,
	}
}

func (c *Catalog) pccRuleSchema() map[string]any {
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"qos"},
		"properties":           map[string]any{
			"_id":  idSchema(),
			"qos":  c.qosSchema(true),
			"flow": map[string]any{"type": "array", "items": map[string]any{"type": "object"}, "default": []any{}},
		},
	}
}

func (c *Catalog) sessionSchema() map[string]any {
	name := c.MustLimit(LimitSessionName)
	rules := c.MustLimit(LimitPCCRuleCount)
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"name", "type", "qos"},
		"properties":           map[string]any{
			"_id": idSchema(),
			"name": map[string]any{
				"type":      "string",
				"minLength": name.Min,
				"maxLength": name.Max,
				"default":   c.defaultString(DefaultSessionName),
			},
			"type": c.enumSchema(EnumSessionType, c.defaultInt(DefaultSessionType)),
			"qos":  c.qosSchema(false),
			"ambr": c.ambrSchema(),
			"ue":   ipConfigSchema(),
			"smf":  ipConfigSchema(),
			"pcc_rules": map[string]any{
				"type":     "array",
				"items":    c.pccRuleSchema(),
				"minItems": rules.Min,
				"maxItems": rules.Max,
			},
		},
	}
}

func (c *Catalog) sliceSchema() map[string]any {
	sst := c.MustLimit(LimitSST)
	sd := c.MustLimit(LimitSDLength)
	sessions := c.MustLimit(LimitSessionCount)
	return map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"required":             []string{"sst", "sessions"},
		"properties":           map[string]any{
			"_id": idSchema(),
			"sst": map[string]any{
				"type":    "integer",
				"minimum": sst.Min,
				"maximum": sst.Max,
				"default": c.defaultInt(DefaultSST),
			},
			"sd": map[string]any{
				"type":      "string",
				"pattern":   "^[0-9a-fA-F]+$",
				"minLength": sd.Min,
				"maxLength": sd.Max,
			},
			"default_indicator": map[string]any{"type": "boolean", "default": false},
			"sessions": map[string]any{
				"type":     "array",
				"items":    c.sessionSchema(),
				"minItems": sessions.Min,
				"maxItems": sessions.Max,
			},
		},
	}
}
