package catalog

import (
	"math"
	"reflect"
	"regexp"
	"testing"

	"github.com/xeipuuv/gojsonschema"
)

func TestLimits(t *testing.T) {
	c := Default()

	tests := []struct {
		name string
		want Range
	}{
		{LimitIMSILength, Range{1, 15}},
		{LimitMSISDNLength, Range{1, 15}},
		{LimitMSISDNCount, Range{0, 2}},
		{LimitHexLength, Range{1, 32}},
		{LimitSQN, Range{0, MaxSQN}},
		{LimitSST, Range{1, 4}},
		{LimitSDLength, Range{6, 6}},
		{LimitSliceCount, Range{1, 8}},
		{LimitSessionCount, Range{1, 4}},
		{LimitPCCRuleCount, Range{0, 8}},
		{LimitSessionName, Range{1, 128}},
		{LimitPriorityLevel, Range{1, 15}},
		{LimitBitRateValue, Range{0, math.MaxInt64}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.Limit(tt.name)
			if !ok {
				t.Fatalf("Limit(%q) not found", tt.name)
			}
			if got != tt.want {
				t.Errorf("Limit(%q) = %+v, want %+v", tt.name, got, tt.want)
			}
		})
	}

	if _, ok := c.Limit("no.such.limit"); ok {
		t.Error("Limit() for unknown name should return false")
	}

	// カタログの全範囲が上の表で検証されていること
	covered := make(map[string]bool, len(tests))
	for _, tt := range tests {
		covered[tt.name] = true
	}
	names := c.LimitNames()
	if len(names) != len(covered) {
		t.Errorf("LimitNames() = %v, want %d entries", names, len(covered))
	}
	for _, name := range names {
		if !covered[name] {
			t.Errorf("limit %q is not covered by this test", name)
		}
	}
}

func TestRangeContains(t *testing.T) {
	r := Range{Min: 1, Max: 4}
	for v, want := range map[int64]bool{0: false, 1: true, 4: true, 5: false} {
		if got := r.Contains(v); got != want {
			t.Errorf("Contains(%d) = %v, want %v", v, got, want)
		}
	}
}

func TestMustLimitPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustLimit() should panic for unknown name")
		}
	}()
	Default().MustLimit("missing")
}

func TestChoices(t *testing.T) {
	c := Default()

	enums := []string{
		EnumOperatorDeterminedBarring, EnumPreEmption, EnumQoSIndex,
		EnumSessionType, EnumSubscriberStatus, EnumUnit,
	}
	for _, name := range enums {
		if _, ok := c.Choices(name); !ok {
			t.Errorf("Choices(%q) not found", name)
		}
	}
	if got := c.EnumNames(); !reflect.DeepEqual(got, enums) {
		t.Errorf("EnumNames() = %v, want %v", got, enums)
	}

	unit := c.MustChoices(EnumUnit)
	if got := unit.Codes(); len(got) != 5 || got[0] != UnitBps || got[4] != UnitTbps {
		t.Errorf("unit codes = %v", got)
	}

	odb := c.MustChoices(EnumOperatorDeterminedBarring)
	if got := len(odb.Codes()); got != 9 {
		t.Errorf("operator_determined_barring codes = %d, want 9", got)
	}
}

func TestChoiceSetResolve(t *testing.T) {
	c := Default()

	tests := []struct {
		enum   string
		label  string
		want   int
		wantOK bool
	}{
		{EnumUnit, "Mbps", UnitMbps, true},
		{EnumUnit, "mbps", UnitMbps, true},
		{EnumUnit, " GBPS ", UnitGbps, true},
		{EnumUnit, "Pbps", 0, false},
		{EnumPreEmption, "Enabled", PreEmptionEnabled, true},
		{EnumPreEmption, "disabled", PreEmptionDisabled, true},
		{EnumSessionType, "IPv4", SessionTypeIPv4, true},
		{EnumSessionType, "ipv4v6", SessionTypeIPv4v6, true},
		{EnumQoSIndex, "9", 9, true},
		{EnumQoSIndex, "10", 0, false},
		{EnumSubscriberStatus, "service granted", SubscriberStatusServiceGranted, true},
	}

	for _, tt := range tests {
		t.Run(tt.enum+"/"+tt.label, func(t *testing.T) {
			got, ok := c.MustChoices(tt.enum).Resolve(tt.label)
			if ok != tt.wantOK {
				t.Fatalf("Resolve(%q) ok = %v, want %v", tt.label, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("Resolve(%q) = %d, want %d", tt.label, got, tt.want)
			}
		})
	}
}

func TestChoiceSetContains(t *testing.T) {
	qos := Default().MustChoices(EnumQoSIndex)

	for _, code := range []int{1, 9, 65, 69, 76, 79, 80, 86} {
		if !qos.Contains(code) {
			t.Errorf("Contains(%d) = false, want true", code)
		}
	}
	for _, code := range []int{0, 10, 68, 77, 78, 81, 87} {
		if qos.Contains(code) {
			t.Errorf("Contains(%d) = true, want false", code)
		}
	}
}

func TestChoiceSetLabel(t *testing.T) {
	unit := Default().MustChoices(EnumUnit)
	if got, ok := unit.Label(UnitKbps); !ok || got != "Kbps" {
		t.Errorf("Label(1) = %q, %v", got, ok)
	}
	if _, ok := unit.Label(99); ok {
		t.Error("Label(99) should not be found")
	}
	if got := unit.String(); got != "0 (bps), 1 (Kbps), 2 (Mbps), 3 (Gbps), 4 (Tbps)" {
		t.Errorf("String() = %q", got)
	}
}

func TestDefaults(t *testing.T) {
	c := Default()

	tests := []struct {
		name string
		want any
	}{
		{DefaultAMF, "8000"},
		{DefaultSessionName, "internet"},
		{DefaultSessionType, SessionTypeIPv4v6},
		{DefaultQoSIndex, 9},
		{DefaultPriorityLevel, 8},
		{DefaultPreEmption, PreEmptionEnabled},
		{DefaultUnit, UnitGbps},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := c.Default(tt.name)
			if !ok {
				t.Fatalf("Default(%q) not found", tt.name)
			}
			if got != tt.want {
				t.Errorf("Default(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

// デフォルト値の列挙は対応する列挙定義に含まれていること
func TestDefaultsWithinCatalog(t *testing.T) {
	c := Default()

	enumDefaults := map[string]string{
		DefaultSessionType: EnumSessionType,
		DefaultQoSIndex:    EnumQoSIndex,
		DefaultPCCQoSIndex: EnumQoSIndex,
		DefaultPreEmption:  EnumPreEmption,
		DefaultUnit:        EnumUnit,
	}
	for def, enum := range enumDefaults {
		if !c.MustChoices(enum).Contains(c.defaultInt(def)) {
			t.Errorf("default %s not in enum %s", def, enum)
		}
	}

	limitDefaults := map[string]string{
		DefaultSST:              LimitSST,
		DefaultPriorityLevel:    LimitPriorityLevel,
		DefaultPCCPriorityLevel: LimitPriorityLevel,
		DefaultBitRateValue:     LimitBitRateValue,
	}
	for def, limit := range limitDefaults {
		if !c.MustLimit(limit).Contains(int64(c.defaultInt(def))) {
			t.Errorf("default %s not in limit %s", def, limit)
		}
	}
}

func TestCompileSchema(t *testing.T) {
	schema, err := Default().CompileSchema()
	if err != nil {
		t.Fatalf("CompileSchema() error = %v", err)
	}

	doc, err := Default().Template()
	if err != nil {
		t.Fatalf("Template() error = %v", err)
	}
	doc["imsi"] = "001010000000001"
	doc["security"].(map[string]any)["opc"] = "E8ED289DEBA952E4283B54E88E6183CA"

	res, err := schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if !res.Valid() {
		t.Errorf("template rejected by schema: %v", res.Errors())
	}

	session := doc["slices"].([]any)[0].(map[string]any)["sessions"].([]any)[0].(map[string]any)
	session["pcc_rule"] = []any{}
	res, err = schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if res.Valid() {
		t.Error("undeclared session key should be rejected by schema")
	}
	delete(session, "pcc_rule")

	doc["slices"] = []any{}
	res, err = schema.Validate(gojsonschema.NewGoLoader(doc))
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if res.Valid() {
		t.Error("document without slices should be rejected by schema")
	}
}

func TestTemplate(t *testing.T) {
	doc, err := Default().Template()
	if err != nil {
		t.Fatalf("Template() error = %v", err)
	}

	sec := doc["security"].(map[string]any)
	if !regexp.MustCompile(`^[0-9A-F]{32}$`).MatchString(sec["k"].(string)) {
		t.Errorf("k = %q, want 32 upper hex chars", sec["k"])
	}
	if sec["amf"] != "8000" {
		t.Errorf("amf = %v, want 8000", sec["amf"])
	}

	slices := doc["slices"].([]any)
	if len(slices) != 1 {
		t.Fatalf("slices = %d, want 1", len(slices))
	}
	slice := slices[0].(map[string]any)
	if slice["default_indicator"] != true {
		t.Error("template slice should be default")
	}
	session := slice["sessions"].([]any)[0].(map[string]any)
	if session["name"] != "internet" {
		t.Errorf("session name = %v, want internet", session["name"])
	}

	other, _ := Default().Template()
	if other["security"].(map[string]any)["k"] == sec["k"] {
		t.Error("two templates should not share the same k")
	}
}
