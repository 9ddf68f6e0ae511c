package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/model"
	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/validate"
	"sigs.k8s.io/yaml"
)

// readDocument はJSONまたはYAMLのファイルを読み込み、JSONとして返す。
// path が "-" の場合は標準入力から読む。
func readDocument(path string, stdin io.Reader) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return data, nil
	}
	converted, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s as YAML: %w", path, err)
	}
	return converted, nil
}

// readStored は保存済みドキュメントを読み込む。
func readStored(path string, stdin io.Reader) (*model.Subscriber, error) {
	data, err := readDocument(path, stdin)
	if err != nil {
		return nil, err
	}
	var sub model.Subscriber
	if err := json.Unmarshal(data, &sub); err != nil {
		return nil, fmt.Errorf("failed to decode stored document %s: %w", path, err)
	}
	return &sub, nil
}

// documentIMSI はドキュメントのimsiを取り出す。
func documentIMSI(data []byte) (string, error) {
	var head struct {
		IMSI string `json:"imsi"`
	}
	if err := json.Unmarshal(data, &head); err != nil {
		return "", fmt.Errorf("failed to read imsi: %w", err)
	}
	if _, err := validate.Digits(head.IMSI); err != nil {
		return "", fmt.Errorf("imsi %q: %w", head.IMSI, err)
	}
	return head.IMSI, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// reportViolations は違反を1行ずつ出力する。違反でなければfalseを返す。
func reportViolations(w io.Writer, err error) bool {
	vs, ok := validate.AsViolations(err)
	if !ok {
		return false
	}
	for _, v := range vs {
		fmt.Fprintln(w, v.String())
	}
	return true
}
