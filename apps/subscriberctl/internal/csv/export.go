// Package csv は加入者一覧のCSVエクスポート機能を提供する。
package csv

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/model"
)

// SubscriberCSVHeader は加入者CSVのヘッダー行
var SubscriberCSVHeader = []string{
	"imsi",
	"msisdn",
	"subscriber_status",
	"operator_determined_barring",
	"slices",
	"sessions",
}

// 複数値セル内の区切り文字
const listSeparator = ";"

// WriteSubscriberCSV は加入者データをCSV形式で書き込む。
// 鍵素材（k/op/opc）は出力しない。
func WriteSubscriberCSV(w io.Writer, subscribers []*model.Subscriber) error {
	writer := csv.NewWriter(w)

	// ヘッダー書き込み
	if err := writer.Write(SubscriberCSVHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	// データ書き込み
	for _, sub := range subscribers {
		if err := writer.Write(subscriberRecord(sub)); err != nil {
			return fmt.Errorf("failed to write record for IMSI %s: %w", sub.IMSI, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func subscriberRecord(sub *model.Subscriber) []string {
	slices := make([]string, 0, len(sub.Slices))
	var sessions []string
	for _, s := range sub.Slices {
		slices = append(slices, sliceLabel(s))
		for _, sess := range s.Sessions {
			sessions = append(sessions, sess.Name)
		}
	}

	return []string{
		sub.IMSI,
		strings.Join(sub.MSISDN, listSeparator),
		strconv.Itoa(sub.SubscriberStatus),
		strconv.Itoa(sub.OperatorDeterminedBarring),
		strings.Join(slices, listSeparator),
		strings.Join(sessions, listSeparator),
	}
}

// sliceLabel は "sst" または "sst-sd" 形式のS-NSSAI表記を返す。
func sliceLabel(s model.Slice) string {
	label := strconv.Itoa(s.SST)
	if s.SD != "" {
		label += "-" + s.SD
	}
	return label
}
