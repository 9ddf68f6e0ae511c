// Package logging はログ関連のユーティリティを提供する。
package logging

// MaskIMSI はIMSIをマスキングする。
// 先頭6桁（MCC+MNC）と末尾1桁を残す。
// 例: 001010123456789 → 001010********9
// enabled=false の場合はマスキングせずにそのまま返す。
func MaskIMSI(imsi string, enabled bool) string {
	if !enabled {
		return imsi
	}
	return MaskPartial(imsi, 6, 1, '*')
}

// MaskMSISDN は電話番号の先頭3桁と末尾2桁を残してマスキングする。
func MaskMSISDN(msisdn string, enabled bool) string {
	if !enabled {
		return msisdn
	}
	return MaskPartial(msisdn, 3, 2, '*')
}

// MaskSecret はK/OP/OPcなどの鍵素材を先頭と末尾2文字だけ残してマスキングする。
// 設定に関わらず常にマスキングする。
func MaskSecret(secret string) string {
	return MaskPartial(secret, 2, 2, '*')
}

// MaskPartial は文字列の一部をマスキングする。
// 文字列長が keepPrefix+keepSuffix 以下の場合はそのまま返す。
func MaskPartial(s string, keepPrefix, keepSuffix int, maskChar rune) string {
	runes := []rune(s)
	n := len(runes)
	if n <= keepPrefix+keepSuffix {
		return s
	}
	for i := keepPrefix; i < n-keepSuffix; i++ {
		runes[i] = maskChar
	}
	return string(runes)
}

// Masker はマスキング設定を保持する構造体。
type Masker struct {
	enabled bool
}

// NewMasker は新しいMaskerを生成する。
func NewMasker(enabled bool) *Masker {
	return &Masker{enabled: enabled}
}

// IMSI はIMSIをマスキングする。
func (m *Masker) IMSI(imsi string) string {
	return MaskIMSI(imsi, m.enabled)
}

// MSISDN は電話番号をマスキングする。
func (m *Masker) MSISDN(msisdn string) string {
	return MaskMSISDN(msisdn, m.enabled)
}

// IsEnabled はマスキングが有効かどうかを返す。
func (m *Masker) IsEnabled() bool {
	return m.enabled
}
