// Package store はValkeyへの加入者ドキュメントの永続化を提供する。
package store

// PrefixSubscriber は加入者キーのプレフィックス。
const PrefixSubscriber = "sub:"

// SubscriberKey は加入者のValkeyキーを生成する。
func SubscriberKey(imsi string) string {
	return PrefixSubscriber + imsi
}

// IMSIFromKey はキーからIMSIを取り出す。
func IMSIFromKey(key string) string {
	if len(key) < len(PrefixSubscriber) {
		return ""
	}
	return key[len(PrefixSubscriber):]
}
