// Package normalize は検証済み加入者ドキュメントの正規化を提供する。
// スライス・セッション・PCCルールへの識別子付与と、保存前の軽微な補修を行う。
package normalize

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/model"
)

// IDFunc は新しい識別子を生成する関数。
type IDFunc func() string

// NewObjectID はMongoDB ObjectID（96bit）の16進表現を返す。
func NewObjectID() string {
	return primitive.NewObjectID().Hex()
}

// Normalizer は識別子付与器。状態を持たず、並行に利用できる。
type Normalizer struct {
	newID IDFunc
}

// New はObjectIDを識別子とするNormalizerを生成する。
func New() *Normalizer {
	return &Normalizer{newID: NewObjectID}
}

// NewWithIDFunc は識別子生成関数を指定してNormalizerを生成する。
func NewWithIDFunc(fn IDFunc) *Normalizer {
	if fn == nil {
		fn = NewObjectID
	}
	return &Normalizer{newID: fn}
}

// Normalize は入力のディープコピーを正規化して返す。入力は変更しない。
// 失敗することはなく、出力に再適用しても結果は変わらない。
func (n *Normalizer) Normalize(sub *model.Subscriber) *model.Subscriber {
	if sub == nil {
		return nil
	}
	out := sub.Clone()
	ids := newAssigner(n.newID, out)

	if out.MSISDN == nil {
		out.MSISDN = []string{}
	}
	for i := range out.Slices {
		slice := &out.Slices[i]
		slice.ID = ids.claim(slice.ID)

		for j := range slice.Sessions {
			sess := &slice.Sessions[j]
			sess.ID = ids.claim(sess.ID)
			if sess.UE.IsEmpty() {
				sess.UE = nil
			}
			if sess.SMF.IsEmpty() {
				sess.SMF = nil
			}
			if sess.PCCRules == nil {
				sess.PCCRules = []model.PCCRule{}
			}

			for k := range sess.PCCRules {
				rule := &sess.PCCRules[k]
				rule.ID = ids.claim(rule.ID)
				if rule.Flow == nil {
					rule.Flow = []model.Flow{}
				}
			}
		}
	}
	return out
}

// IsValidID は識別子がObjectIDの16進表現として正しいかを返す。
func IsValidID(id string) bool {
	return primitive.IsValidObjectID(id)
}
