package normalize

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/model"
)

// assigner は1回のNormalize呼び出しに閉じた識別子集合。
//
// reserved は入力に既に存在する正しい識別子で、新規生成で横取りしない。
// claimed は走査済みノードに割り当てた識別子で、2回目以降の出現は重複として付け替える。
type assigner struct {
	newID    IDFunc
	reserved map[string]struct{}
	claimed  map[string]struct{}
}

func newAssigner(fn IDFunc, sub *model.Subscriber) *assigner {
	a := &assigner{
		newID:    fn,
		reserved: make(map[string]struct{}),
		claimed:  make(map[string]struct{}),
	}
	for _, id := range sub.IDs() {
		if c, ok := canonical(id); ok {
			a.reserved[c] = struct{}{}
		}
	}
	return a
}

// claim はノードの識別子を確定する。
// 正しい形式で未使用ならそのまま（小文字化して）使い、そうでなければ新規に生成する。
func (a *assigner) claim(id string) string {
	if c, ok := canonical(id); ok {
		if _, dup := a.claimed[c]; !dup {
			a.claimed[c] = struct{}{}
			return c
		}
	}

	for {
		c, ok := canonical(a.newID())
		if !ok {
			continue
		}
		if _, r := a.reserved[c]; r {
			continue
		}
		if _, dup := a.claimed[c]; dup {
			continue
		}
		a.claimed[c] = struct{}{}
		return c
	}
}

func canonical(id string) (string, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return "", false
	}
	return oid.Hex(), true
}
