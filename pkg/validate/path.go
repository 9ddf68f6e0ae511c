package validate

import (
	"strconv"
	"strings"
)

// fieldPath はドキュメント内の位置を表す。
// 子の生成は常にコピーし、兄弟間で配列を共有しない。
type fieldPath []string

func (p fieldPath) child(name string) fieldPath {
	out := make(fieldPath, len(p), len(p)+1)
	copy(out, p)
	return append(out, name)
}

func (p fieldPath) index(i int) fieldPath {
	return p.child(strconv.Itoa(i))
}

func (p fieldPath) String() string {
	return strings.Join(p, "/")
}
