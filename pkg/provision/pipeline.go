// Package provision は加入者レコードの構築パイプラインを提供する。
// 検証、正規化、サーバ管理フィールドの引き継ぎを一度に行う。
package provision

import (
	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/model"
	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/normalize"
	"github.com/oyaguma3/open5gs-subscriber-admin/pkg/validate"
)

// Pipeline はレコード構築パイプライン。
type Pipeline struct {
	validator  *validate.Validator
	normalizer *normalize.Normalizer
}

// New は新しいPipelineを生成する。nilを渡した場合は既定の実装を使う。
func New(v *validate.Validator, n *normalize.Normalizer) *Pipeline {
	if v == nil {
		v = validate.New(nil)
	}
	if n == nil {
		n = normalize.New()
	}
	return &Pipeline{validator: v, normalizer: n}
}

// Validator は内部のValidatorを返す。
func (p *Pipeline) Validator() *validate.Validator {
	return p.validator
}

// Build は入力JSONから保存用の加入者レコードを構築する。
// priorがnilでなければ更新として扱い、sqnとflowをpriorから引き継ぐ。
// 検証エラーは validate.Violations として返る。
func (p *Pipeline) Build(data []byte, prior *model.Subscriber) (*model.Subscriber, error) {
	sub, err := p.validator.ValidateJSON(data, optionsFor(prior))
	if err != nil {
		return nil, err
	}
	return p.finish(sub, prior), nil
}

// BuildDocument はBuildの汎用ツリー版。
func (p *Pipeline) BuildDocument(doc any, prior *model.Subscriber) (*model.Subscriber, error) {
	sub, err := p.validator.Validate(doc, optionsFor(prior))
	if err != nil {
		return nil, err
	}
	return p.finish(sub, prior), nil
}

// Check は検証のみを行い、違反があれば validate.Violations を返す。
func (p *Pipeline) Check(data []byte, prior *model.Subscriber) error {
	_, err := p.validator.ValidateJSON(data, optionsFor(prior))
	return err
}

func (p *Pipeline) finish(sub *model.Subscriber, prior *model.Subscriber) *model.Subscriber {
	out := p.normalizer.Normalize(sub)
	if prior != nil {
		Preserve(out, prior)
	}
	return out
}

// Preserve はサーバ管理フィールドをpriorからdstへ引き継ぐ。
// sqnはそのまま、flowは同じ識別子のPCCルールから引き継ぎ、該当がなければ空にする。
func Preserve(dst, prior *model.Subscriber) {
	dst.Security.SQN = nil
	if prior.Security.SQN != nil {
		v := *prior.Security.SQN
		dst.Security.SQN = &v
	}
	dst.CreatedAt = prior.CreatedAt

	for i := range dst.Slices {
		for j := range dst.Slices[i].Sessions {
			rules := dst.Slices[i].Sessions[j].PCCRules
			for k := range rules {
				rules[k].Flow = []model.Flow{}
				if old, ok := prior.FindPCCRule(rules[k].ID); ok && old.Flow != nil {
					rules[k].Flow = model.CloneFlows(old.Flow)
				}
			}
		}
	}
}

func optionsFor(prior *model.Subscriber) validate.Options {
	if prior == nil {
		return validate.Options{}
	}
	return validate.Options{IsUpdate: true, CurrentIMSI: prior.IMSI}
}
