package model

// Clone はSubscriberのディープコピーを返す。
func (s *Subscriber) Clone() *Subscriber {
	if s == nil {
		return nil
	}
	out := *s
	out.MSISDN = cloneStrings(s.MSISDN)
	out.Security = s.Security.Clone()
	if s.Slices != nil {
		out.Slices = make([]Slice, len(s.Slices))
		for i := range s.Slices {
			out.Slices[i] = s.Slices[i].Clone()
		}
	}
	return &out
}

// Clone はSecurityのディープコピーを返す。
func (s Security) Clone() Security {
	out := s
	if s.OP != nil {
		v := *s.OP
		out.OP = &v
	}
	if s.OPc != nil {
		v := *s.OPc
		out.OPc = &v
	}
	if s.SQN != nil {
		v := *s.SQN
		out.SQN = &v
	}
	return out
}

// Clone はSliceのディープコピーを返す。
func (s Slice) Clone() Slice {
	out := s
	if s.Sessions != nil {
		out.Sessions = make([]Session, len(s.Sessions))
		for i := range s.Sessions {
			out.Sessions[i] = s.Sessions[i].Clone()
		}
	}
	return out
}

// Clone はSessionのディープコピーを返す。
func (s Session) Clone() Session {
	out := s
	out.QoS = s.QoS.Clone()
	out.AMBR = cloneAMBR(s.AMBR)
	if s.UE != nil {
		v := *s.UE
		out.UE = &v
	}
	if s.SMF != nil {
		v := *s.SMF
		out.SMF = &v
	}
	if s.PCCRules != nil {
		out.PCCRules = make([]PCCRule, len(s.PCCRules))
		for i := range s.PCCRules {
			out.PCCRules[i] = s.PCCRules[i].Clone()
		}
	}
	return out
}

// Clone はPCCRuleのディープコピーを返す。
func (r PCCRule) Clone() PCCRule {
	out := r
	out.QoS = r.QoS.Clone()
	out.Flow = CloneFlows(r.Flow)
	return out
}

// Clone はQoSのディープコピーを返す。
func (q QoS) Clone() QoS {
	out := q
	out.MBR = cloneAMBR(q.MBR)
	out.GBR = cloneAMBR(q.GBR)
	return out
}

// CloneFlows はフロー一覧のディープコピーを返す。nilはnilのまま返す。
func CloneFlows(flows []Flow) []Flow {
	if flows == nil {
		return nil
	}
	out := make([]Flow, len(flows))
	for i, f := range flows {
		out[i] = Flow(cloneMap(f))
	}
	return out
}

func cloneAMBR(a *AMBR) *AMBR {
	if a == nil {
		return nil
	}
	v := *a
	return &v
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func cloneMap(in map[string]any) map[string]any {
	if in == nil {
		return nil
	}
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = cloneValue(v)
	}
	return out
}

func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case Flow:
		return Flow(cloneMap(t))
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = cloneValue(e)
		}
		return out
	default:
		return v
	}
}
