package promotion

import "fmt"

// Tier is the (n, percent) pair shared by package and threshold rules.
type Tier struct {
	Count   int `json:"count"`
	Percent int `json:"percent"`
}

// Spec is the payload form of a rule: at most one field may be set.
type Spec struct {
	GetOneFree *int  `json:"get_one_free,omitempty"`
	Package    *Tier `json:"package,omitempty"`
	Threshold  *Tier `json:"threshold,omitempty"`
}

// Rule converts the spec into a validated Rule. A nil or empty spec is None.
func (s *Spec) Rule() (Rule, error) {
	if s == nil {
		return None(), nil
	}
	var (
		rule Rule
		set  int
	)
	if s.GetOneFree != nil {
		rule = GetOneFree(*s.GetOneFree)
		set++
	}
	if s.Package != nil {
		rule = Package(s.Package.Count, s.Package.Percent)
		set++
	}
	if s.Threshold != nil {
		rule = Threshold(s.Threshold.Count, s.Threshold.Percent)
		set++
	}
	if set > 1 {
		return None(), fmt.Errorf("%d promotions configured, at most one allowed: %w", set, ErrInvalidRule)
	}
	if err := rule.Validate(); err != nil {
		return None(), err
	}
	return rule, nil
}

// SpecFor is the inverse of Spec.Rule.
func SpecFor(r Rule) *Spec {
	switch r.kind {
	case KindGetOneFree:
		n := r.count
		return &Spec{GetOneFree: &n}
	case KindPackage:
		return &Spec{Package: &Tier{Count: r.count, Percent: r.percent}}
	case KindThreshold:
		return &Spec{Threshold: &Tier{Count: r.count, Percent: r.percent}}
	default:
		return nil
	}
}
