package dicom

import (
	"fmt"
)

// ComparisonType classifies a collection mismatch
type ComparisonType int

const (
	// InvalidType means the attributes at a tag have different VRs
	InvalidType ComparisonType = iota
	// DifferentAttributeSet means one side has a tag the other lacks
	DifferentAttributeSet
	// DifferentValues means the attributes hold different values
	DifferentValues
)

func (t ComparisonType) String() string {
	switch t {
	case InvalidType:
		return "InvalidType"
	case DifferentAttributeSet:
		return "DifferentAttributeSet"
	case DifferentValues:
		return "DifferentValues"
	default:
		return fmt.Sprintf("ComparisonType(%d)", int(t))
	}
}

// ComparisonResult describes the first difference found between two
// collections
type ComparisonResult struct {
	Type    ComparisonType
	TagName string
	Details string
}

func (r ComparisonResult) String() string {
	return fmt.Sprintf("%s %s: %s", r.Type, r.TagName, r.Details)
}

// compared returns the attributes that take part in equality: group
// length entries and empty attributes are skipped
func (c *Collection) compared() []Attribute {
	var attrs []Attribute
	c.Each(func(a Attribute) bool {
		if !a.IsEmpty() && !a.Tag().IsGroupLength() {
			attrs = append(attrs, a)
		}
		return true
	})
	return attrs
}

// Equal walks both collections in tag order and stops at the first
// difference, which is returned as the single result
func (c *Collection) Equal(other *Collection) (bool, []ComparisonResult) {
	if other == nil {
		return false, []ComparisonResult{{Type: DifferentAttributeSet, Details: "Comparison collection is nil"}}
	}
	base, cmp := c.compared(), other.compared()
	for i := 0; i < len(base) || i < len(cmp); i++ {
		if i >= len(base) || i >= len(cmp) {
			r := ComparisonResult{Type: DifferentAttributeSet, Details: "Invalid last tag in attribute collection"}
			if i < len(base) {
				r.TagName = base[i].Tag().Name()
			} else {
				r.TagName = cmp[i].Tag().Name()
			}
			return false, []ComparisonResult{r}
		}
		a, b := base[i], cmp[i]
		if a.Tag() != b.Tag() {
			return false, []ComparisonResult{{
				Type:    DifferentAttributeSet,
				TagName: a.Tag().Name(),
				Details: fmt.Sprintf("Source tag %s and comparison message tag %s not the same, possible missing tag.", a.Tag(), b.Tag()),
			}}
		}
		if a.VR() != b.VR() && !(isOBOW(a.VR()) && isOBOW(b.VR())) {
			return false, []ComparisonResult{{
				Type:    InvalidType,
				TagName: a.Tag().Name(),
				Details: fmt.Sprintf("Tag %s VR %s does not match %s", a.Tag(), a.VR(), b.VR()),
			}}
		}
		if !a.Equal(b) {
			details := fmt.Sprintf("Tag %s values not equal in message", a.Tag())
			if a.StreamLength() < 64 && b.StreamLength() < 64 {
				details = fmt.Sprintf("Tag %s values not equal, Base value: '%s', Comparison value: '%s'", a.Tag(), a, b)
			}
			return false, []ComparisonResult{{Type: DifferentValues, TagName: a.Tag().Name(), Details: details}}
		}
	}
	return true, nil
}
