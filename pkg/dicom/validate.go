package dicom

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jpfielding/dcmattr.go/pkg/dicom/datetime"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/tag"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/uid"
	"github.com/jpfielding/dcmattr.go/pkg/dicom/vr"
)

var (
	agePattern     = regexp.MustCompile(`^\d{3}[DWMY]$`)
	decimalPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)
	codePattern    = regexp.MustCompile(`^[A-Z0-9 _]*$`)
)

// validators check a single trimmed, non empty value
var validators = map[vr.VR]func(string) error{
	vr.AS: func(s string) error {
		if !agePattern.MatchString(s) {
			return errors.New("age must be nnnD, nnnW, nnnM or nnnY")
		}
		return nil
	},
	vr.CS: func(s string) error {
		if !codePattern.MatchString(s) {
			return errors.New("code strings allow A-Z, 0-9, space and underscore")
		}
		return nil
	},
	vr.DA: rangeOf(func(s string) error { _, err := datetime.ParseDA(s); return err }),
	vr.TM: rangeOf(func(s string) error { _, err := datetime.ParseTM(s); return err }),
	vr.DT: func(s string) error {
		// a trailing -ZZXX offset also contains a hyphen
		if _, err := datetime.ParseDT(s); err == nil {
			return nil
		}
		return rangeOf(func(s string) error { _, err := datetime.ParseDT(s); return err })(s)
	},
	vr.DS: func(s string) error {
		if !decimalPattern.MatchString(s) {
			return errors.New("not a decimal string")
		}
		return nil
	},
	vr.IS: func(s string) error {
		if _, err := strconv.ParseInt(s, 10, 32); err != nil {
			return fmt.Errorf("not a 32 bit integer string: %w", err)
		}
		return nil
	},
	vr.UI: func(s string) error {
		if !uid.IsValid(s) {
			return errors.New("malformed UID")
		}
		return nil
	},
}

// rangeOf accepts either a single value or a "lo-hi" range where either side
// may be omitted
func rangeOf(check func(string) error) func(string) error {
	return func(s string) error {
		lo, hi, isRange := strings.Cut(s, "-")
		if !isRange {
			return check(s)
		}
		for _, p := range []string{lo, hi} {
			if p == "" {
				continue
			}
			if err := check(p); err != nil {
				return err
			}
		}
		return nil
	}
}

// RequirementType is the attribute type of a module requirement
type RequirementType int

const (
	// Type1 - Required, must have value
	Type1 RequirementType = 1
	// Type1C - Conditionally required, must have value if present
	Type1C RequirementType = 2
	// Type2 - Required, may be empty
	Type2 RequirementType = 3
	// Type2C - Conditionally required, may be empty if present
	Type2C RequirementType = 4
	// Type3 - Optional
	Type3 RequirementType = 5
)

func (t RequirementType) String() string {
	switch t {
	case Type1:
		return "Type 1"
	case Type1C:
		return "Type 1C"
	case Type2:
		return "Type 2"
	case Type2C:
		return "Type 2C"
	case Type3:
		return "Type 3"
	default:
		return "Value"
	}
}

// ValidationError is a single validation failure
type ValidationError struct {
	Tag        tag.Tag
	Type       RequirementType
	Message    string
	IsCritical bool // Type 1 and 1C violations are critical
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Tag, e.Type, e.Message)
}

// ValidationResult holds the failures of one validation pass
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// IsValid returns true if there are no critical errors
func (r ValidationResult) IsValid() bool {
	for _, err := range r.Errors {
		if err.IsCritical {
			return false
		}
	}
	return true
}

// HasErrors returns true if there are any errors
func (r ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any warnings
func (r ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Requirement is a module attribute requirement
type Requirement struct {
	Tag       tag.Tag
	Type      RequirementType
	Condition func(*Collection) bool // Type 1C/2C: true when the attribute is required
}

// Common module requirements
var (
	SOPCommonRequirements = []Requirement{
		{Tag: tag.SOPClassUID, Type: Type1},
		{Tag: tag.SOPInstanceUID, Type: Type1},
		{Tag: tag.SpecificCharacterSet, Type: Type1C, Condition: func(c *Collection) bool {
			return c.Settings().SpecificCharacterSet != ""
		}},
	}
	PatientRequirements = []Requirement{
		{Tag: tag.PatientName, Type: Type2},
		{Tag: tag.PatientID, Type: Type2},
	}
	GeneralStudyRequirements = []Requirement{
		{Tag: tag.StudyInstanceUID, Type: Type1},
		{Tag: tag.StudyDate, Type: Type2},
		{Tag: tag.StudyTime, Type: Type2},
	}
)

// Validate re-checks every text value against its VR and reports the
// requirements that are not met. Text values are checked with length and
// content validation on regardless of the collection settings.
func (c *Collection) Validate(requirements ...Requirement) ValidationResult {
	result := ValidationResult{}
	strict := *c.settings
	strict.ValidateVRLengths, strict.ValidateVRValues = true, true
	c.Each(func(a Attribute) bool {
		t, ok := a.(interface{ text() *Text })
		if !ok {
			return true
		}
		probe := t.text().clone()
		probe.ctx = &strict
		for _, v := range probe.values {
			if err := probe.ValidateString(v); err != nil {
				result.Warnings = append(result.Warnings, ValidationError{Tag: a.Tag(), Message: err.Error()})
			}
		}
		return true
	})
	for _, req := range requirements {
		a, exists := c.Lookup(req.Tag)
		required := req.Condition == nil || req.Condition(c)
		switch req.Type {
		case Type1, Type1C:
			if !required {
				continue
			}
			if !exists {
				result.Errors = append(result.Errors, ValidationError{Tag: req.Tag, Type: req.Type, Message: "Required attribute missing", IsCritical: true})
			} else if a.IsEmpty() || a.IsNull() {
				result.Errors = append(result.Errors, ValidationError{Tag: req.Tag, Type: req.Type, Message: "Required attribute is empty", IsCritical: true})
			}
		case Type2, Type2C:
			if required && !exists {
				result.Warnings = append(result.Warnings, ValidationError{Tag: req.Tag, Type: req.Type, Message: "Required attribute missing (may be empty)"})
			}
		}
	}
	return result
}
