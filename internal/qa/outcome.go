package qa

import "errors"

// Outcome is a check's tri-state result. Warning means the check needs
// human judgment and neither passes nor blocks the report.
type Outcome int

const (
	Pass Outcome = iota + 1
	Fail
	Warning
)

// JSON form keeps the report shape consumers expect: true, false, or
// null for warnings.
func (o Outcome) MarshalJSON() ([]byte, error) {
	switch o {
	case Pass:
		return []byte("true"), nil
	case Fail:
		return []byte("false"), nil
	default:
		return []byte("null"), nil
	}
}

func (o *Outcome) UnmarshalJSON(data []byte) error {
	switch string(data) {
	case "true":
		*o = Pass
	case "false":
		*o = Fail
	case "null":
		*o = Warning
	default:
		return errors.New("outcome must be true, false or null")
	}
	return nil
}

func (o Outcome) String() string {
	switch o {
	case Pass:
		return "pass"
	case Fail:
		return "fail"
	default:
		return "warning"
	}
}

// outcomeOf maps a plain condition to Pass/Fail.
func outcomeOf(ok bool) Outcome {
	if ok {
		return Pass
	}
	return Fail
}
