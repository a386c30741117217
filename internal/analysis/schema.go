package analysis

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Label is the verdict attached to a score.
type Label string

const (
	LabelLow    Label = "Low credibility"
	LabelMedium Label = "Medium credibility"
	LabelHigh   Label = "Credible"
)

// Labels lists every accepted label in prompt order.
var Labels = []Label{LabelLow, LabelMedium, LabelHigh}

// Score bounds, inclusive.
const (
	MinScore = 0
	MaxScore = 100
)

// Result is a validated credibility analysis.
type Result struct {
	Score              int      `json:"score"`
	Label              Label    `json:"label"`
	PositiveIndicators []string `json:"positiveIndicators"`
	NegativeIndicators []string `json:"negativeIndicators"`
	Summary            string   `json:"summary"`
}

type fieldType int

const (
	typeScore fieldType = iota
	typeLabel
	typeStringList
	typeString
)

// field describes one key of the result object. The same table drives the
// JSON shape shown to the model and the validation of its reply.
type field struct {
	name string
	typ  fieldType
	hint string
}

var resultFields = []field{
	{name: "score", typ: typeScore, hint: "100 = highly credible"},
	{name: "label", typ: typeLabel},
	{name: "positiveIndicators", typ: typeStringList, hint: "points that raise credibility"},
	{name: "negativeIndicators", typ: typeStringList, hint: "points that lower credibility"},
	{name: "summary", typ: typeString, hint: "1-2 sentence summary"},
}

// shape renders the placeholder for f used in the prompt's JSON template.
func (f field) shape() string {
	var s string
	switch f.typ {
	case typeScore:
		s = fmt.Sprintf("<integer between %d and %d, %s>", MinScore, MaxScore, f.hint)
	case typeLabel:
		quoted := make([]string, len(Labels))
		for i, l := range Labels {
			quoted[i] = strconv.Quote(string(l))
		}
		s = "<" + strings.Join(quoted, " | ") + ">"
	case typeStringList:
		s = "[<list of " + f.hint + ">]"
	case typeString:
		s = "<" + f.hint + ">"
	}
	return s
}

// jsonShape renders the exact object the model must return.
func jsonShape() string {
	var b strings.Builder
	b.WriteString("{\n")
	for i, f := range resultFields {
		fmt.Fprintf(&b, "  %q: %s", f.name, f.shape())
		if i < len(resultFields)-1 {
			b.WriteString(",")
		}
		b.WriteString("\n")
	}
	b.WriteString("}")
	return b.String()
}

// Validate checks a decoded JSON value against the result schema. Every
// violated field is reported, not just the first. Keys outside the schema
// are ignored.
func Validate(v any) (*Result, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, &Error{
			Kind:    KindValidation,
			Message: "model reply does not match the result schema",
			Details: []Issue{typeIssue(nil, "object", v)},
		}
	}

	var res Result
	var issues []Issue
	for _, f := range resultFields {
		raw, present := obj[f.name]
		path := []string{f.name}
		if !present {
			issues = append(issues, Issue{
				Path:    path,
				Code:    "required",
				Message: "Required",
			})
			continue
		}

		switch f.typ {
		case typeScore:
			n, ok := raw.(float64)
			if !ok {
				issues = append(issues, typeIssue(path, "number", raw))
				continue
			}
			switch {
			case n < MinScore:
				issues = append(issues, Issue{
					Path:    path,
					Code:    "too_small",
					Message: fmt.Sprintf("Number must be greater than or equal to %d", MinScore),
					Params:  map[string]any{"minimum": MinScore},
				})
			case n > MaxScore:
				issues = append(issues, Issue{
					Path:    path,
					Code:    "too_big",
					Message: fmt.Sprintf("Number must be less than or equal to %d", MaxScore),
					Params:  map[string]any{"maximum": MaxScore},
				})
			case n != math.Trunc(n):
				issues = append(issues, Issue{
					Path:    path,
					Code:    "not_integer",
					Message: "Expected integer, received float",
				})
			default:
				res.Score = int(n)
			}

		case typeLabel:
			s, ok := raw.(string)
			if !ok {
				issues = append(issues, typeIssue(path, "string", raw))
				continue
			}
			if !isLabel(s) {
				options := make([]string, len(Labels))
				for i, l := range Labels {
					options[i] = string(l)
				}
				issues = append(issues, Issue{
					Path:    path,
					Code:    "invalid_enum_value",
					Message: fmt.Sprintf("Invalid enum value. Expected %s, received %q", strings.Join(options, " | "), s),
					Params:  map[string]any{"options": options, "received": s},
				})
				continue
			}
			res.Label = Label(s)

		case typeStringList:
			list, elemIssues := stringList(path, raw)
			issues = append(issues, elemIssues...)
			if f.name == "positiveIndicators" {
				res.PositiveIndicators = list
			} else {
				res.NegativeIndicators = list
			}

		case typeString:
			s, ok := raw.(string)
			if !ok {
				issues = append(issues, typeIssue(path, "string", raw))
				continue
			}
			res.Summary = s
		}
	}

	if len(issues) > 0 {
		return nil, &Error{
			Kind:    KindValidation,
			Message: "model reply does not match the result schema",
			Details: issues,
		}
	}
	return &res, nil
}

// stringList converts a decoded JSON array into a non-nil []string,
// reporting each element that is not a string.
func stringList(path []string, raw any) ([]string, []Issue) {
	arr, ok := raw.([]any)
	if !ok {
		return nil, []Issue{typeIssue(path, "array", raw)}
	}

	out := make([]string, 0, len(arr))
	var issues []Issue
	for i, elem := range arr {
		s, ok := elem.(string)
		if !ok {
			elemPath := append(append([]string{}, path...), strconv.Itoa(i))
			issues = append(issues, typeIssue(elemPath, "string", elem))
			continue
		}
		out = append(out, s)
	}
	return out, issues
}

func isLabel(s string) bool {
	for _, l := range Labels {
		if string(l) == s {
			return true
		}
	}
	return false
}

func typeIssue(path []string, expected string, got any) Issue {
	if path == nil {
		path = []string{}
	}
	received := jsonTypeName(got)
	return Issue{
		Path:    path,
		Code:    "invalid_type",
		Message: fmt.Sprintf("Expected %s, received %s", expected, received),
		Params:  map[string]any{"expected": expected, "received": received},
	}
}

// jsonTypeName names the JSON type of a value produced by encoding/json.
func jsonTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
