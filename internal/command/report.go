package command

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dmitrymomot/constraints/pkg/config"
	"github.com/dmitrymomot/constraints/pkg/schema"
	"github.com/dmitrymomot/constraints/pkg/validate"
)

type violationReport struct {
	Field      string `json:"field"`
	Constraint string `json:"constraint"`
	Message    string `json:"message"`
	Value      string `json:"value,omitempty"`
}

type documentReport struct {
	Source     string            `json:"source"`
	Index      int               `json:"index"`
	Valid      bool              `json:"valid"`
	Error      string            `json:"error,omitempty"`
	Violations []violationReport `json:"violations,omitempty"`
}

func newReport(doc document, vs validate.Violations, err error) documentReport {
	r := documentReport{Source: doc.Source, Index: doc.Index}
	if err != nil {
		r.Error = err.Error()
		return r
	}
	r.Valid = vs.IsEmpty()
	for _, v := range vs {
		r.Violations = append(r.Violations, violationReport{
			Field:      v.FieldPath.String(),
			Constraint: v.Constraint,
			Message:    v.Message(),
			Value:      schema.Format(v.FieldValue),
		})
	}
	return r
}

func writeReports(w io.Writer, output string, reports []documentReport) error {
	if output == config.OutputJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(reports)
	}

	for _, r := range reports {
		name := fmt.Sprintf("%s#%d", r.Source, r.Index)
		switch {
		case r.Error != "":
			fmt.Fprintf(w, "%s: error: %s\n", name, r.Error)
		case r.Valid:
			fmt.Fprintf(w, "%s: ok\n", name)
		default:
			fmt.Fprintf(w, "%s: %d violation(s)\n", name, len(r.Violations))
			for _, v := range r.Violations {
				field := v.Field
				if field == "" {
					field = "<message>"
				}
				fmt.Fprintf(w, "  %s [%s]: %s\n", field, v.Constraint, v.Message)
			}
		}
	}
	return nil
}
