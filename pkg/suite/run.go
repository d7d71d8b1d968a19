package suite

import (
	"context"
	"fmt"
	"time"

	"mercator-hq/boolexpr/pkg/boolexpr"
	bxErrors "mercator-hq/boolexpr/pkg/boolexpr/errors"
	"mercator-hq/boolexpr/pkg/telemetry/logging"
)

// CaseResult is the outcome of one case.
type CaseResult struct {
	Name      string             `json:"name"`
	Passed    bool               `json:"passed"`
	Expected  string             `json:"expected"`
	Actual    string             `json:"actual"`
	ErrorType bxErrors.ErrorType `json:"error_type,omitempty"`
	Message   string             `json:"message,omitempty"`
	Duration  time.Duration      `json:"duration_ns"`
}

// Report collects the results of running one suite.
type Report struct {
	Suite    string        `json:"suite"`
	Source   string        `json:"source"`
	Results  []CaseResult  `json:"results"`
	Passed   int           `json:"passed"`
	Failed   int           `json:"failed"`
	Duration time.Duration `json:"duration_ns"`
}

// OK reports whether every case passed.
func (r *Report) OK() bool {
	return r.Failed == 0
}

// Run executes every case of s with interp, in order.
func Run(ctx context.Context, interp *boolexpr.Interpreter, s *Suite) *Report {
	start := time.Now()
	report := &Report{
		Suite:   s.Name,
		Source:  s.Source,
		Results: make([]CaseResult, 0, len(s.Cases)),
	}

	for i := range s.Cases {
		result := runCase(ctx, interp, &s.Cases[i])
		if result.Passed {
			report.Passed++
		} else {
			report.Failed++
		}
		report.Results = append(report.Results, result)
	}

	report.Duration = time.Since(start)
	return report
}

func runCase(ctx context.Context, interp *boolexpr.Interpreter, c *Case) CaseResult {
	ctx = logging.WithCase(ctx, c.Name)
	start := time.Now()

	var (
		res *boolexpr.Result
		err error
	)
	if c.Tree != nil {
		res, err = interp.Run(ctx, c.Tree)
	} else {
		res, err = interp.RunSource(ctx, c.Expr, fmt.Sprintf("%s[%s]", c.Position.Source, c.Name))
	}

	result := CaseResult{
		Name:     c.Name,
		Expected: c.Expected(),
		Duration: time.Since(start),
	}

	if err != nil {
		result.ErrorType = bxErrors.TypeOf(err)
		result.Message = err.Error()
		result.Actual = "error: " + string(result.ErrorType)
		result.Passed = c.ExpectsError() && result.ErrorType == c.Error
		return result
	}

	result.Actual = res.Literal().String()
	result.Passed = !c.ExpectsError() && res.Literal() == c.Expect
	return result
}
