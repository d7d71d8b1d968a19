package suite

import (
	"encoding/xml"
	"fmt"
	"io"
)

type junitTestSuites struct {
	XMLName xml.Name         `xml:"testsuites"`
	Suites  []junitTestSuite `xml:"testsuite"`
}

type junitTestSuite struct {
	Name     string          `xml:"name,attr"`
	Tests    int             `xml:"tests,attr"`
	Failures int             `xml:"failures,attr"`
	Time     string          `xml:"time,attr"`
	Cases    []junitTestCase `xml:"testcase"`
}

type junitTestCase struct {
	Name      string        `xml:"name,attr"`
	ClassName string        `xml:"classname,attr"`
	Time      string        `xml:"time,attr"`
	Failure   *junitFailure `xml:"failure,omitempty"`
}

type junitFailure struct {
	Message string `xml:"message,attr"`
	Body    string `xml:",chardata"`
}

// WriteJUnit writes reports as one JUnit XML document.
func WriteJUnit(w io.Writer, reports ...*Report) error {
	doc := junitTestSuites{Suites: make([]junitTestSuite, 0, len(reports))}

	for _, r := range reports {
		ts := junitTestSuite{
			Name:     r.Suite,
			Tests:    len(r.Results),
			Failures: r.Failed,
			Time:     seconds(r.Duration.Seconds()),
		}
		for _, res := range r.Results {
			tc := junitTestCase{
				Name:      res.Name,
				ClassName: r.Suite,
				Time:      seconds(res.Duration.Seconds()),
			}
			if !res.Passed {
				tc.Failure = &junitFailure{
					Message: fmt.Sprintf("expected %s, got %s", res.Expected, res.Actual),
					Body:    res.Message,
				}
			}
			ts.Cases = append(ts.Cases, tc)
		}
		doc.Suites = append(doc.Suites, ts)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func seconds(s float64) string {
	return fmt.Sprintf("%.6f", s)
}
