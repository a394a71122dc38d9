package reporter

import (
	"io"

	"github.com/owenrumney/go-sarif/v3/pkg/report"
	"github.com/owenrumney/go-sarif/v3/pkg/report/v210/sarif"

	"github.com/loupelabs/loupe/internal/syntax"
)

const infoURI = "https://github.com/loupelabs/loupe"

// PrintSARIF writes errors as a SARIF 2.1.0 report with one result per
// syntax error, located at the reported line.
func PrintSARIF(w io.Writer, errs []syntax.Error) error {
	rep := report.NewV210Report()
	run := sarif.NewRunWithInformationURI("loupe", infoURI)

	for _, e := range errs {
		run.CreateResultForRule("syntax").
			WithLevel("error").
			WithMessage(sarif.NewTextMessage(e.Message)).
			AddLocation(sarif.NewLocationWithPhysicalLocation(
				sarif.NewPhysicalLocation().
					WithArtifactLocation(sarif.NewSimpleArtifactLocation(e.File)).
					WithRegion(sarif.NewSimpleRegion(e.Line, e.Line)),
			))
	}

	rep.AddRun(run)
	return rep.PrettyWrite(w)
}
