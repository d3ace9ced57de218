package lib

import (
	"io"
	"strings"
	"text/template"
)

var reportTemplate = `{{range .Batches}}== {{.Title}} ({{.Name}})
{{range .Entries}}{{printf "%4d" .Line}}  {{.Equation}}  =>  {{.Result}}
{{end}}
{{end}}Summary: {{.Summary.Unique}} unique, {{.Summary.Infinite}} infinite, {{.Summary.None}} none, {{.Summary.Errors}} errors
`

type reportViewModel struct {
	Batches []batchViewModel
	Summary summaryViewModel
}

type batchViewModel struct {
	Name    string
	Title   string
	Entries []entryViewModel
}

type entryViewModel struct {
	Line     int
	Equation string
	Result   string
}

type summaryViewModel struct {
	Unique   int
	Infinite int
	None     int
	Errors   int
}

// RenderReport writes a plain text summary of interpreted batches.
func RenderReport(writer io.Writer, batches []EquationBatch) error {
	vm := newReportViewModel(batches)

	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(writer, vm)
}

func newReportViewModel(batches []EquationBatch) reportViewModel {
	vm := reportViewModel{
		Batches: []batchViewModel{},
	}

	for _, b := range batches {
		entries := []entryViewModel{}

		for _, e := range b.Entries {
			entries = append(entries, entryViewModel{
				Line:     e.Line,
				Equation: e.Equation,
				Result:   entryResult(e, b.Variable),
			})
			vm.Summary.add(e)
		}

		vm.Batches = append(vm.Batches, batchViewModel{
			Name:    b.Name,
			Title:   titleCase(b.Name),
			Entries: entries,
		})
	}

	return vm
}

func entryResult(e BatchEntry, variable rune) string {
	if variable == 0 {
		variable = DefaultVariable
	}
	if e.Err != nil {
		return "error: " + e.Err.Error()
	}
	if e.Solution.Kind == SolutionUnique {
		return string(variable) + " = " + e.Solution.String()
	}
	return e.Solution.String()
}

func (s *summaryViewModel) add(e BatchEntry) {
	if e.Err != nil {
		s.Errors++
		return
	}
	switch e.Solution.Kind {
	case SolutionUnique:
		s.Unique++
	case SolutionInfinite:
		s.Infinite++
	case SolutionNone:
		s.None++
	}
}

// titleCase turns a file name like "basic_linear-2" into "Basic Linear 2".
func titleCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
