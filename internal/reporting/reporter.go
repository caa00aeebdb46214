package reporting

import (
	"bytes"
	"fmt"
	"io"
	"text/template"

	"github.com/digimosa/concurrent-text-search/internal/models"
)

// summaryTemplate renders one round. "occurences" is the established output
// spelling and scripts match on it.
var summaryTemplate = template.Must(template.New("summary").Parse(
	"Summary:\n" +
		"{{range .Rows}}\t{{.WorkerID}} found {{.Count}} occurences of \"{{$.Query}}\" in file \"{{.Path}}\"\n{{end}}" +
		"Total matches:\t{{.Total}}\n"))

// Reporter writes the operator-facing lines of a session
type Reporter struct {
	out io.Writer
}

func NewReporter(out io.Writer) *Reporter {
	return &Reporter{out: out}
}

func (r *Reporter) Assignment(id int, path string) {
	fmt.Fprintf(r.out, "Assigning child with PID %d to file \"%s\"\n", id, path)
}

func (r *Reporter) Prompt(prompt string) {
	if prompt != "" {
		fmt.Fprint(r.out, prompt)
	}
}

// Summary renders the whole round first and writes it in one call, so a
// report is never interleaved with other output.
func (r *Reporter) Summary(s models.SearchSummary) error {
	var buf bytes.Buffer
	if err := summaryTemplate.Execute(&buf, s); err != nil {
		return err
	}
	_, err := r.out.Write(buf.Bytes())
	return err
}

func (r *Reporter) Exit(e models.WorkerExit) {
	fmt.Fprintf(r.out, "Child with PID %d exited with status %d\n", e.WorkerID, e.Status)
}

func (r *Reporter) AllExited() {
	fmt.Fprintln(r.out, "All children successfully exited")
}
