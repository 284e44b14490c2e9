// Package picker asks the user to choose among candidates. The terminal
// implementation draws a fuzzy-filtered list on the error stream and reads
// keys from the controlling terminal, so standard output stays free for
// results.
package picker

// Candidate is one choosable item
type Candidate interface {
	Label() string   // text shown and matched against the query
	Payload() string // value handed back to the caller, a path or a branch
}

// Mode selects how many candidates may be chosen
type Mode int

const (
	Single Mode = iota
	Multi
)

// Options configures one selection
type Options struct {
	Mode   Mode
	Prompt string
	// Preview, when set, returns text shown for the highlighted candidate.
	// It must not mutate anything.
	Preview func(payload string) string
}

// Result is the outcome of a selection. An aborted result has no
// selection; a result that is not aborted may still be empty when the
// query matched nothing.
type Result struct {
	Aborted  bool
	Selected []Candidate
}

// Payloads returns the payloads of the selected candidates in order
func (r Result) Payloads() []string {
	payloads := make([]string, 0, len(r.Selected))
	for _, c := range r.Selected {
		payloads = append(payloads, c.Payload())
	}
	return payloads
}

// Picker presents candidates and returns the user's choice
type Picker interface {
	Pick(candidates []Candidate, opts Options) (Result, error)
}

// Item is a Candidate with fixed label and payload
type Item struct {
	Text  string
	Value string
}

func (i Item) Label() string   { return i.Text }
func (i Item) Payload() string { return i.Value }
