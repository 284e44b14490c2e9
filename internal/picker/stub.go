package picker

import "fmt"

// Stub is a headless Picker. It selects the candidates whose payloads are
// listed in Choose, in that order, or aborts.
type Stub struct {
	Choose []string
	Abort  bool
	Err    error

	// Offered and Used record the last call
	Offered []Candidate
	Used    Options
	Calls   int
}

// Pick implements Picker
func (s *Stub) Pick(candidates []Candidate, opts Options) (Result, error) {
	s.Calls++
	s.Offered = candidates
	s.Used = opts

	if s.Err != nil {
		return Result{}, s.Err
	}
	if s.Abort {
		return Result{Aborted: true}, nil
	}

	byPayload := make(map[string]Candidate, len(candidates))
	for _, c := range candidates {
		byPayload[c.Payload()] = c
	}

	var selected []Candidate
	for _, payload := range s.Choose {
		c, ok := byPayload[payload]
		if !ok {
			return Result{}, fmt.Errorf("stub picker: %q was not offered", payload)
		}
		selected = append(selected, c)
	}
	if opts.Mode == Single && len(selected) > 1 {
		selected = selected[:1]
	}

	return Result{Selected: selected}, nil
}
