package render

// Action is one row of a run report: what was decided for one output file.
type Action struct {
	Path     string `json:"path" yaml:"path"`
	Theme    string `json:"theme" yaml:"theme"`
	Scheme   string `json:"scheme" yaml:"scheme"`
	Template string `json:"template" yaml:"template"`
	Status   string `json:"status" yaml:"status"`
	Decision string `json:"decision" yaml:"decision"`
	Wrote    bool   `json:"wrote" yaml:"wrote"`
}

// Report collects the per-file actions of one session run, for logging and
// for the status command's structured output.
type Report struct {
	DryRun  bool     `json:"dry_run" yaml:"dry_run"`
	Actions []Action `json:"actions" yaml:"actions"`
}

func (r *Report) add(action Action) {
	r.Actions = append(r.Actions, action)
}

// Written returns how many files were actually written.
func (r *Report) Written() int {
	n := 0
	for _, a := range r.Actions {
		if a.Wrote {
			n++
		}
	}

	return n
}

// Conflicts returns how many files were left alone due to conflicts.
func (r *Report) Conflicts() int {
	n := 0
	for _, a := range r.Actions {
		if a.Decision == Conflict.LogAction() {
			n++
		}
	}

	return n
}
