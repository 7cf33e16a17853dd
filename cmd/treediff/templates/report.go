package templates

// Report is the result of replaying a scenario.
type Report struct {
	Scenario string
	Steps    []Step
	ShowTree bool
}

type Step struct {
	Name   string
	Ops    []string
	Counts []Count
	Hash   uint64
	Tree   string
}

type Count struct {
	Kind string
	N    int
}
