package core

type Step struct {
	Name    string
	Execute func(fc *FlowContext) error
}

func NewStep(name string, execute func(fc *FlowContext) error) *Step {
	return &Step{
		Name:    name,
		Execute: execute,
	}
}
