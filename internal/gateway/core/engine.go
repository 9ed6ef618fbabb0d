package core

import "fmt"

// Flow is an ordered pipeline of steps sharing one FlowContext.
type Flow struct {
	Name  string
	Steps []*Step
}

func NewFlow(name string, steps ...*Step) *Flow {
	return &Flow{Name: name, Steps: steps}
}

type Engine struct {
	flows map[string]*Flow
}

func NewEngine(flows ...*Flow) *Engine {
	m := map[string]*Flow{}
	for _, f := range flows {
		m[f.Name] = f
	}
	return &Engine{flows: m}
}

func (e *Engine) Run(flowName string, fc *FlowContext) error {
	f, exists := e.flows[flowName]
	if !exists {
		return fmt.Errorf("unsupported flow: %v", flowName)
	}
	for _, step := range f.Steps {
		if err := step.Execute(fc); err != nil {
			return fmt.Errorf("%s step failed, pipeline errored: %s", step.Name, err)
		}
	}
	return nil
}

func (e *Engine) FlowNames() []string {
	names := make([]string, 0, len(e.flows))
	for name := range e.flows {
		names = append(names, name)
	}
	return names
}
