package core

import (
	"context"
	"fmt"
	"time"

	"vetconnect/pkg/client"
	"vetconnect/pkg/logger"
)

// FlowContext carries a single flow execution. Input is the caller's
// payload, Process is scratch space between steps, Output is what the
// caller gets back.
type FlowContext struct {
	Ctx     context.Context
	Input   map[string]any
	Process map[string]any
	Output  map[string]any
	Client  *client.Client
	Log     *logger.Logger
}

func NewFlowContext(ctx context.Context, input map[string]any, client *client.Client, log *logger.Logger) *FlowContext {
	return &FlowContext{
		Ctx:     ctx,
		Input:   input,
		Process: make(map[string]any),
		Output:  make(map[string]any),
		Client:  client,
		Log:     log,
	}
}

// ExtractString reads a required string input. Empty counts as missing.
func (fc *FlowContext) ExtractString(key string) (string, error) {
	raw, ok := fc.Input[key]
	if !ok {
		return "", MissingParamErr(key)
	}
	str, ok := raw.(string)
	if !ok || IsMissing(str) {
		return "", MissingParamErr(key)
	}
	return str, nil
}

func (fc *FlowContext) ExtractOptionalString(key string) string {
	raw, ok := fc.Input[key]
	if !ok {
		return ""
	}
	str, _ := raw.(string)
	return str
}

func (fc *FlowContext) ExtractTime(key string) (time.Time, error) {
	str, err := fc.ExtractString(key)
	if err != nil {
		return time.Time{}, err
	}
	t, err := time.Parse(time.RFC3339, str)
	if err != nil {
		return time.Time{}, fmt.Errorf("param [%v] is not a valid RFC3339 timestamp: %w", key, err)
	}
	return t, nil
}
