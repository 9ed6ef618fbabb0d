package service

import (
	"context"
	"fmt"

	"vetconnect/internal/gateway/core"
	"vetconnect/internal/gateway/flows"
	"vetconnect/pkg/client"
	"vetconnect/pkg/logger"
)

type GatewayService struct {
	engine *core.Engine
	client *client.Client
	log    *logger.Logger
}

func NewGatewayService(client *client.Client, log *logger.Logger) *GatewayService {
	engine := core.NewEngine(
		flows.RequestAppointment(),
		flows.VetDay(),
		flows.SearchVets(),
	)
	return &GatewayService{
		engine: engine,
		client: client,
		log:    log,
	}
}

func (s *GatewayService) ExecuteFlow(ctx context.Context, flowName string, input map[string]any) (map[string]any, error) {
	fc := core.NewFlowContext(ctx, input, s.client, s.log)
	if err := s.engine.Run(flowName, fc); err != nil {
		return nil, fmt.Errorf("flow execution failed: %v", err)
	}
	return fc.Output, nil
}

func (s *GatewayService) AvailableFlows() []string {
	return s.engine.FlowNames()
}
