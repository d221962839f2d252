package service

import (
	"context"
	"errors"

	"vetscribe-be/internal/dto"
	"vetscribe-be/internal/pkg/logger"
	"vetscribe-be/internal/repository/contract"
	"vetscribe-be/pkg/metrics"
)

type IRelayService interface {
	Send(ctx context.Context, req *dto.RelaySendRequest) (*dto.RelaySendResponse, error)
	Receive(ctx context.Context, req *dto.RelayReceiveRequest) (*dto.RelayReceiveResponse, error)
}

type relayService struct {
	relayRepository contract.RelayRepository
	metrics         *metrics.Metrics
	logger          logger.ILogger
}

func NewRelayService(relayRepository contract.RelayRepository, m *metrics.Metrics, log logger.ILogger) IRelayService {
	return &relayService{
		relayRepository: relayRepository,
		metrics:         m,
		logger:          log,
	}
}

func (s *relayService) Send(ctx context.Context, req *dto.RelaySendRequest) (*dto.RelaySendResponse, error) {
	if err := s.relayRepository.Send(ctx, req.RelayId, req.Payload); err != nil {
		s.count("send", resultOf(err))
		return nil, err
	}
	s.count("send", "stored")

	s.logger.Debug("RELAY", "Payload stored", map[string]interface{}{
		"relay_id": req.RelayId,
		"bytes":    len(req.Payload),
	})
	return &dto.RelaySendResponse{OK: true, RelayId: req.RelayId}, nil
}

func (s *relayService) Receive(ctx context.Context, req *dto.RelayReceiveRequest) (*dto.RelayReceiveResponse, error) {
	payload, err := s.relayRepository.Receive(ctx, req.RelayId)
	if err != nil {
		s.count("receive", resultOf(err))
		return nil, err
	}

	if payload == nil {
		s.count("receive", "miss")
		return &dto.RelayReceiveResponse{OK: true}, nil
	}

	s.count("receive", "hit")
	s.logger.Debug("RELAY", "Payload delivered", map[string]interface{}{
		"relay_id": req.RelayId,
	})
	return &dto.RelayReceiveResponse{OK: true, Payload: payload}, nil
}

func (s *relayService) count(op, result string) {
	if s.metrics == nil {
		return
	}
	s.metrics.RelayTotal.WithLabelValues(op, result).Inc()
}

func resultOf(err error) string {
	if errors.Is(err, contract.ErrInvalidArgument) {
		return "invalid"
	}
	return "error"
}
