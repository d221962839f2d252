package dto

import "encoding/json"

type RelaySendRequest struct {
	RelayId string          `json:"relayId" validate:"required"`
	Payload json.RawMessage `json:"payload" validate:"required"`
}

type RelaySendResponse struct {
	OK      bool   `json:"ok"`
	RelayId string `json:"relayId"`
}

type RelayReceiveRequest struct {
	RelayId string `json:"relayId" validate:"required"`
}

// RelayReceiveResponse carries a null payload when nothing is waiting.
type RelayReceiveResponse struct {
	OK      bool            `json:"ok"`
	Payload json.RawMessage `json:"payload"`
}
