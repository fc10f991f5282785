package services

import (
	"encoding/json"

	"gymtrack/internal/client/api"
	"gymtrack/internal/client/models"
)

// listEnvelope mirrors the backend's list wrapper. Older endpoints return a
// bare array instead, so decodeList accepts both.
type listEnvelope[T any] struct {
	Data       []T                `json:"data"`
	Pagination *models.Pagination `json:"pagination"`
}

func decodeList[T any](raw json.RawMessage) ([]T, *models.Pagination, error) {
	var env listEnvelope[T]
	if err := json.Unmarshal(raw, &env); err == nil && env.Data != nil {
		return env.Data, env.Pagination, nil
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, nil, &api.Error{Message: "unexpected response format: " + err.Error()}
	}
	return items, nil, nil
}
