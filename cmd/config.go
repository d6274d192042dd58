package cmd

import (
	"encoding/json"
	"fmt"

	"orderflow/internal/core/domain/model/order"
)

type Config struct {
	HTTPPort               string
	DBHost                 string
	DBPort                 string
	DBUser                 string
	DBPassword             string
	DBName                 string
	DBSslMode              string
	KafkaHost              string
	KafkaStatusTopic       string
	VerificationSigningKey string
	VerificationLegacyKey  string
	InitialOrderStatus     string
	InitialLineStatus      string
	OrderPipelineJSON      string
	StatusCascadeJSON      string
	LinePipelineJSON       string
}

// Default status configuration, used when the pipeline env vars are empty.
const (
	defaultInitialOrderStatus = "Pending"
	defaultInitialLineStatus  = "Pending"

	defaultOrderPipelineJSON = `{
		"Pending": ["Being processed", "Cancelled"],
		"Being processed": ["Shipped", "Cancelled"],
		"Shipped": ["Complete"],
		"Complete": [],
		"Cancelled": []
	}`
	defaultStatusCascadeJSON = `{
		"Shipped": "Shipped",
		"Cancelled": "Cancelled"
	}`
	defaultLinePipelineJSON = `{
		"Pending": ["Shipped", "Cancelled"],
		"Shipped": [],
		"Cancelled": []
	}`
)

// Pipelines parses the status configuration. Pipelines are deployment
// configuration, not order state: they are loaded once at startup and shared
// by every handler and repository.
func (c Config) Pipelines() (order.Pipelines, error) {
	orderPipeline, err := parsePipeline(c.OrderPipelineJSON, defaultOrderPipelineJSON)
	if err != nil {
		return order.Pipelines{}, fmt.Errorf("order pipeline config: %w", err)
	}

	linePipeline, err := parsePipeline(c.LinePipelineJSON, defaultLinePipelineJSON)
	if err != nil {
		return order.Pipelines{}, fmt.Errorf("line pipeline config: %w", err)
	}

	cascade, err := parseCascade(c.StatusCascadeJSON, defaultStatusCascadeJSON)
	if err != nil {
		return order.Pipelines{}, fmt.Errorf("status cascade config: %w", err)
	}

	return order.NewPipelines(orderPipeline, cascade, linePipeline)
}

// InitialStatuses returns the statuses stamped on new orders and new lines.
func (c Config) InitialStatuses() (order.Status, order.Status) {
	orderStatus := c.InitialOrderStatus
	if orderStatus == "" {
		orderStatus = defaultInitialOrderStatus
	}
	lineStatus := c.InitialLineStatus
	if lineStatus == "" {
		lineStatus = defaultInitialLineStatus
	}
	return order.Status(orderStatus), order.Status(lineStatus)
}

// DBConnectionString builds the postgres DSN from the DB config fields.
func (c Config) DBConnectionString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func parsePipeline(raw, fallback string) (order.Pipeline, error) {
	if raw == "" {
		raw = fallback
	}

	var transitions map[order.Status][]order.Status
	if err := json.Unmarshal([]byte(raw), &transitions); err != nil {
		return order.Pipeline{}, err
	}
	return order.NewPipeline(transitions)
}

func parseCascade(raw, fallback string) (map[order.Status]order.Status, error) {
	if raw == "" {
		raw = fallback
	}

	var cascade map[order.Status]order.Status
	if err := json.Unmarshal([]byte(raw), &cascade); err != nil {
		return nil, err
	}
	return cascade, nil
}
