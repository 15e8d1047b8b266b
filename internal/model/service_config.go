package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Known service type keys.
const (
	ServiceApproveJoin = "approveJoin"
)

// Join-request TTL bounds in days. Stored configuration outside this window
// is clamped, never rejected.
const (
	MinJoinTTLDays = 1
	MaxJoinTTLDays = 5
)

// ApproveJoinConfig is the typed configuration of the approveJoin service.
type ApproveJoinConfig struct {
	TTLDays      int    `json:"ttlDays"`
	AskQuestion  bool   `json:"askQuestion"`
	QuestionText string `json:"questionText"`
}

// EffectiveTTLDays returns the configured TTL clamped into the allowed window.
func (c ApproveJoinConfig) EffectiveTTLDays() int {
	ttl := c.TTLDays
	if ttl < MinJoinTTLDays {
		ttl = MinJoinTTLDays
	}
	if ttl > MaxJoinTTLDays {
		ttl = MaxJoinTTLDays
	}
	return ttl
}

// RequiresAnswer reports whether joining demands a non-blank answer. A
// whitespace-only question text counts as no question.
func (c ApproveJoinConfig) RequiresAnswer() bool {
	return c.AskQuestion && strings.TrimSpace(c.QuestionText) != ""
}

// DecodeApproveJoinConfig parses a stored config payload. A missing or empty
// payload yields the zero config, whose effective TTL is the minimum.
func DecodeApproveJoinConfig(raw json.RawMessage) (ApproveJoinConfig, error) {
	var cfg ApproveJoinConfig
	if len(raw) == 0 {
		return cfg, nil
	}
	if err := json.Unmarshal(raw, &cfg); err != nil {
		return cfg, fmt.Errorf("invalid %s config: %w", ServiceApproveJoin, err)
	}
	return cfg, nil
}

// IsSingletonService reports whether the service type allows at most one
// instance per board. The set is closed.
func IsSingletonService(serviceType string) bool {
	return serviceType == ServiceApproveJoin
}
