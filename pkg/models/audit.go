package models

import "time"

// Exchange is one audited question/answer round trip.
type Exchange struct {
	ID           string    `json:"id"`
	Question     string    `json:"question"`
	Strategy     string    `json:"strategy"`
	Status       string    `json:"status"`
	Answer       string    `json:"answer,omitempty"`
	ErrorMessage string    `json:"error_message,omitempty"`
	SourceCount  int       `json:"source_count"`
	Cached       bool      `json:"cached"`
	LatencyMs    int64     `json:"latency_ms"`
	CreatedAt    time.Time `json:"created_at"`
}

// AuditConfig controls the exchange audit log.
type AuditConfig struct {
	Enabled        bool   `yaml:"enabled"`
	DBPath         string `yaml:"db_path"`
	RetentionDays  int    `yaml:"retention_days"`
	IncludeAnswers bool   `yaml:"include_answers"`
	MaxAnswerSize  int    `yaml:"max_answer_size"` // bytes
}

// ExchangeQuery specifies filters for querying exchanges.
type ExchangeQuery struct {
	ID       string
	Status   string
	Strategy string
	Contains string
	Since    time.Time
	Limit    int
}

// ExchangeStat holds aggregate counts for a status/day combination.
type ExchangeStat struct {
	Status string
	Day    string
	Count  int
}

// QuestionCount is how often a question (after normalization) was asked.
type QuestionCount struct {
	Question string
	Count    int
}
