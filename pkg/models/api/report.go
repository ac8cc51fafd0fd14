package api

import "time"

type ReportRequest struct {
	FromDate   string   `json:"from_date,omitempty"`
	ToDate     string   `json:"to_date,omitempty"`
	DateType   string   `json:"date_type,omitempty"`
	Status     *string  `json:"status,omitempty"`
	ChannelIDs []int    `json:"channel_ids,omitempty"`
	Question   string   `json:"question,omitempty"`
	Columns    []string `json:"columns,omitempty"`
	Optimize   bool     `json:"optimize,omitempty"`
	MaxRows    int      `json:"max_rows,omitempty"`
}

type Channel struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
}

type Table struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

type ReportResponse struct {
	Variant    string `json:"variant"`
	Title      string `json:"title"`
	Table      Table  `json:"table"`
	TotalRows  int    `json:"total_rows"`
	Truncated  bool   `json:"truncated"`
	Answer     string `json:"answer,omitempty"`
	AgentError string `json:"agent_error,omitempty"`
}

type ValidationResponse struct {
	TotalRows        int      `json:"total_rows"`
	Filtered         Table    `json:"filtered"`
	RemovedColumns   []string `json:"removed_columns"`
	MissingColumns   []string `json:"missing_columns,omitempty"`
	Validated        bool     `json:"validated"`
	DiscrepancyCount int      `json:"discrepancy_count"`
	Discrepancies    *Table   `json:"discrepancies,omitempty"`
	Message          string   `json:"message"`
	Answer           string   `json:"answer,omitempty"`
	AgentError       string   `json:"agent_error,omitempty"`
	RunID            string   `json:"run_id,omitempty"`
}

type ValidationRun struct {
	ID               string    `json:"id"`
	FromDate         string    `json:"from_date"`
	ToDate           string    `json:"to_date"`
	TotalRows        int       `json:"total_rows"`
	DiscrepancyCount int       `json:"discrepancy_count"`
	RemovedColumns   []string  `json:"removed_columns"`
	MissingColumns   []string  `json:"missing_columns"`
	CreatedAt        time.Time `json:"created_at"`
}

type Error struct {
	Error          string `json:"error"`
	UpstreamStatus int    `json:"upstream_status,omitempty"`
	UpstreamBody   string `json:"upstream_body,omitempty"`
}
