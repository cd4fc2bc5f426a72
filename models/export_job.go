package models

import "time"

// Export job status constants
const (
	ExportStatusRunning   = "running"
	ExportStatusCompleted = "completed"
	ExportStatusFailed    = "failed"
)

// Export mode constants
const (
	ExportModeSingle  = "single"
	ExportModeChunked = "chunked"
)

// ExportJob tracks one bulk PDF export of a campaign. Chunked jobs
// update CompletedParts and Progress as parts finish, so a client can
// poll progress and pick up finished parts at any time.
type ExportJob struct {
	ID             string       `gorm:"primaryKey" json:"id"` // uuid
	VendorID       uint         `json:"vendor_id" gorm:"index"`
	CampaignID     uint         `json:"campaign_id" gorm:"index"`
	Mode           string       `json:"mode"`
	EstimatedQRs   int          `json:"estimated_qrs"`
	ChunkSize      int          `json:"chunk_size"`
	TotalParts     int          `json:"total_parts"`
	CompletedParts int          `json:"completed_parts"`
	Progress       int          `json:"progress"` // 0-100, monotone
	Status         string       `json:"status"`
	Error          string       `json:"error,omitempty"`
	Parts          []ExportPart `json:"parts" gorm:"foreignKey:JobID"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`
}

// ExportPart is one finished slice of a chunked export, written to disk
// under the export directory.
type ExportPart struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	JobID     string    `json:"job_id" gorm:"index"`
	Part      int       `json:"part"`
	Offset    int       `json:"offset"`
	Limit     int       `json:"limit"`
	FileName  string    `json:"file_name"`
	SizeBytes int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
}
