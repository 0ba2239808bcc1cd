package analyses

import "time"

// Analysis is one persisted detection result. Records are immutable once
// created; the only delete path is the bulk retention job.
type Analysis struct {
	ID            string    `json:"analysisId"`
	Filename      string    `json:"filename"`
	FileType      string    `json:"fileType"`
	FileSize      int64     `json:"fileSize"`
	TextLength    int       `json:"textLength"`
	AIProbability float64   `json:"aiProbability"`
	Confidence    float64   `json:"confidence"`
	Reasoning     string    `json:"reasoning"`
	IPAddress     string    `json:"-"`
	VisitorID     string    `json:"-"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Stats aggregates the stored analyses. Percentages are zero when no records
// exist, never a division by zero.
type Stats struct {
	TotalAnalyses        int            `json:"totalAnalyses"`
	AIDetected           int            `json:"aiDetected"`
	HumanDetected        int            `json:"humanDetected"`
	AIPercentage         float64        `json:"aiPercentage"`
	HumanPercentage      float64        `json:"humanPercentage"`
	AverageConfidence    float64        `json:"averageConfidence"`
	FileTypeDistribution map[string]int `json:"fileTypeDistribution"`
}

// aiThreshold splits records into AI-detected vs human-detected for stats.
const aiThreshold = 0.5
