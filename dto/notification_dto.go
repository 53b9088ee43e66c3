package dto

// PurgeRequest represents the retention cleanup payload.
// Days is the minimum age of read notifications to delete; never below 7.
type PurgeRequest struct {
	Days int `json:"days" binding:"required"`
}
