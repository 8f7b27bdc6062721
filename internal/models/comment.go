package models

import (
	"time"
)

// Comment represents a comment on an activity. Author deletion removes the
// row outright; there is no undo.
// The length check mirrors the service-side validation so a bypassed client
// still cannot persist an empty or oversized comment.
type Comment struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	Content    string    `gorm:"not null;check:chk_comments_content_len,length(content) BETWEEN 1 AND 500" json:"content"`
	UserID     uint      `gorm:"not null;index" json:"user_id"`
	ActivityID uint      `gorm:"not null;index" json:"activity_id"`
	User       User      `gorm:"foreignKey:UserID" json:"user"`
	Activity   Activity  `gorm:"foreignKey:ActivityID" json:"-"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ReportReason classifies an abuse report.
type ReportReason string

const (
	ReportSpam       ReportReason = "spam"
	ReportOffensive  ReportReason = "offensive"
	ReportHarassment ReportReason = "harassment"
	ReportOther      ReportReason = "other"
)

// KnownReportReason reports whether r is one of the supported report reasons.
func KnownReportReason(r ReportReason) bool {
	switch r {
	case ReportSpam, ReportOffensive, ReportHarassment, ReportOther:
		return true
	}
	return false
}

// CommentReport is an abuse report filed against a comment. A reporter can
// report a comment at most once; the unique index makes repeats idempotent.
// Reports are intake only and await external review.
type CommentReport struct {
	ID         uint         `gorm:"primaryKey" json:"id"`
	CommentID  uint         `gorm:"not null;uniqueIndex:idx_comment_reporter" json:"comment_id"`
	ReporterID uint         `gorm:"not null;uniqueIndex:idx_comment_reporter" json:"reporter_id"`
	Reason     ReportReason `gorm:"not null" json:"reason"`
	// Notes is optional free text accompanying the reason.
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	Comment  Comment `gorm:"foreignKey:CommentID" json:"-"`
	Reporter User    `gorm:"foreignKey:ReporterID" json:"-"`
}
