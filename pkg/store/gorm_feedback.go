package store

import (
	"context"
	"time"

	// Packages
	mia "github.com/mutablelogic/go-mia"
	schema "github.com/mutablelogic/go-mia/pkg/schema"
	postgres "gorm.io/driver/postgres"
	gorm "gorm.io/gorm"
	logger "gorm.io/gorm/logger"
)

///////////////////////////////////////////////////////////////////////////////
// TYPES

// GormFeedbackStore keeps feedback in a PostgreSQL table
type GormFeedbackStore struct {
	db *gorm.DB
}

// feedbackRow is the table layout of feedback
type feedbackRow struct {
	ID        string `gorm:"primaryKey;size:36"`
	Session   string `gorm:"index;size:255;not null"`
	MessageID string `gorm:"size:36"`
	Rating    int
	Comment   string
	CreatedAt time.Time `gorm:"index"`
}

var _ schema.FeedbackStore = (*GormFeedbackStore)(nil)

///////////////////////////////////////////////////////////////////////////////
// LIFECYCLE

// OpenFeedbackStore connects to PostgreSQL and creates the feedback table
// when it does not exist
func OpenFeedbackStore(dsn string) (*GormFeedbackStore, error) {
	if dsn == "" {
		return nil, mia.ErrBadParameter.With("database url is required")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, mia.ErrServiceUnavailable.Withf("open database: %v", err)
	}
	return NewGormFeedbackStore(db)
}

// NewGormFeedbackStore migrates the feedback table in an open database
func NewGormFeedbackStore(db *gorm.DB) (*GormFeedbackStore, error) {
	if err := db.AutoMigrate(&feedbackRow{}); err != nil {
		return nil, mia.ErrInternalServerError.Withf("migrate: %v", err)
	}
	return &GormFeedbackStore{db: db}, nil
}

// Close closes the database connection
func (g *GormFeedbackStore) Close() error {
	db, err := g.db.DB()
	if err != nil {
		return err
	}
	return db.Close()
}

///////////////////////////////////////////////////////////////////////////////
// PUBLIC METHODS

// RecordFeedback inserts feedback
func (g *GormFeedbackStore) RecordFeedback(ctx context.Context, feedback schema.Feedback) error {
	feedback = newFeedback(feedback)
	row := feedbackRow{
		ID:        feedback.ID,
		Session:   feedback.Session,
		MessageID: feedback.MessageID,
		Rating:    feedback.Rating,
		Comment:   feedback.Comment,
		CreatedAt: feedback.Timestamp,
	}
	if err := g.db.WithContext(ctx).Create(&row).Error; err != nil {
		return mia.ErrInternalServerError.Withf("insert feedback: %v", err)
	}
	return nil
}

// ListFeedback returns the feedback for a session in the order it was
// recorded, or all feedback when session is empty
func (g *GormFeedbackStore) ListFeedback(ctx context.Context, session string) ([]schema.Feedback, error) {
	var rows []feedbackRow
	tx := g.db.WithContext(ctx).Order("created_at")
	if session != "" {
		tx = tx.Where("session = ?", session)
	}
	if err := tx.Find(&rows).Error; err != nil {
		return nil, mia.ErrInternalServerError.Withf("list feedback: %v", err)
	}

	result := make([]schema.Feedback, 0, len(rows))
	for _, row := range rows {
		result = append(result, schema.Feedback{
			ID:        row.ID,
			Session:   row.Session,
			MessageID: row.MessageID,
			Rating:    row.Rating,
			Comment:   row.Comment,
			Timestamp: row.CreatedAt,
		})
	}
	return result, nil
}

///////////////////////////////////////////////////////////////////////////////
// PRIVATE METHODS

func (feedbackRow) TableName() string {
	return "mia_feedback"
}
