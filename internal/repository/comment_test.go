package repository

import (
	"context"
	"strings"
	"testing"
	"time"

	"waypoint/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentRepository_ListByActivity(t *testing.T) {
	db := newRepoDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := seedUser(t, db, "commentauthor")
	activity := seedActivity(t, db, author.ID, time.Now().UTC())

	base := time.Date(2026, 8, 2, 9, 0, 0, 0, time.UTC)
	for i, text := range []string{"first", "second", "third"} {
		require.NoError(t, db.Create(&models.Comment{
			UserID:     author.ID,
			ActivityID: activity.ID,
			Content:    text,
			CreatedAt:  base.Add(time.Duration(i) * time.Minute),
		}).Error)
	}

	comments, total, err := repo.ListByActivity(ctx, activity.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, comments, 3)
	assert.Equal(t, "first", comments[0].Content)
	assert.Equal(t, "third", comments[2].Content)

	comments, total, err = repo.ListByActivity(ctx, activity.ID, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, comments, 1)
	assert.Equal(t, "third", comments[0].Content)
}

func TestCommentRepository_Delete(t *testing.T) {
	db := newRepoDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := seedUser(t, db, "deleter")
	activity := seedActivity(t, db, author.ID, time.Now().UTC())

	comment := &models.Comment{UserID: author.ID, ActivityID: activity.ID, Content: "going away"}
	require.NoError(t, repo.Create(ctx, comment))

	existed, err := repo.Delete(ctx, comment.ID)
	require.NoError(t, err)
	assert.True(t, existed)

	// The row is gone outright, not hidden.
	_, total, err := repo.ListByActivity(ctx, activity.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)

	var raw int64
	require.NoError(t, db.Model(&models.Comment{}).Count(&raw).Error)
	assert.Equal(t, int64(0), raw)

	// Deleting again, or deleting an id that never existed, is a quiet no-op.
	existed, err = repo.Delete(ctx, comment.ID)
	require.NoError(t, err)
	assert.False(t, existed)

	existed, err = repo.Delete(ctx, 9999)
	require.NoError(t, err)
	assert.False(t, existed)
}

func TestCommentRepository_ContentLengthConstraint(t *testing.T) {
	db := newRepoDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := seedUser(t, db, "longwinded")
	activity := seedActivity(t, db, author.ID, time.Now().UTC())

	err := repo.Create(ctx, &models.Comment{
		UserID:     author.ID,
		ActivityID: activity.ID,
		Content:    strings.Repeat("x", 501),
	})
	assert.Error(t, err)
}

func TestCommentRepository_CreateReportIsIdempotent(t *testing.T) {
	db := newRepoDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()

	author := seedUser(t, db, "reported")
	reporter := seedUser(t, db, "reporter")
	activity := seedActivity(t, db, author.ID, time.Now().UTC())

	comment := &models.Comment{UserID: author.ID, ActivityID: activity.ID, Content: "spam"}
	require.NoError(t, repo.Create(ctx, comment))

	inserted, err := repo.CreateReport(ctx, &models.CommentReport{
		CommentID:  comment.ID,
		ReporterID: reporter.ID,
		Reason:     models.ReportSpam,
		Notes:      "link farm",
	})
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = repo.CreateReport(ctx, &models.CommentReport{
		CommentID:  comment.ID,
		ReporterID: reporter.ID,
		Reason:     models.ReportOffensive,
	})
	require.NoError(t, err)
	assert.False(t, inserted)

	var count int64
	require.NoError(t, db.Model(&models.CommentReport{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
