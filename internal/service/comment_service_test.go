package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"waypoint/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommentService_CreateSanitizes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	author := f.seedUser(t, "commentee")
	commenter := f.seedUser(t, "commenter")
	activity := f.seedActivityAt(t, author.ID, time.Now())

	comment, err := f.comments.Create(ctx, CreateCommentInput{
		UserID:     commenter.ID,
		ActivityID: activity.ID,
		Content:    `  <b>nice</b> trip<script>alert("x")</script>!  `,
	})
	require.NoError(t, err)
	assert.Equal(t, "nice trip!", comment.Content)
	assert.Equal(t, "commenter", comment.User.Username)
}

func TestCommentService_CreateValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	author := f.seedUser(t, "valauthor")
	commenter := f.seedUser(t, "valcommenter")
	activity := f.seedActivityAt(t, author.ID, time.Now())

	tests := []struct {
		name    string
		content string
	}{
		{"Empty", ""},
		{"Whitespace Only", "   \n "},
		{"Markup Only", "<i></i>"},
		{"Too Long", strings.Repeat("a", 501)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.comments.Create(ctx, CreateCommentInput{
				UserID:     commenter.ID,
				ActivityID: activity.ID,
				Content:    tt.content,
			})
			assert.Equal(t, "VALIDATION_ERROR", appErrCode(t, err))
		})
	}

	t.Run("Missing Activity", func(t *testing.T) {
		_, err := f.comments.Create(ctx, CreateCommentInput{
			UserID:     commenter.ID,
			ActivityID: 9999,
			Content:    "hello",
		})
		assert.Equal(t, "NOT_FOUND", appErrCode(t, err))
	})
}

func TestCommentService_List(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	author := f.seedUser(t, "listauthor")
	activity := f.seedActivityAt(t, author.ID, time.Now())

	for _, text := range []string{"first", "second", "third"} {
		_, err := f.comments.Create(ctx, CreateCommentInput{
			UserID:     author.ID,
			ActivityID: activity.ID,
			Content:    text,
		})
		require.NoError(t, err)
	}

	comments, total, err := f.comments.List(ctx, activity.ID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, comments, 3)
	assert.Equal(t, "first", comments[0].Content)

	_, _, err = f.comments.List(ctx, 9999, 10, 0)
	assert.Equal(t, "NOT_FOUND", appErrCode(t, err))
}

func TestCommentService_Delete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	author := f.seedUser(t, "delauthor")
	commenter := f.seedUser(t, "delcommenter")
	intruder := f.seedUser(t, "delintruder")
	activity := f.seedActivityAt(t, author.ID, time.Now())

	comment, err := f.comments.Create(ctx, CreateCommentInput{
		UserID:     commenter.ID,
		ActivityID: activity.ID,
		Content:    "delete me",
	})
	require.NoError(t, err)

	t.Run("Non Author Forbidden", func(t *testing.T) {
		err := f.comments.Delete(ctx, intruder.ID, comment.ID)
		assert.Equal(t, "FORBIDDEN", appErrCode(t, err))
	})

	t.Run("Activity Owner Still Forbidden", func(t *testing.T) {
		err := f.comments.Delete(ctx, author.ID, comment.ID)
		assert.Equal(t, "FORBIDDEN", appErrCode(t, err))
	})

	t.Run("Author Deletes", func(t *testing.T) {
		require.NoError(t, f.comments.Delete(ctx, commenter.ID, comment.ID))

		_, total, err := f.comments.List(ctx, activity.ID, 10, 0)
		require.NoError(t, err)
		assert.Zero(t, total)
	})

	t.Run("Delete Again Is Noop", func(t *testing.T) {
		assert.NoError(t, f.comments.Delete(ctx, commenter.ID, comment.ID))
	})

	t.Run("Missing Comment Is Noop", func(t *testing.T) {
		assert.NoError(t, f.comments.Delete(ctx, commenter.ID, 9999))
	})
}

func TestCommentService_ReportIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	author := f.seedUser(t, "repauthor")
	reporter := f.seedUser(t, "repreporter")
	activity := f.seedActivityAt(t, author.ID, time.Now())

	comment, err := f.comments.Create(ctx, CreateCommentInput{
		UserID:     author.ID,
		ActivityID: activity.ID,
		Content:    "report me",
	})
	require.NoError(t, err)

	require.NoError(t, f.comments.Report(ctx, reporter.ID, comment.ID, models.ReportSpam, "link farm"))
	require.NoError(t, f.comments.Report(ctx, reporter.ID, comment.ID, models.ReportOffensive, ""))

	var count int64
	require.NoError(t, f.db.Model(&models.CommentReport{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	t.Run("Missing Comment", func(t *testing.T) {
		err := f.comments.Report(ctx, reporter.ID, 9999, models.ReportSpam, "")
		assert.Equal(t, "NOT_FOUND", appErrCode(t, err))
	})

	t.Run("Unknown Reason", func(t *testing.T) {
		err := f.comments.Report(ctx, reporter.ID, comment.ID, "rude", "")
		assert.Equal(t, "VALIDATION_ERROR", appErrCode(t, err))
	})

	t.Run("Empty Reason", func(t *testing.T) {
		err := f.comments.Report(ctx, reporter.ID, comment.ID, "", "")
		assert.Equal(t, "VALIDATION_ERROR", appErrCode(t, err))
	})

	t.Run("Oversized Notes", func(t *testing.T) {
		err := f.comments.Report(ctx, reporter.ID, comment.ID, models.ReportOther, strings.Repeat("n", 501))
		assert.Equal(t, "VALIDATION_ERROR", appErrCode(t, err))
	})
}
