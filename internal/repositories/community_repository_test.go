package repositories

import (
	"testing"
	"time"

	"fitnexus_backend/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var forumListColumns = []string{
	"id", "title", "content", "author_name", "author_email", "author_role", "created_at", "total_count",
}

func forumListRow(rows *sqlmock.Rows, id int64, title string, total int) *sqlmock.Rows {
	return rows.AddRow(id, title, "body", nil, nil, nil, time.Now(), total)
}

func TestGetPostsOffsetMathAndWindowTotal(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewForumRepository(db)

	rows := sqlmock.NewRows(forumListColumns)
	forumListRow(rows, 10, "Stretching tips", 14)
	forumListRow(rows, 9, "Rest days", 14)

	// page 2 with limit 6 starts at row 6.
	mock.ExpectQuery(`COUNT\(\*\) OVER\(\) AS total_count FROM forum_posts`).
		WithArgs(6, 6).
		WillReturnRows(rows)

	posts, total, err := repo.GetPosts(models.ForumFilters{Page: 2, Limit: 6})
	require.NoError(t, err)
	assert.Len(t, posts, 2)
	assert.Equal(t, 14, total)
	assert.Equal(t, "Stretching tips", posts[0].Title)
}

func TestGetPostsPastEndPageFallsBackToCount(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewForumRepository(db)

	mock.ExpectQuery(`FROM forum_posts`).
		WithArgs(6, 60).
		WillReturnRows(sqlmock.NewRows(forumListColumns))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM forum_posts`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(14))

	posts, total, err := repo.GetPosts(models.ForumFilters{Page: 11, Limit: 6})
	require.NoError(t, err)
	assert.Empty(t, posts)
	assert.Equal(t, 14, total)
}

func TestGetRecentPostsLimit(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewForumRepository(db)

	rows := sqlmock.NewRows([]string{"id", "title", "content", "author_name", "author_email", "author_role", "created_at"}).
		AddRow(3, "New class ideas", "body", "Jordan", nil, nil, time.Now())

	mock.ExpectQuery(`FROM forum_posts ORDER BY created_at DESC LIMIT \$1`).
		WithArgs(6).
		WillReturnRows(rows)

	posts, err := repo.GetRecentPosts(6)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	require.NotNil(t, posts[0].AuthorName)
	assert.Equal(t, "Jordan", *posts[0].AuthorName)
}
