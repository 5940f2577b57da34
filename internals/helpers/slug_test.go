package helper

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestSlugify(t *testing.T) {
	assert.Equal(t, "sd-harapan-bangsa", Slugify("SD Harapan Bangsa", 0))
	assert.Equal(t, "cafe-cendekia", Slugify("Café Cendékia", 0))
	assert.Equal(t, "a-b-c", Slugify("  a___b--c  ", 0))
	assert.Equal(t, "item", Slugify("!!!", 0))
	assert.Equal(t, "item", Slugify("", 0))

	long := Slugify("sekolah menengah atas negeri satu jakarta pusat", 10)
	assert.LessOrEqual(t, len(long), 10)
	assert.NotEqual(t, "-", long[len(long)-1:])
}

func TestEnsureUniqueSlugCI_FirstFree(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT count(*) FROM "companies" WHERE LOWER(company_slug) = $1`,
	)).WithArgs("yayasan-cendekia").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	slug, err := EnsureUniqueSlugCI(context.Background(), gdb, "companies", "company_slug", "yayasan-cendekia", nil, 100)
	require.NoError(t, err)
	assert.Equal(t, "yayasan-cendekia", slug)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureUniqueSlugCI_SuffixOnCollision(t *testing.T) {
	gdb, mock := newMockDB(t)

	rows := func(n int64) *sqlmock.Rows { return sqlmock.NewRows([]string{"count"}).AddRow(n) }

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT count(*) FROM "schools" WHERE LOWER(school_slug) = $1`,
	)).WithArgs("sd-harapan").WillReturnRows(rows(1))
	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT count(*) FROM "schools" WHERE LOWER(school_slug) = $1`,
	)).WithArgs("sd-harapan-2").WillReturnRows(rows(1))
	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT count(*) FROM "schools" WHERE LOWER(school_slug) = $1`,
	)).WithArgs("sd-harapan-3").WillReturnRows(rows(0))

	slug, err := EnsureUniqueSlugCI(context.Background(), gdb, "schools", "school_slug", "sd-harapan", nil, 100)
	require.NoError(t, err)
	assert.Equal(t, "sd-harapan-3", slug)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEnsureUniqueSlugCI_ScopeApplied(t *testing.T) {
	gdb, mock := newMockDB(t)

	mock.ExpectQuery(regexp.QuoteMeta(
		`SELECT count(*) FROM "schools" WHERE school_company_id = $1 AND LOWER(school_slug) = $2`,
	)).WithArgs("cid-1", "sd-harapan").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	scope := func(q *gorm.DB) *gorm.DB { return q.Where("school_company_id = ?", "cid-1") }
	slug, err := EnsureUniqueSlugCI(context.Background(), gdb, "schools", "school_slug", "sd-harapan", scope, 100)
	require.NoError(t, err)
	assert.Equal(t, "sd-harapan", slug)
	assert.NoError(t, mock.ExpectationsWereMet())
}
