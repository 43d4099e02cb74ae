package repositories

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"gigmarket/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type CategoryRepoTestSuite struct {
	suite.Suite
	mock    pgxmock.PgxPoolIface
	repo    CategoryRepository
	catalog models.Catalog
	context context.Context
}

func (suite *CategoryRepoTestSuite) SetupTest() {
	mock, err := pgxmock.NewPool()
	require.NoError(suite.T(), err)
	suite.mock = mock
	suite.repo = NewCategoryRepo(mock)
	suite.context = context.Background()
	suite.catalog = models.Catalog{Categories: []models.CategorySeed{
		{Name: "Writing", Subcategories: []string{"Copywriting", "Editing"}},
		{Name: "Design", Subcategories: []string{"Logo Design"}},
	}}
}

func (suite *CategoryRepoTestSuite) TearDownTest() {
	assert.NoError(suite.T(), suite.mock.ExpectationsWereMet())
	suite.mock.Close()
}

func TestCategoryRepoTestSuite(t *testing.T) {
	suite.Run(t, new(CategoryRepoTestSuite))
}

func q(sql string) string {
	return regexp.QuoteMeta(sql)
}

func (suite *CategoryRepoTestSuite) expectCatalogInsert() {
	suite.mock.ExpectExec(q("INSERT INTO categories (id, name) VALUES ($1, $2)")).
		WithArgs(pgxmock.AnyArg(), "Writing").WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectExec(q("INSERT INTO categories (id, name) VALUES ($1, $2)")).
		WithArgs(pgxmock.AnyArg(), "Design").WillReturnResult(pgxmock.NewResult("INSERT", 1))
	for _, name := range []string{"Copywriting", "Editing", "Logo Design"} {
		suite.mock.ExpectExec(q("INSERT INTO subcategories (id, category_id, name) VALUES ($1, $2, $3)")).
			WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), name).WillReturnResult(pgxmock.NewResult("INSERT", 1))
	}
}

func (suite *CategoryRepoTestSuite) expectLock() {
	suite.mock.ExpectExec(q("SELECT pg_advisory_xact_lock($1)")).
		WithArgs(seedLockKey).WillReturnResult(pgxmock.NewResult("SELECT", 1))
}

func (suite *CategoryRepoTestSuite) TestSeedIfEmpty_Empty() {
	suite.mock.ExpectBegin()
	suite.expectLock()
	suite.mock.ExpectQuery(q("SELECT COUNT(*) FROM categories")).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
	suite.expectCatalogInsert()
	suite.mock.ExpectCommit()

	seeded, err := suite.repo.SeedIfEmpty(suite.context, suite.catalog)
	assert.NoError(suite.T(), err)
	assert.True(suite.T(), seeded)
}

func (suite *CategoryRepoTestSuite) TestSeedIfEmpty_AlreadySeeded() {
	suite.mock.ExpectBegin()
	suite.expectLock()
	suite.mock.ExpectQuery(q("SELECT COUNT(*) FROM categories")).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(1))
	suite.mock.ExpectRollback()

	seeded, err := suite.repo.SeedIfEmpty(suite.context, suite.catalog)
	assert.NoError(suite.T(), err)
	assert.False(suite.T(), seeded)
}

func (suite *CategoryRepoTestSuite) TestSeedIfEmpty_InsertFailureRollsBack() {
	boom := errors.New("insert failed")
	suite.mock.ExpectBegin()
	suite.expectLock()
	suite.mock.ExpectQuery(q("SELECT COUNT(*) FROM categories")).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(0))
	suite.mock.ExpectExec(q("INSERT INTO categories (id, name) VALUES ($1, $2)")).
		WithArgs(pgxmock.AnyArg(), "Writing").WillReturnError(boom)
	suite.mock.ExpectRollback()

	seeded, err := suite.repo.SeedIfEmpty(suite.context, suite.catalog)
	assert.ErrorIs(suite.T(), err, boom)
	assert.False(suite.T(), seeded)
}

func (suite *CategoryRepoTestSuite) TestSeedIfEmpty_BeginFails() {
	boom := errors.New("connection refused")
	suite.mock.ExpectBegin().WillReturnError(boom)

	seeded, err := suite.repo.SeedIfEmpty(suite.context, suite.catalog)
	assert.ErrorIs(suite.T(), err, boom)
	assert.False(suite.T(), seeded)
}

func (suite *CategoryRepoTestSuite) TestReseed_Success() {
	suite.mock.ExpectBegin()
	suite.expectLock()
	suite.mock.ExpectExec(q("DELETE FROM subcategories")).WillReturnResult(pgxmock.NewResult("DELETE", 70))
	suite.mock.ExpectExec(q("DELETE FROM categories")).WillReturnResult(pgxmock.NewResult("DELETE", 10))
	suite.expectCatalogInsert()
	suite.mock.ExpectCommit()

	result, err := suite.repo.Reseed(suite.context, suite.catalog)
	assert.NoError(suite.T(), err)
	assert.Equal(suite.T(), models.SeedResult{CategoriesSeeded: 2, SubcategoriesSeeded: 3}, result)
}

func (suite *CategoryRepoTestSuite) TestReseed_DeleteFailureReturnsErrorUnmodified() {
	boom := errors.New("delete failed")
	suite.mock.ExpectBegin()
	suite.expectLock()
	suite.mock.ExpectExec(q("DELETE FROM subcategories")).WillReturnError(boom)
	suite.mock.ExpectRollback()

	result, err := suite.repo.Reseed(suite.context, suite.catalog)
	assert.ErrorIs(suite.T(), err, boom)
	assert.Equal(suite.T(), models.SeedResult{}, result)
}

func (suite *CategoryRepoTestSuite) TestReseed_SubcategoryFailureRollsBack() {
	boom := errors.New("subcategory insert failed")
	suite.mock.ExpectBegin()
	suite.expectLock()
	suite.mock.ExpectExec(q("DELETE FROM subcategories")).WillReturnResult(pgxmock.NewResult("DELETE", 0))
	suite.mock.ExpectExec(q("DELETE FROM categories")).WillReturnResult(pgxmock.NewResult("DELETE", 0))
	suite.mock.ExpectExec(q("INSERT INTO categories (id, name) VALUES ($1, $2)")).
		WithArgs(pgxmock.AnyArg(), "Writing").WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectExec(q("INSERT INTO categories (id, name) VALUES ($1, $2)")).
		WithArgs(pgxmock.AnyArg(), "Design").WillReturnResult(pgxmock.NewResult("INSERT", 1))
	suite.mock.ExpectExec(q("INSERT INTO subcategories (id, category_id, name) VALUES ($1, $2, $3)")).
		WithArgs(pgxmock.AnyArg(), pgxmock.AnyArg(), "Copywriting").WillReturnError(boom)
	suite.mock.ExpectRollback()

	_, err := suite.repo.Reseed(suite.context, suite.catalog)
	assert.ErrorIs(suite.T(), err, boom)
}

func (suite *CategoryRepoTestSuite) TestListWithSubcategories() {
	writing, design := uuid.New(), uuid.New()
	copy1, edit, logo := uuid.New(), uuid.New(), uuid.New()
	now := time.Now()

	suite.mock.ExpectBeginTx(pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	suite.mock.ExpectQuery(q("SELECT id, name, created_at FROM categories ORDER BY seq")).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "created_at"}).
			AddRow(writing, "Writing", now).
			AddRow(design, "Design", now))
	suite.mock.ExpectQuery(q("FROM subcategories WHERE category_id = ANY($1) ORDER BY seq")).
		WithArgs([]uuid.UUID{writing, design}).
		WillReturnRows(pgxmock.NewRows([]string{"id", "category_id", "name"}).
			AddRow(copy1, writing, "Copywriting").
			AddRow(logo, design, "Logo Design").
			AddRow(edit, writing, "Editing"))
	suite.mock.ExpectRollback()

	categories, err := suite.repo.ListWithSubcategories(suite.context)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), categories, 2)
	assert.Equal(suite.T(), "Writing", categories[0].Name)
	require.Len(suite.T(), categories[0].Subcategories, 2)
	assert.Equal(suite.T(), "Copywriting", categories[0].Subcategories[0].Name)
	assert.Equal(suite.T(), "Editing", categories[0].Subcategories[1].Name)
	assert.Equal(suite.T(), writing, categories[0].Subcategories[1].CategoryID)
	require.Len(suite.T(), categories[1].Subcategories, 1)
	assert.Equal(suite.T(), logo, categories[1].Subcategories[0].ID)
}

func (suite *CategoryRepoTestSuite) TestListWithSubcategories_Empty() {
	suite.mock.ExpectBeginTx(pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	suite.mock.ExpectQuery(q("SELECT id, name, created_at FROM categories ORDER BY seq")).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "created_at"}))
	suite.mock.ExpectRollback()

	categories, err := suite.repo.ListWithSubcategories(suite.context)
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), categories)
	assert.Empty(suite.T(), categories)
}

func (suite *CategoryRepoTestSuite) TestListWithSubcategories_CategoryWithoutChildren() {
	music := uuid.New()
	suite.mock.ExpectBeginTx(pgx.TxOptions{IsoLevel: pgx.RepeatableRead, AccessMode: pgx.ReadOnly})
	suite.mock.ExpectQuery(q("SELECT id, name, created_at FROM categories ORDER BY seq")).
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "created_at"}).AddRow(music, "Music", time.Now()))
	suite.mock.ExpectQuery(q("FROM subcategories WHERE category_id = ANY($1) ORDER BY seq")).
		WithArgs([]uuid.UUID{music}).
		WillReturnRows(pgxmock.NewRows([]string{"id", "category_id", "name"}))
	suite.mock.ExpectRollback()

	categories, err := suite.repo.ListWithSubcategories(suite.context)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), categories, 1)
	assert.NotNil(suite.T(), categories[0].Subcategories)
	assert.Empty(suite.T(), categories[0].Subcategories)
}

func (suite *CategoryRepoTestSuite) TestListSubcategories() {
	categoryID := uuid.New()
	suite.mock.ExpectQuery(q("FROM subcategories WHERE category_id = $1 ORDER BY seq")).
		WithArgs(categoryID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "category_id", "name"}).
			AddRow(uuid.New(), categoryID, "SEO").
			AddRow(uuid.New(), categoryID, "PPC Advertising"))

	subs, err := suite.repo.ListSubcategories(suite.context, categoryID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), subs, 2)
	assert.Equal(suite.T(), "SEO", subs[0].Name)
	assert.Equal(suite.T(), "PPC Advertising", subs[1].Name)
}

func (suite *CategoryRepoTestSuite) TestListSubcategories_UnknownCategory() {
	categoryID := uuid.New()
	suite.mock.ExpectQuery(q("FROM subcategories WHERE category_id = $1 ORDER BY seq")).
		WithArgs(categoryID).
		WillReturnRows(pgxmock.NewRows([]string{"id", "category_id", "name"}))

	subs, err := suite.repo.ListSubcategories(suite.context, categoryID)
	assert.NoError(suite.T(), err)
	assert.NotNil(suite.T(), subs)
	assert.Empty(suite.T(), subs)
}

func (suite *CategoryRepoTestSuite) TestGetSubcategory_NotFound() {
	id := uuid.New()
	suite.mock.ExpectQuery(q("FROM subcategories WHERE id = $1")).
		WithArgs(id).WillReturnError(pgx.ErrNoRows)

	sub, err := suite.repo.GetSubcategory(suite.context, id)
	assert.Nil(suite.T(), sub)
	assert.ErrorIs(suite.T(), err, ErrNotFound)
}
