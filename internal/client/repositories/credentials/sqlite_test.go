package credentials

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/visahq/visadesk/internal/client/models"
	"github.com/visahq/visadesk/internal/common"
	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE credentials (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func testUser() *models.User {
	return &models.User{
		ID:       "u-1",
		Username: "alice",
		Email:    "alice@example.com",
		Role:     models.RoleApplicant,
	}
}

func TestSave_WritesBothKeys(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "tok-abc", testUser()))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM credentials`).Scan(&n))
	require.Equal(t, 2, n, "token and user must both be written")

	token, user, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok-abc", token)
	require.Equal(t, testUser(), user)
}

func TestLoad_EmptyStore(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))

	_, _, err := repo.Load(context.Background())
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestLoad_PartialPairReadsAsNotFound(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)

	// a state the client never produces itself, but must survive
	_, err := db.Exec(`INSERT INTO credentials(key,value) VALUES(?,?)`,
		common.TokenStorageKey, []byte("orphan"))
	require.NoError(t, err)

	_, _, err = repo.Load(context.Background())
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestToken_AbsentIsEmptyNotError(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))

	token, err := repo.Token(context.Background())
	require.NoError(t, err)
	require.Empty(t, token)
}

func TestClear_RemovesBothAndIsIdempotent(t *testing.T) {
	db := setupDB(t)
	repo := NewSQLiteRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "tok", testUser()))
	require.NoError(t, repo.Clear(ctx))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM credentials`).Scan(&n))
	require.Equal(t, 0, n)

	// clearing an already-empty store must not fail
	require.NoError(t, repo.Clear(ctx))

	_, _, err := repo.Load(ctx)
	require.True(t, errors.Is(err, common.ErrorNotFound))
}

func TestSave_OverwritesPreviousSession(t *testing.T) {
	repo := NewSQLiteRepository(setupDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, "tok-1", testUser()))

	other := testUser()
	other.ID = "u-2"
	other.Email = "bob@example.com"
	other.Role = models.RoleOfficer
	require.NoError(t, repo.Save(ctx, "tok-2", other))

	token, user, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok-2", token)
	require.Equal(t, other, user)
}

func TestInitDatabase_AppliesMigrations(t *testing.T) {
	db, err := InitDatabase(context.Background(), "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	repo := NewSQLiteRepository(db)
	require.NoError(t, repo.Save(context.Background(), "tok", testUser()))
}
