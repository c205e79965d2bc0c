package auth

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/isaacjstriker/hangman/internal/database"
)

func newTestDB(t *testing.T) *database.DB {
	t.Helper()
	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.CreateTables())
	t.Cleanup(func() { db.Close() })
	return db
}

func TestSessionManager(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")

	sm := NewSessionManager(path)
	assert.False(t, sm.IsLoggedIn())
	assert.Equal(t, "guest", sm.PlayerName("guest"))
	assert.Equal(t, "Not logged in", sm.GetUserInfo())

	require.NoError(t, sm.SaveSession(3, "ada"))
	assert.Equal(t, "ada", sm.PlayerName("guest"))

	// a later run picks the session up from disk
	reloaded := NewSessionManager(path)
	require.True(t, reloaded.IsLoggedIn())
	assert.Equal(t, int64(3), reloaded.GetCurrentSession().PlayerID)
	assert.Equal(t, "Logged in as: ada", reloaded.GetUserInfo())

	require.NoError(t, reloaded.ClearSession())
	assert.False(t, reloaded.IsLoggedIn())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// clearing twice is fine
	assert.NoError(t, reloaded.ClearSession())
}

func TestSessionManager_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	sm := NewSessionManager(path)

	assert.False(t, sm.IsLoggedIn())
	assert.Error(t, sm.LoadSession())
}

func TestCLIAuth_RegisterLoginLogout(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")
	var out bytes.Buffer

	// Given: a new account registered from the console
	session := NewSessionManager(path)
	reg := NewCLIAuth(db, session, strings.NewReader("ada\nhunter22\nhunter22\n"), &out)
	require.NoError(t, reg.Register(ctx))
	assert.Equal(t, "ada", session.PlayerName(""))
	assert.Contains(t, out.String(), "Welcome, ada!")

	reg.WhoAmI()
	assert.Contains(t, out.String(), "Logged in as: ada\n")

	require.NoError(t, reg.Logout())
	assert.False(t, session.IsLoggedIn())
	assert.Contains(t, out.String(), "Goodbye, ada! You have been logged out.")

	out.Reset()
	reg.WhoAmI()
	require.NoError(t, reg.Logout())
	assert.Equal(t, "Not logged in\nYou were not logged in.\n", out.String())

	// When: they log back in
	login := NewCLIAuth(db, NewSessionManager(path), strings.NewReader("ada\nhunter22\n"), &out)
	require.NoError(t, login.Login(ctx))

	// Then: the session names them
	assert.Equal(t, "ada", NewSessionManager(path).PlayerName("guest"))
}

func TestCLIAuth_Failures(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	_, err = db.CreatePlayer(ctx, "ada", hash)
	require.NoError(t, err)

	newAuth := func(input string) *CLIAuth {
		path := filepath.Join(t.TempDir(), "session.json")
		return NewCLIAuth(db, NewSessionManager(path), strings.NewReader(input), &bytes.Buffer{})
	}

	t.Run("wrong password", func(t *testing.T) {
		session := NewSessionManager(filepath.Join(t.TempDir(), "session.json"))
		a := NewCLIAuth(db, session, strings.NewReader("ada\nhunter23\n"), &bytes.Buffer{})
		assert.ErrorIs(t, a.Login(ctx), ErrBadCredentials)
		assert.False(t, session.IsLoggedIn())
	})

	t.Run("unknown user", func(t *testing.T) {
		assert.ErrorIs(t, newAuth("bob\nhunter22\n").Login(ctx), ErrBadCredentials)
	})

	t.Run("confirmation differs", func(t *testing.T) {
		assert.ErrorIs(t, newAuth("bob\nhunter22\nhunter33\n").Register(ctx), ErrPasswordMismatch)
	})

	t.Run("taken username", func(t *testing.T) {
		assert.ErrorIs(t, newAuth("ada\nhunter22\nhunter22\n").Register(ctx), database.ErrDuplicatePlayer)
	})

	t.Run("invalid username", func(t *testing.T) {
		assert.Error(t, newAuth("a!\n").Register(ctx))
	})

	t.Run("no input", func(t *testing.T) {
		assert.Error(t, newAuth("").Login(ctx))
	})
}
