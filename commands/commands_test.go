package commands

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/Govind-619/ebook-store/config"
	"github.com/Govind-619/ebook-store/models"
	"github.com/Govind-619/ebook-store/utils"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sqliteEnv points the command line at a fresh SQLite file
func sqliteEnv(t *testing.T) string {
	t.Helper()
	t.Cleanup(func() { utils.Logger = zerolog.Nop() })

	path := filepath.Join(t.TempDir(), "store.db")
	t.Setenv("ENV", "test")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", path)
	t.Setenv("JWT_SECRET", "command-test-secret")
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("LOG_LEVEL", "disabled")
	t.Setenv("SMTP_HOST", "")
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestMigrateCommand(t *testing.T) {
	path := sqliteEnv(t)

	_, err := execute(t, "migrate")
	require.NoError(t, err)

	db, err := config.OpenDB(&config.Config{DBDriver: "sqlite", SQLitePath: path})
	require.NoError(t, err)
	defer config.CloseDB(db)
	assert.True(t, db.Migrator().HasTable(&models.Book{}))
}

func TestCreateAdminCommand(t *testing.T) {
	path := sqliteEnv(t)

	out, err := execute(t, "create-admin", "--email", "Root@Example.com", "--password", "admin123")
	require.NoError(t, err)
	assert.Contains(t, out, "Created admin root@example.com")

	db, err := config.OpenDB(&config.Config{DBDriver: "sqlite", SQLitePath: path})
	require.NoError(t, err)
	defer config.CloseDB(db)

	var admin models.User
	require.NoError(t, db.Where("email = ?", "root@example.com").First(&admin).Error)
	assert.Equal(t, models.RoleAdmin, admin.Role)
	assert.Equal(t, "admin", admin.Username)

	_, err = execute(t, "create-admin", "--email", "root@example.com", "--password", "admin123")
	assert.True(t, utils.IsKind(err, utils.KindDuplicateEmail))

	_, err = execute(t, "create-admin", "--email", "other@example.com")
	assert.Error(t, err, "password flag is required")
}
