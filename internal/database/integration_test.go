//go:build integration

package database_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/forgeline/leaddesk/internal/database"
	"github.com/forgeline/leaddesk/internal/mailer"
	"github.com/forgeline/leaddesk/internal/models"
	"github.com/forgeline/leaddesk/internal/services"
	"github.com/forgeline/leaddesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWithMySQL runs the persistence and mail gateways against real services
func TestWithMySQL(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()

	tc, err := testutil.StartContainers(ctx, true)
	if err != nil {
		t.Fatalf("Failed to start containers: %v", err)
	}
	t.Cleanup(func() { tc.Terminate(context.Background()) })

	cfg := tc.Config()

	t.Run("ClassifyFailures", func(t *testing.T) {
		missing, err := database.Connect(cfg)
		require.NoError(t, err)
		defer database.Close(missing)
		assert.Equal(t, database.ReasonDatabaseMissing, database.ReasonOf(missing.Exec("SELECT 1").Error))

		denied := *cfg
		denied.DBPassword = "wrong"
		db, err := database.Connect(&denied)
		require.NoError(t, err)
		defer database.Close(db)
		assert.Equal(t, database.ReasonAccessDenied, database.ReasonOf(db.Exec("SELECT 1").Error))

		refused := *cfg
		refused.DBHost, refused.DBPort = "127.0.0.1", "1"
		db, err = database.Connect(&refused)
		require.NoError(t, err)
		defer database.Close(db)
		assert.Equal(t, database.ReasonConnectionRefused, database.ReasonOf(db.Exec("SELECT 1").Error))
	})

	db, err := database.Connect(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	store := services.NewSubmissionStore(db, cfg)

	t.Run("LazyBootstrap", func(t *testing.T) {
		assert.False(t, store.Ready())

		sub := &models.Submission{FormType: models.FormTypeQuote, Name: "Ada", Email: "ada@example.com", Message: "100 units"}
		require.NoError(t, store.Create(ctx, sub))
		assert.NotZero(t, sub.ID)
		assert.True(t, store.Ready())

		// idempotent
		require.NoError(t, database.Bootstrap(ctx, cfg, db))
	})

	t.Run("AdminQueries", func(t *testing.T) {
		for _, kind := range []string{models.FormTypeContact, models.FormTypeContact, models.FormTypeCertification} {
			require.NoError(t, store.Create(ctx, &models.Submission{FormType: kind, Name: "Grace", Email: "grace@example.com"}))
		}

		page, err := store.List(ctx, services.SubmissionQuery{Limit: 2, SortBy: "id", SortOrder: "asc"})
		require.NoError(t, err)
		assert.Equal(t, int64(4), page.Pagination.Total)
		assert.Equal(t, 2, page.Pagination.TotalPages)
		require.Len(t, page.Data, 2)
		assert.Equal(t, "Ada", page.Data[0].Name)

		page, err = store.List(ctx, services.SubmissionQuery{FormType: models.FormTypeContact, Search: "grace"})
		require.NoError(t, err)
		assert.Equal(t, int64(2), page.Pagination.Total)

		stats, err := store.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(4), stats.Total)
		assert.Equal(t, int64(4), stats.Today)
		assert.Equal(t, int64(2), stats.ByFormType[models.FormTypeContact])

		err = store.Delete(ctx, 999999)
		assert.True(t, errors.Is(err, services.ErrNotFound))
	})

	t.Run("Templates", func(t *testing.T) {
		templates := services.NewTemplateService(db)
		list, err := templates.List(ctx)
		require.NoError(t, err)
		assert.Len(t, list, 6)

		tpl, err := templates.Find(ctx, models.FormTypeQuote, "admin")
		require.NoError(t, err)
		assert.NotEmpty(t, tpl.Subject)
	})

	t.Run("Mailer", func(t *testing.T) {
		m := mailer.New(cfg.SMTP)
		require.True(t, m.Configured())

		sendCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
		defer cancel()

		assert.True(t, m.Verify(sendCtx))
		res := m.Send(sendCtx, mailer.Message{
			To:      "customer@example.com",
			Subject: "Thanks",
			HTML:    "<p>We received your request.</p>",
		})
		assert.True(t, res.Success, res.Error)
		assert.NotEmpty(t, res.MessageID)
	})
}
