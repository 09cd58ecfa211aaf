package services

import (
	"context"
	"testing"

	"github.com/forgeline/leaddesk/internal/models"
	"github.com/forgeline/leaddesk/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplateService_ListSeeds(t *testing.T) {
	svc := NewTemplateService(testutil.NewDB(t))
	ctx := context.Background()

	_, err := svc.Find(ctx, models.FormTypeQuote, models.TemplateAdmin)
	assert.ErrorIs(t, err, ErrNotFound)

	rows, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 6)

	// second call does not duplicate
	added, err := svc.Seed(ctx)
	require.NoError(t, err)
	assert.Zero(t, added)

	rows, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, rows, 6)

	tpl, err := svc.Find(ctx, models.FormTypeQuote, models.TemplateAdmin)
	require.NoError(t, err)
	assert.Contains(t, tpl.Subject, "{{name}}")
}

func TestTemplateService_SeedSkipsNonEmpty(t *testing.T) {
	svc := NewTemplateService(testutil.NewDB(t))
	ctx := context.Background()

	_, err := svc.Upsert(ctx, &models.EmailTemplate{FormType: "contact", TemplateType: "admin", Subject: "Custom", Body: "<p>x</p>"})
	require.NoError(t, err)

	rows, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Custom", rows[0].Subject)
}

func TestTemplateService_Upsert(t *testing.T) {
	svc := NewTemplateService(testutil.NewDB(t))
	ctx := context.Background()

	_, err := svc.Seed(ctx)
	require.NoError(t, err)
	original, err := svc.Find(ctx, models.FormTypeContact, models.TemplateCustomer)
	require.NoError(t, err)

	t.Run("by key", func(t *testing.T) {
		got, err := svc.Upsert(ctx, &models.EmailTemplate{
			FormType:     models.FormTypeContact,
			TemplateType: models.TemplateCustomer,
			Subject:      "Thanks {{name}}",
			Body:         "<p>We got it</p>",
		})
		require.NoError(t, err)
		assert.Equal(t, original.ID, got.ID)
		assert.Equal(t, "Thanks {{name}}", got.Subject)
	})

	t.Run("by id", func(t *testing.T) {
		got, err := svc.Upsert(ctx, &models.EmailTemplate{ID: original.ID, Subject: "By id", Body: "<p>b</p>"})
		require.NoError(t, err)
		assert.Equal(t, original.ID, got.ID)
		assert.Equal(t, models.FormTypeContact, got.FormType)
		assert.Equal(t, "By id", got.Subject)
	})

	t.Run("new kind", func(t *testing.T) {
		got, err := svc.Upsert(ctx, &models.EmailTemplate{FormType: "newsletter", TemplateType: "admin", Subject: "s", Body: "b"})
		require.NoError(t, err)
		assert.NotZero(t, got.ID)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.Upsert(ctx, &models.EmailTemplate{ID: 9999, Subject: "s", Body: "b"})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := svc.Upsert(ctx, &models.EmailTemplate{FormType: "contact", TemplateType: "partner", Subject: "s", Body: "b"})
		assert.ErrorIs(t, err, ErrInvalid)

		_, err = svc.Upsert(ctx, &models.EmailTemplate{FormType: "contact", TemplateType: "admin", Subject: " "})
		assert.ErrorIs(t, err, ErrInvalid)

		_, err = svc.Upsert(ctx, &models.EmailTemplate{TemplateType: "admin", Subject: "s", Body: "b"})
		assert.ErrorIs(t, err, ErrInvalid)
	})
}
