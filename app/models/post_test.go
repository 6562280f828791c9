package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostPublishStampsFirstTransitionOnly(t *testing.T) {
	p := &Post{Title: "Release notes", Slug: "release-notes", Status: POST_STATUS_DRAFT}

	first := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	p.Publish(first)

	require.True(t, p.IsPublished())
	require.NotNil(t, p.PublishedAt)
	assert.Equal(t, first, *p.PublishedAt)

	// Archiving and republishing keeps the original date
	p.Archive()
	assert.Equal(t, POST_STATUS_ARCHIVED, p.Status)
	assert.False(t, p.IsPublished())

	later := first.Add(48 * time.Hour)
	p.Publish(later)

	assert.True(t, p.IsPublished())
	assert.Equal(t, first, *p.PublishedAt)
}

func TestPostValidate(t *testing.T) {
	valid := &Post{Title: "A valid title", Slug: "a-valid-title", Status: POST_STATUS_DRAFT}
	assert.NoError(t, valid.Validate())

	tooShort := &Post{Title: "ab", Slug: "ab-slug", Status: POST_STATUS_DRAFT}
	assert.Error(t, tooShort.Validate())

	badStatus := &Post{Title: "A valid title", Slug: "a-valid-title", Status: "pending"}
	assert.Error(t, badStatus.Validate())
}

func TestUserValidateAndIsAdmin(t *testing.T) {
	admin := &User{Email: "admin@example.com", Name: "Admin", Role: ROLE_ADMIN}
	assert.NoError(t, admin.Validate())
	assert.True(t, admin.IsAdmin())

	viewer := &User{Email: "viewer@example.com", Role: ROLE_VIEWER}
	assert.NoError(t, viewer.Validate())
	assert.False(t, viewer.IsAdmin())

	badEmail := &User{Email: "not-an-email", Role: ROLE_VIEWER}
	assert.Error(t, badEmail.Validate())

	badRole := &User{Email: "x@example.com", Role: "superuser"}
	assert.Error(t, badRole.Validate())
}
