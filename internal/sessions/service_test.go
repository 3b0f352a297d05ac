package sessions

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pathwise/pathwise/internal/models"
)

func TestService_CreateValidateDestroy(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	view := models.SessionView{FullName: "Ada Lovelace", Email: "ada@x.test", Skills: []string{}}
	token, err := svc.Create(ctx, view, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	sess, err := svc.Validate(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, sess)
	require.Equal(t, "ada@x.test", sess.View.Email)

	require.NoError(t, svc.Destroy(ctx, token))
	sess, err = svc.Validate(ctx, token)
	require.NoError(t, err)
	require.Nil(t, sess)

	// destroy of an absent token is not an error
	require.NoError(t, svc.Destroy(ctx, "gone"))
}

func TestService_ExpiredSessionIsMissing(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	token, err := svc.Create(ctx, models.SessionView{Email: "ada@x.test"}, -time.Second)
	require.NoError(t, err)

	sess, err := svc.Validate(ctx, token)
	require.NoError(t, err)
	require.Nil(t, sess)
}

func TestService_RefreshReplacesView(t *testing.T) {
	svc := NewService(NewMemoryRepository())
	ctx := context.Background()

	token, err := svc.Create(ctx, models.SessionView{FullName: "Ada Lovelace", Email: "ada@x.test"}, time.Minute)
	require.NoError(t, err)

	updated := models.SessionView{FullName: "Ada King", Email: "ada@x.test"}
	require.NoError(t, svc.Refresh(ctx, token, updated))

	sess, err := svc.Validate(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, sess)
	require.Equal(t, "Ada King", sess.View.FullName)

	// refreshing an unknown token is a quiet no-op
	require.NoError(t, svc.Refresh(ctx, "gone", updated))
}
