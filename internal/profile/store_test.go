package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pathwise/pathwise/internal/kvstore"
	"github.com/pathwise/pathwise/internal/models"
)

func TestKey_Normalization(t *testing.T) {
	require.Equal(t, "profile:adalovelace", Key("Ada Lovelace"))
	require.Equal(t, "profile:adalovelace", Key("  ada-love.lace! "))
	require.Equal(t, "profile:user42", Key("User 42"))
	require.Equal(t, "profile:", Key("!!!"))
}

func profileOf(name, email string) models.UserProfile {
	return models.UserProfile{FullName: name, Email: email, Password: "pw"}.Normalize()
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := NewStore(kvstore.NewMemoryStore())
	ctx := context.Background()

	got, err := s.Load(ctx, "Ada Lovelace")
	require.NoError(t, err)
	require.Nil(t, got)

	ok, err := s.Save(ctx, "Ada Lovelace", profileOf("Ada Lovelace", "ada@x.test"), "")
	require.NoError(t, err)
	require.True(t, ok)

	got, err = s.Load(ctx, "Ada Lovelace")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "ada@x.test", got.Email)
	require.NotNil(t, got.Interests)
	require.Empty(t, got.Interests)
}

func TestSave_RenameMovesKey(t *testing.T) {
	s := NewStore(kvstore.NewMemoryStore())
	ctx := context.Background()

	_, err := s.Save(ctx, "Ada Lovelace", profileOf("Ada Lovelace", "ada@x.test"), "")
	require.NoError(t, err)

	renamed := profileOf("Ada King", "ada@x.test")
	ok, err := s.Save(ctx, "Ada King", renamed, "Ada Lovelace")
	require.NoError(t, err)
	require.True(t, ok)

	old, err := s.Load(ctx, "Ada Lovelace")
	require.NoError(t, err)
	require.Nil(t, old)

	got, err := s.Load(ctx, "Ada King")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "Ada King", got.FullName)
}

func TestSave_SameKeyRenameIsNoMove(t *testing.T) {
	s := NewStore(kvstore.NewMemoryStore())
	ctx := context.Background()

	// "Ada Lovelace" and "ada lovelace" derive the same key
	_, err := s.Save(ctx, "Ada Lovelace", profileOf("Ada Lovelace", "ada@x.test"), "")
	require.NoError(t, err)
	ok, err := s.Save(ctx, "ada lovelace", profileOf("ada lovelace", "ada@x.test"), "Ada Lovelace")
	require.NoError(t, err)
	require.True(t, ok)

	got, err := s.Load(ctx, "Ada Lovelace")
	require.NoError(t, err)
	require.NotNil(t, got)
}

func TestSave_RejectsIdentityCollision(t *testing.T) {
	s := NewStore(kvstore.NewMemoryStore())
	ctx := context.Background()

	_, err := s.Save(ctx, "J. Smith", profileOf("J. Smith", "first@x.test"), "")
	require.NoError(t, err)

	// distinct account normalizing to the same key
	ok, err := s.Save(ctx, "JSmith", profileOf("JSmith", "second@x.test"), "")
	require.False(t, ok)
	require.ErrorIs(t, err, models.ErrIdentityCollision)

	// the original record is untouched
	got, err := s.Load(ctx, "J. Smith")
	require.NoError(t, err)
	require.Equal(t, "first@x.test", got.Email)
}

func TestSave_StorageFaultReturnsFalse(t *testing.T) {
	kv := kvstore.NewMemoryStore()
	kv.FailSet = errors.New("quota exceeded")
	s := NewStore(kv)

	ok, err := s.Save(context.Background(), "Ada", profileOf("Ada", "ada@x.test"), "")
	require.False(t, ok)
	require.ErrorIs(t, err, models.ErrStorage)
}
