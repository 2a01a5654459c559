package note

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sagacious/sagacious/pkg/model"
)

func newTestService() *Service {
	repo := model.NewRepository(model.NewMemoryStore(), model.NewBinding("testdb", ""))
	return NewService(repo)
}

func TestServiceCreateGet(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	n, err := svc.Create(ctx, "a.txt", "hello")
	require.NoError(t, err)
	require.False(t, n.OID.IsZero())
	require.False(t, n.CreatedAt.IsZero())

	got, err := svc.Get(ctx, n.OID.Hex())
	require.NoError(t, err)
	require.Equal(t, "a.txt", got.Name)
	require.Equal(t, "hello", got.Content)
}

func TestServiceCreate_DefaultsName(t *testing.T) {
	svc := newTestService()
	n, err := svc.Create(context.Background(), "", "body")
	require.NoError(t, err)
	require.Equal(t, "untitled", n.Name)
}

func TestServiceUpdate(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	n, err := svc.Create(ctx, "a.txt", "old")
	require.NoError(t, err)

	name := "b.txt"
	upd, err := svc.Update(ctx, n.OID.Hex(), "new", &name)
	require.NoError(t, err)
	require.Equal(t, "b.txt", upd.Name)
	require.Equal(t, "new", upd.Content)
	require.True(t, upd.UpdatedAt.After(upd.CreatedAt) || upd.UpdatedAt.Equal(upd.CreatedAt))

	_, err = svc.Update(ctx, primitive.NewObjectID().Hex(), "x", nil)
	require.ErrorIs(t, err, model.ErrNotFound)
}

func TestServiceDelete(t *testing.T) {
	svc := newTestService()
	ctx := context.Background()

	n, err := svc.Create(ctx, "a.txt", "x")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, n.OID.Hex()))
	_, err = svc.Get(ctx, n.OID.Hex())
	require.ErrorIs(t, err, model.ErrNotFound)

	require.ErrorIs(t, svc.Delete(ctx, n.OID.Hex()), model.ErrNotFound)
	require.ErrorIs(t, svc.Delete(ctx, "bogus"), model.ErrInvalidID)
}
