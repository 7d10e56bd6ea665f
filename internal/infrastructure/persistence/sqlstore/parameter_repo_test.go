package sqlstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/baiana/danceclub/internal/domain/dancestyle"
	"github.com/baiana/danceclub/internal/domain/parameter"
	"github.com/baiana/danceclub/internal/domain/shared"
)

func TestParameterRepository_SaveAndGet(t *testing.T) {
	conn := newTestConnection(t)
	repo := NewParameterRepository(conn)
	ctx := context.Background()

	lvl := mustLevel(t, conn, "Basico")
	zouk := &dancestyle.Style{Name: "Zouk"}
	require.NoError(t, NewDanceStyleRepository(conn).Save(ctx, zouk))

	p, err := parameter.NewParameter(parameter.NewParameterParams{
		Name:           "Postura",
		ConductionType: shared.ConductionBoth,
		StyleID:        zouk.ID,
		LevelID:        lvl.ID,
	})
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Zouk", got.StyleName)
	assert.Equal(t, "Basico", got.LevelName)

	got.StyleID = 0
	require.NoError(t, repo.Save(ctx, got))
	got, err = repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, got.HasStyle())
	assert.Empty(t, got.StyleName)

	err = repo.Save(ctx, &parameter.Parameter{Name: "postura", ConductionType: shared.ConductionLead, LevelID: lvl.ID})
	assert.ErrorIs(t, err, shared.ErrAlreadyExists)

	err = repo.Save(ctx, &parameter.Parameter{Name: "Giro", ConductionType: shared.ConductionLead, LevelID: 99})
	assert.ErrorIs(t, err, shared.ErrInvalidReference)
}

func TestParameterRepository_StyleLinks(t *testing.T) {
	conn := newTestConnection(t)
	repo := NewParameterRepository(conn)
	styles := NewDanceStyleRepository(conn)
	ctx := context.Background()

	lvl := mustLevel(t, conn, "Basico")
	zouk := &dancestyle.Style{Name: "Zouk"}
	forro := &dancestyle.Style{Name: "Forro"}
	require.NoError(t, styles.Save(ctx, zouk))
	require.NoError(t, styles.Save(ctx, forro))

	p := &parameter.Parameter{Name: "Musicalidade", ConductionType: shared.ConductionBoth, LevelID: lvl.ID}
	require.NoError(t, repo.Save(ctx, p))

	linked, err := repo.LinkStyle(ctx, p.ID, zouk.ID)
	require.NoError(t, err)
	assert.True(t, linked)

	linked, err = repo.LinkStyle(ctx, p.ID, zouk.ID)
	require.NoError(t, err)
	assert.False(t, linked, "second link is a no-op")

	_, err = repo.LinkStyle(ctx, p.ID, forro.ID)
	require.NoError(t, err)

	_, err = repo.LinkStyle(ctx, p.ID, 999)
	assert.ErrorIs(t, err, shared.ErrInvalidReference)

	linkedStyles, err := repo.StylesOf(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, linkedStyles, 2)
	assert.Equal(t, "Forro", linkedStyles[0].Name)

	params, err := repo.ParametersOf(ctx, zouk.ID)
	require.NoError(t, err)
	require.Len(t, params, 1)
	assert.Equal(t, p.ID, params[0].ID)

	require.NoError(t, repo.UnlinkStyle(ctx, p.ID, zouk.ID))
	assert.ErrorIs(t, repo.UnlinkStyle(ctx, p.ID, zouk.ID), shared.ErrNotFound)

	// Deleting a style drops its links.
	require.NoError(t, styles.Delete(ctx, forro.ID))
	linkedStyles, err = repo.StylesOf(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, linkedStyles)
}

func TestParameterRepository_MainStyleBlocksDelete(t *testing.T) {
	conn := newTestConnection(t)
	ctx := context.Background()
	styles := NewDanceStyleRepository(conn)

	lvl := mustLevel(t, conn, "Basico")
	zouk := &dancestyle.Style{Name: "Zouk"}
	require.NoError(t, styles.Save(ctx, zouk))
	require.NoError(t, NewParameterRepository(conn).Save(ctx, &parameter.Parameter{
		Name:           "Conexao",
		ConductionType: shared.ConductionLead,
		StyleID:        zouk.ID,
		LevelID:        lvl.ID,
	}))

	assert.ErrorIs(t, styles.Delete(ctx, zouk.ID), shared.ErrInvalidReference)
}
