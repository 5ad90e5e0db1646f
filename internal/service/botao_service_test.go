package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"go-backoffice/internal/repository"
	"go-backoffice/pkg/keycodec"
)

func newBotaoService(t *testing.T) BotaoService {
	t.Helper()
	db := openServiceDB(t)
	return NewBotaoService(repository.NewBotaoRepo(db), nil, zap.NewNop())
}

func TestBotaoCreateEncodesCompositeKey(t *testing.T) {
	svc := newBotaoService(t)
	ctx := context.Background()

	item, err := svc.Create(ctx, testTenant, &BotaoRequest{
		CdSistema: "SEG", CdFuncao: "USUARIOS", NmBotao: "btnExcluir",
		DcBotao: "Excluir usuario", CdAcao: "E",
	})
	require.NoError(t, err)

	parts, err := keycodec.Decode(item.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"SEG", "USUARIOS", "btnExcluir"}, parts)

	got, err := svc.Get(ctx, testTenant, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Excluir usuario", got.DcBotao)
}

func TestBotaoCreateDuplicateKeyIsConflict(t *testing.T) {
	svc := newBotaoService(t)
	ctx := context.Background()
	req := &BotaoRequest{
		CdSistema: "SEG", CdFuncao: "USUARIOS", NmBotao: "btnExcluir",
		DcBotao: "Excluir", CdAcao: "E",
	}

	_, err := svc.Create(ctx, testTenant, req)
	require.NoError(t, err)
	_, err = svc.Create(ctx, testTenant, req)
	assert.ErrorIs(t, err, ErrConflict)
}

func TestBotaoMalformedKeyIsClientError(t *testing.T) {
	svc := newBotaoService(t)
	ctx := context.Background()

	_, err := svc.Get(ctx, testTenant, "not-base64url!!")
	var be *BusinessError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, "INVALID_KEY", be.Code)

	// Valid base64 with the wrong number of parts is rejected too.
	_, err = svc.Get(ctx, testTenant, keycodec.Encode("apenas", "dois"))
	assert.ErrorAs(t, err, &be)
}

func TestBotaoUpdateKeepsKeyFields(t *testing.T) {
	svc := newBotaoService(t)
	ctx := context.Background()

	item, err := svc.Create(ctx, testTenant, &BotaoRequest{
		CdSistema: "SEG", CdFuncao: "USUARIOS", NmBotao: "btnExcluir",
		DcBotao: "Excluir", CdAcao: "E",
	})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, testTenant, item.ID, &BotaoRequest{
		CdSistema: "OUTRO", CdFuncao: "OUTRA", NmBotao: "btnOutro",
		DcBotao: "Descricao nova", CdAcao: "A",
	})
	require.NoError(t, err)
	assert.Equal(t, "SEG", updated.CdSistema)
	assert.Equal(t, "btnExcluir", updated.NmBotao)
	assert.Equal(t, "Descricao nova", updated.DcBotao)
	assert.Equal(t, "A", updated.CdAcao)
}

func TestBotaoDeleteMissingIsNotFound(t *testing.T) {
	svc := newBotaoService(t)
	err := svc.Delete(context.Background(), testTenant, keycodec.Encode("A", "B", "C"))
	assert.ErrorIs(t, err, ErrNotFound)
}
