package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/models"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/service"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/service/mocks"
	serr "github.com/IvanChernomyrdin/go-bookcorner/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/shared/utils"
)

func newBooksService(t *testing.T) (*service.BooksService, *mocks.MockBooksRepo) {
	t.Helper()
	repo := mocks.NewMockBooksRepo(gomock.NewController(t))
	return service.NewBooksService(repo).WithClock(func() time.Time { return fixedNow }), repo
}

func TestBooksService_Create_OK(t *testing.T) {
	ctx := context.Background()
	svc, repo := newBooksService(t)

	repo.EXPECT().Create(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, b *models.Book) (string, error) {
			require.Equal(t, "X", b.Title)
			require.Equal(t, "Y", b.Description)
			require.Equal(t, fixedNow, b.CreatedAt)
			return "b1", nil
		})

	b, err := svc.Create(ctx, " X ", "Y", "")
	require.NoError(t, err)
	require.Equal(t, "b1", b.ID)
}

func TestBooksService_Create_Invalid(t *testing.T) {
	svc, repo := newBooksService(t)
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Times(0)

	_, err := svc.Create(context.Background(), "", "Y", "")
	require.ErrorIs(t, err, serr.ErrInvalidInput)
	_, err = svc.Create(context.Background(), "X", " ", "")
	require.ErrorIs(t, err, serr.ErrInvalidInput)
}

func TestBooksService_Create_PersistenceError(t *testing.T) {
	svc, repo := newBooksService(t)
	dbErr := errors.New("write failed")
	repo.EXPECT().Create(gomock.Any(), gomock.Any()).Return("", dbErr)

	_, err := svc.Create(context.Background(), "X", "Y", "")
	require.ErrorIs(t, err, dbErr)
}

func TestBooksService_Update(t *testing.T) {
	ctx := context.Background()
	svc, repo := newBooksService(t)

	upd := models.BookUpdate{Title: utils.Ptr("New")}
	repo.EXPECT().Update(ctx, "b1", upd).Return(nil)
	repo.EXPECT().Update(ctx, "missing", gomock.Any()).Return(serr.ErrNotFound)

	require.NoError(t, svc.Update(ctx, "b1", upd))
	require.ErrorIs(t, svc.Update(ctx, "missing", upd), serr.ErrNotFound)
	require.ErrorIs(t, svc.Update(ctx, "", upd), serr.ErrInvalidInput)
	require.ErrorIs(t, svc.Update(ctx, "b1", models.BookUpdate{Title: utils.Ptr("")}), serr.ErrInvalidInput)
}

func TestBooksService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, repo := newBooksService(t)

	repo.EXPECT().Delete(ctx, "b1").Return(nil)

	require.NoError(t, svc.Delete(ctx, "b1"))
	require.NoError(t, svc.Delete(ctx, "  "))
}

func TestBooksService_List(t *testing.T) {
	svc, repo := newBooksService(t)
	want := []models.Book{{ID: "2"}, {ID: "1"}}
	repo.EXPECT().List(gomock.Any()).Return(want, nil)

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, want, got)
}
