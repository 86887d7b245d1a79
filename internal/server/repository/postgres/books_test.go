package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/models"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/server/repository/postgres"
	serr "github.com/IvanChernomyrdin/go-bookcorner/internal/shared/errors"
	"github.com/IvanChernomyrdin/go-bookcorner/internal/shared/utils"
)

func TestBooksRepository_Create_OK(t *testing.T) {
	db, mock := newMock(t)
	repo := postgres.NewBooksRepository(db)

	now := time.Now()
	mock.ExpectQuery(`INSERT INTO books`).
		WithArgs("X", "Y", "", now).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("b1"))

	id, err := repo.Create(context.Background(), &models.Book{Title: "X", Description: "Y", CreatedAt: now})
	require.NoError(t, err)
	require.Equal(t, "b1", id)
}

func TestBooksRepository_List_NewestFirst(t *testing.T) {
	db, mock := newMock(t)
	repo := postgres.NewBooksRepository(db)

	t2 := time.Now()
	t1 := t2.Add(-time.Hour)
	mock.ExpectQuery(`SELECT id, title, description, image, created_at\s+FROM books\s+ORDER BY created_at DESC`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "description", "image", "created_at"}).
			AddRow("b2", "New", "d", "", t2).
			AddRow("b1", "Old", "d", "http://img", t1))

	books, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, books, 2)
	require.Equal(t, "b2", books[0].ID)
	require.Equal(t, "http://img", books[1].Image)
}

func TestBooksRepository_List_Error(t *testing.T) {
	db, mock := newMock(t)
	repo := postgres.NewBooksRepository(db)

	mock.ExpectQuery(`SELECT id, title`).WillReturnError(sql.ErrConnDone)

	_, err := repo.List(context.Background())
	require.ErrorIs(t, err, serr.ErrInternal)
}

func TestBooksRepository_Update(t *testing.T) {
	db, mock := newMock(t)
	repo := postgres.NewBooksRepository(db)

	upd := models.BookUpdate{Title: utils.Ptr("New")}

	mock.ExpectExec(`UPDATE books`).
		WithArgs("b1", "New", nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE books`).
		WithArgs("b404", "New", nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`UPDATE books`).
		WithArgs("not-a-uuid", "New", nil, nil).
		WillReturnError(&pgconn.PgError{Code: "22P02"})

	require.NoError(t, repo.Update(context.Background(), "b1", upd))
	require.ErrorIs(t, repo.Update(context.Background(), "b404", upd), serr.ErrNotFound)
	require.ErrorIs(t, repo.Update(context.Background(), "not-a-uuid", upd), serr.ErrNotFound)
}

// Удаление отсутствующей книги не ошибка
func TestBooksRepository_Delete_Idempotent(t *testing.T) {
	db, mock := newMock(t)
	repo := postgres.NewBooksRepository(db)

	mock.ExpectExec(`DELETE FROM books`).WithArgs("b1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM books`).WithArgs("b1").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM books`).WithArgs("junk").WillReturnError(&pgconn.PgError{Code: "22P02"})
	mock.ExpectExec(`DELETE FROM books`).WithArgs("b2").WillReturnError(sql.ErrConnDone)

	require.NoError(t, repo.Delete(context.Background(), "b1"))
	require.NoError(t, repo.Delete(context.Background(), "b1"))
	require.NoError(t, repo.Delete(context.Background(), "junk"))
	require.ErrorIs(t, repo.Delete(context.Background(), "b2"), serr.ErrInternal)
}
