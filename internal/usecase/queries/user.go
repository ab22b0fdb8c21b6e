package queries

import (
	"context"
	"time"

	"tg-storefront/internal/domain/user"
	"tg-storefront/internal/infra"
	"tg-storefront/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrUserNotFound = errs.ErrUserNotFound

//go:generate mockgen -destination=../../../tests/mock/queries/queries.go -package=queriesmock tg-storefront/internal/usecase/queries CartQueries,CatalogQueries,UserQueries

type UserQueries interface {
	GetByTelegramID(ctx context.Context, telegramID string) (*UserView, error)
	List(ctx context.Context, cursor *Cursor, limit int) ([]*UserListItem, *Cursor, error)
}

type UserReadStore interface {
	FindByTelegramID(ctx context.Context, telegramID string) (*UserView, error)
	ListFirstPage(ctx context.Context, limit int) ([]*UserListItem, error)
	ListKeyset(ctx context.Context, lastCreatedAt time.Time, lastID uuid.UUID, limit int) ([]*UserListItem, error)
}

type userQueriesImpl struct {
	readStore UserReadStore
}

func NewUserQueries(readStore UserReadStore) UserQueries {
	return &userQueriesImpl{
		readStore: readStore,
	}
}

func (q *userQueriesImpl) GetByTelegramID(ctx context.Context, telegramID string) (*UserView, error) {
	tgID, err := user.NewTelegramID(telegramID)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}

	u, err := q.readStore.FindByTelegramID(ctx, tgID.String())
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (q *userQueriesImpl) List(ctx context.Context, cursor *Cursor, limit int) ([]*UserListItem, *Cursor, error) {
	limit = ValidateLimit(limit)

	var rows []*UserListItem
	var err error
	if cursor == nil || cursor.After == "" {
		rows, err = q.readStore.ListFirstPage(ctx, limit+1)
	} else {
		lastCreatedAt, lastID, derr := DecodeAfterCursor(cursor.After)
		if derr != nil {
			return nil, nil, errs.Mark(derr, errs.ErrValidation)
		}
		rows, err = q.readStore.ListKeyset(ctx, lastCreatedAt, lastID, limit+1)
	}
	if err != nil {
		return nil, nil, err
	}

	var next *Cursor
	if len(rows) > limit {
		last := rows[limit-1]
		next = &Cursor{After: EncodeAfterCursor(last.CreatedAt, last.ID)}
		rows = rows[:limit]
	}
	return rows, next, nil
}
