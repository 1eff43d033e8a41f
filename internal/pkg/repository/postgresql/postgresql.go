package postgresql

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"ems/backend/foundation/web"
	"ems/backend/internal/auth"

	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
)

// Database wraps a bun.DB so repositories get query building, claims access
// and struct validation from one place.
type Database struct {
	*bun.DB
}

func New(username, password, host, port, dbName string, disableTLS bool) *Database {
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s", username, password, host, port, dbName)
	if disableTLS {
		dsn += "?sslmode=disable"
	}

	sqlDB := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqlDB, pgdialect.New())
	db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(false)))

	return &Database{DB: db}
}

// CheckClaims pulls the authenticated claims out of the context and, when
// roles are given, checks the caller holds one of them.
func (d Database) CheckClaims(ctx context.Context, roles ...string) (auth.Claims, error) {
	claims, ok := ctx.Value(auth.Key).(auth.Claims)
	if !ok {
		return auth.Claims{}, web.NewRequestError(errors.New("claims missing from context"), http.StatusUnauthorized)
	}

	if len(roles) > 0 && !claims.Authorized(roles...) {
		return auth.Claims{}, web.NewRequestError(errors.New("attempted action is not allowed"), http.StatusUnauthorized)
	}

	return claims, nil
}

// ValidateStruct checks that the named fields of the request struct are
// present. Field lists may be comma joined, matching BindFunc.
func (d Database) ValidateStruct(s interface{}, requiredFields ...string) error {
	v := reflect.ValueOf(s)
	for v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return web.NewRequestError(errors.New("validate: expected a struct"), http.StatusInternalServerError)
	}

	errFields := map[string]string{}
	for _, fields := range requiredFields {
		for _, field := range strings.Split(fields, ",") {
			field = strings.TrimSpace(field)
			if field == "" {
				continue
			}

			f := v.FieldByName(field)
			if !f.IsValid() {
				continue
			}

			missing := false
			switch f.Kind() {
			case reflect.Ptr, reflect.Interface, reflect.Slice, reflect.Map:
				missing = f.IsNil()
			case reflect.String:
				missing = f.Len() == 0
			default:
				missing = f.IsZero()
			}
			if missing {
				errFields[field] = "required"
			}
		}
	}

	if len(errFields) > 0 {
		return &web.Error{
			Err:    errors.New("required fields are missing"),
			Status: http.StatusBadRequest,
			Fields: errFields,
		}
	}

	return nil
}

// DeleteRow soft deletes by stamping deleted_at/deleted_by.
func (d Database) DeleteRow(ctx context.Context, table string, id int) error {
	claims, err := d.CheckClaims(ctx)
	if err != nil {
		return err
	}

	q := d.NewUpdate().Table(table).Where("deleted_at IS NULL AND id = ?", id)
	q.Set("deleted_at = ?", time.Now())
	q.Set("deleted_by = ?", claims.UserId)

	result, err := q.Exec(ctx)
	if err != nil {
		return web.NewRequestError(errors.Wrapf(err, "deleting from %s", table), http.StatusBadRequest)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "checking affected rows"), http.StatusInternalServerError)
	}
	if affected == 0 {
		return web.NewRequestError(errors.New("row not found"), http.StatusNotFound)
	}

	return nil
}
