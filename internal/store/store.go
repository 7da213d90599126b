package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/iurnickita/creditorder/internal/model"
	"github.com/iurnickita/creditorder/internal/store/config"
)

// Store - журнал завершённых отправок заказов.
type Store interface {
	SubmissionPost(ctx context.Context, submission model.Submission) error
	SubmissionGet(ctx context.Context, customerID int64) ([]model.Submission, error)
	SubmissionList(ctx context.Context, limit int) ([]model.Submission, error)
	Close() error
}

var (
	ErrNoRows        = errors.New("no rows")
	ErrAlreadyExists = errors.New("already exists")
	ErrNoDatabase    = errors.New("database dsn is empty")
)

const defaultListLimit = 50

type store struct {
	database *sql.DB
}

func NewStore(cfg config.Config) (Store, error) {
	if cfg.DBDsn == "" {
		return nil, ErrNoDatabase
	}
	db, err := sql.Open("pgx", cfg.DBDsn)
	if err != nil {
		return nil, err
	}

	// Таблица журнала.
	// Одна строка на ответ backend по заказу, записи не редактируются
	_, err = db.Exec(
		"CREATE TABLE IF NOT EXISTS submission (" +
			" order_id BIGINT PRIMARY KEY," +
			" customer_id BIGINT NOT NULL," +
			" customer_name VARCHAR (200) NOT NULL," +
			" status VARCHAR (20) NOT NULL," +
			" order_total NUMERIC (15, 2) NOT NULL," +
			" credit_limit NUMERIC (15, 2) NOT NULL," +
			" used_amount NUMERIC (15, 2) NOT NULL," +
			" available_amount NUMERIC (15, 2) NOT NULL," +
			" settled_at TIMESTAMP NOT NULL" +
			" );")
	if err != nil {
		db.Close()
		return nil, err
	}

	return &store{
		database: db,
	}, nil
}

func (store *store) SubmissionPost(ctx context.Context, submission model.Submission) error {
	_, err := store.database.ExecContext(ctx,
		"INSERT INTO submission (order_id, customer_id, customer_name, status,"+
			" order_total, credit_limit, used_amount, available_amount, settled_at)"+
			" VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)",
		submission.OrderID,
		submission.CustomerID,
		submission.CustomerName,
		submission.Status,
		submission.OrderTotal,
		submission.CreditLimit,
		submission.UsedAmount,
		submission.AvailableAmount,
		submission.SettledAt.UTC())
	if err != nil {
		// Проверка: уже записан
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" {
				return ErrAlreadyExists
			}
		}
		return err
	}
	return nil
}

func (store *store) SubmissionGet(ctx context.Context, customerID int64) ([]model.Submission, error) {
	rows, err := store.database.QueryContext(ctx,
		"SELECT order_id, customer_id, customer_name, status,"+
			" order_total, credit_limit, used_amount, available_amount, settled_at"+
			" FROM submission"+
			" WHERE customer_id = $1"+
			" ORDER BY settled_at DESC",
		customerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	submissions, err := scanSubmissions(rows)
	if err != nil {
		return nil, err
	}
	if len(submissions) == 0 {
		return nil, ErrNoRows
	}
	return submissions, nil
}

func (store *store) SubmissionList(ctx context.Context, limit int) ([]model.Submission, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	rows, err := store.database.QueryContext(ctx,
		"SELECT order_id, customer_id, customer_name, status,"+
			" order_total, credit_limit, used_amount, available_amount, settled_at"+
			" FROM submission"+
			" ORDER BY settled_at DESC"+
			" LIMIT $1",
		limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanSubmissions(rows)
}

func (store *store) Close() error {
	return store.database.Close()
}

func scanSubmissions(rows *sql.Rows) ([]model.Submission, error) {
	var submissions []model.Submission
	for rows.Next() {
		var row model.Submission
		err := rows.Scan(&row.OrderID,
			&row.CustomerID,
			&row.CustomerName,
			&row.Status,
			&row.OrderTotal,
			&row.CreditLimit,
			&row.UsedAmount,
			&row.AvailableAmount,
			&row.SettledAt)
		if err != nil {
			return nil, err
		}
		submissions = append(submissions, row)
	}
	return submissions, rows.Err()
}
