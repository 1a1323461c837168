package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// SQLStore keeps the registry in the SQLite "customer" table. Insertion order
// is customer_id order.
type SQLStore struct {
	db *sqlx.DB
}

func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) WithTx(ctx context.Context, fn func(*sqlx.Tx) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit()
}

func (s *SQLStore) List(ctx context.Context) ([]Customer, error) {
	out := []Customer{}
	err := s.db.SelectContext(ctx, &out, listCustomersSQL)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return out, nil
}

func (s *SQLStore) Get(ctx context.Context, cpf string) (*Customer, error) {
	var c Customer
	err := s.db.GetContext(ctx, &c, getCustomerByCPFSQL, cpf)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get customer: %w", err)
	}
	return &c, nil
}

func (s *SQLStore) Insert(ctx context.Context, c *Customer) error {
	return s.WithTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, createCustomerSQL,
			c.CPF,
			c.Name,
			c.RG,
			c.CEP,
			c.Street,
			c.Neighborhood,
			c.City,
			c.State,
			c.Email,
		)
		if err != nil {
			return fmt.Errorf("create customer: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("create customer: %w", err)
		}
		c.ID = id
		return nil
	})
}

func (s *SQLStore) Update(ctx context.Context, cpf string, p Patch) (*Customer, error) {
	var merged Customer
	err := s.WithTx(ctx, func(tx *sqlx.Tx) error {
		var current Customer
		err := tx.GetContext(ctx, &current, getCustomerByCPFSQL, cpf)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("get customer: %w", err)
		}

		merged = current.Merge(p)
		_, err = tx.ExecContext(ctx, updateCustomerSQL,
			merged.CPF,
			merged.Name,
			merged.RG,
			merged.CEP,
			merged.Street,
			merged.Neighborhood,
			merged.City,
			merged.State,
			merged.Email,
			merged.ID,
		)
		if err != nil {
			return fmt.Errorf("update customer: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &merged, nil
}

func (s *SQLStore) Delete(ctx context.Context, cpf string) (int64, error) {
	var removed int64
	err := s.WithTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, deleteCustomersByCPFSQL, cpf)
		if err != nil {
			return fmt.Errorf("delete customer: %w", err)
		}
		removed, err = res.RowsAffected()
		return err
	})
	if err != nil {
		return 0, err
	}
	return removed, nil
}
