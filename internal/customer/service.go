package customer

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Service struct {
	store    Store
	validate *validator.Validate
}

func NewService(store Store) *Service {
	v := validator.New()
	// Report json names ("nome") rather than Go field names ("Name").
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Service{
		store:    store,
		validate: v,
	}
}

func (s *Service) GetAll(ctx context.Context) ([]Customer, error) {
	return s.store.List(ctx)
}

func (s *Service) Get(ctx context.Context, cpf string) (*Customer, error) {
	return s.store.Get(ctx, cpf)
}

// Create checks that cpf, nome and email are present and appends the record.
// Nothing else about the record is validated.
func (s *Service) Create(ctx context.Context, c *Customer) (*Customer, error) {
	n := c.normalized()
	n.ID = 0

	if err := s.validate.Struct(n); err != nil {
		return nil, incomplete(err)
	}

	if err := s.store.Insert(ctx, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// Update merges the provided fields over the first record with the given CPF.
func (s *Service) Update(ctx context.Context, cpf string, p Patch) (*Customer, error) {
	return s.store.Update(ctx, cpf, p.normalized())
}

// Delete removes every record with the given CPF. Removing nothing is not an error.
func (s *Service) Delete(ctx context.Context, cpf string) (int64, error) {
	return s.store.Delete(ctx, cpf)
}

// Seed inserts records into an empty store and reports how many were added.
// A store that already holds data is left alone.
func (s *Service) Seed(ctx context.Context, records []Customer) (int, error) {
	existing, err := s.store.List(ctx)
	if err != nil {
		return 0, err
	}
	if len(existing) > 0 {
		return 0, nil
	}

	for i := range records {
		if _, err := s.Create(ctx, &records[i]); err != nil {
			return i, fmt.Errorf("seed customer %s: %w", records[i].CPF, err)
		}
	}
	return len(records), nil
}

func incomplete(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("%w: %v", ErrIncomplete, err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return fmt.Errorf("%w: missing %s", ErrIncomplete, strings.Join(fields, ", "))
}
