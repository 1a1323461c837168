// Package demodata provides the records the registry starts with.
package demodata

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"

	"winsbygroup.com/brvalida/internal/customer"
)

//go:embed customers.json
var seedFS embed.FS

// Customers returns the seed records in load order.
func Customers() ([]customer.Customer, error) {
	data, err := seedFS.ReadFile("customers.json")
	if err != nil {
		return nil, err
	}

	var out []customer.Customer
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode seed customers: %w", err)
	}
	return out, nil
}

// Load seeds svc when it holds no records and reports how many were added.
func Load(ctx context.Context, svc *customer.Service) (int, error) {
	records, err := Customers()
	if err != nil {
		return 0, err
	}
	return svc.Seed(ctx, records)
}
