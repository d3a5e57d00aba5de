// Package seeders fills empty stores with a working data set: an admin
// account, a few suppliers and their products.
//
// Seeders register themselves from init() and run in registration order:
//
//	func init() {
//	    Register("users", seedUsers)
//	}
//
// Run via CLI: stockpile seed
package seeders

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/shashiranjanraj/stockpile/app/repositories"
)

// Stores are the repositories a seeder may write to.
type Stores struct {
	Users     repositories.UserStore
	Products  repositories.ProductStore
	Suppliers repositories.SupplierStore
}

// SeederFunc is the signature for a seed function.
type SeederFunc func(ctx context.Context, s Stores) error

type seederEntry struct {
	name string
	fn   SeederFunc
}

var (
	mu      sync.Mutex
	entries []seederEntry
)

// Register adds a seeder to the global registry.
func Register(name string, fn SeederFunc) {
	mu.Lock()
	defer mu.Unlock()
	entries = append(entries, seederEntry{name: name, fn: fn})
}

// RunAll executes every registered seeder in registration order and stops on
// the first error.
func RunAll(ctx context.Context, s Stores, out io.Writer) error {
	mu.Lock()
	current := make([]seederEntry, len(entries))
	copy(current, entries)
	mu.Unlock()

	if len(current) == 0 {
		fmt.Fprintln(out, "  (no seeders registered)")
		return nil
	}

	for _, e := range current {
		fmt.Fprintf(out, "  • Running seeder: %s … ", e.name)
		if err := e.fn(ctx, s); err != nil {
			fmt.Fprintln(out, "FAILED")
			return fmt.Errorf("seeder %q: %w", e.name, err)
		}
		fmt.Fprintln(out, "done")
	}
	return nil
}
