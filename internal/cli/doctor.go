package cli

import "fmt"

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false

	if err := ctx.Store.Load(); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		return fmt.Errorf("diagnostics found problems")
	}
	defer ctx.Store.Close()
	fmt.Printf("✓ Database reachable: OK\n")

	if err := ctx.Store.IntegrityCheck(); err != nil {
		fmt.Printf("❌ Integrity check: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Integrity check: OK\n")
	}

	if err := ctx.Store.ForeignKeyCheck(); err != nil {
		fmt.Printf("❌ Foreign key check: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Foreign key check: OK\n")
	}

	stats, err := ctx.Store.GetStats()
	if err != nil {
		fmt.Printf("❌ Stats: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Stats: %d habit(s), %d record(s)\n", stats.Habits, stats.Records)
		if stats.Orphans > 0 {
			fmt.Printf("❌ Orphan records: %d record(s) reference a missing habit\n", stats.Orphans)
			hasError = true
		} else {
			fmt.Printf("✓ Orphan records: none\n")
		}
	}

	fmt.Println()
	if hasError {
		return fmt.Errorf("diagnostics found problems")
	}
	fmt.Println("All checks passed")
	return nil
}
