package cli

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/terraincognita07/finora/internal/db"
	"github.com/terraincognita07/finora/internal/lock"
	"github.com/terraincognita07/finora/internal/services"
)

// RunReconcileCommand materializes the user's overdue recurring occurrences
// outside of a web session. The operator acts with a session scoped to that
// user for the duration of the command.
func RunReconcileCommand(ctx context.Context, dbPath string, email string, locker lock.Locker, location *time.Location, out io.Writer) (services.ReconcileResult, error) {
	database, closeDatabase, err := openDatabase(dbPath)
	if err != nil {
		return services.ReconcileResult{}, err
	}
	defer closeDatabase()

	user, err := findUser(ctx, newAuthService(database), email)
	if err != nil {
		return services.ReconcileResult{}, err
	}

	repositories := db.NewRepositories(database)
	processor := services.NewRecurringProcessor(repositories.RecurringRules, locker, location)
	sessions := services.StaticSession{Session: &services.Session{UserID: user.ID}}
	result := processor.Reconcile(ctx, sessions, user.ID)

	fmt.Fprintf(out, "Processed %d recurring rule(s) for %s\n", result.Processed, user.Email)
	for _, message := range result.Errors {
		fmt.Fprintf(out, "  %s\n", message)
	}
	if len(result.Errors) > 0 {
		return result, fmt.Errorf("%d recurring rule(s) failed", len(result.Errors))
	}
	return result, nil
}
