package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readMigration(t *testing.T, pattern string) string {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q", pattern)
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}

func TestSubscriptionsMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_subscriptions.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS subscriptions",
		"FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE",
		"FOREIGN KEY (plan_id) REFERENCES subscription_plans(id)",
		"CHECK (amount_paid >= 0)",
		"CHECK (status IN ('pending', 'trial', 'active', 'expired', 'cancelled'))",
		"CHECK (billing_cycle IN ('monthly', 'quarterly', 'semiannual', 'annual'))",
		"idx_subscriptions_status_ends_at",
		"DROP TABLE IF EXISTS subscriptions",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestPlanSeedMigrationIsIdempotent(t *testing.T) {
	content := readMigration(t, "*_seed_subscription_plans.sql")

	if !strings.Contains(content, "ON CONFLICT (slug) DO UPDATE") {
		t.Errorf("plan seed must upsert by slug so re-running it is safe")
	}
	for _, slug := range []string{"'basico'", "'profesional'", "'empresarial'"} {
		if !strings.Contains(content, slug) {
			t.Errorf("missing seed plan %s", slug)
		}
	}
}
