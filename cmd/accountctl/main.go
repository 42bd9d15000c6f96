package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/multierr"

	"github.com/conectlink/conectlink-backend/internal/accounts"
	"github.com/conectlink/conectlink-backend/internal/billing"
	"github.com/conectlink/conectlink-backend/internal/subscriptions"
	"github.com/conectlink/conectlink-backend/internal/users"
	"github.com/conectlink/conectlink-backend/pkg/config"
	"github.com/conectlink/conectlink-backend/pkg/db"
	"github.com/conectlink/conectlink-backend/pkg/db/models"
	"github.com/conectlink/conectlink-backend/pkg/enums"
	"github.com/conectlink/conectlink-backend/pkg/logger"
	"github.com/conectlink/conectlink-backend/pkg/migrate"
)

const usage = `usage: accountctl <command> [flags]

commands:
  create-account  create a user, optionally with an initial subscription
  renew           renew or create a subscription for an existing user
  show            print a user's subscription state
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	_ = godotenv.Load()

	var err error
	switch os.Args[1] {
	case "create-account":
		err = runCreateAccount(os.Args[2:])
	case "renew":
		err = runRenew(os.Args[2:])
	case "show":
		err = runShow(os.Args[2:])
	case "-h", "--help", "help":
		fmt.Print(usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(1)
	}

	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

type toolkit struct {
	db       *db.Client
	logg     *logger.Logger
	accounts accounts.Service
	billing  billing.Service
	subs     *subscriptions.Repository
}

func bootstrap(ctx context.Context) (*toolkit, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logg := logger.New(logger.Options{
		ServiceName: "accountctl",
		Level:       logger.ParseLevel("warn"),
	})

	dbClient, err := db.New(ctx, cfg.DB, logg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
		return nil, multierr.Append(fmt.Errorf("run dev migrations: %w", err), dbClient.Close())
	}

	billingService, err := billing.NewService(billing.ServiceParams{
		Logger: logg,
		DB:     dbClient,
	})
	if err != nil {
		return nil, multierr.Append(err, dbClient.Close())
	}

	accountsService, err := accounts.NewService(accounts.ServiceParams{
		Logger:         logg,
		DB:             dbClient,
		Users:          users.NewRepository(dbClient.DB()),
		Billing:        billingService,
		PasswordConfig: cfg.Password,
	})
	if err != nil {
		return nil, multierr.Append(err, dbClient.Close())
	}

	return &toolkit{
		db:       dbClient,
		logg:     logg,
		accounts: accountsService,
		billing:  billingService,
		subs:     subscriptions.NewRepository(dbClient.DB()),
	}, nil
}

func (t *toolkit) Close() error {
	return t.db.Close()
}

func runCreateAccount(args []string) error {
	fs := flag.NewFlagSet("create-account", flag.ExitOnError)
	email := fs.String("email", "", "email address (required)")
	name := fs.String("name", "", "display name (defaults to the email local part)")
	password := fs.String("password", "", "password (generated when empty)")
	plan := fs.String("plan", "", "plan slug for an initial subscription")
	cycle := fs.String("cycle", "", "billing cycle: monthly|quarterly|semiannual|annual")
	duration := fs.Int("duration", 1, "number of cycles purchased")
	_ = fs.Parse(args)

	if *email == "" {
		return fmt.Errorf("-email is required")
	}

	parsedCycle, err := parseCycleFlag(*cycle)
	if err != nil {
		return err
	}

	ctx := context.Background()
	tk, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer tk.Close()

	result, err := tk.accounts.CreateAccount(ctx, accounts.CreateAccountParams{
		Email:    *email,
		Name:     *name,
		Password: *password,
		PlanSlug: *plan,
		Cycle:    parsedCycle,
		Duration: *duration,
		Notes:    "Created via accountctl",
	})
	if err != nil {
		return err
	}

	w := newTable()
	fmt.Fprintf(w, "ID\t%s\n", result.User.ID)
	fmt.Fprintf(w, "EMAIL\t%s\n", result.User.Email)
	fmt.Fprintf(w, "NAME\t%s\n", result.User.Name)
	if result.GeneratedPassword != "" {
		fmt.Fprintf(w, "PASSWORD\t%s\n", result.GeneratedPassword)
	}
	if result.Subscription != nil {
		fmt.Fprintf(w, "PLAN\t%s\n", planSlug(result.Subscription))
		fmt.Fprintf(w, "STATUS\t%s\n", result.Subscription.Status)
		fmt.Fprintf(w, "ENDS\t%s\n", formatEndsAt(result.Subscription.EndsAt))
	}
	return w.Flush()
}

func runRenew(args []string) error {
	fs := flag.NewFlagSet("renew", flag.ExitOnError)
	email := fs.String("email", "", "email address (required)")
	plan := fs.String("plan", "", "plan slug (defaults to the current subscription's plan)")
	cycle := fs.String("cycle", "", "billing cycle (defaults to the current subscription's cycle)")
	duration := fs.Int("duration", 1, "number of cycles purchased")
	extend := fs.Bool("extend", false, "chain onto the current period instead of retiring it")
	_ = fs.Parse(args)

	if *email == "" {
		return fmt.Errorf("-email is required")
	}

	parsedCycle, err := parseCycleFlag(*cycle)
	if err != nil {
		return err
	}

	ctx := context.Background()
	tk, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer tk.Close()

	user, err := tk.accounts.FindByEmail(ctx, *email)
	if err != nil {
		return err
	}

	sub, err := tk.billing.RenewOrCreate(ctx, user.ID, billing.RenewParams{
		PlanSlug: *plan,
		Cycle:    parsedCycle,
		Duration: *duration,
		Extend:   *extend,
		Notes:    "Renewed via accountctl",
	})
	if err != nil {
		return err
	}

	w := newTable()
	fmt.Fprintf(w, "PLAN\t%s\n", planSlug(sub))
	fmt.Fprintf(w, "CYCLE\t%s\n", sub.BillingCycle)
	fmt.Fprintf(w, "AMOUNT\t%s %s\n", sub.AmountPaid.StringFixed(2), sub.Currency)
	fmt.Fprintf(w, "STATUS\t%s\n", sub.Status)
	fmt.Fprintf(w, "STARTS\t%s\n", sub.StartsAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(w, "ENDS\t%s\n", formatEndsAt(sub.EndsAt))
	fmt.Fprintf(w, "REFERENCE\t%s\n", sub.PaymentReference)
	return w.Flush()
}

func runShow(args []string) error {
	fs := flag.NewFlagSet("show", flag.ExitOnError)
	email := fs.String("email", "", "email address (required)")
	all := fs.Bool("all", false, "include the full subscription history")
	_ = fs.Parse(args)

	if *email == "" {
		return fmt.Errorf("-email is required")
	}

	ctx := context.Background()
	tk, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer tk.Close()

	user, err := tk.accounts.FindByEmail(ctx, *email)
	if err != nil {
		return err
	}

	w := newTable()
	fmt.Fprintf(w, "USER\t%s\t%s\n", user.Email, user.Name)
	active := "inactive"
	if user.IsActive {
		active = "active"
	}
	fmt.Fprintf(w, "ACCOUNT\t%s\n", active)

	if *all {
		rows, err := tk.subs.ListByUser(ctx, user.ID)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			fmt.Fprintf(w, "SUBSCRIPTIONS\tnone\n")
			return w.Flush()
		}
		fmt.Fprintln(w, "PLAN\tCYCLE\tAMOUNT\tSTATUS\tSTARTS\tENDS")
		for i := range rows {
			sub := &rows[i]
			fmt.Fprintf(w, "%s\t%s\t%s %s\t%s\t%s\t%s\n",
				planSlug(sub),
				sub.BillingCycle,
				sub.AmountPaid.StringFixed(2), sub.Currency,
				sub.Status,
				sub.StartsAt.UTC().Format("2006-01-02"),
				formatEndsAt(sub.EndsAt),
			)
		}
		return w.Flush()
	}

	current, err := tk.subs.FindCurrent(ctx, user.ID, time.Now())
	if err != nil {
		return err
	}
	if current == nil {
		fmt.Fprintf(w, "SUBSCRIPTION\tnone\n")
		return w.Flush()
	}
	fmt.Fprintf(w, "PLAN\t%s\n", planSlug(current))
	fmt.Fprintf(w, "CYCLE\t%s\n", current.BillingCycle)
	fmt.Fprintf(w, "STATUS\t%s\n", current.Status)
	fmt.Fprintf(w, "ENDS\t%s\n", formatEndsAt(current.EndsAt))
	return w.Flush()
}

func parseCycleFlag(raw string) (enums.BillingCycle, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	return enums.ParseBillingCycle(raw)
}

func planSlug(sub *models.Subscription) string {
	if sub.Plan != nil {
		return sub.Plan.Slug
	}
	return sub.PlanID.String()
}

func formatEndsAt(endsAt *time.Time) string {
	if endsAt == nil {
		return "open-ended"
	}
	return endsAt.UTC().Format(time.RFC3339)
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
}
