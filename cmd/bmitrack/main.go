// Command bmitrack is a small terminal driver for the BMI tracking engine.
// All user-facing parsing and advisory range checks happen here; the engine
// itself only enforces hard invariants.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"bmitrack/internal/adapter/postgres"
	"bmitrack/internal/adapter/sqlite"
	"bmitrack/internal/app"
	"bmitrack/internal/config"
	"bmitrack/internal/domain"
	"bmitrack/internal/logging"
)

// store is what both storage backends provide.
type store interface {
	domain.UserRepository
	domain.ReadingRepository
	Close() error
}

func main() {
	logging.Setup()
	if err := run(os.Args[1:]); err != nil {
		slog.Error("bmitrack", "err", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		usage()
		return errors.New("missing command")
	}
	cmd, rest := args[0], args[1:]
	ctx := context.Background()

	// calc never touches storage.
	if cmd == "calc" {
		return calcCmd(rest)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}

	var db store
	if cfg.DatabaseURL != "" {
		db, err = postgres.Open(cfg.DatabaseURL)
	} else {
		db, err = sqlite.Open(cfg.DBPath)
	}
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	defer func() { _ = db.Close() }()

	users := app.NewUserService(db)
	readings := app.NewReadingService(db)
	history := app.NewHistoryService(db)
	export := app.NewExportService(db)

	switch cmd {
	case "users":
		return usersCmd(ctx, users)
	case "adduser":
		return addUserCmd(ctx, users, rest)
	case "renameuser":
		return renameUserCmd(ctx, users, rest)
	case "deluser":
		return delUserCmd(ctx, users, rest)
	case "record":
		return recordCmd(ctx, readings, rest)
	case "delreading":
		return delReadingCmd(ctx, readings, rest)
	case "history":
		return historyCmd(ctx, history, rest)
	case "stats":
		return statsCmd(ctx, history, rest)
	case "export":
		return exportCmd(ctx, export, rest)
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: bmitrack <command> [flags]

commands:
  users                                list users
  adduser    -name N [-dob D]          add a user
  renameuser -id ID -name N            rename a user
  deluser    -id ID                    delete a user and their history
  calc       -weight W -height H [-unit metric|imperial]
                                       compute a BMI without saving
  record     -user ID -weight W -height H [-unit metric|imperial] [-notes S]
                                       save a reading
  delreading -id ID                    delete one reading
  history    -user ID [-unit metric|imperial]
                                       show a user's readings
  stats      -user ID                  show trend statistics
  export     -user ID [-o FILE]        export history as CSV (stdout default)`)
}

func calcCmd(args []string) error {
	fs := flag.NewFlagSet("calc", flag.ExitOnError)
	weight := fs.Float64("weight", 0, "weight value")
	height := fs.Float64("height", 0, "height value")
	unitStr := fs.String("unit", "metric", "unit system")
	_ = fs.Parse(args)

	unit, err := domain.ParseUnitSystem(*unitStr)
	if err != nil {
		return err
	}
	if err := domain.CheckRange(*weight, *height, unit); err != nil {
		return err
	}
	bmi, err := domain.Compute(*weight, *height, unit)
	if err != nil {
		return err
	}
	cat := domain.Classify(bmi)
	fmt.Printf("BMI: %.2f\nCategory: %s\nAdvice: %s\n", bmi, cat, domain.Advice(cat))
	return nil
}

func usersCmd(ctx context.Context, svc *app.UserService) error {
	users, err := svc.ListUsers(ctx)
	if err != nil {
		return err
	}
	for _, u := range users {
		if u.DOB != "" {
			fmt.Printf("%d\t%s\t(born %s)\n", u.ID, u.Name, u.DOB)
		} else {
			fmt.Printf("%d\t%s\n", u.ID, u.Name)
		}
	}
	return nil
}

func addUserCmd(ctx context.Context, svc *app.UserService, args []string) error {
	fs := flag.NewFlagSet("adduser", flag.ExitOnError)
	name := fs.String("name", "", "full name")
	dob := fs.String("dob", "", "date of birth (optional)")
	_ = fs.Parse(args)

	id, err := svc.AddUser(ctx, *name, *dob)
	if err != nil {
		return err
	}
	fmt.Printf("added user %d\n", id)
	return nil
}

func renameUserCmd(ctx context.Context, svc *app.UserService, args []string) error {
	fs := flag.NewFlagSet("renameuser", flag.ExitOnError)
	id := fs.Int64("id", 0, "user id")
	name := fs.String("name", "", "new name")
	_ = fs.Parse(args)

	return svc.RenameUser(ctx, *id, *name)
}

func delUserCmd(ctx context.Context, svc *app.UserService, args []string) error {
	fs := flag.NewFlagSet("deluser", flag.ExitOnError)
	id := fs.Int64("id", 0, "user id")
	_ = fs.Parse(args)

	n, err := svc.DeleteUser(ctx, *id)
	if err != nil {
		return err
	}
	fmt.Printf("deleted user %d and %d reading(s)\n", *id, n)
	return nil
}

func recordCmd(ctx context.Context, svc *app.ReadingService, args []string) error {
	fs := flag.NewFlagSet("record", flag.ExitOnError)
	user := fs.Int64("user", 0, "user id")
	weight := fs.Float64("weight", 0, "weight value")
	height := fs.Float64("height", 0, "height value")
	unitStr := fs.String("unit", "metric", "unit system")
	notes := fs.String("notes", "", "optional notes")
	_ = fs.Parse(args)

	unit, err := domain.ParseUnitSystem(*unitStr)
	if err != nil {
		return err
	}
	// Advisory plausibility bounds are a hard rejection at this boundary.
	if err := domain.CheckRange(*weight, *height, unit); err != nil {
		return err
	}
	id, err := svc.SaveReading(ctx, *user, *weight, *height, unit, *notes)
	if err != nil {
		return err
	}
	fmt.Printf("saved reading %d\n", id)
	return nil
}

func delReadingCmd(ctx context.Context, svc *app.ReadingService, args []string) error {
	fs := flag.NewFlagSet("delreading", flag.ExitOnError)
	id := fs.Int64("id", 0, "reading id")
	_ = fs.Parse(args)

	return svc.DeleteReading(ctx, *id)
}

func historyCmd(ctx context.Context, svc *app.HistoryService, args []string) error {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	user := fs.Int64("user", 0, "user id")
	unitStr := fs.String("unit", "", "display unit system (default: as recorded)")
	_ = fs.Parse(args)

	var display domain.UnitSystem
	if *unitStr != "" {
		u, err := domain.ParseUnitSystem(*unitStr)
		if err != nil {
			return err
		}
		display = u
	}

	readings, err := svc.History(ctx, *user)
	if err != nil {
		return err
	}
	for _, r := range readings {
		w, h, unit := r.Weight, r.Height, r.Unit
		if display != "" && display != r.Unit {
			w = domain.ConvertWeight(w, r.Unit, display)
			h = domain.ConvertHeight(h, r.Unit, display)
			unit = display
		}
		fmt.Printf("%d\t%s\t%.1f %s\t%.1f %s\tBMI %.2f\t%s\t%s\n",
			r.ID, r.Timestamp.Format("2006-01-02 15:04"),
			w, unit.WeightUnit(), h, unit.HeightUnit(),
			r.BMI, r.Category, r.Notes)
	}
	return nil
}

func statsCmd(ctx context.Context, svc *app.HistoryService, args []string) error {
	fs := flag.NewFlagSet("stats", flag.ExitOnError)
	user := fs.Int64("user", 0, "user id")
	_ = fs.Parse(args)

	st, err := svc.Trend(ctx, *user)
	if err != nil {
		return err
	}
	fmt.Printf("Mean: %.2f  Min: %.2f  Max: %.2f  Last: %.2f\n", st.Mean, st.Min, st.Max, st.Last)
	return nil
}

func exportCmd(ctx context.Context, svc *app.ExportService, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	user := fs.Int64("user", 0, "user id")
	out := fs.String("o", "", "output file (default: stdout)")
	_ = fs.Parse(args)

	var w io.Writer = os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			return fmt.Errorf("create %s: %w", *out, err)
		}
		defer f.Close()
		w = f
	}
	n, err := svc.Export(ctx, *user, w)
	if err != nil {
		return err
	}
	if *out != "" {
		slog.Info("exported history", "rows", n, "file", *out)
	}
	return nil
}
