package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"

	"github.com/pkordes/tripjournal/internal/auth"
	"github.com/pkordes/tripjournal/internal/daterange"
	"github.com/pkordes/tripjournal/internal/domain"
	"github.com/pkordes/tripjournal/internal/legacy"
	"github.com/pkordes/tripjournal/internal/planner"
)

func (a *app) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.errOut)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return errUsage
	}
	return nil
}

func runToken(_ context.Context, a *app, args []string) error {
	fs := a.flags("token")
	user := fs.String("user", "", "user id to put in the token subject")
	ttl := fs.Duration("ttl", 24*time.Hour, "token lifetime")
	if err := parse(fs, args); err != nil {
		return err
	}
	secret := os.Getenv("JWT_SECRET")
	if *user == "" || secret == "" {
		return errors.New("token: -user and JWT_SECRET are required")
	}
	token, err := auth.NewJWTVerifier(secret).Issue(*user, *ttl)
	if err != nil {
		return fmt.Errorf("token: %w", err)
	}
	fmt.Fprintln(a.out, token)
	return nil
}

func runCheck(ctx context.Context, a *app, args []string) error {
	if len(args) != 1 {
		return errors.New("check: exactly one slug expected")
	}
	res, err := a.client().CheckSlug(ctx, args[0])
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}
	state := "taken"
	if res.Available {
		state = "available"
	}
	fmt.Fprintf(a.out, "%s\t%s\n", res.Slug, state)
	return nil
}

func runCreate(ctx context.Context, a *app, args []string) error {
	fs := a.flags("create")
	var in planner.Input
	fs.StringVar(&in.Slug, "slug", "", "explicit slug (derived from the details when empty)")
	fs.StringVar(&in.Title, "title", "", "trip title")
	fs.StringVar(&in.StartLocation, "from", "", "start location")
	fs.StringVar(&in.Destination, "to", "", "destination")
	fs.StringVar(&in.Description, "description", "", "free text")
	fs.StringVar(&in.StartDate, "start", "", "start date, YYYY-MM-DD")
	fs.StringVar(&in.EndDate, "end", "", "end date, YYYY-MM-DD")
	visibility := fs.String("visibility", string(domain.VisibilityPrivate), "public, private or restricted")
	allow := fs.String("allow", "", "comma-separated user ids for restricted trips")
	fs.BoolVar(&in.IsLive, "live", false, "share live location")
	if err := parse(fs, args); err != nil {
		return err
	}
	in.Visibility = domain.Visibility(*visibility)
	in.AllowedUsers = splitList(*allow)

	p, err := a.planner()
	if err != nil {
		return err
	}
	created, err := p.Submit(ctx, in)
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}
	fmt.Fprintf(a.out, "%s\t%s\n", created.ID, created.Slug)
	return nil
}

func runList(ctx context.Context, a *app, _ []string) error {
	trips, err := a.client().ListTrips(ctx)
	if err != nil {
		return fmt.Errorf("list: %w", err)
	}
	return printTrips(a.out, trips)
}

func runSearch(ctx context.Context, a *app, args []string) error {
	fs := a.flags("search")
	page := fs.Int("page", 1, "page number")
	limit := fs.Int("limit", 20, "results per page")
	if err := parse(fs, args); err != nil {
		return err
	}
	q := strings.Join(fs.Args(), " ")
	trips, err := a.client().Search(ctx, q, *page, *limit)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	return printTrips(a.out, trips)
}

func runWatch(ctx context.Context, a *app, _ []string) error {
	enc := json.NewEncoder(a.out)
	err := a.client().WatchTrips(ctx, func(event string, trips []domain.Trip) {
		slugs := make([]string, len(trips))
		for i, t := range trips {
			slugs[i] = t.Slug
		}
		_ = enc.Encode(map[string]any{"event": event, "trips": slugs})
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func runImport(ctx context.Context, a *app, args []string) error {
	fs := a.flags("import")
	path := fs.String("file", "-", "file to read, - for stdin")
	dryRun := fs.Bool("dry-run", false, "validate documents without creating trips")
	if err := parse(fs, args); err != nil {
		return err
	}

	var r io.Reader = os.Stdin
	if *path != "-" {
		f, err := os.Open(*path)
		if err != nil {
			return fmt.Errorf("import: %w", err)
		}
		defer f.Close()
		r = f
	}
	docs, err := legacy.Decode(r)
	if err != nil {
		return fmt.Errorf("import: %w", err)
	}

	p, err := a.planner()
	if err != nil {
		return err
	}
	me, _ := auth.Subject(a.token)

	failed := 0
	for i, doc := range docs {
		n := i + 1
		rec, err := legacy.Canonicalize(doc)
		if err == nil && rec.OwnerID != "" && rec.OwnerID != me {
			err = fmt.Errorf("owned by %s", rec.OwnerID)
		}
		if err != nil {
			failed++
			a.log.Warn("legacy document skipped", zap.Int("doc", n), zap.Error(err))
			fmt.Fprintf(a.out, "%d\tskipped\t%v\n", n, err)
			continue
		}
		if *dryRun {
			fmt.Fprintf(a.out, "%d\tok\t%s\t%s..%s\n", n, rec.Title,
				daterange.Format(rec.StartDate), daterange.Format(rec.EndDate))
			continue
		}

		created, err := p.Submit(ctx, inputFromRecord(rec))
		if err != nil {
			failed++
			a.log.Warn("legacy document not imported", zap.Int("doc", n), zap.String("title", rec.Title), zap.Error(err))
			fmt.Fprintf(a.out, "%d\tfailed\t%v\n", n, err)
			continue
		}
		a.log.Info("legacy document imported", zap.Int("doc", n), zap.String("slug", created.Slug))
		fmt.Fprintf(a.out, "%d\tcreated\t%s\n", n, created.Slug)
	}

	if failed > 0 {
		return fmt.Errorf("import: %d of %d documents failed", failed, len(docs))
	}
	return nil
}

// planner builds a Planner for the user the token belongs to.
func (a *app) planner() (*planner.Planner, error) {
	me, err := auth.Subject(a.token)
	if err != nil {
		return nil, fmt.Errorf("a valid -token is required: %w", err)
	}
	loc, err := a.location()
	if err != nil {
		return nil, err
	}
	return planner.New(a.client(), me, loc), nil
}

func inputFromRecord(rec legacy.Record) planner.Input {
	return planner.Input{
		Slug:          rec.Slug,
		Title:         rec.Title,
		StartLocation: rec.StartLocation,
		Destination:   rec.Destination,
		Description:   rec.Description,
		StartDate:     daterange.Format(rec.StartDate),
		EndDate:       daterange.Format(rec.EndDate),
		Visibility:    rec.Visibility,
		AllowedUsers:  rec.AllowedUsers,
	}
}

func printTrips(w io.Writer, trips []domain.Trip) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "SLUG\tTITLE\tSTART\tEND\tVISIBILITY")
	for _, t := range trips {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", t.Slug, t.Title,
			daterange.Format(t.StartDate), daterange.Format(t.EndDate), t.Visibility)
	}
	return tw.Flush()
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
