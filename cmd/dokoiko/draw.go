package main

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"github.com/neexbeast/dokoiko/internal/destination"
	"github.com/neexbeast/dokoiko/internal/planner"
	"github.com/neexbeast/dokoiko/internal/selection"
	"github.com/neexbeast/dokoiko/internal/transport"
)

type drawOptions struct {
	catalog   string
	departure string
	tier      int
	stay      string
	count     int
	seed      uint64
	at        string
}

func newDrawCmd(logger func(*cobra.Command) *slog.Logger) *cobra.Command {
	var o drawOptions

	cmd := &cobra.Command{
		Use:   "draw",
		Short: "Draw destinations from a catalog file",
		Example: `  dokoiko draw --departure 東京 --tier 3 --stay 1night
  dokoiko draw --departure 大阪 --tier 2 --stay daytrip --count 5 --seed 42`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDraw(cmd.OutOrStdout(), logger(cmd), o)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.catalog, "catalog", "data/destinations.json", "Catalog JSON file")
	f.StringVar(&o.departure, "departure", "東京", "Departure point")
	f.IntVar(&o.tier, "tier", 2, "Distance tier, 1 (near) to 5 (far)")
	f.StringVar(&o.stay, "stay", string(destination.TripDay), "Trip type: daytrip, 1night or 2night")
	f.IntVar(&o.count, "count", 1, "Number of candidates to show")
	f.Uint64Var(&o.seed, "seed", 0, "Random seed; 0 draws a different order every run")
	f.StringVar(&o.at, "at", "", "Departure time for route searches (RFC 3339)")

	return cmd
}

func runDraw(out io.Writer, log *slog.Logger, o drawOptions) error {
	trip := destination.TripType(o.stay)
	if !trip.Valid() {
		return fmt.Errorf("invalid --stay %q: want daytrip, 1night or 2night", o.stay)
	}
	if o.tier < destination.MinTier || o.tier > destination.MaxTier {
		return fmt.Errorf("invalid --tier %d: want %d-%d", o.tier, destination.MinTier, destination.MaxTier)
	}
	if o.count < 1 {
		return fmt.Errorf("invalid --count %d: must be positive", o.count)
	}

	var at time.Time
	if o.at != "" {
		t, err := time.Parse(time.RFC3339, o.at)
		if err != nil {
			return fmt.Errorf("invalid --at: %w", err)
		}
		at = t
	}

	catalog, err := destination.LoadFile(o.catalog)
	if err != nil {
		return err
	}
	log.Debug("catalog loaded", "path", o.catalog, "records", catalog.Len())

	var rng *rand.Rand
	if o.seed != 0 {
		rng = rand.New(rand.NewPCG(o.seed, o.seed))
	}

	departures := destination.DefaultDepartures()
	if _, ok := departures.Lookup(o.departure); !ok {
		log.Warn("unknown departure, falling back to the whole catalog", "departure", o.departure)
	}

	p := planner.New(
		destination.NewStore(catalog),
		selection.NewBuilder(departures, rng),
		transport.NewResolver(departures, transport.DefaultProviderRules(departures)),
	)

	sess, err := p.Start(selection.Query{Departure: o.departure, Tier: o.tier, Trip: trip})
	if err != nil {
		return err
	}
	log.Debug("pool built", "stage", sess.Stage, "origin", sess.Origin, "candidates", len(sess.IDs))

	for i := range o.count {
		if i > 0 {
			if err := p.Next(sess); err != nil {
				return err
			}
		}
		plan, err := p.Describe(sess, at)
		if err != nil {
			return err
		}
		printPlan(out, plan)
	}
	return nil
}

func printPlan(out io.Writer, plan *planner.Plan) {
	d := plan.Destination
	fmt.Fprintf(out, "[%d/%d] %s (%s, tier %d %s)", plan.Index+1, plan.Total, d.Name, d.Category, d.DistanceTier, plan.DistanceLabel)
	if plan.Round > 0 {
		fmt.Fprintf(out, " round %d", plan.Round+1)
	}
	fmt.Fprintln(out)

	if len(d.Atmosphere) > 0 {
		fmt.Fprintf(out, "  %s\n", d.Atmosphere[0])
	}
	for _, l := range plan.Transport {
		fmt.Fprintf(out, "  %-7s %s\n          %s\n", l.Mode, l.Label, l.URL)
	}
	for _, l := range plan.Lodging {
		fmt.Fprintf(out, "  %-7s %s\n          %s\n", "stay", l.Label, l.URL)
	}
	for _, l := range plan.Experiences {
		fmt.Fprintf(out, "  %-7s %s\n          %s\n", "do", l.Label, l.URL)
	}
}
