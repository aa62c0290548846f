package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
)

// Supported subcommands:
// - plan:     Plan the best (and worst) crawl around a point
// - nearby:   List the candidate locations around a point
// - validate: Validate a walking network directory

func main() {
	planCmd := flag.NewFlagSet("plan", flag.ExitOnError)
	nearbyCmd := flag.NewFlagSet("nearby", flag.ExitOnError)
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)

	// plan parameters
	planPoint := bindPointFlags(planCmd)
	planWorst := planCmd.Bool("worst", false, "Also plan the lowest quality crawl")
	planProvider := planCmd.String("directions", "", "Override the directions provider (google, osrm, haversine, network)")

	// nearby parameters
	nearbyPoint := bindPointFlags(nearbyCmd)

	// validate parameters
	validateDir := validateCmd.String("dir", "./data/network", "Walking network directory to validate")

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	flags := planFlags{
		Plan: planCmdFlags{
			cmd:      planCmd,
			point:    planPoint,
			worst:    planWorst,
			provider: planProvider,
		},
		Nearby: nearbyFlags{
			cmd:   nearbyCmd,
			point: nearbyPoint,
		},
		Validate: validateFlags{
			cmd: validateCmd,
			dir: validateDir,
		},
	}

	if err := runSubcommand(ctx, &flags); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type planFlags struct {
	Plan     planCmdFlags
	Nearby   nearbyFlags
	Validate validateFlags
}

type pointFlags struct {
	lat      *float64
	lng      *float64
	radiusKm *float64
	places   *string
}

type planCmdFlags struct {
	cmd      *flag.FlagSet
	point    pointFlags
	worst    *bool
	provider *string
}

type nearbyFlags struct {
	cmd   *flag.FlagSet
	point pointFlags
}

type validateFlags struct {
	cmd *flag.FlagSet
	dir *string
}

func bindPointFlags(cmd *flag.FlagSet) pointFlags {
	return pointFlags{
		lat:      cmd.Float64("lat", 0, "Latitude of the search centre (required)"),
		lng:      cmd.Float64("lng", 0, "Longitude of the search centre (required)"),
		radiusKm: cmd.Float64("radius", 0, "Search radius in km, 0 uses the configured radius"),
		places:   cmd.String("places", "", "Read locations from this JSON file instead of the configured provider"),
	}
}

func runSubcommand(ctx context.Context, flags *planFlags) error {
	switch os.Args[1] {
	case "plan":
		return handlePlan(ctx, flags)
	case "nearby":
		return handleNearby(ctx, flags)
	case "validate":
		return handleValidate(flags)
	default:
		printUsage()

		return errors.New("unknown subcommand")
	}
}

func handlePlan(ctx context.Context, flags *planFlags) error {
	if err := flags.Plan.cmd.Parse(os.Args[2:]); err != nil {
		return errors.Wrap(err, "failed to parse plan flags")
	}
	if err := requirePoint(flags.Plan.cmd); err != nil {
		return err
	}

	return runPlan(ctx, flags.Plan.point, *flags.Plan.worst, *flags.Plan.provider)
}

func handleNearby(ctx context.Context, flags *planFlags) error {
	if err := flags.Nearby.cmd.Parse(os.Args[2:]); err != nil {
		return errors.Wrap(err, "failed to parse nearby flags")
	}
	if err := requirePoint(flags.Nearby.cmd); err != nil {
		return err
	}

	return runNearby(ctx, flags.Nearby.point)
}

func handleValidate(flags *planFlags) error {
	if err := flags.Validate.cmd.Parse(os.Args[2:]); err != nil {
		return errors.Wrap(err, "failed to parse validate flags")
	}

	return runValidate(*flags.Validate.dir)
}

// requirePoint reports whether both coordinates were set explicitly, since 0 is a valid value
func requirePoint(cmd *flag.FlagSet) error {
	seen := map[string]bool{}
	cmd.Visit(func(f *flag.Flag) {
		seen[f.Name] = true
	})
	if !seen["lat"] || !seen["lng"] {
		return errors.Errorf("--lat and --lng flags are required for %s command", cmd.Name())
	}

	return nil
}

func printUsage() {
	fmt.Println("Usage: plan <command> [options]")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  plan        Plan the best crawl around a point")
	fmt.Println("  nearby      List candidate locations around a point")
	fmt.Println("  validate    Validate a walking network directory")
	fmt.Println("")
	fmt.Println("Use 'plan <command> -h' for more information about a command.")
}
