package main

import (
	"fmt"
	"os"
	"path/filepath"

	"crawl/internal/infra/directions/network"
	"crawl/internal/util"

	"github.com/pkg/errors"
)

func runValidate(dir string) error {
	fmt.Printf("Validating walking network in directory: %s\n", dir)

	fmt.Println("Checking files...")
	for _, filename := range []string{"nodes.csv", "ways.csv", "metadata.json"} {
		info, err := os.Stat(filepath.Join(dir, filename))
		switch {
		case err == nil:
			fmt.Printf("  ok %s (%s)\n", filename, util.FormatBytes(info.Size()))
		case os.IsNotExist(err) && filename == "metadata.json":
			fmt.Printf("  -- %s (optional, missing)\n", filename)
		case os.IsNotExist(err):
			return errors.Errorf("required file missing: %s", filename)
		default:
			return errors.WithStack(err)
		}
	}

	data, err := network.Load(dir)
	if err != nil {
		return errors.Wrap(err, "validation failed")
	}

	fmt.Printf("\nNodes: %d\nWays:  %d\n", len(data.Nodes), len(data.Ways))
	if meta := data.Metadata; meta != nil {
		fmt.Printf("Region: %s, profile: %s, generated %s\n",
			meta.Region, meta.Profile, meta.GeneratedAt.Format("2006-01-02 15:04:05"))
		if meta.NodesCount != 0 && meta.NodesCount != len(data.Nodes) {
			return errors.Errorf("metadata lists %d nodes, found %d", meta.NodesCount, len(data.Nodes))
		}
		if meta.WaysCount != 0 && meta.WaysCount != len(data.Ways) {
			return errors.Errorf("metadata lists %d ways, found %d", meta.WaysCount, len(data.Ways))
		}
	}

	fmt.Println("Validation passed")

	return nil
}
