package commands

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/umbralabs/umbra"
)

// Layout implements the 'umbra layout' command. It loads a scene file,
// builds the shadow tree, runs one layout pass, and prints the frame of
// every node the pass changed.
func Layout(args []string) error {
	fs := flag.NewFlagSet("layout", flag.ExitOnError)
	configPath := fs.String("config", "umbra.toml", "Path to config file")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: umbra layout <scene.toml> [options]")
	}
	scenePath := fs.Arg(0)

	cfg, lg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	defer lg.Sync()

	scene, err := umbra.LoadScene(scenePath)
	if err != nil {
		return err
	}

	builder, err := umbra.NewBuilder(cfg, lg)
	if err != nil {
		return err
	}
	tree, err := builder.BuildTree(scene.Root)
	if err != nil {
		return err
	}

	affected, err := tree.Layout(scene.MinSize(), scene.MaxSize(), scene.LayoutDirection())
	if err != nil {
		return err
	}

	fmt.Printf("%d nodes laid out\n", len(affected))
	for _, n := range affected {
		m := n.LayoutMetrics()
		fmt.Printf("  #%d %-12s %s\n", n.Tag(), n.ViewName(), m.Frame)
	}
	return nil
}

// loadConfig reads the config file when present and falls back to
// defaults when it is missing, so scenes work without any scaffolding.
func loadConfig(path string) (umbra.Config, *zap.Logger, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := umbra.DefaultConfig()
		return cfg, cfg.Logger(), nil
	}
	cfg, err := umbra.LoadConfig(path)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, cfg.Logger(), nil
}
