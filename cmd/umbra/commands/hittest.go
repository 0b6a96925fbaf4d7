package commands

import (
	"flag"
	"fmt"

	"github.com/umbralabs/umbra"
	"github.com/umbralabs/umbra/shadow"
)

// HitTest implements the 'umbra hittest' command: lay the scene out,
// then resolve a root-space point to the node under it.
func HitTest(args []string) error {
	fs := flag.NewFlagSet("hittest", flag.ExitOnError)
	configPath := fs.String("config", "umbra.toml", "Path to config file")
	x := fs.Float64("x", 0, "X coordinate in root space")
	y := fs.Float64("y", 0, "Y coordinate in root space")
	fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("usage: umbra hittest <scene.toml> --x <px> --y <px>")
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
	if _, err := tree.Layout(scene.MinSize(), scene.MaxSize(), scene.LayoutDirection()); err != nil {
		return err
	}

	p := shadow.Point{X: float32(*x), Y: float32(*y)}
	hit := tree.HitTest(p)
	if hit == nil {
		fmt.Printf("(%g,%g): no node\n", *x, *y)
		return nil
	}
	fmt.Printf("(%g,%g): #%d %s %s\n", *x, *y, hit.Tag(), hit.ViewName(), hit.LayoutMetrics().Frame)
	return nil
}
