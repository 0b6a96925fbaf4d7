package commands

import (
	"flag"
	"fmt"
	"os"
)

const defaultConfigTOML = `scale = 1.0
rtl_mirroring = false

[logging]
path = ""
max_size_mb = 10
max_backups = 5
max_age_days = 30
console = true
development = false
`

const exampleSceneTOML = `width = 320.0
height = 480.0
direction = "ltr"

[root]
kind = "View"

[root.style]
width = "100%"
height = "100%"
flex_direction = "column"

[root.style.padding]
all = "10"

[[root.children]]
kind = "Paragraph"
intrinsic_width = 100.0
intrinsic_height = 40.0

[[root.children]]
kind = "View"

[root.children.style]
flex_grow = 1.0
`

// Init implements the 'umbra init' command. It writes a default config
// file and an example scene, refusing to clobber existing files.
func Init(args []string) error {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	force := fs.Bool("force", false, "Overwrite existing files")
	fs.Parse(args)

	files := map[string]string{
		"umbra.toml": defaultConfigTOML,
		"scene.toml": exampleSceneTOML,
	}
	for name, body := range files {
		if !*force {
			if _, err := os.Stat(name); err == nil {
				fmt.Printf("skipping %s (already exists, use --force to overwrite)\n", name)
				continue
			}
		}
		if err := os.WriteFile(name, []byte(body), 0644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		fmt.Printf("wrote %s\n", name)
	}
	fmt.Println("\nTry: umbra layout scene.toml")
	return nil
}
