package main

import (
	"fmt"
	"os"

	"github.com/chihebnabil/brainmap"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var (
	good   = color.New(color.FgGreen)
	bad    = color.New(color.FgRed, color.Bold)
	subtle = color.New(color.Faint)
)

var (
	optionsPath string
	readOnly    bool
)

var rootCmd = &cobra.Command{
	Use:   "brainmap",
	Short: "Interactive radial mind map viewer",
	Long: "brainmap renders a JSON mind map snapshot as a radial tree.\n" +
		"Open a map in a window, edit it, or export it to PNG headlessly.",
	SilenceUsage: true,
}

func loadDiagramOptions() (brainmap.Options, error) {
	if optionsPath == "" {
		return brainmap.DefaultOptions(), nil
	}
	return brainmap.LoadOptions(optionsPath)
}

func loadSnapshot(d *brainmap.Diagram, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return d.LoadJSON(data)
}

func viewCmd() *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "view [snapshot.json]",
		Short: "Open a mind map in an interactive window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadDiagramOptions()
			if err != nil {
				return err
			}
			opts.ReadOnly = readOnly

			d := brainmap.New("Central Idea", opts)
			d.OnStatus = func(msg string) {
				subtle.Fprintf(os.Stderr, "%s\n", msg)
			}
			if len(args) == 1 {
				if err := loadSnapshot(d, args[0]); err != nil {
					return fmt.Errorf("load %s: %w", args[0], err)
				}
			}
			return brainmap.Run(d, brainmap.RunConfig{Title: title, Resizable: true})
		},
	}

	cmd.Flags().StringVar(&title, "title", "brainmap", "window title")
	return cmd
}

func exportCmd() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "export <snapshot.json>",
		Short: "Render a mind map snapshot to a PNG file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := loadDiagramOptions()
			if err != nil {
				return err
			}

			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			d := brainmap.New("Central Idea", opts)
			if err := d.LoadJSON(data); err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := brainmap.ExportPNG(f, d.Data(), opts); err != nil {
				return err
			}
			good.Printf("wrote %s\n", out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "brainmap.png", "output PNG path")
	return cmd
}

func initCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "init <snapshot.json>",
		Short: "Write a fresh single-node snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			d := brainmap.New(name, brainmap.DefaultOptions())
			data, err := d.JSON()
			if err != nil {
				return err
			}
			if err := os.WriteFile(args[0], data, 0o644); err != nil {
				return err
			}
			good.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "Central Idea", "root node name")
	return cmd
}

func main() {
	rootCmd.PersistentFlags().StringVar(&optionsPath, "options", "", "TOML options file")
	rootCmd.PersistentFlags().BoolVar(&readOnly, "read-only", false, "disable editing")
	rootCmd.AddCommand(viewCmd(), exportCmd(), initCmd())

	if err := rootCmd.Execute(); err != nil {
		bad.Fprintf(os.Stderr, "brainmap: %v\n", err)
		os.Exit(1)
	}
}
