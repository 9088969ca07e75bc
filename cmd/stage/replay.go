package main

import (
	"fmt"
	"io"

	"github.com/bethropolis/stage/internal/core"
	"github.com/bethropolis/stage/internal/core/history"
	"github.com/bethropolis/stage/internal/scene"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// replayReport is the yaml form of a replay's outcome.
type replayReport struct {
	Scene       string         `yaml:"scene"`
	Steps       int            `yaml:"steps"`
	Entities    []entityReport `yaml:"entities"`
	Undo        []string       `yaml:"undo"`
	Redo        []string       `yaml:"redo"`
	Diagnostics []string       `yaml:"diagnostics,omitempty"`
}

type entityReport struct {
	Ref string `yaml:"ref"`
	X   int    `yaml:"x"`
	Y   int    `yaml:"y"`
}

func newReplayCmd(st *cliState) *cobra.Command {
	var (
		format   string
		savePath string
	)

	cmd := &cobra.Command{
		Use:   "replay <scene.yaml> <script.yaml>",
		Short: "Replay a gesture script against a scene and print the resulting history",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "yaml" {
				return fmt.Errorf("unknown format %q (want text or yaml)", format)
			}
			if err := st.setup(""); err != nil {
				return err
			}

			sc, err := scene.Load(args[0])
			if err != nil {
				return fmt.Errorf("load scene: %w", err)
			}
			script, err := core.LoadScript(args[1])
			if err != nil {
				return fmt.Errorf("load script: %w", err)
			}

			ed := core.NewEditor(sc, st.cfg)
			res, err := script.Run(ed)
			if err != nil {
				return err
			}

			report := buildReport(ed, res)
			out := cmd.OutOrStdout()
			if format == "yaml" {
				if err := yaml.NewEncoder(out).Encode(report); err != nil {
					return err
				}
			} else {
				printReport(out, report)
			}

			if savePath != "" {
				return scene.Save(sc, savePath)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text or yaml")
	cmd.Flags().StringVarP(&savePath, "save", "o", "", "Write the edited scene to this file")
	return cmd
}

func buildReport(ed *core.Editor, res *core.Result) replayReport {
	sc := ed.Scene()
	r := replayReport{Scene: sc.Name, Steps: res.Steps}
	for _, e := range sc.Entities() {
		r.Entities = append(r.Entities, entityReport{Ref: e.Key().String(), X: e.Pos.X, Y: e.Pos.Y})
	}
	r.Undo = describeEntries(ed.History().UndoInfo())
	r.Redo = describeEntries(ed.History().RedoInfo())
	for _, d := range res.Diagnostics {
		r.Diagnostics = append(r.Diagnostics, d.Error())
	}
	return r
}

// describeEntries lists entries oldest first, marking null ones.
func describeEntries(entries []history.Entry) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		desc := e.Description
		if e.Null {
			desc += " (null)"
		}
		out = append(out, desc)
	}
	return out
}

func printReport(w io.Writer, r replayReport) {
	fmt.Fprintf(w, "scene %s: %d steps\n", r.Scene, r.Steps)
	fmt.Fprintln(w, "entities:")
	for _, e := range r.Entities {
		fmt.Fprintf(w, "  %-24s (%d,%d)\n", e.Ref, e.X, e.Y)
	}
	printList(w, "undo", r.Undo)
	printList(w, "redo", r.Redo)
	if len(r.Diagnostics) > 0 {
		printList(w, "diagnostics", r.Diagnostics)
	}
}

func printList(w io.Writer, title string, items []string) {
	fmt.Fprintf(w, "%s (%d):\n", title, len(items))
	for _, it := range items {
		fmt.Fprintf(w, "  %s\n", it)
	}
}
