// Command mpldcolor demonstrates wiring a config file and a slice of
// pre-ingested layer records through pipeline.Run. It performs no
// GDSII reading or writing of its own — that I/O, and any real CLI
// flag handling, are external to this module (spec §1).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/litho-mpld/mpld/config"
	"github.com/litho-mpld/mpld/pipeline"
	"github.com/litho-mpld/mpld/report"
)

func main() {
	configPath := flag.String("config", "mpld.yaml", "path to the run configuration")
	stitchEnabled := flag.Bool("stitch", true, "run the stitch pre-pass before coloring")
	flag.Parse()

	if err := run(*configPath, *stitchEnabled); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run loads cfg and colors whatever records the caller's ingestion
// front-end produced. A real binary would populate records by parsing
// the GDSII named in cfg.InputPath; this demo keeps that parsing out
// of scope and works from an empty record set, exercising only the
// wiring between config, pipeline, and the report renderer.
func run(configPath string, stitchEnabled bool) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	var records []pipeline.LayerRecord

	summary, err := pipeline.Run(context.Background(), cfg, records, stitchEnabled)
	if err != nil {
		return err
	}

	return report.WriteText(os.Stdout, summary)
}
