package main

import (
	"context"
	"fmt"
	"io"
)

// reportOptions controls what processMETAR prints
type reportOptions struct {
	noRaw    bool
	noDecode bool
}

// processMETAR fetches (unless raw text was piped in), decodes and displays a METAR
func processMETAR(ctx context.Context, out io.Writer, fetcher MetarFetcher, stationCode, rawInput string, th Thresholds, opts reportOptions) error {
	metar := rawInput
	if metar == "" {
		fmt.Fprintf(out, "Fetching METAR for %s...\n", stationCode)

		var err error
		metar, err = fetcher.FetchMETAR(ctx, stationCode)
		if err != nil {
			return err
		}
	}

	if opts.noDecode {
		fmt.Fprintln(out, metar)
		return nil
	}

	obs, err := Observe(metar, th)
	if err != nil {
		return fmt.Errorf("no data received for %s: %w", stationCode, err)
	}

	fmt.Fprintln(out)
	fmt.Fprint(out, FormatObservation(obs, !opts.noRaw))
	return nil
}
