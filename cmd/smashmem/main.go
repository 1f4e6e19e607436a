package main

/*
  smashmem extracts confident, non-redundant split-read hits from a
  name-grouped BAM or SAM file. For more information, see
  github.com/grailbio/smashmem/splitread/doc.go

  Usage:

    smashmem [flags] in.bam min-match min-ratio hit-window min-excess-mappability
*/

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/grailbio/base/grail"
	"github.com/grailbio/base/log"
	"github.com/grailbio/base/vcontext"
	"github.com/grailbio/smashmem/splitread"
)

var (
	outputPath  = flag.String("output", "", "Output table filename, stdout if empty")
	metricsFile = flag.String("metrics", "", "Output metrics file")
)

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s [flags] in.bam min-match min-ratio hit-window min-excess-mappability\n", os.Args[0])
	flag.PrintDefaults()
}

func parseOpts(args []string) (splitread.Opts, error) {
	opts := splitread.Opts{
		OutputPath:  *outputPath,
		MetricsFile: *metricsFile,
	}
	if len(args) != 5 {
		return opts, fmt.Errorf("expected 5 positional arguments, got %d", len(args))
	}
	opts.Input = args[0]
	var err error
	if opts.MinMatch, err = strconv.Atoi(args[1]); err != nil {
		return opts, fmt.Errorf("min-match: %v", err)
	}
	if opts.MinRatio, err = strconv.ParseFloat(args[2], 64); err != nil {
		return opts, fmt.Errorf("min-ratio: %v", err)
	}
	if opts.HitWindow, err = strconv.Atoi(args[3]); err != nil {
		return opts, fmt.Errorf("hit-window: %v", err)
	}
	if opts.MinExcessMappability, err = strconv.Atoi(args[4]); err != nil {
		return opts, fmt.Errorf("min-excess-mappability: %v", err)
	}
	return opts, nil
}

func main() {
	flag.Usage = usage
	shutdown := grail.Init()
	defer shutdown()

	opts, err := parseOpts(flag.Args())
	if err != nil {
		usage()
		log.Fatalf("%v", err)
	}

	ctx := vcontext.Background()
	if _, err := splitread.SetupAndSmash(ctx, &opts); err != nil {
		log.Fatalf(err.Error())
	}
	log.Debug.Printf("exiting")
}
