package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/iconkit/iconkit/internal/config"
	"github.com/iconkit/iconkit/internal/icons"
)

var (
	version string
	build   string

	iconArg    = flag.String("i", "", "Name of the outline icon to fetch and normalize.")
	outArg     = flag.String("o", "", "Write the output to this file instead of stdout.")
	baseArg    = flag.String("base", "", "Override the icon source base URL.")
	savePtr    = flag.Bool("save", false, "Persist the -base override to the settings file.")
	debugPtr   = flag.Bool("debug", false, "Enable debug logging to stderr.")
	versionPtr = flag.Bool("version", false, "Print version.")
)

func main() {
	flag.Parse()

	if *versionPtr {
		if version == "" {
			version = "dev"
		}
		fmt.Printf("iconkit version %s, build %s\n", version, build)
		os.Exit(0)
	}

	if *iconArg == "" {
		flag.Usage()
		os.Exit(1)
	}

	conf, err := config.GetAppConfig()
	check(err)

	base := conf.Source
	if *baseArg != "" {
		base = *baseArg

		if *savePtr {
			conf.Source = base
			check(conf.SaveAppConfig())
		}
	}

	c := &icons.Client{
		BaseURL: base,
		Fetcher: icons.NewHTTPFetcher(conf.RetryMax),
	}

	if *debugPtr {
		c.LogOutput = os.Stderr
	}

	out, err := c.FetchOutline(context.Background(), *iconArg)
	check(err)

	if *outArg != "" {
		check(os.WriteFile(*outArg, []byte(out+"\n"), 0644))
		return
	}

	fmt.Println(out)
}

func check(err error) {
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Encountered error(s): %s\n", err)
		os.Exit(1)
	}
}
