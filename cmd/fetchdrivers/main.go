// Binary fetchdrivers downloads the browsers and WebDriver servers used by the
// browser tests into the drivers directory.
package main

import (
	"context"
	"flag"
	"os"

	"github.com/golang/glog"

	"github.com/wanmail/selenium-elements/internal/download"
)

const (
	// desiredChromeBuild is a known Chromium snapshot in the
	// chromium-browser-snapshots/Linux_x64 bucket. Update it periodically.
	desiredChromeBuild = "664981"

	// desiredFirefoxVersion is a known Firefox release. Update it periodically.
	desiredFirefoxVersion = "68.0.1"
)

var (
	dir              = flag.String("dir", "drivers", "The directory to download into.")
	downloadBrowsers = flag.Bool("download_browsers", true, "If true, download the Firefox and Chrome browsers.")
	downloadLatest   = flag.Bool("download_latest", false, "If true, download the latest versions.")
)

func main() {
	flag.Parse()
	ctx := context.Background()

	chromeBuild, firefoxVersion := desiredChromeBuild, desiredFirefoxVersion
	if *downloadLatest {
		chromeBuild, firefoxVersion = "", ""
	}

	var files []download.File
	chromium, err := download.Chromium(ctx, chromeBuild)
	if err != nil {
		glog.Errorf("Unable to find Chromium: %v", err)
	}
	files = append(files, chromium...)
	files = append(files, download.Firefox(firefoxVersion))

	gecko, err := download.GeckoDriver(ctx, nil)
	if err != nil {
		glog.Errorf("Unable to find the latest geckodriver: %v", err)
	} else {
		files = append(files, gecko)
	}

	if err := os.MkdirAll(*dir, 0755); err != nil {
		glog.Exitf("Unable to create %q: %v", *dir, err)
	}
	f := &download.Fetcher{Dir: *dir, Browsers: *downloadBrowsers, Extract: true}
	if err := f.Fetch(ctx, files); err != nil {
		glog.Exit(err)
	}
}
