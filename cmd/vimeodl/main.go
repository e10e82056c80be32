package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/schollz/progressbar/v3"

	"vimeodl/internal/download"
	"vimeodl/internal/logger"
	"vimeodl/internal/models"
	"vimeodl/internal/vimeo"
)

const defaultUserAgent = "vimeodl/1.0"

func main() {
	// 1. Parse command-line arguments
	pageURL := flag.String("u", "", "URL of the vimeo event (required)")
	referer := flag.String("r", "", "Referer header sent with the page request (required)")
	output := flag.String("o", "", "Output filename (required)")
	userAgent := flag.String("A", defaultUserAgent, "User-Agent header sent with every request")
	logLevel := flag.String("L", "info", "Log level (error, warn, info, debug)")
	flag.Parse()

	if *pageURL == "" || *referer == "" || *output == "" {
		flag.Usage()
		os.Exit(2)
	}

	// 2. Initialize logger
	log := logger.NewLogger(*logLevel)

	// 3. Resolve the manifest behind the page
	client := vimeo.NewClient(log, *userAgent)

	configURL, err := client.ResolveConfigURL(*pageURL, *referer)
	if err != nil {
		log.Errorf("Failed to resolve config URL: %v", err)
		os.Exit(1)
	}

	manifestURL, err := client.LocateManifest(configURL)
	if err != nil {
		log.Errorf("Failed to locate manifest: %v", err)
		os.Exit(1)
	}

	variants, err := client.FetchManifest(manifestURL)
	if err != nil {
		log.Errorf("Failed to parse manifest: %v", err)
		os.Exit(1)
	}

	// 4. List variants and select the widest one
	fmt.Printf("Found %d videos\n", len(variants))
	for _, v := range variants {
		fmt.Println(v)
	}

	best := models.BestByWidth(variants)
	if best == nil {
		log.Errorf("Manifest contains no video variants")
		os.Exit(1)
	}
	fmt.Printf("Found best video: %s\n", best)
	log.Infof("Downloading %s of segment data to %s", humanize.Bytes(uint64(best.TotalSize())), *output)

	// 5. Download all segments with a byte progress bar
	bar := progressbar.DefaultBytes(best.TotalSize(), "downloading")
	downloader := download.NewDownloader(client.HttpClient(), log, *userAgent)

	if err := downloader.Download(*output, best, bar); err != nil {
		log.Errorf("Download failed: %v", err)
		os.Exit(1)
	}

	log.Infof("Done: %s", *output)
}
