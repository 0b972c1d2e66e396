// Command clear-costmap sends a clear request to a running costmapd.
//
//	clear-costmap -op entire
//	clear-costmap -op around -window-x 4 -window-y 2
//	clear-costmap -op except -reset-distance 3
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"net/url"
	"strconv"

	"github.com/ROBOTIS-move/navigation2/internal/httputil"
)

var (
	server        = flag.String("server", "http://localhost:8080", "costmapd base URL")
	op            = flag.String("op", "entire", "Operation: entire, around, or except")
	windowX       = flag.Float64("window-x", 0, "Window width in metres (around)")
	windowY       = flag.Float64("window-y", 0, "Window height in metres (around)")
	resetDistance = flag.Float64("reset-distance", 3, "Preserved region size in metres (except)")
)

func run(client httputil.HTTPClient) error {
	var path string
	form := url.Values{}

	switch *op {
	case "entire":
		path = "/clear_entirely"
	case "around":
		path = "/clear_around_robot"
		form.Set("window_size_x", strconv.FormatFloat(*windowX, 'f', -1, 64))
		form.Set("window_size_y", strconv.FormatFloat(*windowY, 'f', -1, 64))
	case "except":
		path = "/clear_except_region"
		form.Set("reset_distance", strconv.FormatFloat(*resetDistance, 'f', -1, 64))
	default:
		return fmt.Errorf("unknown operation %q", *op)
	}

	resp, err := client.PostForm(*server+path, form)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != 200 {
		return fmt.Errorf("server returned %d: %s", resp.StatusCode, body)
	}
	fmt.Printf("%s", body)
	return nil
}

func main() {
	flag.Parse()
	if err := run(httputil.NewStandardClient(nil)); err != nil {
		log.Fatal(err)
	}
}
