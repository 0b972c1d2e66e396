// Command costmapd runs a layered costmap with the clearing operations
// exposed over HTTP. It wires demo obstacle/inflation/static layers, a
// settable pose provider, and the clearing service.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/paulmach/orb"

	"github.com/ROBOTIS-move/navigation2/internal/api"
	"github.com/ROBOTIS-move/navigation2/internal/clearing"
	"github.com/ROBOTIS-move/navigation2/internal/config"
	"github.com/ROBOTIS-move/navigation2/internal/costmap"
)

var (
	listen     = flag.String("listen", ":8080", "Listen address")
	configPath = flag.String("config", config.DefaultConfigPath, "Path to clearing config JSON")
	plotDir    = flag.String("plot-dir", "", "If set, write costmap heatmap PNGs to this directory")
)

// grid dimensions for the demo map: 20x20m at 5cm resolution, centred on
// the world origin.
const (
	gridCells      = 400
	gridResolution = 0.05
	gridOrigin     = -10.0
)

func newGrid() *costmap.Costmap2D {
	return costmap.NewCostmap2D(gridCells, gridCells, gridResolution, gridOrigin, gridOrigin, costmap.NoInformation)
}

// simulateObstacleUpdates periodically paints a small obstacle patch into
// the layer under its own lock, standing in for a sensor-update pipeline
// running concurrently with clear requests.
func simulateObstacleUpdates(ctx context.Context, layer *costmap.CostmapLayer) {
	ticker := time.NewTicker(500 * time.Millisecond)
	defer ticker.Stop()

	patch := orb.Ring{{1, 1}, {2, 1}, {2, 2}, {1, 2}}
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			layer.Mutex().Lock()
			layer.Grid().SetConvexPolygonCost(patch, 254)
			layer.Mutex().Unlock()
		}
	}
}

func main() {
	flag.Parse()

	cfg, err := config.LoadClearingConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load clearing config: %v", err)
	}

	obstacle := costmap.NewCostmapLayer("obstacle_layer", newGrid())
	inflation := costmap.NewCostmapLayer("inflation_layer", newGrid())
	static := costmap.NewCostmapLayer("static_layer", newGrid())

	layered := costmap.NewLayeredCostmap(newGrid())
	layered.AddPlugin(static)
	layered.AddPlugin(obstacle)
	layered.AddPlugin(inflation)

	poses := clearing.NewStaticPoseProvider()
	poses.SetPose(clearing.Pose{})

	svc := clearing.NewService(layered, poses, clearing.Params{
		ClearableLayers: cfg.GetClearableLayers(),
		ForwardExtent:   cfg.GetForwardExtentMeters(),
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go simulateObstacleUpdates(ctx, obstacle)

	if *plotDir != "" {
		plotter := costmap.NewPlotter(*plotDir, "combined")
		if file, err := plotter.SavePNG(layered.Combined(), "startup"); err != nil {
			log.Printf("failed to plot combined costmap: %v", err)
		} else {
			log.Printf("wrote costmap heatmap to %s", file)
		}
	}

	server := &http.Server{
		Addr:    *listen,
		Handler: api.NewServer(svc, poses).ServeMux(),
	}

	go func() {
		log.Printf("costmapd listening on %s (clearable layers: %v)", *listen, cfg.GetClearableLayers())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server error: %v", err)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Print("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown error: %v", err)
	}
}
