package api

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ROBOTIS-move/navigation2/internal/clearing"
	"github.com/ROBOTIS-move/navigation2/internal/costmap"
	"github.com/ROBOTIS-move/navigation2/internal/monitoring"
	"github.com/ROBOTIS-move/navigation2/internal/testutil"
)

func init() {
	monitoring.SetLogger(nil)
}

func newTestServer() (*Server, *costmap.CostmapLayer, *clearing.StaticPoseProvider) {
	newGrid := func() *costmap.Costmap2D {
		g := costmap.NewCostmap2D(10, 10, 1.0, 0, 0, 255)
		for my := 0; my < 10; my++ {
			for mx := 0; mx < 10; mx++ {
				g.SetCost(mx, my, 100)
			}
		}
		return g
	}
	obstacle := costmap.NewCostmapLayer("obstacle_layer", newGrid())
	lc := costmap.NewLayeredCostmap(newGrid())
	lc.AddPlugin(obstacle)

	poses := clearing.NewStaticPoseProvider()
	svc := clearing.NewService(lc, poses, clearing.Params{
		ClearableLayers: []string{"obstacle_layer"},
	})
	return NewServer(svc, poses), obstacle, poses
}

func TestClearEntirelyEndpoint(t *testing.T) {
	srv, obstacle, _ := newTestServer()

	rec := testutil.NewTestRecorder()
	srv.ServeMux().ServeHTTP(rec, testutil.NewFormRequest("/clear_entirely", url.Values{}))

	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)
	if obstacle.Grid().Cost(5, 5) != 255 {
		t.Fatal("layer not cleared")
	}
}

func TestClearEndpoints_MethodChecks(t *testing.T) {
	srv, _, _ := newTestServer()
	mux := srv.ServeMux()

	for _, path := range []string{"/clear_entirely", "/clear_around_robot", "/clear_except_region", "/pose"} {
		rec := testutil.NewTestRecorder()
		mux.ServeHTTP(rec, testutil.NewTestRequest(http.MethodGet, path))
		testutil.AssertStatusCode(t, rec.Code, http.StatusMethodNotAllowed)
	}
}

func TestClearExceptRegionEndpoint(t *testing.T) {
	srv, obstacle, poses := newTestServer()
	poses.SetPose(clearing.Pose{X: 5, Y: 5})

	rec := testutil.NewTestRecorder()
	srv.ServeMux().ServeHTTP(rec, testutil.NewFormRequest("/clear_except_region",
		url.Values{"reset_distance": {"2"}}))

	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)
	g := obstacle.Grid()
	if g.Cost(4, 4) != 100 || g.Cost(0, 0) != 255 {
		t.Fatalf("unexpected grid state: centre %d, corner %d", g.Cost(4, 4), g.Cost(0, 0))
	}
}

func TestClearExceptRegionEndpoint_NoPose(t *testing.T) {
	srv, obstacle, _ := newTestServer()
	before := obstacle.Grid().Snapshot()

	rec := testutil.NewTestRecorder()
	srv.ServeMux().ServeHTTP(rec, testutil.NewFormRequest("/clear_except_region",
		url.Values{"reset_distance": {"2"}}))

	testutil.AssertStatusCode(t, rec.Code, http.StatusServiceUnavailable)
	if diff := cmp.Diff(before, obstacle.Grid().Snapshot()); diff != "" {
		t.Fatalf("grid mutated on pose failure:\n%s", diff)
	}
}

func TestClearAroundRobotEndpoint_BadParams(t *testing.T) {
	srv, _, _ := newTestServer()
	mux := srv.ServeMux()

	tests := []url.Values{
		{},
		{"window_size_x": {"2"}},
		{"window_size_x": {"potato"}, "window_size_y": {"2"}},
	}
	for _, form := range tests {
		rec := testutil.NewTestRecorder()
		mux.ServeHTTP(rec, testutil.NewFormRequest("/clear_around_robot", form))
		testutil.AssertStatusCode(t, rec.Code, http.StatusBadRequest)
	}
}

func TestPoseUpdateRoundTrip(t *testing.T) {
	srv, _, poses := newTestServer()

	rec := testutil.NewTestRecorder()
	srv.ServeMux().ServeHTTP(rec, testutil.NewFormRequest("/pose",
		url.Values{"x": {"1.5"}, "y": {"-2"}, "yaw": {"0.5"}}))
	testutil.AssertStatusCode(t, rec.Code, http.StatusOK)

	pose, err := poses.GetRobotPose()
	testutil.AssertNoError(t, err)
	if pose.X != 1.5 || pose.Y != -2 || pose.Yaw != 0.5 {
		t.Fatalf("pose = %+v", pose)
	}
}
