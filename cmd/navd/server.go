package main

import (
	"log"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"navgraph/geom"
	"navgraph/nav"
	"navgraph/noise"
	"navgraph/planar"
	"navgraph/region"
)

// Server owns the zone set and the current graph. The graph pointer is
// swapped under the mutex on rebuild; handlers grab the pointer with a read
// lock and then work on the frozen graph without further locking.
type Server struct {
	cfg   Config
	zones *region.Set

	mu    sync.RWMutex
	graph *nav.Graph
}

// NewServer loads the zone set named by the configuration and returns a
// server with no graph built yet.
func NewServer(cfg Config) (*Server, error) {
	zones := region.NewSet()
	if cfg.ZoneDir != "" {
		log.Printf("Loading zones from %s...\n", cfg.ZoneDir)
		loaded, err := region.LoadDir(cfg.ZoneDir)
		if err != nil {
			return nil, err
		}
		zones = loaded
		if cfg.DropContained {
			kept := region.FilterContained(zones.Zones())
			if len(kept) < zones.Len() {
				log.Printf("   Dropped %d contained zones\n", zones.Len()-len(kept))
			}
			zones = region.NewSet(kept...)
		}
		if cfg.SimplifyTolerance > 0 {
			if err := zones.Simplify(cfg.SimplifyTolerance); err != nil {
				return nil, err
			}
			log.Printf("   Simplified outlines at tolerance %.3f\n", cfg.SimplifyTolerance)
		}
		log.Printf("✅ %d zones loaded\n", zones.Len())
	} else {
		log.Println("ℹ️  No zone directory configured, nothing is blocked")
	}
	return &Server{cfg: cfg, zones: zones}, nil
}

// Router builds the gin engine with CORS enabled for all origins.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"*"}
	r.Use(cors.New(config))

	r.GET("/health", s.healthHandler)
	r.GET("/zones", s.zonesHandler)
	r.POST("/graph/build", s.buildHandler)
	r.GET("/graph", s.describeHandler)
	r.GET("/nodes/:id", s.nodeHandler)
	r.GET("/arcs/:id", s.arcHandler)
	r.POST("/query/nearest", s.nearestHandler)
	r.POST("/query/within", s.withinHandler)
	r.POST("/query/steer", s.steerHandler)
	return r
}

// Run starts the HTTP server on the configured address.
func (s *Server) Run() error {
	log.Printf("Server starting on %s\n", s.cfg.ListenAddr)
	log.Println("")
	log.Println("Endpoints:")
	log.Println("  GET  /health          - Check server status")
	log.Println("  GET  /zones           - List blocked zones")
	log.Println("  POST /graph/build     - Scatter nodes and wire arcs")
	log.Println("  GET  /graph           - Dump the graph as text")
	log.Println("  GET  /nodes/:id       - Fetch one node")
	log.Println("  GET  /arcs/:id        - Fetch one arc")
	log.Println("  POST /query/nearest   - Nearest nodes to a position")
	log.Println("  POST /query/within    - Nodes within a radius")
	log.Println("  POST /query/steer     - Steering command toward a goal")
	log.Println("")
	log.Println("CORS enabled for all origins")
	log.Println("========================================")
	return s.Router().Run(s.cfg.ListenAddr)
}

func (s *Server) current() *nav.Graph {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.graph
}

// GET /health - server status and graph counts
func (s *Server) healthHandler(c *gin.Context) {
	graph := s.current()

	status := "ready"
	numNodes := 0
	numArcs := 0
	if graph == nil {
		status = "waiting for graph build"
	} else {
		numNodes = graph.NumNodes()
		numArcs = graph.NumArcs()
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   status,
		"hasGraph": graph != nil,
		"numNodes": numNodes,
		"numArcs":  numArcs,
		"numZones": s.zones.Len(),
	})
}

// GET /zones - the blocked zones loaded at startup
func (s *Server) zonesHandler(c *gin.Context) {
	zones := s.zones.Zones()
	views := make([]gin.H, 0, len(zones))
	for _, zone := range zones {
		vertices := 0
		for _, ring := range zone.Polygon {
			vertices += len(ring)
		}
		views = append(views, gin.H{
			"name":     zone.Name,
			"rings":    len(zone.Polygon),
			"vertices": vertices,
		})
	}
	c.JSON(http.StatusOK, gin.H{
		"numZones": len(views),
		"zones":    views,
	})
}

type buildRequest struct {
	NumNodes      int     `json:"numNodes"`      // 0 means the configured default
	ConnectRadius float32 `json:"connectRadius"` // 0 means the configured default
	Seed          int64   `json:"seed"`          // 0 means the configured default
	Force         bool    `json:"force,omitempty"`
}

// POST /graph/build - scatter nodes, wire arcs, freeze
func (s *Server) buildHandler(c *gin.Context) {
	log.Println("========================================")
	log.Println("🗺️  Build graph request received")

	var req buildRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Printf("❌ Invalid request body: %v\n", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	s.mu.RLock()
	alreadyBuilt := s.graph != nil
	s.mu.RUnlock()

	if alreadyBuilt && !req.Force {
		log.Println("⚠️  Graph already built")
		log.Println("   To rebuild, set force:true in the request")
		log.Println("========================================")
		c.JSON(http.StatusConflict, gin.H{
			"success": false,
			"error":   "graph already built",
			"message": "Set 'force: true' to rebuild, or restart the server.",
		})
		return
	}
	if alreadyBuilt && req.Force {
		log.Println("🔄 Force rebuild requested")
	}

	defaults := s.cfg.Build
	if req.NumNodes == 0 {
		req.NumNodes = defaults.NumNodes
	}
	if req.ConnectRadius == 0 {
		req.ConnectRadius = defaults.ConnectRadius
	}
	if req.Seed == 0 {
		req.Seed = defaults.Seed
	}
	bounds := nav.Bounds{
		MinX: defaults.MinX, MinZ: defaults.MinZ,
		MaxX: defaults.MaxX, MaxZ: defaults.MaxZ,
	}

	log.Printf("   Nodes: %d\n", req.NumNodes)
	log.Printf("   Connect radius: %.2f\n", req.ConnectRadius)
	log.Printf("   Seed: %d\n", req.Seed)
	log.Printf("   Blocked zones: %d\n", s.zones.Len())

	start := time.Now()
	graph := nav.New()
	rng := rand.New(rand.NewSource(req.Seed))

	placed, err := graph.Scatter(req.NumNodes, bounds, rng, s.zones)
	if err != nil {
		log.Printf("❌ Node placement failed: %v\n", err)
		log.Println("========================================")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	terrain := noise.NewPerlin(req.Seed)
	added, skipped, err := graph.ConnectWithinRadius(req.ConnectRadius, nav.ConnectOptions{
		Bidirectional: defaults.Bidirectional,
		Blocked:       s.zones,
		Cost:          terrainCost(terrain, defaults.NoiseAmplitude, defaults.NoiseScale),
	})
	if err != nil {
		log.Printf("❌ Wiring failed: %v\n", err)
		log.Println("========================================")
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	graph.Freeze()

	s.mu.Lock()
	s.graph = graph
	s.mu.Unlock()

	elapsed := time.Since(start)
	log.Printf("✅ Graph built: %d nodes, %d arcs (%d connections skipped) in %v\n",
		len(placed), added, skipped, elapsed)
	log.Println("========================================")

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"numNodes":  len(placed),
		"numArcs":   added,
		"skipped":   skipped,
		"elapsedMs": elapsed.Milliseconds(),
	})
}

// terrainCost prices an arc as its horizontal length scaled by terrain
// noise sampled at the arc midpoint. Amplitude below one keeps every cost
// strictly positive.
func terrainCost(src noise.Source, amplitude, scale float64) nav.CostFunc {
	amp := float32(amplitude)
	span := float32(scale)
	return func(from, to nav.Node) float32 {
		length := planar.FromVec3(to.Position.Sub(from.Position)).Length()
		mid := from.Position.Add(to.Position).Scale(0.5)
		sample := src.SampleNormalized(mid.X/span, mid.Z/span)
		return length * (1 + amp*sample)
	}
}

// GET /graph - line-oriented dump of the current graph
func (s *Server) describeHandler(c *gin.Context) {
	graph := s.current()
	if graph == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "graph not built. Call /graph/build first"})
		return
	}
	var sb strings.Builder
	if err := graph.Describe(&sb); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.String(http.StatusOK, sb.String())
}

// GET /nodes/:id - one node by handle
func (s *Server) nodeHandler(c *gin.Context) {
	graph := s.current()
	if graph == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "graph not built. Call /graph/build first"})
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid node id"})
		return
	}
	node, err := graph.Node(nav.NodeID(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	arcs, _ := graph.ArcsFrom(node.ID)
	if arcs == nil {
		arcs = []nav.ArcID{}
	}
	c.JSON(http.StatusOK, gin.H{
		"id":      node.ID,
		"label":   node.Label(),
		"x":       node.Position.X,
		"y":       node.Position.Y,
		"z":       node.Position.Z,
		"outArcs": arcs,
	})
}

// GET /arcs/:id - one arc by handle
func (s *Server) arcHandler(c *gin.Context) {
	graph := s.current()
	if graph == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "graph not built. Call /graph/build first"})
		return
	}
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid arc id"})
		return
	}
	arc, err := graph.Arc(nav.ArcID(id))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	description, _ := graph.DescribeArc(nav.ArcID(id))
	c.JSON(http.StatusOK, gin.H{
		"from":        arc.From,
		"to":          arc.To,
		"cost":        arc.Cost,
		"directionX":  arc.StartDirection.X,
		"directionY":  arc.StartDirection.Y,
		"directionZ":  arc.StartDirection.Z,
		"description": description,
	})
}

type nearestRequest struct {
	X float32 `json:"x"`
	Y float32 `json:"y"`
	Z float32 `json:"z"`
	K int     `json:"k"` // 0 means 1
}

// POST /query/nearest - closest nodes to a position
func (s *Server) nearestHandler(c *gin.Context) {
	graph := s.current()
	if graph == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "graph not built. Call /graph/build first"})
		return
	}
	var req nearestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if req.K == 0 {
		req.K = 1
	}
	p := geom.V(req.X, req.Y, req.Z)
	ids, err := graph.NearestNodes(p, req.K)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"nodes":   nodeViews(graph, p, ids),
	})
}

type withinRequest struct {
	X      float32 `json:"x"`
	Y      float32 `json:"y"`
	Z      float32 `json:"z"`
	Radius float32 `json:"radius"`
}

// POST /query/within - all nodes inside a horizontal radius
func (s *Server) withinHandler(c *gin.Context) {
	graph := s.current()
	if graph == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "graph not built. Call /graph/build first"})
		return
	}
	var req withinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	p := geom.V(req.X, req.Y, req.Z)
	ids, err := graph.NodesWithin(p, req.Radius)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"numNodes": len(ids),
		"nodes":    nodeViews(graph, p, ids),
	})
}

// nodeViews renders nodes with their horizontal distance from the query
// position.
func nodeViews(graph *nav.Graph, p geom.Vec3, ids []nav.NodeID) []gin.H {
	views := make([]gin.H, 0, len(ids))
	for _, id := range ids {
		node, err := graph.Node(id)
		if err != nil {
			continue
		}
		views = append(views, gin.H{
			"id":       node.ID,
			"label":    node.Label(),
			"x":        node.Position.X,
			"y":        node.Position.Y,
			"z":        node.Position.Z,
			"distance": planar.FromVec3(node.Position.Sub(p)).Length(),
		})
	}
	return views
}

type steerRequest struct {
	HeadingX float32 `json:"headingX"`
	HeadingZ float32 `json:"headingZ"`
	GoalX    float32 `json:"goalX"`
	GoalZ    float32 `json:"goalZ"`
	MaxTurn  float32 `json:"maxTurn"`  // radians from the heading, 0 means unlimited
	MaxSpeed float32 `json:"maxSpeed"` // command length cap, 0 means unlimited
}

// POST /query/steer - steering command toward a goal direction
func (s *Server) steerHandler(c *gin.Context) {
	var req steerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	heading := planar.New(req.HeadingX, req.HeadingZ)
	goal := planar.New(req.GoalX, req.GoalZ)

	directionError, err := heading.DirectionError(goal)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// The turn limit is relative to the heading, so the goal is clamped in
	// the heading's frame and rotated back.
	command := goal
	if req.MaxTurn > 0 {
		reference := heading.Azimuth()
		relative, err := command.Rotate(-reference).ClampDirection(req.MaxTurn)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		command = relative.Rotate(reference)
	}
	if req.MaxSpeed > 0 {
		clamped, err := command.ClampLength(req.MaxSpeed)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		command = clamped
	}

	c.JSON(http.StatusOK, gin.H{
		"directionError": directionError,
		"goalAzimuth":    goal.Azimuth(),
		"cardinal":       cardinalName(goal.Cardinalize()),
		"commandX":       command.X,
		"commandZ":       command.Z,
	})
}

// cardinalName labels the cardinal direction a vector snaps to.
func cardinalName(v planar.VectorXZ) string {
	switch {
	case v.IsZero():
		return "none"
	case v.X > 0:
		return "north"
	case v.X < 0:
		return "south"
	case v.Z > 0:
		return "east"
	default:
		return "west"
	}
}
