// Package viewer serves rendered episode frames over HTTP so a level
// designer can inspect what the environment and a policy are doing.
package viewer

import (
	"image/png"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"golang.org/x/exp/rand"

	"pcgrl/env"
	"pcgrl/render"
)

// Server rolls out seeded random episodes on demand. Because reset and
// step are pure, each request is independent and reproducible.
type Server struct {
	env *env.PCGRLEnv
}

func NewServer(params env.Params) (*Server, error) {
	e, err := env.New(params)
	if err != nil {
		return nil, err
	}
	return &Server{env: e}, nil
}

// Routes exposes:
//
//	GET /frame?seed=S&steps=K  -> PNG of the map after K random steps
//	GET /state?seed=S&steps=K  -> JSON summary of the same rollout
func (s *Server) Routes() *gin.Engine {
	r := gin.Default()
	r.GET("/frame", s.handleFrame)
	r.GET("/state", s.handleState)
	return r
}

// Run blocks serving on the given address.
func (s *Server) Run(addr string) error {
	return s.Routes().Run(addr)
}

func (s *Server) rollout(seed uint64, steps int) *env.State {
	rng := rand.New(rand.NewSource(seed))
	_, st := s.env.Reset(rng)
	if steps > s.env.MaxSteps() {
		steps = s.env.MaxSteps()
	}
	for i := 0; i < steps; i++ {
		_, st, _, _, _ = s.env.Step(rng, st, s.env.SampleAction(rng))
	}
	return st
}

func (s *Server) handleFrame(c *gin.Context) {
	seed, steps, ok := rolloutParams(c)
	if !ok {
		return
	}
	st := s.rollout(seed, steps)
	img := render.Map(st, render.DefaultTileSize)
	c.Writer.Header().Set("Content-Type", "image/png")
	c.Status(http.StatusOK)
	png.Encode(c.Writer, img)
}

func (s *Server) handleState(c *gin.Context) {
	seed, steps, ok := rolloutParams(c)
	if !ok {
		return
	}
	st := s.rollout(seed, steps)
	// []grid.Tile would serialize as base64, so widen to ints
	cells := make([]int, len(st.Map.Cells))
	for i, t := range st.Map.Cells {
		cells[i] = int(t)
	}
	c.JSON(http.StatusOK, gin.H{
		"step_idx":     st.StepIdx,
		"done":         st.Done,
		"reward":       st.Reward,
		"stats":        st.ProbState.Stats,
		"map":          cells,
		"static_cells": st.Static.CountTrue(),
	})
}

func rolloutParams(c *gin.Context) (seed uint64, steps int, ok bool) {
	seed, err := strconv.ParseUint(c.DefaultQuery("seed", "0"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid seed"})
		return 0, 0, false
	}
	steps, err = strconv.Atoi(c.DefaultQuery("steps", "0"))
	if err != nil || steps < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid steps"})
		return 0, 0, false
	}
	return seed, steps, true
}
