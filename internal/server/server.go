package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/san-kum/synapse/internal/config"
	"github.com/san-kum/synapse/internal/content"
	"github.com/san-kum/synapse/internal/export"
	"github.com/san-kum/synapse/internal/inbox"
	"github.com/san-kum/synapse/internal/runner"
)

const (
	defaultFrames = 60
	maxFrames     = 1000
	minSize       = 50
	maxSize       = 2000
)

type Config struct {
	// Preset is used by /field.svg when the request names none.
	Preset string
	// Frames is the default number of frames simulated per snapshot.
	Frames int
}

type server struct {
	profile *content.Profile
	inbox   *inbox.Store
	cfg     Config
}

// New builds the HTTP handler. A nil inbox disables the contact endpoint.
func New(profile *content.Profile, box *inbox.Store, cfg Config) *gin.Engine {
	if cfg.Preset == "" {
		cfg.Preset = "classic"
	}
	if cfg.Frames <= 0 {
		cfg.Frames = defaultFrames
	}
	s := &server{profile: profile, inbox: box, cfg: cfg}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.SetHTMLTemplate(pageTemplate)

	r.GET("/", s.index)
	r.GET("/healthz", s.healthz)
	r.GET("/field.svg", s.fieldSVG)

	api := r.Group("/api")
	api.GET("/profile", s.getProfile)
	api.POST("/contact", s.contact)

	return r
}

func (s *server) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", gin.H{
		"Profile":  s.profile,
		"FieldURL": "/field.svg?w=1280&h=720",
	})
}

func (s *server) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *server) getProfile(c *gin.Context) {
	c.JSON(http.StatusOK, s.profile)
}

func queryInt(c *gin.Context, key string, def, lo, hi int) (int, error) {
	raw := c.Query(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s: not a number: %q", key, raw)
	}
	if v < lo || v > hi {
		return 0, fmt.Errorf("%s: %d outside [%d, %d]", key, v, lo, hi)
	}
	return v, nil
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// fieldSVG simulates a fresh field per request and returns its last frame.
func (s *server) fieldSVG(c *gin.Context) {
	w, err := queryInt(c, "w", config.DefaultWidth, minSize, maxSize)
	if err != nil {
		badRequest(c, err)
		return
	}
	h, err := queryInt(c, "h", config.DefaultHeight, minSize, maxSize)
	if err != nil {
		badRequest(c, err)
		return
	}
	frames, err := queryInt(c, "frames", s.cfg.Frames, 1, maxFrames)
	if err != nil {
		badRequest(c, err)
		return
	}
	var seed int64
	if raw := c.Query("seed"); raw != "" {
		if seed, err = strconv.ParseInt(raw, 10, 64); err != nil {
			badRequest(c, fmt.Errorf("seed: not a number: %q", raw))
			return
		}
	}
	preset := c.DefaultQuery("preset", s.cfg.Preset)
	fc := config.GetPreset(preset)
	if fc == nil {
		badRequest(c, fmt.Errorf("unknown preset: %s", preset))
		return
	}

	svg := export.NewSVGSurface(float64(w), float64(h))
	_, err = runner.New().Run(c.Request.Context(), runner.Config{
		Width:  float64(w),
		Height: float64(h),
		Frames: frames,
		Seed:   seed,
		Params: fc.Params(),
	}, svg)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/svg+xml", []byte(svg.String()))
}

type contactRequest struct {
	Name    string `form:"name" json:"name"`
	Email   string `form:"email" json:"email"`
	Message string `form:"message" json:"message"`
}

func (s *server) contact(c *gin.Context) {
	if s.inbox == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "contact form is disabled"})
		return
	}

	var req contactRequest
	if err := c.ShouldBind(&req); err != nil {
		badRequest(c, err)
		return
	}

	id, err := s.inbox.Add(c.Request.Context(), inbox.Message{
		Name:  req.Name,
		Email: req.Email,
		Body:  req.Message,
	})
	switch {
	case errors.Is(err, inbox.ErrEmptyField), errors.Is(err, inbox.ErrInvalidEmail):
		badRequest(c, err)
		return
	case err != nil:
		log.Printf("contact: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not store message"})
		return
	}

	log.Printf("contact: stored message %d", id)
	c.JSON(http.StatusCreated, gin.H{
		"id":      id,
		"success": "Thank you for your message! I'll get back to you soon.",
	})
}
