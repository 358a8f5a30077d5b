// Copyright 2026 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package server exposes the latest snapshot over HTTP.
package server

import (
	"bytes"
	"context"
	"image/png"
	"net/http"
	"strconv"
	"time"

	"github.com/MGough/sensorhub/internal/card"
	"github.com/MGough/sensorhub/internal/reading"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// Source provides snapshots. *poller.Poller implements it.
type Source interface {
	Latest() (reading.Snapshot, bool)
	Subscribe() (<-chan reading.Snapshot, func())
}

const (
	defaultCardWidth  = 250
	defaultCardHeight = 122
	maxCardSize       = 2048
	writeWait         = 10 * time.Second
)

// Server serves the HTTP API.
type Server struct {
	src      Source
	router   *gin.Engine
	upgrader websocket.Upgrader
}

// New builds the routes. metrics may be nil.
func New(src Source, metrics http.Handler) *Server {
	gin.SetMode(gin.ReleaseMode)
	s := &Server{
		src:    src,
		router: gin.New(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	s.router.Use(gin.Recovery(), requestLogger)
	s.router.GET("/healthz", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	s.router.GET("/api/readings", s.readings)
	s.router.GET("/ws", s.websocket)
	s.router.GET("/card.png", s.card)
	if metrics != nil {
		s.router.GET("/metrics", gin.WrapH(metrics))
	}
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Run listens on addr until ctx is done.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.router, ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	log.Infof("serving HTTP on %s", addr)
	select {
	case err := <-errc:
		return errors.Wrap(err, "http server")
	case <-ctx.Done():
	}
	shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return errors.Wrap(srv.Shutdown(shutdown), "http shutdown")
}

func requestLogger(c *gin.Context) {
	start := time.Now()
	c.Next()
	log.WithFields(log.Fields{
		"method":   c.Request.Method,
		"path":     c.Request.URL.Path,
		"status":   c.Writer.Status(),
		"duration": time.Since(start),
	}).Debug("http request")
}

func (s *Server) latest(c *gin.Context) (reading.Snapshot, bool) {
	snap, ok := s.src.Latest()
	if !ok {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "no reading yet"})
	}
	return snap, ok
}

func (s *Server) readings(c *gin.Context) {
	if snap, ok := s.latest(c); ok {
		c.JSON(http.StatusOK, snap)
	}
}

func (s *Server) card(c *gin.Context) {
	w, err := sizeParam(c, "w", defaultCardWidth)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h, err := sizeParam(c, "h", defaultCardHeight)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	snap, ok := s.latest(c)
	if !ok {
		return
	}
	img, err := card.Render(snap, w, h)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func sizeParam(c *gin.Context, key string, def int) (int, error) {
	v := c.Query(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 || n > maxCardSize {
		return 0, errors.Errorf("invalid %s %q", key, v)
	}
	return n, nil
}

// websocket sends the latest snapshot and then every new one as JSON.
func (s *Server) websocket(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warnf("websocket upgrade error: %s", err)
		return
	}
	defer conn.Close()

	updates, unsubscribe := s.src.Subscribe()
	defer unsubscribe()

	// Reads only detect the client going away.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	if snap, ok := s.src.Latest(); ok {
		if err := writeJSON(conn, snap); err != nil {
			return
		}
	}
	for {
		select {
		case <-gone:
			return
		case <-c.Request.Context().Done():
			return
		case snap, ok := <-updates:
			if !ok {
				return
			}
			if err := writeJSON(conn, snap); err != nil {
				log.Debugf("websocket write error: %s", err)
				return
			}
		}
	}
}

func writeJSON(conn *websocket.Conn, v interface{}) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(v)
}
