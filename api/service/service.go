// Package service glues the http handlers to the dao and owns the
// background job manager.
package service

import (
	"context"
	"time"

	"vodplace/api/dao"
	"vodplace/config"
)

// pollInterval paces the pending job sweep when nothing wakes it up.
const pollInterval = 3 * time.Second

// Service is the struct for api server
type Service struct {
	cfg *config.ServerConfig
	d   *dao.Dao

	ctx    context.Context
	cancel context.CancelFunc
	wake   chan struct{}
	dead   chan struct{}
}

// New create new service of vodplace
func New(cfg *config.ServerConfig) *Service {
	s := &Service{
		cfg:  cfg,
		d:    dao.New(cfg),
		wake: make(chan struct{}, 1),
		dead: make(chan struct{}),
	}
	s.ctx, s.cancel = context.WithCancel(context.Background())
	go s.jobManager()
	return s
}

// Close stops the job manager and releases the store.
func (s *Service) Close() error {
	s.cancel()
	<-s.dead
	return s.d.Close()
}
