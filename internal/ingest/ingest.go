// Package ingest keeps the lot catalog in sync with an upstream feed.
//
// The park publishes its lot inventory and tier timelines as a JSON
// document; this service polls it on an interval and upserts the rows
// through the store, replacing the offline sync scripts that originally
// seeded the catalog.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"balboa-parking-backend/config"
	"balboa-parking-backend/internal/model"
	"balboa-parking-backend/internal/store"
)

// Service orchestrates the catalog sync process.
type Service struct {
	cfg    *config.Config
	store  store.Store
	client *http.Client
}

// NewService creates and initializes a new ingest service.
func NewService(cfg *config.Config, s store.Store) *Service {
	var transport http.RoundTripper = &http.Transport{}
	if cfg.Ingest.HTTPProxy != "" {
		proxyURL, err := url.Parse(cfg.Ingest.HTTPProxy)
		if err != nil {
			log.Printf("Warning: Invalid proxy URL %q: %v. Ingest will not use a proxy.", cfg.Ingest.HTTPProxy, err)
		} else {
			transport = &http.Transport{Proxy: http.ProxyURL(proxyURL)}
		}
	}

	return &Service{
		cfg:   cfg,
		store: s,
		client: &http.Client{
			Transport: transport,
			Timeout:   30 * time.Second,
		},
	}
}

// Run starts the sync process in a loop.
func (s *Service) Run(ctx context.Context) {
	if !s.cfg.Ingest.Enabled {
		log.Println("Catalog ingest is disabled. Not starting.")
		return
	}
	log.Println("Starting catalog ingest service...")

	s.SyncOnce(ctx)

	timer := time.NewTimer(s.cfg.Ingest.Interval)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Catalog ingest service shutting down.")
			return
		case <-timer.C:
			s.SyncOnce(ctx)
			timer.Reset(s.cfg.Ingest.Interval)
		}
	}
}

// SyncOnce fetches the feed once and persists it.
func (s *Service) SyncOnce(ctx context.Context) {
	log.Println("Executing catalog sync cycle...")

	feed, err := s.fetchFeed(ctx)
	if err != nil {
		log.Printf("Catalog sync failed: %v", err)
		return
	}

	lots, assignments := feed.toModels(time.Now().UTC())
	if err := s.store.ReplaceLots(ctx, lots, assignments); err != nil {
		log.Printf("Catalog sync failed to persist: %v", err)
		return
	}

	log.Printf("Catalog sync complete: %d lots, %d tier assignments", len(lots), len(assignments))
}

func (s *Service) fetchFeed(ctx context.Context) (*Feed, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.Ingest.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build feed request: %w", err)
	}
	for k, v := range s.cfg.Ingest.Headers {
		req.Header.Set(k, v)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("feed returned status %d: %s", resp.StatusCode, body)
	}

	var feed Feed
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("failed to decode feed: %w", err)
	}
	return &feed, nil
}

func (f *Feed) toModels(now time.Time) ([]model.ParkingLot, []model.LotTierAssignment) {
	lots := make([]model.ParkingLot, 0, len(f.Lots))
	var assignments []model.LotTierAssignment

	for _, fl := range f.Lots {
		if fl.ID == "" || fl.Slug == "" {
			log.Printf("Skipping feed lot with missing id/slug: %+v", fl)
			continue
		}
		lots = append(lots, model.ParkingLot{
			ID:            fl.ID,
			Slug:          fl.Slug,
			Name:          fl.Name,
			DisplayName:   fl.DisplayName,
			Address:       fl.Address,
			Lat:           fl.Lat,
			Lng:           fl.Lng,
			Capacity:      fl.Capacity,
			HasEvCharging: fl.HasEvCharging,
			HasAdaSpaces:  fl.HasAdaSpaces,
			HasTramStop:   fl.HasTramStop,
			SpecialRules:  fl.SpecialRules,
			Notes:         fl.Notes,
			CreatedAt:     now,
			UpdatedAt:     now,
		})

		for _, fa := range fl.TierHistory {
			tier := model.LotTier(fa.Tier)
			if !tier.Valid() {
				log.Printf("Skipping tier assignment with invalid tier %d for lot %s", fa.Tier, fl.ID)
				continue
			}
			assignments = append(assignments, model.LotTierAssignment{
				LotID:         fl.ID,
				Tier:          tier,
				EffectiveDate: fa.EffectiveDate,
				EndDate:       fa.EndDate,
			})
		}
	}
	return lots, assignments
}
