package publish

import (
	"context"
	"sync"

	"github.com/Nixie-Tech-LLC/athan/internal/catalog"
	"github.com/Nixie-Tech-LLC/athan/internal/config"
)

// Service serialises regenerations triggered by the scheduler and the admin
// API and keeps the catalog current.
type Service struct {
	Pipeline *Pipeline
	Base     config.Generation
	Catalog  *catalog.Catalog

	mu sync.Mutex
}

// Regenerate runs the pipeline for year, or for the configured year when year is 0.
func (s *Service) Regenerate(ctx context.Context, year int) (*Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	gen := s.Base
	if year != 0 {
		gen.Year = year
	}
	report, res, err := s.Pipeline.Run(ctx, gen)
	if err != nil {
		return nil, err
	}
	if s.Catalog != nil {
		s.Catalog.Put(res)
	}
	return report, nil
}
