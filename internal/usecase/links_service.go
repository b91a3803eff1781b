package usecase

import (
	"context"
	"fmt"
	"strings"

	"trackerdash/internal/domain"
	"trackerdash/pkg/logger"
)

// LinksService manages trackers and their tracking links on the backend
type LinksService struct {
	trackers domain.TrackerAPIClient
	links    domain.LinksAPIClient
	logger   *logger.Logger
}

func NewLinksService(trackers domain.TrackerAPIClient, links domain.LinksAPIClient, logger *logger.Logger) *LinksService {
	return &LinksService{
		trackers: trackers,
		links:    links,
		logger:   logger,
	}
}

// ListApps returns the account's trackers as dashboard apps
func (s *LinksService) ListApps(ctx context.Context) ([]domain.App, error) {
	trackers, err := s.trackers.ListTrackers(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list trackers: %w", err)
	}

	apps := make([]domain.App, 0, len(trackers))
	for _, tracker := range trackers {
		apps = append(apps, tracker.ToApp())
	}
	return apps, nil
}

func (s *LinksService) List(ctx context.Context, trackerID string) ([]domain.TrackingLink, error) {
	links, err := s.links.ListTrackingLinks(ctx, trackerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tracking links: %w", err)
	}
	return links, nil
}

func (s *LinksService) Create(ctx context.Context, trackerID string, req domain.CreateTrackingLinkRequest) (*domain.TrackingLink, error) {
	req.LinkName = strings.TrimSpace(req.LinkName)
	if req.LinkName == "" {
		return nil, fmt.Errorf("%w: link name is blank", domain.ErrInvalidLink)
	}

	link, err := s.links.CreateTrackingLink(ctx, trackerID, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create tracking link: %w", err)
	}

	s.logger.WithContext(ctx).WithFields(map[string]any{
		"tracker_id": trackerID,
		"link_id":    link.ID,
	}).Info("Tracking link created")
	return link, nil
}

func (s *LinksService) Update(ctx context.Context, linkID string, req domain.UpdateTrackingLinkRequest) (*domain.TrackingLink, error) {
	if req.IsEmpty() {
		return nil, domain.ErrEmptyUpdate
	}
	if req.LinkName != nil {
		name := strings.TrimSpace(*req.LinkName)
		if name == "" {
			return nil, fmt.Errorf("%w: link name is blank", domain.ErrInvalidLink)
		}
		req.LinkName = &name
	}

	link, err := s.links.UpdateTrackingLink(ctx, linkID, req)
	if err != nil {
		return nil, fmt.Errorf("failed to update tracking link: %w", err)
	}

	s.logger.WithContext(ctx).WithField("link_id", linkID).Info("Tracking link updated")
	return link, nil
}

func (s *LinksService) Delete(ctx context.Context, linkID string) error {
	if err := s.links.DeleteTrackingLink(ctx, linkID); err != nil {
		return fmt.Errorf("failed to delete tracking link: %w", err)
	}

	s.logger.WithContext(ctx).WithField("link_id", linkID).Info("Tracking link deleted")
	return nil
}
