package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"trackerdash/internal/domain"
	"trackerdash/internal/mocks"
	"trackerdash/pkg/logger"
)

func newLinksService() (*LinksService, *mocks.MockTrackerAPIClient, *mocks.MockLinksAPIClient) {
	trackers := new(mocks.MockTrackerAPIClient)
	links := new(mocks.MockLinksAPIClient)
	return NewLinksService(trackers, links, logger.Discard()), trackers, links
}

func TestLinksService_ListApps(t *testing.T) {
	service, trackers, _ := newLinksService()
	trackers.On("ListTrackers", mock.Anything).Return([]domain.AppTracker{{ID: "t1", AppName: "Demo"}}, nil)

	apps, err := service.ListApps(context.Background())

	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, "Demo", apps[0].Name)
	assert.Equal(t, domain.AppStatusActive, apps[0].Status)
}

func TestLinksService_CreateTrimsName(t *testing.T) {
	service, _, links := newLinksService()
	links.On("CreateTrackingLink", mock.Anything, "t1", domain.CreateTrackingLinkRequest{LinkName: "spring"}).
		Return(&domain.TrackingLink{ID: "l1", LinkName: "spring"}, nil).Once()

	link, err := service.Create(context.Background(), "t1", domain.CreateTrackingLinkRequest{LinkName: "  spring "})

	require.NoError(t, err)
	assert.Equal(t, "l1", link.ID)
	links.AssertExpectations(t)
}

func TestLinksService_CreateRejectsBlankName(t *testing.T) {
	service, _, links := newLinksService()

	_, err := service.Create(context.Background(), "t1", domain.CreateTrackingLinkRequest{LinkName: "   "})

	assert.ErrorIs(t, err, domain.ErrInvalidLink)
	links.AssertNotCalled(t, "CreateTrackingLink", mock.Anything, mock.Anything, mock.Anything)
}

func TestLinksService_UpdateRejectsEmpty(t *testing.T) {
	service, _, _ := newLinksService()

	_, err := service.Update(context.Background(), "l1", domain.UpdateTrackingLinkRequest{})

	assert.ErrorIs(t, err, domain.ErrEmptyUpdate)
}

func TestLinksService_Update(t *testing.T) {
	service, _, links := newLinksService()
	links.On("UpdateTrackingLink", mock.Anything, "l1", mock.MatchedBy(func(req domain.UpdateTrackingLinkRequest) bool {
		return req.LinkName != nil && *req.LinkName == "summer"
	})).Return(&domain.TrackingLink{ID: "l1", LinkName: "summer"}, nil).Once()

	name := " summer"
	link, err := service.Update(context.Background(), "l1", domain.UpdateTrackingLinkRequest{LinkName: &name})

	require.NoError(t, err)
	assert.Equal(t, "summer", link.LinkName)
	links.AssertExpectations(t)
}

func TestLinksService_DeletePropagatesBackendError(t *testing.T) {
	service, _, links := newLinksService()
	links.On("DeleteTrackingLink", mock.Anything, "l1").Return(&domain.APIError{StatusCode: 404, Message: "not found"})

	err := service.Delete(context.Background(), "l1")

	var apiErr *domain.APIError
	assert.ErrorAs(t, err, &apiErr)
}
