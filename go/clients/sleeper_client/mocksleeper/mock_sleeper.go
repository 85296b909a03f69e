package mocksleeper

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/mcdev12/draftboard/go/internal/models"
)

type Client struct {
	mock.Mock
}

func (c *Client) GetLeague(ctx context.Context, leagueID string) (*models.League, error) {
	args := c.Called(ctx, leagueID)

	var res *models.League
	if args.Get(0) != nil {
		res = args.Get(0).(*models.League)
	}

	return res, args.Error(1)
}

func (c *Client) GetRosters(ctx context.Context, leagueID string) ([]models.Roster, error) {
	args := c.Called(ctx, leagueID)

	var res []models.Roster
	if args.Get(0) != nil {
		res = args.Get(0).([]models.Roster)
	}

	return res, args.Error(1)
}

func (c *Client) GetUsers(ctx context.Context, leagueID string) ([]models.User, error) {
	args := c.Called(ctx, leagueID)

	var res []models.User
	if args.Get(0) != nil {
		res = args.Get(0).([]models.User)
	}

	return res, args.Error(1)
}

func (c *Client) GetPlayers(ctx context.Context) (map[string]models.Player, error) {
	args := c.Called(ctx)

	var res map[string]models.Player
	if args.Get(0) != nil {
		res = args.Get(0).(map[string]models.Player)
	}

	return res, args.Error(1)
}

func (c *Client) ListLeagueDrafts(ctx context.Context, leagueID string) ([]models.Draft, error) {
	args := c.Called(ctx, leagueID)

	var res []models.Draft
	if args.Get(0) != nil {
		res = args.Get(0).([]models.Draft)
	}

	return res, args.Error(1)
}

func (c *Client) GetDraft(ctx context.Context, draftID string) (*models.Draft, error) {
	args := c.Called(ctx, draftID)

	var res *models.Draft
	if args.Get(0) != nil {
		res = args.Get(0).(*models.Draft)
	}

	return res, args.Error(1)
}

func (c *Client) GetDraftPicks(ctx context.Context, draftID string) ([]models.DraftPick, error) {
	args := c.Called(ctx, draftID)

	var res []models.DraftPick
	if args.Get(0) != nil {
		res = args.Get(0).([]models.DraftPick)
	}

	return res, args.Error(1)
}

func (c *Client) GetTradedPicks(ctx context.Context, draftID string) ([]models.TradedPick, error) {
	args := c.Called(ctx, draftID)

	var res []models.TradedPick
	if args.Get(0) != nil {
		res = args.Get(0).([]models.TradedPick)
	}

	return res, args.Error(1)
}
