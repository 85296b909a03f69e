package sleeper_client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mcdev12/draftboard/go/internal/models"
)

// ListLeagueDrafts returns every draft the league has held or scheduled.
func (c *SleeperClient) ListLeagueDrafts(ctx context.Context, leagueID string) ([]models.Draft, error) {
	var drafts []models.Draft
	if err := c.GetJSON(ctx, fmt.Sprintf(LeagueDraftsPath, url.PathEscape(leagueID)), &drafts); err != nil {
		return nil, fmt.Errorf("failed to list drafts for league %s: %w", leagueID, err)
	}
	return drafts, nil
}

// GetDraft fetches a draft's detail, including settings and slot mapping.
func (c *SleeperClient) GetDraft(ctx context.Context, draftID string) (*models.Draft, error) {
	var draft *models.Draft
	if err := c.GetJSON(ctx, fmt.Sprintf(DraftEndpoint, url.PathEscape(draftID)), &draft); err != nil {
		return nil, fmt.Errorf("failed to get draft %s: %w", draftID, err)
	}
	if draft == nil {
		return nil, fmt.Errorf("draft %s not found", draftID)
	}
	return draft, nil
}

// GetDraftPicks fetches the picks made so far in a draft.
func (c *SleeperClient) GetDraftPicks(ctx context.Context, draftID string) ([]models.DraftPick, error) {
	var picks []models.DraftPick
	if err := c.GetJSON(ctx, fmt.Sprintf(DraftPicksPath, url.PathEscape(draftID)), &picks); err != nil {
		return nil, fmt.Errorf("failed to get picks for draft %s: %w", draftID, err)
	}
	return picks, nil
}

// GetTradedPicks fetches the pick trades recorded against a draft.
func (c *SleeperClient) GetTradedPicks(ctx context.Context, draftID string) ([]models.TradedPick, error) {
	var traded []models.TradedPick
	if err := c.GetJSON(ctx, fmt.Sprintf(DraftTradedPicksPath, url.PathEscape(draftID)), &traded); err != nil {
		return nil, fmt.Errorf("failed to get traded picks for draft %s: %w", draftID, err)
	}
	return traded, nil
}
