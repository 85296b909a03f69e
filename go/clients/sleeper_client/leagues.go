package sleeper_client

import (
	"context"
	"fmt"
	"net/url"

	"github.com/mcdev12/draftboard/go/internal/models"
)

// GetLeague fetches a league's configuration.
func (c *SleeperClient) GetLeague(ctx context.Context, leagueID string) (*models.League, error) {
	var league *models.League
	if err := c.GetJSON(ctx, fmt.Sprintf(LeagueEndpoint, url.PathEscape(leagueID)), &league); err != nil {
		return nil, fmt.Errorf("failed to get league %s: %w", leagueID, err)
	}
	// Unknown leagues come back as a 200 with a null body.
	if league == nil {
		return nil, fmt.Errorf("league %s not found", leagueID)
	}
	return league, nil
}

// GetRosters fetches every roster in a league.
func (c *SleeperClient) GetRosters(ctx context.Context, leagueID string) ([]models.Roster, error) {
	var rosters []models.Roster
	if err := c.GetJSON(ctx, fmt.Sprintf(LeagueRostersPath, url.PathEscape(leagueID)), &rosters); err != nil {
		return nil, fmt.Errorf("failed to get rosters for league %s: %w", leagueID, err)
	}
	return rosters, nil
}

// GetUsers fetches every user in a league.
func (c *SleeperClient) GetUsers(ctx context.Context, leagueID string) ([]models.User, error) {
	var users []models.User
	if err := c.GetJSON(ctx, fmt.Sprintf(LeagueUsersPath, url.PathEscape(leagueID)), &users); err != nil {
		return nil, fmt.Errorf("failed to get users for league %s: %w", leagueID, err)
	}
	return users, nil
}

// GetPlayers fetches the full NFL player map, keyed by player ID.
func (c *SleeperClient) GetPlayers(ctx context.Context) (map[string]models.Player, error) {
	players := make(map[string]models.Player)
	if err := c.GetJSON(ctx, fmt.Sprintf(PlayersEndpoint, SportNFL), &players); err != nil {
		return nil, fmt.Errorf("failed to get players: %w", err)
	}
	for id, p := range players {
		if p.PlayerID == "" {
			p.PlayerID = id
			players[id] = p
		}
	}
	return players, nil
}
