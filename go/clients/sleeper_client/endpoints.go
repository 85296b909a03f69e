package sleeper_client

const (
	// Base URL
	BaseURL = "https://api.sleeper.app"

	// API Endpoints
	LeagueEndpoint       = "/v1/league/%s"
	LeagueRostersPath    = "/v1/league/%s/rosters"
	LeagueUsersPath      = "/v1/league/%s/users"
	LeagueDraftsPath     = "/v1/league/%s/drafts"
	DraftEndpoint        = "/v1/draft/%s"
	DraftPicksPath       = "/v1/draft/%s/picks"
	DraftTradedPicksPath = "/v1/draft/%s/traded_picks"
	PlayersEndpoint      = "/v1/players/%s"

	// Sports
	SportNFL = "nfl"

	// Sleeper asks clients to stay under 1000 calls per minute.
	DefaultRequestsPerSecond = 10
	DefaultBurst             = 5

	UserAgentHeader = "User-Agent"
	AcceptHeader    = "Accept"
)
