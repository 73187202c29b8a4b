package constants

import (
	"fmt"
	"time"
)

// Centralized Redis cache keys and TTLs.
// Pattern: cinebook:{module}:{operation}:{identifier}:{params?}

// ================== CACHE TTL DURATIONS ==================

const (
	TTL_STATIC_LONG   = 24 * time.Hour // cinema and screen layouts
	TTL_STATIC_MEDIUM = 12 * time.Hour // seat grids
)

const (
	TTL_SEMI_STATIC_MEDIUM = 2 * time.Hour    // movie details
	TTL_SEMI_STATIC_SHORT  = 1 * time.Hour    // movie listings
	TTL_SEMI_STATIC_QUICK  = 15 * time.Minute // now-showing listings
)

const (
	TTL_DYNAMIC_SHORT = 5 * time.Minute // showing schedules
	TTL_DYNAMIC_QUICK = 2 * time.Minute // seat availability per showing
)

// ================== REDIS KEY PREFIXES ==================

const (
	CACHE_PREFIX = "cinebook"
)

// ================== MOVIES MODULE ==================

const (
	CACHE_KEY_MOVIES_LIST        = CACHE_PREFIX + ":movies:list"         // + :page:X:limit:Y:genre:Z
	CACHE_KEY_MOVIES_NOW_SHOWING = CACHE_PREFIX + ":movies:now_showing"  // + :limit:X
	CACHE_KEY_MOVIE_DETAIL       = CACHE_PREFIX + ":movies:detail:uuid:" // + movie-id
)

const (
	TTL_MOVIE_LIST        = TTL_SEMI_STATIC_SHORT
	TTL_MOVIE_NOW_SHOWING = TTL_SEMI_STATIC_QUICK
	TTL_MOVIE_DETAIL      = TTL_SEMI_STATIC_MEDIUM
)

// ================== CINEMAS MODULE ==================

const (
	CACHE_KEY_CINEMAS_LIST = CACHE_PREFIX + ":cinemas:list"
	CACHE_KEY_SCREEN_SEATS = CACHE_PREFIX + ":screens:seats:uuid:" // + screen-id
)

const (
	TTL_CINEMA_LIST  = TTL_STATIC_LONG
	TTL_SCREEN_SEATS = TTL_STATIC_MEDIUM
)

// ================== SHOWINGS MODULE ==================

const (
	CACHE_KEY_SHOWINGS_BY_MOVIE  = CACHE_PREFIX + ":showings:by_movie:uuid:"  // + movie-id
	CACHE_KEY_SHOWING_DETAIL     = CACHE_PREFIX + ":showings:detail:uuid:"    // + showing-id
	CACHE_KEY_SHOWING_SEAT_STATE = CACHE_PREFIX + ":showings:seat_state:uuid:" // + showing-id
)

const (
	TTL_SHOWINGS_BY_MOVIE  = TTL_DYNAMIC_SHORT
	TTL_SHOWING_DETAIL     = TTL_DYNAMIC_SHORT
	TTL_SHOWING_SEAT_STATE = TTL_DYNAMIC_QUICK
)

// ================== RATE LIMITING ==================

const (
	RATE_LIMIT_PREFIX = CACHE_PREFIX + ":ratelimit:" // + category:identifier
)

// ================== INVALIDATION PATTERNS ==================

const (
	PATTERN_INVALIDATE_MOVIES_ALL       = CACHE_PREFIX + ":movies:*"
	PATTERN_INVALIDATE_MOVIE_DETAIL     = CACHE_PREFIX + ":movies:detail:uuid:" // + movie-id + *
	PATTERN_INVALIDATE_CINEMAS_ALL      = CACHE_PREFIX + ":cinemas:*"
	PATTERN_INVALIDATE_SHOWINGS_ALL     = CACHE_PREFIX + ":showings:*"
	PATTERN_INVALIDATE_SHOWING_BY_MOVIE = CACHE_PREFIX + ":showings:by_movie:uuid:" // + movie-id + *
)

// ================== KEY BUILDERS ==================

func BuildMovieListKey(page, limit int, genre string) string {
	if genre == "" {
		genre = "all"
	}
	return fmt.Sprintf("%s:page:%d:limit:%d:genre:%s", CACHE_KEY_MOVIES_LIST, page, limit, genre)
}

func BuildMovieDetailKey(movieID string) string {
	return CACHE_KEY_MOVIE_DETAIL + movieID
}

func BuildNowShowingKey(limit int) string {
	return fmt.Sprintf("%s:limit:%d", CACHE_KEY_MOVIES_NOW_SHOWING, limit)
}

func BuildShowingsByMovieKey(movieID string) string {
	return CACHE_KEY_SHOWINGS_BY_MOVIE + movieID
}

func BuildShowingSeatStateKey(showingID string) string {
	return CACHE_KEY_SHOWING_SEAT_STATE + showingID
}

func BuildScreenSeatsKey(screenID string) string {
	return CACHE_KEY_SCREEN_SEATS + screenID
}

func BuildRateLimitKey(category, identifier string) string {
	return RATE_LIMIT_PREFIX + category + ":" + identifier
}
