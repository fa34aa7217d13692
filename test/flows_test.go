//go:build integration_test || all_tests

package test

import (
	"context"
	"net/http"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2beens/flexly/internal/analysis"
	"github.com/2beens/flexly/internal/auth"
	"github.com/2beens/flexly/internal/leaderboard"
	"github.com/2beens/flexly/internal/notifications"
	"github.com/2beens/flexly/internal/profile"
	"github.com/2beens/flexly/internal/ratings"
	"github.com/2beens/flexly/internal/social"
	"github.com/2beens/flexly/internal/training"
	"github.com/2beens/flexly/internal/users"
)

func (s *IntegrationTestSuite) TestAuthFlow() {
	t := s.T()
	ctx := context.Background()

	u := s.register(ctx)

	resp, _ := s.doJSON(ctx, http.MethodPost, "/auth/login", "", auth.LoginRequest{Email: u.Email, Password: "wrong"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, body := s.doJSON(ctx, http.MethodPost, "/auth/login", "", auth.LoginRequest{Email: u.Email, Password: u.Password})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token := decode[auth.Response](t, body).Token

	resp, _ = s.doJSON(ctx, http.MethodGet, "/users/me", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = s.doJSON(ctx, http.MethodPost, "/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = s.doJSON(ctx, http.MethodGet, "/users/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// the registration session still works
	resp, _ = s.doJSON(ctx, http.MethodGet, "/users/me", u.Token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestSubmissionUpdatesStats() {
	t := s.T()
	ctx := context.Background()
	u := s.register(ctx)

	created := decode[analysis.Submission](t, s.submitAnalysis(ctx, u.Token))
	// (7+6+8+5+6)/5, abs not visible
	assert.Equal(t, 6.4, created.Overall)
	require.Len(t, created.ImageURLs, 1)

	s.submitAnalysis(ctx, u.Token)

	_, body := s.doJSON(ctx, http.MethodGet, "/users/me", u.Token, nil)
	me := decode[users.User](t, body)
	assert.Equal(t, 6.4, me.Score)
	assert.Equal(t, 2, me.AnalyticsTracked)
	assert.Equal(t, 1, me.Streak)
	assert.Equal(t, 0.0, me.MuscleAverages[ratings.Abs])
	assert.Equal(t, 8.0, me.MuscleAverages[ratings.Shoulders])

	_, body = s.doJSON(ctx, http.MethodGet, "/analysis", u.Token, nil)
	list := decode[analysis.ListResponse](t, body)
	assert.Equal(t, 2, list.Total)

	resp, _ := s.doJSON(ctx, http.MethodDelete, "/analysis/"+created.ID, u.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	_, body = s.doJSON(ctx, http.MethodGet, "/users/me", u.Token, nil)
	me = decode[users.User](t, body)
	assert.Equal(t, 1, me.AnalyticsTracked)
	assert.Equal(t, 6.4, me.Score)
}

func (s *IntegrationTestSuite) TestFollowCountersAndNotification() {
	t := s.T()
	ctx := context.Background()
	ana, ben := s.register(ctx), s.register(ctx)

	resp, body := s.doJSON(ctx, http.MethodPost, "/users/"+ben.ID+"/follow", ana.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	followed := decode[social.FollowResponse](t, body)
	assert.True(t, followed.Following)
	assert.Equal(t, 1, followed.ActorFollowingCount)
	assert.Equal(t, 1, followed.TargetFollowerCount)

	resp, _ = s.doJSON(ctx, http.MethodPost, "/users/"+ana.ID+"/follow", ana.Token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	_, body = s.doJSON(ctx, http.MethodGet, "/users/"+ben.ID, ana.Token, nil)
	p := decode[profile.Profile](t, body)
	assert.True(t, p.IsFollowing)
	assert.Equal(t, 1, p.FollowersCount)

	_, body = s.doJSON(ctx, http.MethodGet, "/notifications", ben.Token, nil)
	inbox := decode[[]notifications.Notification](t, body)
	require.Len(t, inbox, 1)
	assert.Equal(t, ana.ID, inbox[0].SenderID)
	assert.Equal(t, notifications.TypeFollow, inbox[0].Type)

	// toggle back
	_, body = s.doJSON(ctx, http.MethodPost, "/users/"+ben.ID+"/follow", ana.Token, nil)
	unfollowed := decode[social.FollowResponse](t, body)
	assert.False(t, unfollowed.Following)
	assert.Equal(t, 0, unfollowed.TargetFollowerCount)

	// unfollowing again changes nothing
	resp, body = s.doJSON(ctx, http.MethodDelete, "/users/"+ben.ID+"/follow", ana.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 0, decode[social.FollowResponse](t, body).ActorFollowingCount)
}

func (s *IntegrationTestSuite) TestCorruptedUserHealedOnRead() {
	t := s.T()
	ctx := context.Background()
	u := s.register(ctx)
	s.submitAnalysis(ctx, u.Token)

	// legacy damage: a sum stored as the score and no averages at all
	s.execSQL(`UPDATE users SET score = 32, muscle_averages = NULL WHERE id = $1`, u.ID)

	_, body := s.doJSON(ctx, http.MethodGet, "/users/leaderboard?category=Overall", u.Token, nil)
	board := decode[leaderboard.Board](t, body)
	for _, e := range board.Entries {
		assert.LessOrEqual(t, e.Score, ratings.MaxRating)
	}

	_, body = s.doJSON(ctx, http.MethodGet, "/users/me", u.Token, nil)
	assert.Equal(t, 6.4, decode[users.User](t, body).Score)

	var score float64
	require.NoError(t, s.DB.QueryRow(`SELECT score FROM users WHERE id = $1`, u.ID).Scan(&score))
	assert.Equal(t, 6.4, score)
}

func (s *IntegrationTestSuite) TestTrainingPlan() {
	t := s.T()
	ctx := context.Background()
	u := s.register(ctx)

	resp, body := s.doJSON(ctx, http.MethodPost, "/training/generate", u.Token, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))
	plan := decode[training.Plan](t, body)
	assert.Equal(t, "Leg Day Comeback", plan.Title)

	_, body = s.doJSON(ctx, http.MethodGet, "/training", u.Token, nil)
	list := decode[training.ListResponse](t, body)
	assert.Equal(t, 1, list.Total)

	other := s.register(ctx)
	resp, _ = s.doJSON(ctx, http.MethodGet, "/training/"+plan.ID, other.Token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestDeleteAccountCascades() {
	t := s.T()
	ctx := context.Background()
	gone, stays := s.register(ctx), s.register(ctx)

	created := decode[analysis.Submission](t, s.submitAnalysis(ctx, gone.Token))
	s.doJSON(ctx, http.MethodPost, "/users/"+stays.ID+"/follow", gone.Token, nil)
	s.doJSON(ctx, http.MethodPost, "/users/"+gone.ID+"/follow", stays.Token, nil)
	s.doJSON(ctx, http.MethodPost, "/analysis/"+created.ID+"/comments", stays.Token, map[string]string{"text": "big arms"})

	resp, body := s.doJSON(ctx, http.MethodDelete, "/users/me", gone.Token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	_, body = s.doJSON(ctx, http.MethodGet, "/users/me", stays.Token, nil)
	me := decode[users.User](t, body)
	assert.Equal(t, 0, me.FollowersCount)
	assert.Equal(t, 0, me.FollowingCount)

	resp, _ = s.doJSON(ctx, http.MethodGet, "/users/me", gone.Token, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var leftovers int
	require.NoError(t, s.DB.QueryRow(
		`SELECT (SELECT COUNT(*) FROM analysis WHERE user_id = $1)
			+ (SELECT COUNT(*) FROM comment WHERE analysis_id = $2)
			+ (SELECT COUNT(*) FROM follow_edge WHERE follower_id = $1 OR followed_id = $1)`,
		gone.ID, created.ID,
	).Scan(&leftovers))
	assert.Zero(t, leftovers)
}
