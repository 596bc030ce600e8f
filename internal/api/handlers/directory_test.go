package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"testing"

	"github.com/mwhitford/deskchat/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type userPayload struct {
	ID        uint     `json:"id"`
	Name      string   `json:"name"`
	Interests []string `json:"interests"`
}

func uitoa(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

func decodeUsers(t *testing.T, resp *http.Response) []userPayload {
	t.Helper()
	var users []userPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&users))
	return users
}

func TestDirectoryHandler_ListExcludesSelf(t *testing.T) {
	ts := testutil.NewTestServer(t)

	me, token := testutil.NewUserBuilder().WithName("Me").BuildAndAuthenticate(t, ts)
	other, _ := testutil.NewUserBuilder().WithName("Other").Build(t, ts.DB.DB)

	resp := authedRequest(t, http.MethodGet, ts.APIURL("/users/"), token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	users := decodeUsers(t, resp)
	require.Len(t, users, 1)
	assert.Equal(t, other.ID, users[0].ID)
	assert.NotEqual(t, me.ID, users[0].ID)
}

func TestDirectoryHandler_Search(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, token := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	testutil.NewUserBuilder().WithName("Priya Patel").WithInterests("running").Build(t, ts.DB.DB)
	testutil.NewUserBuilder().WithName("Quinn Park").WithInterests("board games").Build(t, ts.DB.DB)

	resp := authedRequest(t, http.MethodGet, ts.APIURL("/users/search?q=board"), token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	users := decodeUsers(t, resp)
	require.Len(t, users, 1)
	assert.Equal(t, "Quinn Park", users[0].Name)
}

func TestDirectoryHandler_AddInterest(t *testing.T) {
	ts := testutil.NewTestServer(t)

	_, token := testutil.NewUserBuilder().
		WithInterests("reading").
		BuildAndAuthenticate(t, ts)

	body, _ := json.Marshal(map[string]string{"interest": "gardening"})
	req, err := http.NewRequest(http.MethodPost, ts.APIURL("/users/me/interests"), bytes.NewBuffer(body))
	require.NoError(t, err)
	req.AddCookie(&http.Cookie{Name: "session_token", Value: token})

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var user userPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&user))
	assert.Equal(t, []string{"reading", "gardening"}, user.Interests)
}

func TestMessageHandler_History(t *testing.T) {
	ts := testutil.NewTestServer(t)

	alice, aliceToken := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	bob, _ := testutil.NewUserBuilder().Build(t, ts.DB.DB)

	ctx := context.Background()
	_, err := ts.Services.Chat.Append(ctx, alice.ID, bob.ID, "first")
	require.NoError(t, err)
	_, err = ts.Services.Chat.Append(ctx, bob.ID, alice.ID, "second")
	require.NoError(t, err)

	resp := authedRequest(t, http.MethodGet, ts.APIURL("/messages/"+uitoa(bob.ID)), aliceToken)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var messages []struct {
		SenderID uint   `json:"senderId"`
		Content  string `json:"content"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&messages))
	require.Len(t, messages, 2)
	assert.Equal(t, "first", messages[0].Content)
	assert.Equal(t, "second", messages[1].Content)

	t.Run("invalid user id", func(t *testing.T) {
		resp := authedRequest(t, http.MethodGet, ts.APIURL("/messages/not-a-number"), aliceToken)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}
