package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/phoneauth/internal/common"
	"github.com/dmitrijs2005/phoneauth/internal/server/events"
	"github.com/dmitrijs2005/phoneauth/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signUp(t *testing.T, h *harness, phone string) *models.User {
	t.Helper()
	ctx := context.Background()
	issued, err := h.verification.IssueCode(ctx, phone)
	require.NoError(t, err)
	res, err := h.verification.ConfirmCode(ctx, phone, issued.Code)
	require.NoError(t, err)
	return res.User
}

func TestReferralScenario(t *testing.T) {
	h := newHarness(t, &scriptedCodes{numeric: []string{"1111", "2222"}, invites: []string{"AB12CD", "EF34GH"}}, nil)
	ctx := context.Background()

	a := signUp(t, h, "+15550001")
	b := signUp(t, h, "+15550002")
	require.Equal(t, "AB12CD", a.InviteCode)

	require.NoError(t, h.invites.Activate(ctx, b.ID, "AB12CD"))

	list, err := h.directory.ListInvitedUsers(ctx, "AB12CD", a.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, b.PhoneNumber, list[0].PhoneNumber)

	profile, err := h.invites.Profile(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"+15550002"}, profile.InvitedPhones)
	assert.Nil(t, profile.User.ActivatedInviteCode)

	profileB, err := h.invites.Profile(ctx, b.ID)
	require.NoError(t, err)
	require.NotNil(t, profileB.User.ActivatedInviteCode)
	assert.Equal(t, "AB12CD", *profileB.User.ActivatedInviteCode)
	assert.Empty(t, profileB.InvitedPhones)

	last := len(h.publisher.keys) - 1
	assert.Equal(t, events.KeyInviteActivated, h.publisher.keys[last])
	ev := h.publisher.data[last].(events.InviteActivated)
	assert.Equal(t, b.ID, ev.UserID)
	assert.Equal(t, a.ID, ev.InviterID)
}

func TestActivate_Errors(t *testing.T) {
	h := newHarness(t, &scriptedCodes{numeric: []string{"1111", "2222", "3333"}, invites: []string{"AB12CD", "EF34GH", "IJ56KL"}}, nil)
	ctx := context.Background()

	a := signUp(t, h, "+15550001")
	b := signUp(t, h, "+15550002")
	c := signUp(t, h, "+15550003")

	assert.ErrorIs(t, h.invites.Activate(ctx, a.ID, a.InviteCode), common.ErrSelfReferral)
	assert.ErrorIs(t, h.invites.Activate(ctx, a.ID, "NOPE00"), common.ErrInvalidInviteCode)

	require.NoError(t, h.invites.Activate(ctx, c.ID, a.InviteCode))
	assert.ErrorIs(t, h.invites.Activate(ctx, c.ID, b.InviteCode), common.ErrAlreadyActivated)

	assert.ErrorIs(t, h.invites.Activate(ctx, "ghost", a.InviteCode), common.ErrorUnauthorized)
}

func TestProfile_UnknownUser(t *testing.T) {
	h := newHarness(t, nil, nil)

	_, err := h.invites.Profile(context.Background(), "ghost")
	assert.ErrorIs(t, err, common.ErrorUnauthorized)
}
