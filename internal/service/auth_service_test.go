package service_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"budgetmate/internal/model"
	"budgetmate/internal/pkg"
	rdbrepo "budgetmate/internal/repository/redis"
	"budgetmate/internal/service"
	"budgetmate/internal/testutil"
)

type fakeGoogle struct {
	profile *pkg.GoogleProfile
	err     error
}

func (g fakeGoogle) Verify(context.Context, string) (*pkg.GoogleProfile, error) {
	return g.profile, g.err
}

func newIssuer() *pkg.TokenIssuer {
	return pkg.NewTokenIssuer("access-secret", "refresh-secret", time.Hour, 24*time.Hour)
}

func newAuth(t *testing.T, google service.GoogleAuth) (*service.AuthService, *gorm.DB) {
	db := testutil.NewDB(t)
	return service.NewAuthService(db, newIssuer(), nil, google), db
}

func TestSignupLoginRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuth(t, nil)

	res, err := svc.Signup(ctx, service.SignupInput{Email: "Ana@Example.com", Password: "secret1", Username: "ana"})
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", res.User.Email)
	assert.Equal(t, model.RoleUser, res.User.Role)
	assert.NotEmpty(t, res.Pair.AccessToken)
	assert.NotEmpty(t, res.Pair.RefreshToken)

	byEmail, err := svc.Login(ctx, "ana@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, byEmail.User.ID)

	byName, err := svc.Login(ctx, "ana", "secret1")
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, byName.User.ID)

	u, err := svc.Authenticate(ctx, byName.Pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "ana", u.Name)

	_, err = svc.Login(ctx, "ana", "wrong-password")
	assert.Equal(t, pkg.KindAuthentication, pkg.KindOf(err))
	_, err = svc.Login(ctx, "nobody", "secret1")
	assert.Equal(t, pkg.KindAuthentication, pkg.KindOf(err))
}

func TestSignupValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuth(t, nil)

	_, err := svc.Signup(ctx, service.SignupInput{Email: "not-an-email", Password: "secret1", Username: "a"})
	assert.Equal(t, pkg.KindValidation, pkg.KindOf(err))
	_, err = svc.Signup(ctx, service.SignupInput{Email: "a@b.co", Password: "123", Username: "a"})
	assert.Equal(t, pkg.KindValidation, pkg.KindOf(err))
	_, err = svc.Signup(ctx, service.SignupInput{Email: "a@b.co", Password: "secret1"})
	assert.Equal(t, pkg.KindValidation, pkg.KindOf(err))
	_, err = svc.Signup(ctx, service.SignupInput{Email: "a@b.co", Password: "secret1", Username: strings.Repeat("n", 65)})
	assert.Equal(t, "Username must be at most 64 characters", pkg.Message(err))
	_, err = svc.Signup(ctx, service.SignupInput{Email: strings.Repeat("a", 120) + "@example.com", Password: "secret1", Username: "a"})
	assert.Equal(t, "Email must be at most 128 characters", pkg.Message(err))

	_, err = svc.Signup(ctx, service.SignupInput{Email: "a@b.co", Password: "secret1", Username: "a"})
	require.NoError(t, err)
	_, err = svc.Signup(ctx, service.SignupInput{Email: "A@B.co", Password: "secret1", Username: "b"})
	assert.Equal(t, pkg.KindConflict, pkg.KindOf(err))
	assert.Equal(t, "Email already exists", pkg.Message(err))
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuth(t, nil)
	res, err := svc.Signup(ctx, service.SignupInput{Email: "a@b.co", Password: "secret1", Username: "a"})
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "garbage")
	assert.Equal(t, pkg.KindAuthentication, pkg.KindOf(err))

	// A refresh token is not an access token.
	_, err = svc.Authenticate(ctx, res.Pair.RefreshToken)
	assert.Equal(t, pkg.KindAuthentication, pkg.KindOf(err))
}

func TestGoogleSignIn(t *testing.T) {
	ctx := context.Background()

	svc, _ := newAuth(t, fakeGoogle{profile: &pkg.GoogleProfile{Subject: "g-1", Email: "gina@example.com", Name: "Gina"}})
	first, err := svc.Google(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, "Gina", first.User.Name)

	again, err := svc.Google(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, again.User.ID)

	// Google-only accounts have no password.
	_, err = svc.Login(ctx, "gina@example.com", "")
	assert.Equal(t, pkg.KindValidation, pkg.KindOf(err))
	_, err = svc.Login(ctx, "gina@example.com", "anything")
	assert.Equal(t, pkg.KindAuthentication, pkg.KindOf(err))
	err = svc.ChangePassword(ctx, service.Actor{ID: first.User.ID}, "a", "secret1", "secret1")
	assert.Equal(t, pkg.KindValidation, pkg.KindOf(err))

	_, err = svc.Google(ctx, "")
	assert.Equal(t, pkg.KindValidation, pkg.KindOf(err))

	bad, _ := newAuth(t, fakeGoogle{err: errors.New("bad signature")})
	_, err = bad.Google(ctx, "token")
	assert.Equal(t, pkg.KindAuthentication, pkg.KindOf(err))

	noEmail, _ := newAuth(t, fakeGoogle{profile: &pkg.GoogleProfile{Subject: "g-2"}})
	_, err = noEmail.Google(ctx, "token")
	assert.Equal(t, pkg.KindValidation, pkg.KindOf(err))

	unset, _ := newAuth(t, nil)
	_, err = unset.Google(ctx, "token")
	assert.Equal(t, pkg.KindAuthentication, pkg.KindOf(err))
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	svc, db := newAuth(t, nil)
	ana := actorOf(testutil.CreateUser(t, db, "ana", model.RoleUser))
	testutil.CreateUser(t, db, "ben", model.RoleUser)

	_, err := svc.UpdateProfile(ctx, ana, "", "")
	assert.Equal(t, pkg.KindValidation, pkg.KindOf(err))
	_, err = svc.UpdateProfile(ctx, ana, "", "nope")
	assert.Equal(t, pkg.KindValidation, pkg.KindOf(err))
	_, err = svc.UpdateProfile(ctx, ana, "", "ben@example.com")
	assert.Equal(t, pkg.KindConflict, pkg.KindOf(err))

	ref, err := svc.UpdateProfile(ctx, ana, "Ana Maria", "")
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", ref.Name)
	assert.Equal(t, "ana@example.com", ref.Email)

	ref, err = svc.UpdateProfile(ctx, ana, "", "ana.maria@example.com")
	require.NoError(t, err)
	assert.Equal(t, "ana.maria@example.com", ref.Email)

	me, err := svc.Profile(ctx, ana)
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", me.Name)
	assert.Equal(t, "ana.maria@example.com", me.Email)
}

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuth(t, nil)
	res, err := svc.Signup(ctx, service.SignupInput{Email: "a@b.co", Password: "secret1", Username: "a"})
	require.NoError(t, err)
	me := service.Actor{ID: res.User.ID}

	assert.Equal(t, pkg.KindValidation, pkg.KindOf(svc.ChangePassword(ctx, me, "", "secret2", "secret2")))
	assert.Equal(t, pkg.KindValidation, pkg.KindOf(svc.ChangePassword(ctx, me, "secret1", "123", "123")))
	assert.Equal(t, pkg.KindValidation, pkg.KindOf(svc.ChangePassword(ctx, me, "secret1", "secret2", "secret3")))
	assert.Equal(t, pkg.KindAuthentication, pkg.KindOf(svc.ChangePassword(ctx, me, "wrong1", "secret2", "secret2")))

	require.NoError(t, svc.ChangePassword(ctx, me, "secret1", "secret2", "secret2"))
	_, err = svc.Login(ctx, "a@b.co", "secret1")
	assert.Equal(t, pkg.KindAuthentication, pkg.KindOf(err))
	_, err = svc.Login(ctx, "a@b.co", "secret2")
	require.NoError(t, err)
}

func TestCreateAdminAndPromote(t *testing.T) {
	ctx := context.Background()
	svc, db := newAuth(t, nil)

	_, err := svc.CreateAdmin(ctx, service.AdminInput{Name: "root", Email: "root@example.com", Password: "secret1", ConfirmPassword: "secret2"})
	assert.Equal(t, pkg.KindValidation, pkg.KindOf(err))

	ref, err := svc.CreateAdmin(ctx, service.AdminInput{Name: "root", Email: "root@example.com", Password: "secret1", ConfirmPassword: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, ref.Role)

	_, err = svc.CreateAdmin(ctx, service.AdminInput{Name: "x", Email: "root@example.com", Password: "secret1", ConfirmPassword: "secret1"})
	assert.Equal(t, pkg.KindConflict, pkg.KindOf(err))

	testutil.CreateUser(t, db, "carl", model.RoleUser)
	u, err := svc.Promote(ctx, "CARL@example.com")
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, u.Role)

	var stored model.User
	require.NoError(t, db.First(&stored, u.ID).Error)
	assert.Equal(t, model.RoleAdmin, stored.Role)

	_, err = svc.Promote(ctx, "ghost@example.com")
	assert.Equal(t, pkg.KindNotFound, pkg.KindOf(err))
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()
	svc, _ := newAuth(t, nil)
	res, err := svc.Signup(ctx, service.SignupInput{Email: "a@b.co", Password: "secret1", Username: "a"})
	require.NoError(t, err)

	pair, err := svc.Refresh(ctx, res.Pair.RefreshToken)
	require.NoError(t, err)
	u, err := svc.Authenticate(ctx, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, u.ID)

	_, err = svc.Refresh(ctx, res.Pair.AccessToken)
	assert.Equal(t, pkg.KindAuthentication, pkg.KindOf(err))
	_, err = svc.Refresh(ctx, "")
	assert.Equal(t, pkg.KindValidation, pkg.KindOf(err))
}

func TestSessionsEndOnLogout(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	rdb, err := rdbrepo.NewClient(mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	db := testutil.NewDB(t)
	sessions := &rdbrepo.SessionRepository{RDB: rdb, TTL: time.Hour}
	svc := service.NewAuthService(db, newIssuer(), sessions, nil)

	res, err := svc.Signup(ctx, service.SignupInput{Email: "a@b.co", Password: "secret1", Username: "a"})
	require.NoError(t, err)
	_, err = svc.Authenticate(ctx, res.Pair.AccessToken)
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, service.Actor{ID: res.User.ID}))
	_, err = svc.Authenticate(ctx, res.Pair.AccessToken)
	assert.Equal(t, pkg.KindAuthentication, pkg.KindOf(err))
}
