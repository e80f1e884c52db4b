package application

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-identity-service/internal/domain/entity"
	"github.com/oksasatya/go-identity-service/internal/domain/repository"
	vo "github.com/oksasatya/go-identity-service/internal/domain/valueobject"
)

func TestSignUp_Success(t *testing.T) {
	t.Parallel()
	f := newFixture()
	ctx := context.Background()

	res := f.svc.SignUp(ctx, validSignUp())
	require.True(t, res.IsSuccess(), "errors: %v", res.Errors)
	assert.Empty(t, res.Errors)

	u := res.Data.User
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, "test@example.com", u.Email)
	assert.Equal(t, "João", u.FirstName)
	assert.Equal(t, "Silva", u.LastName)
	assert.True(t, u.IsActive)
	assert.Nil(t, u.UpdatedAt)
	assert.Nil(t, u.LastLoginAt)
	assert.Equal(t, "tok-"+u.ID, res.Data.Token)

	stored, err := f.repo.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "hashed:SecurePassword123!", stored.Password().String())
}

func TestSignUp_NormalizesEmail(t *testing.T) {
	t.Parallel()
	f := newFixture()

	cmd := validSignUp()
	cmd.Email = "  Test@Example.COM "
	res := f.svc.SignUp(context.Background(), cmd)
	require.True(t, res.IsSuccess())
	assert.Equal(t, "test@example.com", res.Data.User.Email)
}

func TestSignUp_EmailInUseByPreCheck(t *testing.T) {
	t.Parallel()
	f := newFixture()
	ctx := context.Background()

	require.True(t, f.svc.SignUp(ctx, validSignUp()).IsSuccess())
	before := f.hasher.calls()

	cmd := validSignUp()
	cmd.Email = "TEST@example.com"
	res := f.svc.SignUp(ctx, cmd)
	require.False(t, res.IsSuccess())
	assert.Equal(t, KindEmailInUse, res.Kind)
	assert.Equal(t, []string{MsgEmailInUse}, res.Errors)
	assert.Equal(t, before, f.hasher.calls(), "no hashing after a pre-check conflict")

	all, err := f.repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSignUp_EmailInUseByStoreConstraint(t *testing.T) {
	t.Parallel()
	f := newFixture()
	ctx := context.Background()

	require.True(t, f.svc.SignUp(ctx, validSignUp()).IsSuccess())

	f.repo.hideEmails = true
	res := f.svc.SignUp(ctx, validSignUp())
	assert.Equal(t, KindEmailInUse, res.Kind)
	assert.Equal(t, []string{MsgEmailInUse}, res.Errors)
}

func TestSignUp_ValidationFailures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		mod  func(*SignUpCommand)
		want string
	}{
		{"invalid email", func(c *SignUpCommand) { c.Email = "invalid-email" }, vo.MsgEmailInvalid},
		{"empty email", func(c *SignUpCommand) { c.Email = "  " }, vo.MsgEmailEmpty},
		{"short password", func(c *SignUpCommand) { c.Password = "Ab1!" }, vo.MsgPasswordTooShort},
		{"weak password", func(c *SignUpCommand) { c.Password = "alllowercase1!" }, vo.MsgPasswordComposition},
		{"empty first name", func(c *SignUpCommand) { c.FirstName = "" }, entity.MsgFirstNameEmpty},
		{"blank last name", func(c *SignUpCommand) { c.LastName = "   " }, entity.MsgLastNameEmpty},
		{"digits in name", func(c *SignUpCommand) { c.FirstName = "J0ão" }, entity.MsgFirstNameInvalid},
		{"long last name", func(c *SignUpCommand) { c.LastName = strings.Repeat("a", 51) }, entity.MsgLastNameTooLong},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			f := newFixture()
			cmd := validSignUp()
			tc.mod(&cmd)

			res := f.svc.SignUp(context.Background(), cmd)
			require.False(t, res.IsSuccess())
			assert.Equal(t, KindValidation, res.Kind)
			assert.Equal(t, []string{tc.want}, res.Errors)
			assert.Zero(t, f.hasher.calls())

			all, err := f.repo.GetAll(context.Background())
			require.NoError(t, err)
			assert.Empty(t, all)
		})
	}
}

func TestSignUp_InternalFailuresAreHidden(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		setup func(*fixture)
	}{
		{"lookup error", func(f *fixture) { f.repo.getByEmailErr = errBoom }},
		{"hash error", func(f *fixture) { f.hasher.hashErr = errBoom }},
		{"add error", func(f *fixture) { f.repo.addErr = errBoom }},
		{"token error", func(f *fixture) { f.tokens.issueErr = errBoom }},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			logger, hook := logtest.NewNullLogger()
			f := newFixture()
			f.svc.Logger = logger
			tc.setup(f)

			res := f.svc.SignUp(context.Background(), validSignUp())
			require.False(t, res.IsSuccess())
			assert.Equal(t, KindInternal, res.Kind)
			assert.Equal(t, []string{MsgInternal}, res.Errors)
			for _, m := range res.Errors {
				assert.NotContains(t, m, "10.0.0.7")
			}

			entry := hook.LastEntry()
			require.NotNil(t, entry)
			assert.Equal(t, logrus.ErrorLevel, entry.Level)
			assert.ErrorIs(t, entry.Data[logrus.ErrorKey].(error), errBoom)
		})
	}
}

func TestSignUp_DuplicateErrorFromAdd(t *testing.T) {
	t.Parallel()
	f := newFixture()
	f.repo.addErr = repository.ErrDuplicateEmail

	res := f.svc.SignUp(context.Background(), validSignUp())
	assert.Equal(t, KindEmailInUse, res.Kind)
}

func TestSignUp_PublishesAndIndexes(t *testing.T) {
	t.Parallel()
	pub := &recordingPublisher{}
	idx := &sliceIndex{}
	f := newFixture(WithEventPublisher(pub), WithUserIndex(idx))

	res := f.svc.SignUp(context.Background(), validSignUp())
	require.True(t, res.IsSuccess())
	assert.Equal(t, []string{EventUserSignedUp}, pub.types())
	assert.Equal(t, res.Data.User, idx.docs[res.Data.User.ID])
}

func TestSignUp_SinkFailuresDoNotFail(t *testing.T) {
	t.Parallel()
	pub := &recordingPublisher{err: errBoom}
	idx := &sliceIndex{err: errBoom}
	f := newFixture(WithEventPublisher(pub), WithUserIndex(idx))

	res := f.svc.SignUp(context.Background(), validSignUp())
	assert.True(t, res.IsSuccess())
}

func TestSignUp_ReportsEveryInvalidField(t *testing.T) {
	t.Parallel()
	f := newFixture()

	res := f.svc.SignUp(context.Background(), SignUpCommand{
		Email:     "invalid-email",
		Password:  "short",
		FirstName: "",
		LastName:  "S1lva",
	})
	require.False(t, res.IsSuccess())
	assert.Equal(t, KindValidation, res.Kind)
	assert.Equal(t, []string{
		vo.MsgEmailInvalid,
		vo.MsgPasswordTooShort,
		entity.MsgFirstNameEmpty,
		entity.MsgLastNameInvalid,
	}, res.Errors)
	assert.Zero(t, f.hasher.calls())
}

func TestSignUp_InvalidNamesWinOverTakenEmail(t *testing.T) {
	t.Parallel()
	f := newFixture()
	ctx := context.Background()
	require.True(t, f.svc.SignUp(ctx, validSignUp()).IsSuccess())

	cmd := validSignUp()
	cmd.LastName = ""
	res := f.svc.SignUp(ctx, cmd)
	assert.Equal(t, KindValidation, res.Kind)
	assert.Equal(t, []string{entity.MsgLastNameEmpty}, res.Errors)
}

func TestSignUp_ConcurrentSameEmail(t *testing.T) {
	t.Parallel()
	f := newFixture()
	ctx := context.Background()

	const n = 16
	results := make([]Result[AuthData], n)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			cmd := validSignUp()
			if i%2 == 1 {
				cmd.Email = "  TEST@Example.com"
			}
			results[i] = f.svc.SignUp(ctx, cmd)
		}(i)
	}
	close(start)
	wg.Wait()

	wins := 0
	for _, res := range results {
		if res.IsSuccess() {
			wins++
			continue
		}
		assert.Equal(t, KindEmailInUse, res.Kind)
		assert.Equal(t, []string{MsgEmailInUse}, res.Errors)
	}
	assert.Equal(t, 1, wins)

	all, err := f.repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
