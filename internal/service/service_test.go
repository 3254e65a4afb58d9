package service

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mmynk/settleup/internal/activity"
	"github.com/mmynk/settleup/internal/auth"
	"github.com/mmynk/settleup/internal/metrics"
	"github.com/mmynk/settleup/internal/middleware"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage/sqlite"
	"github.com/mmynk/settleup/pkg/api"
	"github.com/mmynk/settleup/pkg/api/apiconnect"
)

const testSecret = "test-secret-key-at-least-32-bytes!"

// testAuthInterceptor puts a fixed user on the context in place of
// RequireAuth.
func testAuthInterceptor(userID string) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			return next(middleware.WithUser(ctx, userID, ""), req)
		}
	}
}

type testEnv struct {
	groups      apiconnect.GroupServiceClient
	expenses    apiconnect.ExpenseServiceClient
	settlements apiconnect.SettlementServiceClient
	auth        apiconnect.AuthServiceClient

	store   *sqlite.SQLiteStore
	metrics *metrics.Metrics
	jwt     *auth.JWTManager
	user    *models.User
}

// setupTestServer serves every service over httptest against a fresh SQLite
// database. Mutations run as a registered test user.
func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	user := models.NewUser("alice@example.com", "Alice", "unused-hash")
	require.NoError(t, store.CreateUser(context.Background(), user))

	m := metrics.New()
	recorder := activity.NewRecorder(store, activity.Nop{}, slog.Default())
	jwtManager := auth.NewJWTManager(testSecret, time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store).WithCost(bcrypt.MinCost)

	authed := connect.WithInterceptors(middleware.MetricsInterceptor(m), testAuthInterceptor(user.ID))
	open := connect.WithInterceptors(middleware.OptionalAuth(jwtManager))

	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewGroupServiceHandler(NewGroupService(store, recorder, m), authed))
	mux.Handle(apiconnect.NewExpenseServiceHandler(NewExpenseService(store, recorder, m), authed))
	mux.Handle(apiconnect.NewSettlementServiceHandler(NewSettlementService(store, recorder), authed))
	mux.Handle(apiconnect.NewAuthServiceHandler(NewAuthService(authenticator, jwtManager, store, nil), open))

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return &testEnv{
		groups:      apiconnect.NewGroupServiceClient(http.DefaultClient, server.URL),
		expenses:    apiconnect.NewExpenseServiceClient(http.DefaultClient, server.URL),
		settlements: apiconnect.NewSettlementServiceClient(http.DefaultClient, server.URL),
		auth:        apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL),
		store:       store,
		metrics:     m,
		jwt:         jwtManager,
		user:        user,
	}
}

func (e *testEnv) createGroup(t *testing.T, name string, members ...string) *api.Group {
	t.Helper()
	resp, err := e.groups.CreateGroup(context.Background(), connect.NewRequest(&api.CreateGroupRequest{
		Name:    name,
		Members: members,
	}))
	require.NoError(t, err)
	return resp.Msg.Group
}

func (e *testEnv) addExpense(t *testing.T, groupID, paidBy, amount, description string) *api.CreateExpenseResponse {
	t.Helper()
	resp, err := e.expenses.CreateExpense(context.Background(), connect.NewRequest(&api.CreateExpenseRequest{
		GroupId:     groupID,
		Description: description,
		Amount:      decimal.RequireFromString(amount),
		PaidBy:      paidBy,
	}))
	require.NoError(t, err)
	return resp.Msg
}

func (e *testEnv) balances(t *testing.T, groupID string) *api.GetGroupBalancesResponse {
	t.Helper()
	resp, err := e.groups.GetGroupBalances(context.Background(), connect.NewRequest(&api.GetGroupBalancesRequest{
		GroupId: groupID,
	}))
	require.NoError(t, err)
	return resp.Msg
}

func assertMoney(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.Equal(t, want, got.StringFixed(2), msgAndArgs...)
}

// netByMember flattens balances to member -> "0.00" for comparison.
func netByMember(balances []*api.MemberBalance) map[string]string {
	out := make(map[string]string, len(balances))
	for _, b := range balances {
		out[b.MemberName] = b.NetBalance.StringFixed(2)
	}
	return out
}

func memberOrder(balances []*api.MemberBalance) []string {
	out := make([]string, len(balances))
	for i, b := range balances {
		out[i] = b.MemberName
	}
	return out
}

type instruction struct{ from, to, amount string }

func instructions(in []*api.SettlementInstruction) []instruction {
	out := make([]instruction, len(in))
	for i, s := range in {
		out[i] = instruction{s.From, s.To, s.Amount.StringFixed(2)}
	}
	return out
}
