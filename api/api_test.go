package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flash1-exchange/flash1-go"
	"github.com/flash1-exchange/flash1-go/internal/apitest"
)

func newTestClient(t *testing.T) (*Client, *apitest.Server) {
	t.Helper()
	srv := apitest.NewServer(t)
	c := New(flash1.APIConfiguration{
		BasePath: srv.URL,
		Headers:  map[string]string{flash1.SDKVersionHeader: "flash1-go-sdk-test"},
	})
	return c, srv
}

func TestClientSendsConfiguredHeaders(t *testing.T) {
	c, srv := newTestClient(t)

	_, err := c.Users.GetSignableRegistration(context.Background(), SignableRegistrationRequest{
		EtherKey: "0xabc",
		StarkKey: "0xdef",
	})
	require.NoError(t, err)

	req, ok := srv.Last("POST /v1/signable-registration")
	require.True(t, ok)
	assert.Equal(t, "flash1-go-sdk-test", req.Header.Get(flash1.SDKVersionHeader))
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.Equal(t, "0xabc", req.Body["ether_key"])
	assert.Equal(t, "0xdef", req.Body["stark_key"])
}

func TestUsersService(t *testing.T) {
	c, srv := newTestClient(t)
	ctx := context.Background()

	reg, err := c.Users.GetSignableRegistration(ctx, SignableRegistrationRequest{EtherKey: "0x1", StarkKey: "0x2"})
	require.NoError(t, err)
	assert.Equal(t, apitest.OperatorSignature, reg.OperatorSignature)
	assert.Equal(t, apitest.PayloadHash, reg.PayloadHash)

	off, err := c.Users.GetSignableRegistrationOffchain(ctx, SignableRegistrationRequest{EtherKey: "0x1", StarkKey: "0x2"})
	require.NoError(t, err)
	assert.Equal(t, apitest.SignableMessage, off.SignableMessage)

	user, err := c.Users.RegisterUser(ctx, RegisterUserRequest{EthSignature: "0xe", EtherKey: "0x1", StarkSignature: "0xs", StarkKey: "0x2"})
	require.NoError(t, err)
	assert.Equal(t, "0x01", user.TxHash)

	users, err := c.Users.GetUsers(ctx, "0x1")
	require.NoError(t, err)
	assert.Equal(t, []string{apitest.StarkKey}, users.Accounts)

	assert.Equal(t, []string{
		"POST /v1/signable-registration",
		"POST /v1/signable-registration-offchain",
		"POST /v1/users",
		"GET /v1/users/{user}",
	}, srv.Routes())
}

func TestEncodeAsset(t *testing.T) {
	c, srv := newTestClient(t)

	resp, err := c.Encoding.EncodeAsset(context.Background(), "asset", EncodeAssetRequest{
		Token: EncodeAssetToken{Type: "ERC20", Data: &EncodeAssetTokenData{TokenAddress: "0xd44b"}},
	})
	require.NoError(t, err)
	assert.Equal(t, apitest.AssetType, resp.AssetType)

	req, ok := srv.Last("POST /v1/encode/{assetType}")
	require.True(t, ok)
	assert.Equal(t, "/v1/encode/asset", req.Path)
	token := req.Body["token"].(map[string]any)
	assert.Equal(t, "ERC20", token["type"])
	assert.Equal(t, map[string]any{"token_address": "0xd44b"}, token["data"])
}

func TestEncodeAssetOmitsEmptyData(t *testing.T) {
	c, srv := newTestClient(t)

	_, err := c.Encoding.EncodeAsset(context.Background(), "asset", EncodeAssetRequest{Token: EncodeAssetToken{Type: "ETH"}})
	require.NoError(t, err)

	req, _ := srv.Last("POST /v1/encode/{assetType}")
	assert.NotContains(t, req.Body["token"], "data")
}

func TestDepositsAndWithdrawals(t *testing.T) {
	c, srv := newTestClient(t)
	ctx := context.Background()

	dep, err := c.Deposits.GetSignableDeposit(ctx, SignableDepositRequest{
		User:   "0x1",
		Token:  SignableToken{Type: "ETH", Data: SignableTokenData{Decimals: 18}},
		Amount: "1",
	})
	require.NoError(t, err)
	assert.Equal(t, uint64(apitest.VaultID), dep.VaultID)
	assert.Equal(t, apitest.StarkKey, dep.StarkKey)

	depReq, _ := srv.Last("POST /v1/signable-deposit-details")
	assert.Equal(t, map[string]any{"type": "ETH", "data": map[string]any{"decimals": float64(18)}}, depReq.Body["token"])

	w, err := c.Withdrawals.GetSignableWithdrawal(ctx, SignableWithdrawalRequest{User: "0x1", Amount: "1"})
	require.NoError(t, err)
	assert.Equal(t, apitest.PayloadHash, w.PayloadHash)

	created, err := c.Withdrawals.CreateWithdrawal(ctx, "0xaddr", "0xsig", CreateWithdrawalRequest{Amount: w.Amount, Nonce: w.Nonce})
	require.NoError(t, err)
	assert.Equal(t, int64(42), created.WithdrawalID)

	wReq, _ := srv.Last("POST /v1/withdrawals")
	assert.Equal(t, "0xaddr", wReq.Header.Get(HeaderEthAddress))
	assert.Equal(t, "0xsig", wReq.Header.Get(HeaderEthSignature))
	assert.Equal(t, float64(7), wReq.Body["nonce"])
}

func TestVaultIDsAboveInt64(t *testing.T) {
	const vaultID uint64 = 15581046906614459782

	c, srv := newTestClient(t)
	ctx := context.Background()
	srv.Handle("POST /v1/signable-deposit-details", http.StatusOK, map[string]any{
		"amount":    "1",
		"stark_key": apitest.StarkKey,
		"vault_id":  vaultID,
	})
	srv.Handle("POST /v3/signable-order-details", http.StatusOK, map[string]any{
		"vault_id_buy":  vaultID,
		"vault_id_sell": vaultID - 1,
	})

	dep, err := c.Deposits.GetSignableDeposit(ctx, SignableDepositRequest{User: "0x1", Amount: "1"})
	require.NoError(t, err)
	assert.Equal(t, vaultID, dep.VaultID)

	order, err := c.Orders.GetSignableOrder(ctx, SignableOrderRequest{User: "0x1", AmountBuy: "1", AmountSell: "2"})
	require.NoError(t, err)
	assert.Equal(t, vaultID, order.VaultIDBuy)
	assert.Equal(t, vaultID-1, order.VaultIDSell)

	_, err = c.Withdrawals.CreateWithdrawal(ctx, "0xaddr", "0xsig", CreateWithdrawalRequest{VaultID: vaultID})
	require.NoError(t, err)

	req, _ := srv.Last("POST /v1/withdrawals")
	assert.Contains(t, string(req.Raw), `"vault_id":15581046906614459782`)
}

func TestOrdersAndTrades(t *testing.T) {
	c, srv := newTestClient(t)
	ctx := context.Background()

	signable, err := c.Orders.GetSignableOrder(ctx, SignableOrderRequest{User: "0x1", AmountBuy: "1", AmountSell: "2"})
	require.NoError(t, err)
	assert.Equal(t, uint64(1502449), signable.VaultIDSell)

	order, err := c.Orders.CreateOrder(ctx, "0xaddr", "0xsig", CreateOrderRequest{StarkSignature: "0xss"})
	require.NoError(t, err)
	assert.Equal(t, int64(5), order.OrderID)

	_, err = c.Orders.GetSignableCancelOrder(ctx, SignableCancelOrderRequest{OrderID: 5})
	require.NoError(t, err)

	cancelled, err := c.Orders.CancelOrder(ctx, "0xaddr", "0xsig", CancelOrderRequest{OrderID: 5, StarkSignature: "0xss"})
	require.NoError(t, err)
	assert.Equal(t, "cancelled", cancelled.Status)

	cancelReq, _ := srv.Last("DELETE /v3/orders/{orderID}")
	assert.Equal(t, "/v3/orders/5", cancelReq.Path)
	assert.Equal(t, "0xss", cancelReq.Body["stark_signature"])

	_, err = c.Trades.GetSignableTrade(ctx, SignableTradeRequest{User: "0x1", OrderID: 5})
	require.NoError(t, err)

	trade, err := c.Trades.CreateTrade(ctx, "0xaddr", "0xsig", CreateTradeRequest{OrderID: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(9), trade.TradeID)

	tradeReq, _ := srv.Last("POST /v3/trades")
	assert.Equal(t, "0xaddr", tradeReq.Header.Get(HeaderEthAddress))
}

func TestBalances(t *testing.T) {
	c, srv := newTestClient(t)
	ctx := context.Background()

	bal, err := c.Balances.GetBalance(ctx, "0xowner", "0xtoken")
	require.NoError(t, err)
	assert.Equal(t, "USDC", bal.Symbol)

	req, _ := srv.Last("GET /v2/balances/{owner}/{address}")
	assert.Equal(t, "/v2/balances/0xowner/0xtoken", req.Path)

	list, err := c.Balances.ListBalances(ctx, "0xowner", ListParams{PageSize: 10, Cursor: "abc", OrderBy: "symbol", Direction: "asc"})
	require.NoError(t, err)
	require.Len(t, list.Result, 1)

	req, _ = srv.Last("GET /v2/balances/{owner}")
	assert.Equal(t, "10", req.Query.Get("page_size"))
	assert.Equal(t, "abc", req.Query.Get("cursor"))
	assert.Equal(t, "symbol", req.Query.Get("order_by"))
	assert.Equal(t, "asc", req.Query.Get("direction"))
}

func TestListParamsOmitZeroValues(t *testing.T) {
	assert.Empty(t, ListParams{}.values())
}

func TestAuthHeaders(t *testing.T) {
	c, srv := newTestClient(t)
	ctx := context.Background()
	auth := Auth{Address: "0xaddr", Signature: "0xsig", Timestamp: "1700000000"}

	_, err := c.Projects.CreateProject(ctx, auth, CreateProjectRequest{Name: "demo"})
	require.NoError(t, err)
	req, _ := srv.Last("POST /v1/projects")
	assert.Equal(t, "0xsig", req.Header.Get(HeaderIMXSignature))
	assert.Equal(t, "1700000000", req.Header.Get(HeaderIMXTimestamp))
	assert.Empty(t, req.Header.Get(HeaderEthAddress))

	_, err = c.MetadataRefreshes.ListMetadataRefreshes(ctx, auth, "0xc0", ListParams{})
	require.NoError(t, err)
	req, _ = srv.Last("GET /v1/metadata-refreshes")
	assert.Equal(t, "0xaddr", req.Header.Get(HeaderEthAddress))
	assert.Equal(t, "0xsig", req.Header.Get(HeaderEthSignature))
	assert.Equal(t, "1700000000", req.Header.Get(HeaderEthTimestamp))
	assert.Equal(t, "0xc0", req.Query.Get("collection_address"))
	assert.Empty(t, req.Header.Get(HeaderIMXSignature))
}

func TestProjectsCollectionsMetadata(t *testing.T) {
	c, srv := newTestClient(t)
	ctx := context.Background()
	auth := Auth{Address: "0xaddr", Signature: "0xsig", Timestamp: "1"}

	project, err := c.Projects.GetProject(ctx, auth, "11")
	require.NoError(t, err)
	assert.Equal(t, "Flash1", project.CompanyName)

	projects, err := c.Projects.GetProjects(ctx, auth, ListParams{})
	require.NoError(t, err)
	require.Len(t, projects.Result, 1)

	col, err := c.Collections.CreateCollection(ctx, auth, CreateCollectionRequest{Name: "demo", ProjectID: 11})
	require.NoError(t, err)
	assert.Equal(t, "0xc0", col.Address)

	updated, err := c.Collections.UpdateCollection(ctx, auth, "0xc0", UpdateCollectionRequest{Name: "renamed"})
	require.NoError(t, err)
	assert.Equal(t, "renamed", updated.Name)

	added, err := c.Metadata.AddMetadataSchemaToCollection(ctx, auth, "0xc0", AddMetadataSchemaToCollectionRequest{
		Metadata: []MetadataSchemaProperty{{Name: "rarity", Type: "enum", Filterable: true}},
	})
	require.NoError(t, err)
	assert.Equal(t, "success", added.Result)

	_, err = c.Metadata.UpdateMetadataSchemaByName(ctx, auth, "0xc0", "rarity", MetadataSchemaRequest{Filterable: true})
	require.NoError(t, err)
	req, _ := srv.Last("PATCH /v1/collections/{address}/metadata-schema/{name}")
	assert.Equal(t, "/v1/collections/0xc0/metadata-schema/rarity", req.Path)

	refresh, err := c.MetadataRefreshes.CreateMetadataRefresh(ctx, auth, CreateMetadataRefreshRequest{CollectionAddress: "0xc0", TokenIDs: []string{"1"}})
	require.NoError(t, err)

	results, err := c.MetadataRefreshes.GetMetadataRefreshResults(ctx, auth, refresh.RefreshID)
	require.NoError(t, err)
	require.NotNil(t, results.Summary)
	assert.Equal(t, 1, results.Summary.Failed)

	errs, err := c.MetadataRefreshes.GetMetadataRefreshErrors(ctx, auth, refresh.RefreshID, ListParams{PageSize: 5})
	require.NoError(t, err)
	require.Len(t, errs.Result, 1)
	assert.Equal(t, 500, errs.Result[0].ClientResponseStatusCode)
}

func TestErrorResponses(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        any
		wantCode    string
		wantMessage string
	}{
		{
			name:        "structured",
			status:      http.StatusBadRequest,
			body:        map[string]string{"code": "bad_request", "message": "invalid stark key"},
			wantCode:    "bad_request",
			wantMessage: "invalid stark key",
		},
		{
			name:        "raw body",
			status:      http.StatusBadGateway,
			body:        "upstream down",
			wantMessage: `"upstream down"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, srv := newTestClient(t)
			srv.Handle("POST /v1/users", tt.status, tt.body)

			_, err := c.Users.RegisterUser(context.Background(), RegisterUserRequest{})
			require.Error(t, err)

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, tt.status, apiErr.StatusCode)
			assert.Equal(t, tt.wantCode, apiErr.Code)
			assert.Equal(t, tt.wantMessage, apiErr.Message)
			assert.Equal(t, http.MethodPost, apiErr.Method)
			assert.Equal(t, "/v1/users", apiErr.Path)
		})
	}
}

func TestErrorString(t *testing.T) {
	err := &Error{StatusCode: 400, Code: "bad_request", Message: "nope", Method: "POST", Path: "/v1/users"}
	assert.Equal(t, "flash1 API error [400] bad_request: nope [POST /v1/users]", err.Error())

	bare := &Error{StatusCode: 500}
	assert.Equal(t, "flash1 API error [500]", bare.Error())
}

func TestIsNotFound(t *testing.T) {
	c, srv := newTestClient(t)
	srv.Handle("GET /v1/users/{user}", http.StatusNotFound, map[string]string{"code": "resource_not_found", "message": "user not found"})

	_, err := c.Users.GetUsers(context.Background(), "0x1")
	assert.True(t, IsNotFound(err))
	assert.False(t, IsNotFound(assert.AnError))
}

func TestWithHTTPClient(t *testing.T) {
	var called bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		_, _ = w.Write([]byte(`{"accounts":[]}`))
	}))
	defer srv.Close()

	c := New(flash1.APIConfiguration{BasePath: srv.URL}, WithHTTPClient(srv.Client()))
	_, err := c.Users.GetUsers(context.Background(), "0x1")
	require.NoError(t, err)
	assert.True(t, called)
}

func TestContextCancellation(t *testing.T) {
	c, _ := newTestClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Users.GetUsers(ctx, "0x1")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
