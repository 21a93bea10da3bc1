package apitest

import "net/http"

// Canned values returned by DefaultResponses.
const (
	PayloadHash       = "0x5a3e1c0f4a13b6f52a9c1d2e3f405162738495a6b7c8d9e0f1a2b3c4d5e6f7"
	SignableMessage   = "Only sign this message if you initiated this action"
	OperatorSignature = "0x" + "ab" + "0102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f20"
	StarkKey          = "0x0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcd"
	AssetType         = "0x02705737cd248ac819034b5de474c8f0368224f72a0fda9e031499d519992d9e"
	AssetID           = "0x02b3a8c6b8b9d9e3e5f7fa3c1d2e4f5061728394a5b6c7d8e9f0a1b2c3d4e5f6"
	VaultID           = 1502450
)

// DefaultResponses returns a successful answer for every route.
func DefaultResponses() map[string]Response {
	ok := func(body any) Response { return Response{Status: http.StatusOK, Body: body} }

	signable := map[string]any{
		"amount_buy":           "1",
		"amount_sell":          "1000000",
		"asset_id_buy":         AssetID,
		"asset_id_sell":        AssetType,
		"expiration_timestamp": 1_900_000,
		"nonce":                596252354,
		"payload_hash":         PayloadHash,
		"signable_message":     SignableMessage,
		"stark_key":            StarkKey,
		"vault_id_buy":         1502450,
		"vault_id_sell":        1502449,
	}

	return map[string]Response{
		"POST /v1/signable-registration": ok(map[string]any{
			"operator_signature": OperatorSignature,
			"payload_hash":       PayloadHash,
		}),
		"POST /v1/signable-registration-offchain": ok(map[string]any{
			"signable_message": SignableMessage,
			"payload_hash":     PayloadHash,
		}),
		"POST /v1/users":       ok(map[string]any{"tx_hash": "0x01"}),
		"GET /v1/users/{user}": ok(map[string]any{"accounts": []string{StarkKey}}),
		"POST /v1/encode/{assetType}": ok(map[string]any{
			"asset_id":   AssetID,
			"asset_type": AssetType,
		}),
		"POST /v1/signable-deposit-details": ok(map[string]any{
			"amount":    "1000000000000000000",
			"asset_id":  AssetID,
			"nonce":     1,
			"stark_key": StarkKey,
			"vault_id":  VaultID,
		}),
		"POST /v1/signable-withdrawal-details": ok(map[string]any{
			"amount":           "1000000",
			"asset_id":         AssetID,
			"nonce":            7,
			"payload_hash":     PayloadHash,
			"signable_message": SignableMessage,
			"stark_key":        StarkKey,
			"vault_id":         VaultID,
		}),
		"POST /v1/withdrawals":            ok(map[string]any{"withdrawal_id": 42, "status": "pending", "time_created": 1_700_000_000}),
		"POST /v3/signable-order-details": ok(signable),
		"POST /v3/orders":                 ok(map[string]any{"order_id": 5, "status": "active", "time": 1_700_000_000}),
		"POST /v3/signable-cancel-order-details": ok(map[string]any{
			"payload_hash":     PayloadHash,
			"signable_message": SignableMessage,
		}),
		"DELETE /v3/orders/{orderID}":     ok(map[string]any{"order_id": 5, "status": "cancelled"}),
		"POST /v3/signable-trade-details": ok(signable),
		"POST /v3/trades":                 ok(map[string]any{"trade_id": 9, "status": "success"}),
		"GET /v2/balances/{owner}": ok(map[string]any{
			"result":    []map[string]any{{"symbol": "USDC", "balance": "1000000", "token_address": "0xd44BB808bfE43095dBb94c83077766382D63952a"}},
			"cursor":    "",
			"remaining": 0,
		}),
		"GET /v2/balances/{owner}/{address}": ok(map[string]any{
			"symbol": "USDC", "balance": "1000000", "withdrawable": "0", "token_address": "0xd44BB808bfE43095dBb94c83077766382D63952a",
		}),
		"POST /v1/projects":                                      ok(map[string]any{"id": 11}),
		"GET /v1/projects":                                       ok(map[string]any{"result": []map[string]any{{"id": 11, "name": "demo"}}, "cursor": "", "remaining": 0}),
		"GET /v1/projects/{id}":                                  ok(map[string]any{"id": 11, "name": "demo", "company_name": "Flash1"}),
		"POST /v1/collections":                                   ok(map[string]any{"address": "0xc0", "name": "demo", "project_id": 11}),
		"PATCH /v1/collections/{address}":                        ok(map[string]any{"address": "0xc0", "name": "renamed", "project_id": 11}),
		"POST /v1/collections/{address}/metadata-schema":         ok(map[string]any{"result": "success"}),
		"PATCH /v1/collections/{address}/metadata-schema/{name}": ok(map[string]any{"result": "success"}),
		"GET /v1/metadata-refreshes": ok(map[string]any{
			"result":    []map[string]any{{"refresh_id": "r-1", "status": "completed", "collection_address": "0xc0"}},
			"cursor":    "",
			"remaining": 0,
		}),
		"POST /v1/metadata-refreshes": ok(map[string]any{"refresh_id": "r-1"}),
		"GET /v1/metadata-refreshes/{id}": ok(map[string]any{
			"refresh_id": "r-1", "status": "completed", "collection_address": "0xc0",
			"summary": map[string]any{"succeeded": 2, "failed": 1, "pending": 0},
		}),
		"GET /v1/metadata-refreshes/{id}/errors": ok(map[string]any{
			"result":    []map[string]any{{"token_id": "3", "error_code": "unable_to_retrieve_metadata", "client_response_status_code": 500}},
			"cursor":    "",
			"remaining": 0,
		}),
	}
}
