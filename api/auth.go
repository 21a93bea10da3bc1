package api

import "net/http"

// Header names of the two authorisation conventions used by the API.
const (
	HeaderIMXSignature = "IMX-Signature"
	HeaderIMXTimestamp = "IMX-Timestamp"

	HeaderEthAddress   = "x-imx-eth-address"
	HeaderEthSignature = "x-imx-eth-signature"
	HeaderEthTimestamp = "x-imx-eth-timestamp"
)

// Auth is an Ethereum signature over a unix timestamp, made by Address.
type Auth struct {
	Address   string
	Signature string
	Timestamp string
}

// imxHeaders authorises project, collection and metadata calls.
func (a Auth) imxHeaders() http.Header {
	h := http.Header{}
	h.Set(HeaderIMXSignature, a.Signature)
	h.Set(HeaderIMXTimestamp, a.Timestamp)
	return h
}

// ethHeaders authorises metadata refresh calls.
func (a Auth) ethHeaders() http.Header {
	h := http.Header{}
	h.Set(HeaderEthAddress, a.Address)
	h.Set(HeaderEthSignature, a.Signature)
	h.Set(HeaderEthTimestamp, a.Timestamp)
	return h
}

// signedBy authorises order, trade and withdrawal submissions with a signature over
// the signable message returned by the API.
func signedBy(address, signature string) http.Header {
	h := http.Header{}
	h.Set(HeaderEthAddress, address)
	h.Set(HeaderEthSignature, signature)
	return h
}
