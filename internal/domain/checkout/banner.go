package checkout

import (
	"net/url"
	"strconv"
)

type BannerKind string

const (
	BannerNone            BannerKind = ""
	BannerPaymentSuccess  BannerKind = "payment_success"
	BannerPaymentCanceled BannerKind = "payment_canceled"
)

// Banner is the post-payment notice derived from the redirect query.
type Banner struct {
	Kind      BannerKind
	Type      Type
	SessionID string
}

func ParseReturn(q url.Values) Banner {
	if truthy(q.Get("success")) {
		t, _ := ParseType(q.Get("type"))
		return Banner{Kind: BannerPaymentSuccess, Type: t, SessionID: q.Get("session_id")}
	}
	if truthy(q.Get("canceled")) {
		return Banner{Kind: BannerPaymentCanceled}
	}
	return Banner{}
}

func truthy(v string) bool {
	b, err := strconv.ParseBool(v)
	return err == nil && b
}
