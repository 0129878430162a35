package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// OrderStatus is the cash-on-delivery lifecycle state of an order.
type OrderStatus string

const (
	StatusPending      OrderStatus = "Pending"         // received, no action yet
	StatusConfirmed    OrderStatus = "Confirmed"       // customer confirmed by phone
	StatusShipped      OrderStatus = "Shipped"         // handed to courier
	StatusDelivered    OrderStatus = "Delivered"       // cash received
	StatusReturnedFree OrderStatus = "Returned (Free)" // refused, courier waived the fee
	StatusReturnedPaid OrderStatus = "Returned (Paid)" // refused, shipping fee paid
	StatusLostDamaged  OrderStatus = "Lost/Damaged"    // total loss
)

// OrderStatuses lists every status in lifecycle order.
var OrderStatuses = []OrderStatus{
	StatusPending,
	StatusConfirmed,
	StatusShipped,
	StatusDelivered,
	StatusReturnedFree,
	StatusReturnedPaid,
	StatusLostDamaged,
}

var orderStatusAliases = map[string]OrderStatus{
	"pending":         StatusPending,
	"confirmed":       StatusConfirmed,
	"shipped":         StatusShipped,
	"delivered":       StatusDelivered,
	"returned (free)": StatusReturnedFree,
	"returned-free":   StatusReturnedFree,
	"returned_free":   StatusReturnedFree,
	"returned (paid)": StatusReturnedPaid,
	"returned-paid":   StatusReturnedPaid,
	"returned_paid":   StatusReturnedPaid,
	"lost/damaged":    StatusLostDamaged,
	"lost-damaged":    StatusLostDamaged,
	"lost_damaged":    StatusLostDamaged,
	"lost":            StatusLostDamaged,
}

// ParseOrderStatus accepts the display label or a slug (case-insensitive).
func ParseOrderStatus(label string) (OrderStatus, bool) {
	status, ok := orderStatusAliases[strings.ToLower(strings.TrimSpace(label))]
	return status, ok
}

// Valid reports whether s is one of the seven known statuses.
func (s OrderStatus) Valid() bool {
	for _, known := range OrderStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// AdPurpose decides whether ad spend counts against unit economics.
type AdPurpose string

const (
	PurposeTesting   AdPurpose = "Testing"   // R&D, overhead
	PurposeScaling   AdPurpose = "Scaling"   // customer acquisition, counted in campaign profit
	PurposeAwareness AdPurpose = "Awareness" // brand, overhead
)

// ParseAdPurpose is case-insensitive.
func ParseAdPurpose(label string) (AdPurpose, bool) {
	for _, p := range []AdPurpose{PurposeTesting, PurposeScaling, PurposeAwareness} {
		if strings.EqualFold(strings.TrimSpace(label), string(p)) {
			return p, true
		}
	}
	return "", false
}

// Platform is the advertising channel.
type Platform string

const (
	PlatformFacebook  Platform = "Facebook"
	PlatformInstagram Platform = "Instagram"
	PlatformTikTok    Platform = "TikTok"
)

// ParsePlatform is case-insensitive.
func ParsePlatform(label string) (Platform, bool) {
	for _, p := range []Platform{PlatformFacebook, PlatformInstagram, PlatformTikTok} {
		if strings.EqualFold(strings.TrimSpace(label), string(p)) {
			return p, true
		}
	}
	return "", false
}

// UnmarshalJSON keeps unknown statuses as-is so legacy blobs still load; they are
// classified as unknown by the ledger.
func (s *OrderStatus) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("order status: %w", err)
	}
	if status, ok := ParseOrderStatus(raw); ok {
		*s = status
		return nil
	}
	*s = OrderStatus(raw)
	return nil
}
