package db

import "testing"

func TestLicenseActive(t *testing.T) {
	tests := []struct {
		name      string
		keyActive bool
		subStatus string
		expected  bool
	}{
		{"active key on active subscription", true, SubscriptionStatusActive, true},
		{"revoked key", false, SubscriptionStatusActive, false},
		{"inactive subscription", true, SubscriptionStatusInactive, false},
		{"canceled subscription", true, SubscriptionStatusCanceled, false},
		{"both off", false, SubscriptionStatusCanceled, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			license := License{}
			license.APIKey.IsActive = tt.keyActive
			license.Subscription.Status = tt.subStatus
			if got := license.Active(); got != tt.expected {
				t.Errorf("Active() = %v, expected %v", got, tt.expected)
			}
		})
	}
}
